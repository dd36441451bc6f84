package debuginfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vellumlang/vellum/types"
)

func TestComputeTypeName(t *testing.T) {
	tree, root := newItemTree("mycrate")
	vec := tree.named(root, "Vec")
	option := tree.named(root, "Option")
	matrix := tree.named(root, "Matrix")
	ffi := tree.named(root, "ffi")
	extType := tree.named(ffi, "ExtType")
	native, cpp := tree.contexts(nil)

	i32 := types.Int{Width: 32}
	u8 := types.Uint{Width: 8}

	tests := []struct {
		name   string
		ty     types.Ty
		native string
		cpp    string
	}{
		{"bool", types.Bool{}, "bool", "bool"},
		{"char", types.Char{}, "char", "char"},
		{"str", types.Str{}, "str", "str"},
		{"never", types.Never{}, "!", "never$"},
		{"i32", i32, "i32", "i32"},
		{"u8", u8, "u8", "u8"},
		{"f64", types.Float{Width: 64}, "f64", "f64"},
		{"tuple", types.Tuple{Elems: []types.Ty{i32, u8}}, "(i32, u8)", "tuple$<i32,u8>"},
		{"empty tuple", types.Tuple{}, "()", "tuple$<>"},
		{"const raw ptr", types.RawPtr{Elem: i32}, "*const i32", "ptr_const$<i32>"},
		{"mut raw ptr", types.RawPtr{Elem: u8, Mutable: true}, "*mut u8", "ptr_mut$<u8>"},
		{"shared ref", types.Ref{Elem: i32}, "&i32", "ref$<i32>"},
		{"mut ref", types.Ref{Elem: types.Float{Width: 64}, Mutable: true}, "&mut f64", "ref_mut$<f64>"},
		// Slice and str referents lose the synthetic wrapper in the
		// debugger-native dialect.
		{"ref to slice of str", types.Ref{Elem: types.Slice{Elem: types.Str{}}}, "&[str]", "slice$<str>"},
		{"ref to str", types.Ref{Elem: types.Str{}}, "&str", "str"},
		{"mut ref to slice", types.Ref{Elem: types.Slice{Elem: u8}, Mutable: true}, "&mut [u8]", "slice$<u8>"},
		{"raw ptr to str keeps wrapper", types.RawPtr{Elem: types.Str{}}, "*const str", "ptr_const$<str>"},
		{"array", types.Array{Elem: u8, Len: types.UintConst(64, 3)}, "[u8; 3]", "array$<u8,3>"},
		{"array with param length", types.Array{Elem: u8, Len: types.ParamConst("N")}, "[u8; N]", "array$<u8,N>"},
		{"slice", types.Slice{Elem: i32}, "[i32]", "slice$<i32>"},
		{"plain adt", types.Adt{Item: option}, "mycrate::Option", "mycrate::Option"},
		{
			"generic adt",
			types.Adt{Item: vec, Args: []types.GenericArg{types.TypeArg(i32)}},
			"mycrate::Vec<i32>",
			"mycrate::Vec<i32>",
		},
		{
			"nested generic adt",
			types.Adt{Item: vec, Args: []types.GenericArg{
				types.TypeArg(types.Adt{Item: option, Args: []types.GenericArg{types.TypeArg(i32)}}),
			}},
			"mycrate::Vec<mycrate::Option<i32>>",
			"mycrate::Vec<mycrate::Option<i32> >",
		},
		{
			"adt with const arg",
			types.Adt{Item: matrix, Args: []types.GenericArg{
				types.TypeArg(i32),
				types.ConstArg(types.UintConst(64, 3)),
			}},
			"mycrate::Matrix<i32, 3>",
			"mycrate::Matrix<i32,3>",
		},
		{"generic param", types.Param{Name: "T"}, "T", "T"},
		{"foreign", types.Foreign{Item: extType}, "mycrate::ffi::ExtType", "mycrate::ffi::ExtType"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNative := ComputeTypeName(native, tt.ty, true)
			gotCPP := ComputeTypeName(cpp, tt.ty, true)
			assert.Equal(t, tt.native, gotNative)
			assert.Equal(t, tt.cpp, gotCPP)
			checkBalanced(t, gotNative)
			checkBalanced(t, gotCPP)
			checkCPPParseable(t, gotCPP)
			// Same input, same dialect: byte-identical output.
			assert.Equal(t, gotNative, ComputeTypeName(native, tt.ty, true))
			assert.Equal(t, gotCPP, ComputeTypeName(cpp, tt.ty, true))
		})
	}
}

func TestQualificationScope(t *testing.T) {
	tree, root := newItemTree("mycrate")
	vec := tree.named(root, "Vec")
	option := tree.named(root, "Option")
	native, _ := tree.contexts(nil)

	inner := types.Adt{Item: option, Args: []types.GenericArg{types.TypeArg(types.Int{Width: 32})}}
	outer := types.Adt{Item: vec, Args: []types.GenericArg{types.TypeArg(inner)}}

	// qualified=false strips only the outermost item name; nested type
	// arguments stay fully qualified.
	assert.Equal(t, "Vec<mycrate::Option<i32>>", ComputeTypeName(native, outer, false))
	assert.Equal(t, "mycrate::Vec<mycrate::Option<i32>>", ComputeTypeName(native, outer, true))
}

func TestDynTypeName(t *testing.T) {
	tree, root := newItemTree("mycrate")
	principal := tree.named(root, "Principal")
	stream := tree.named(root, "Stream")
	iterator := tree.named(root, "Iterator")
	item := tree.named(iterator, "Item")
	sendTrait := tree.named(root, "Send")
	syncTrait := tree.named(root, "Sync")
	native, cpp := tree.contexts(nil)

	i32 := types.Int{Width: 32}
	u32 := types.Uint{Width: 32}

	tests := []struct {
		name   string
		ty     types.Dynamic
		native string
		cpp    string
	}{
		{
			"principal only",
			types.Dynamic{Principal: &types.TraitRef{Item: principal}},
			"dyn mycrate::Principal",
			"dyn$<mycrate::Principal>",
		},
		{
			"principal plus auto trait",
			types.Dynamic{
				Principal:  &types.TraitRef{Item: principal},
				AutoTraits: []types.ItemID{sendTrait},
			},
			"(dyn mycrate::Principal + mycrate::Send)",
			"dyn$<mycrate::Principal,mycrate::Send>",
		},
		{
			// Auto traits are declared out of order; the output sorts them.
			"principal plus two auto traits",
			types.Dynamic{
				Principal:  &types.TraitRef{Item: principal},
				AutoTraits: []types.ItemID{syncTrait, sendTrait},
			},
			"(dyn mycrate::Principal + mycrate::Send + mycrate::Sync)",
			"dyn$<mycrate::Principal,mycrate::Send,mycrate::Sync>",
		},
		{
			"principal with generics and binding",
			types.Dynamic{
				Principal: &types.TraitRef{Item: stream, Args: []types.GenericArg{types.TypeArg(i32)}},
				Bindings:  []types.Binding{{Item: item, Ty: u32}},
			},
			"dyn mycrate::Stream<i32, Item=u32>",
			"dyn$<mycrate::Stream<i32,assoc$<Item,u32> > >",
		},
		{
			"binding without generics",
			types.Dynamic{
				Principal: &types.TraitRef{Item: iterator},
				Bindings:  []types.Binding{{Item: item, Ty: u32}},
			},
			"dyn mycrate::Iterator<Item=u32>",
			"dyn$<mycrate::Iterator<assoc$<Item,u32> > >",
		},
		{
			"auto trait only",
			types.Dynamic{AutoTraits: []types.ItemID{sendTrait}},
			"dyn mycrate::Send",
			"dyn$<mycrate::Send>",
		},
		{
			"auto traits only",
			types.Dynamic{AutoTraits: []types.ItemID{syncTrait, sendTrait}},
			"(dyn mycrate::Send + mycrate::Sync)",
			"dyn$<mycrate::Send,mycrate::Sync>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotNative := ComputeTypeName(native, tt.ty, true)
			gotCPP := ComputeTypeName(cpp, tt.ty, true)
			assert.Equal(t, tt.native, gotNative)
			assert.Equal(t, tt.cpp, gotCPP)
			checkBalanced(t, gotNative)
			checkBalanced(t, gotCPP)
			checkCPPParseable(t, gotCPP)
		})
	}
}

func TestFnTypeName(t *testing.T) {
	tree, _ := newItemTree("mycrate")
	native, cpp := tree.contexts(nil)

	i32 := types.Int{Width: 32}
	unit := types.Tuple{}

	tests := []struct {
		name   string
		ty     types.Ty
		native string
		cpp    string
	}{
		{
			"unit fn",
			types.FnPtr{Sig: &types.FnSig{Ret: unit}},
			"fn()",
			"void (*)()",
		},
		{
			"fn with args and result",
			types.FnPtr{Sig: &types.FnSig{Params: []types.Ty{i32}, Ret: types.Bool{}}},
			"fn(i32) -> bool",
			"bool (*)(i32)",
		},
		{
			"unsafe extern variadic",
			types.FnPtr{Sig: &types.FnSig{Params: []types.Ty{i32}, Ret: unit, Unsafe: true, ABI: "C", Variadic: true}},
			`unsafe extern "C" fn(i32, ...)`,
			"void (*)(i32, ...)",
		},
		{
			"variadic without params",
			types.FnPtr{Sig: &types.FnSig{Ret: unit, Variadic: true}},
			"fn(...)",
			"void (*)(...)",
		},
		{
			"fn item",
			types.FnDef{Sig: &types.FnSig{Params: []types.Ty{types.Str{}}, Ret: unit}},
			"fn(str)",
			"void (*)(str)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.native, ComputeTypeName(native, tt.ty, true))
			assert.Equal(t, tt.cpp, ComputeTypeName(cpp, tt.ty, true))
		})
	}
}

func TestRecursiveFnType(t *testing.T) {
	tree, _ := newItemTree("mycrate")
	native, cpp := tree.contexts(nil)

	// fn item whose resolved result type is the item's own type again.
	sig := &types.FnSig{Ret: types.Tuple{}}
	self := types.FnDef{Sig: sig}
	sig.Ret = self

	got := ComputeTypeName(native, self, true)
	assert.Equal(t, "fn() -> <recursive_type>", got)
	// The placeholder marks the cycle point exactly once and the encoding
	// terminates; a repeat run is unaffected by the first.
	assert.Equal(t, got, ComputeTypeName(native, self, true))
	assert.Equal(t, "recursive_type$ (*)()", ComputeTypeName(cpp, self, true))
}

func TestSiblingFnTypesEncodeNormally(t *testing.T) {
	tree, _ := newItemTree("mycrate")
	native, _ := tree.contexts(nil)

	// The same function type twice in one larger type: the recursion guard
	// only suppresses direct self-reference through the active stack.
	fn := types.FnPtr{Sig: &types.FnSig{Ret: types.Tuple{}}}
	pair := types.Tuple{Elems: []types.Ty{fn, fn}}
	assert.Equal(t, "(fn(), fn())", ComputeTypeName(native, pair, true))
}

func TestClosureTypeName(t *testing.T) {
	tree, root := newItemTree("mycrate")
	run := tree.named(root, "run")
	closure := tree.body(run, types.ClosureBody, 0)
	generator := tree.body(run, types.GeneratorBody, 1)
	asyncFn := tree.body(run, types.AsyncFnBody, 0)
	native, cpp := tree.contexts(nil)

	i32 := types.Int{Width: 32}
	u8 := types.Uint{Width: 8}

	cl := types.Closure{
		Item: closure,
		Body: types.ClosureBody,
		// One parameter belongs to the enclosing function, the second is
		// closure-internal and must not appear in the name.
		Args:              []types.GenericArg{types.TypeArg(i32), types.TypeArg(u8)},
		EnclosingGenerics: 1,
	}
	assert.Equal(t, "mycrate::run::{closure_env#0}<i32>", ComputeTypeName(native, cl, true))
	assert.Equal(t, "mycrate::run::closure_env$0<i32>", ComputeTypeName(cpp, cl, true))
	assert.Equal(t, "{closure_env#0}<i32>", ComputeTypeName(native, cl, false))
	assert.Equal(t, "closure_env$0<i32>", ComputeTypeName(cpp, cl, false))

	gen := types.Closure{
		Item:              generator,
		Body:              types.GeneratorBody,
		Args:              []types.GenericArg{types.TypeArg(i32)},
		EnclosingGenerics: 0,
	}
	assert.Equal(t, "mycrate::run::{generator_env#1}", ComputeTypeName(native, gen, true))
	assert.Equal(t, "mycrate::run::generator_env$1", ComputeTypeName(cpp, gen, true))

	af := types.Closure{Item: asyncFn, Body: types.AsyncFnBody}
	assert.Equal(t, "mycrate::run::{async_fn_env#0}", ComputeTypeName(native, af, true))
}

func TestUnrepresentableKindsAbort(t *testing.T) {
	tree, _ := newItemTree("mycrate")
	native, _ := tree.contexts(nil)

	bad := []types.Ty{
		types.Infer{},
		types.BoundVar{},
		types.Placeholder{},
		types.Projection{},
		types.Opaque{},
	}
	for _, ty := range bad {
		assert.Panics(t, func() { ComputeTypeName(native, ty, true) }, "kind %d", ty.Kind())
	}
}

func TestAppendTypeName(t *testing.T) {
	tree, root := newItemTree("mycrate")
	vec := tree.named(root, "Vec")
	native, _ := tree.contexts(nil)

	out := NewBuffer()
	out.WriteString("local ")
	AppendTypeName(native, types.Adt{Item: vec}, true, out)
	require.Equal(t, "local mycrate::Vec", out.String())
}
