// Package dwarf lowers type descriptors into LLVM debug metadata, naming
// every node with the canonical encodings from the debuginfo package. It
// serves the two callers of the naming layer: debug-info type records and
// vtable global/type records.
package dwarf

import (
	"tinygo.org/x/go-llvm"

	"github.com/vellumlang/vellum/debuginfo"
	"github.com/vellumlang/vellum/types"
)

// DW_LANG_lo_user + 1; Vellum has no registered DWARF language code.
const dwarfLangVellum = llvm.DwarfLang(0x8001)

// Emitter builds DI metadata for one module. Metadata is cached by
// canonical type name, which is sound because the encoding is
// deterministic: equal names mean equal type structure.
type Emitter struct {
	ctx      *debuginfo.Context
	dib      *llvm.DIBuilder
	file     llvm.Metadata
	cu       llvm.Metadata
	ptrBits  uint64
	cache    map[string]llvm.Metadata
	building map[string]bool
}

// NewEmitter creates an emitter over mod. ptrBits is the target pointer
// width in bits.
func NewEmitter(ctx *debuginfo.Context, mod llvm.Module, filename, dir string, ptrBits uint64) *Emitter {
	dib := llvm.NewDIBuilder(mod)
	cu := dib.CreateCompileUnit(llvm.DICompileUnit{
		Language: dwarfLangVellum,
		File:     filename,
		Dir:      dir,
		Producer: "vellum",
	})
	return &Emitter{
		ctx:      ctx,
		dib:      dib,
		file:     dib.CreateFile(filename, dir),
		cu:       cu,
		ptrBits:  ptrBits,
		cache:    make(map[string]llvm.Metadata),
		building: make(map[string]bool),
	}
}

// Finalize flushes the builder. Must be called before the module is
// verified or written out.
func (e *Emitter) Finalize() { e.dib.Finalize() }

// Destroy releases the underlying DIBuilder.
func (e *Emitter) Destroy() { e.dib.Destroy() }

// DIType returns the debug metadata node for t, creating it on first use.
func (e *Emitter) DIType(t types.Ty) llvm.Metadata {
	name := debuginfo.ComputeTypeName(e.ctx, t, true)
	if md, ok := e.cache[name]; ok {
		return md
	}
	if e.building[name] {
		// Self-referential function type; break the metadata cycle with an
		// opaque named node, mirroring the name-level placeholder.
		return e.opaqueStruct(name)
	}
	e.building[name] = true
	md := e.lower(t, name)
	delete(e.building, name)
	e.cache[name] = md
	return md
}

func (e *Emitter) lower(t types.Ty, name string) llvm.Metadata {
	switch t := t.(type) {
	case types.Bool:
		return e.basic(name, 8, llvm.DW_ATE_boolean)
	case types.Char:
		return e.basic(name, 32, llvm.DW_ATE_UTF)
	case types.Int:
		return e.basic(name, uint64(t.Width), llvm.DW_ATE_signed)
	case types.Uint:
		return e.basic(name, uint64(t.Width), llvm.DW_ATE_unsigned)
	case types.Float:
		return e.basic(name, uint64(t.Width), llvm.DW_ATE_float)
	case types.Never:
		return e.basic(name, 0, llvm.DW_ATE_unsigned)
	case types.RawPtr:
		return e.pointer(name, e.DIType(t.Elem))
	case types.Ref:
		return e.pointer(name, e.DIType(t.Elem))
	case types.Array:
		count := int64(-1) // length is a generic parameter
		if t.Len.Param == "" {
			count = int64(t.Len.Bits)
		}
		return e.dib.CreateArrayType(llvm.DIArrayType{
			SizeInBits:  0, // sizes are the layout stage's concern
			ElementType: e.DIType(t.Elem),
			Subscripts:  []llvm.DISubrange{{Lo: 0, Count: count}},
		})
	case types.FnDef:
		return e.fnPointer(name, t.Sig)
	case types.FnPtr:
		return e.fnPointer(name, t.Sig)
	default:
		// Str, Slice, Tuple, Adt, Dynamic, Closure, Foreign, Param: the
		// layout stage fills in members later; the name is what matters
		// here.
		return e.opaqueStruct(name)
	}
}

func (e *Emitter) basic(name string, bits uint64, enc llvm.DwarfTypeEncoding) llvm.Metadata {
	return e.dib.CreateBasicType(llvm.DIBasicType{
		Name:       name,
		SizeInBits: bits,
		Encoding:   enc,
	})
}

func (e *Emitter) pointer(name string, pointee llvm.Metadata) llvm.Metadata {
	return e.dib.CreatePointerType(llvm.DIPointerType{
		Pointee:    pointee,
		SizeInBits: e.ptrBits,
		Name:       name,
	})
}

func (e *Emitter) opaqueStruct(name string) llvm.Metadata {
	return e.dib.CreateStructType(e.cu, llvm.DIStructType{
		Name:     name,
		File:     e.file,
		UniqueID: name,
	})
}

func (e *Emitter) fnPointer(name string, sig *types.FnSig) llvm.Metadata {
	// LLVM convention: parameter 0 is the return type, nil meaning void.
	params := make([]llvm.Metadata, 0, len(sig.Params)+1)
	if ret, ok := sig.Ret.(types.Tuple); ok && ret.IsUnit() {
		params = append(params, llvm.Metadata{})
	} else {
		params = append(params, e.DIType(sig.Ret))
	}
	for _, p := range sig.Params {
		params = append(params, e.DIType(p))
	}
	sub := e.dib.CreateSubroutineType(llvm.DISubroutineType{
		File:       e.file,
		Parameters: params,
	})
	return e.pointer(name, sub)
}

// EmitVTable creates the debug records for one vtable: the struct type of
// the vtable and the global variable holding it. Returns the global
// variable expression metadata.
func (e *Emitter) EmitVTable(t types.Ty, trait *types.TraitRef) llvm.Metadata {
	typeName := debuginfo.ComputeVTableName(e.ctx, t, trait, debuginfo.VTableType)
	globalName := debuginfo.ComputeVTableName(e.ctx, t, trait, debuginfo.VTableGlobal)

	vtableType := e.opaqueStruct(typeName)
	return e.dib.CreateGlobalVariableExpression(e.cu, llvm.DIGlobalVariableExpression{
		Name:        globalName,
		LinkageName: globalName,
		File:        e.file,
		Type:        vtableType,
		LocalToUnit: false,
		Expr:        e.dib.CreateExpression(nil),
	})
}
