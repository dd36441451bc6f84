package types

import (
	"fmt"
	"strings"
)

type Kind int

const (
	BoolKind Kind = iota
	CharKind
	StrKind
	NeverKind
	IntKind
	UintKind
	FloatKind
	ForeignKind
	AdtKind
	TupleKind
	RawPtrKind
	RefKind
	ArrayKind
	SliceKind
	DynamicKind
	FnDefKind
	FnPtrKind
	ClosureKind
	ParamKind

	// Kinds below exist only so that a precondition violation can be named
	// in a diagnostic. The debuginfo encoders abort on all of them: types
	// must be fully resolved and normalized before naming.
	InferKind
	BoundKind
	PlaceholderKind
	ProjectionKind
	OpaqueKind
)

// Ty is the interface for all type descriptors reaching the debuginfo
// stage. The grammar is closed: the set of implementations in this package
// is exactly the set of legal inputs.
//
// String() is a structural debug rendering for diagnostics only. Canonical
// debugger-facing names come from the debuginfo package.
type Ty interface {
	String() string
	Kind() Kind
}

type Bool struct{}

func (Bool) Kind() Kind     { return BoolKind }
func (Bool) String() string { return "bool" }

type Char struct{}

func (Char) Kind() Kind     { return CharKind }
func (Char) String() string { return "char" }

type Str struct{}

func (Str) Kind() Kind     { return StrKind }
func (Str) String() string { return "str" }

// Never is the empty type of diverging expressions.
type Never struct{}

func (Never) Kind() Kind     { return NeverKind }
func (Never) String() string { return "!" }

// Int is a signed integer type with a given bit width.
type Int struct {
	Width uint32 // 8, 16, 32, 64 or 128
}

func (i Int) Kind() Kind     { return IntKind }
func (i Int) String() string { return fmt.Sprintf("i%d", i.Width) }

// Uint is an unsigned integer type with a given bit width.
type Uint struct {
	Width uint32
}

func (u Uint) Kind() Kind     { return UintKind }
func (u Uint) String() string { return fmt.Sprintf("u%d", u.Width) }

// Float is a floating-point type with a given precision.
type Float struct {
	Width uint32 // 32 or 64
}

func (f Float) Kind() Kind     { return FloatKind }
func (f Float) String() string { return fmt.Sprintf("f%d", f.Width) }

// Foreign is an extern type declared in a foreign block. It has a name but
// no known structure.
type Foreign struct {
	Item ItemID
}

func (f Foreign) Kind() Kind     { return ForeignKind }
func (f Foreign) String() string { return "extern " + f.Item.String() }

// Adt is a nominal struct/enum/union type together with its generic
// argument substitution.
type Adt struct {
	Item ItemID
	Args []GenericArg
	Enum bool // enums get a dedicated debugger-native rendering
}

func (a Adt) Kind() Kind { return AdtKind }

func (a Adt) String() string {
	return a.Item.String() + argsStr(a.Args)
}

type Tuple struct {
	Elems []Ty
}

func (t Tuple) Kind() Kind { return TupleKind }

// IsUnit reports whether the tuple is the empty tuple, the unit/void type
// of functions without a meaningful result.
func (t Tuple) IsUnit() bool { return len(t.Elems) == 0 }

func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// RawPtr is an unsafe pointer to Elem.
type RawPtr struct {
	Elem    Ty
	Mutable bool
}

func (p RawPtr) Kind() Kind { return RawPtrKind }

func (p RawPtr) String() string {
	if p.Mutable {
		return "*mut " + p.Elem.String()
	}
	return "*const " + p.Elem.String()
}

// Ref is a borrowed reference to Elem.
type Ref struct {
	Elem    Ty
	Mutable bool
}

func (r Ref) Kind() Kind { return RefKind }

func (r Ref) String() string {
	if r.Mutable {
		return "&mut " + r.Elem.String()
	}
	return "&" + r.Elem.String()
}

// Array is a fixed-length array. Len is a const argument: either an
// evaluated unsigned scalar or a bare length parameter.
type Array struct {
	Elem Ty
	Len  Const
}

func (a Array) Kind() Kind     { return ArrayKind }
func (a Array) String() string { return "[" + a.Elem.String() + "; " + a.Len.String() + "]" }

type Slice struct {
	Elem Ty
}

func (s Slice) Kind() Kind     { return SliceKind }
func (s Slice) String() string { return "[" + s.Elem.String() + "]" }

// Dynamic is a trait-object type: at most one principal trait, associated
// type bindings on that principal, and any number of auto (marker) traits.
type Dynamic struct {
	Principal  *TraitRef
	Bindings   []Binding
	AutoTraits []ItemID
}

func (d Dynamic) Kind() Kind { return DynamicKind }

func (d Dynamic) String() string {
	var sb strings.Builder
	sb.WriteString("dyn ")
	if d.Principal != nil {
		sb.WriteString(d.Principal.Item.String())
	}
	for _, id := range d.AutoTraits {
		sb.WriteString(" + ")
		sb.WriteString(id.String())
	}
	return sb.String()
}

// Binding is an associated-type equality bound on a trait object's
// principal trait, e.g. the Item=u32 in dyn Iterator<Item=u32>.
type Binding struct {
	Item ItemID // the associated type item
	Ty   Ty
}

// TraitRef is a reference to a trait with its generic arguments (the
// self type excluded).
type TraitRef struct {
	Item ItemID
	Args []GenericArg
}

// FnSig is a function signature. FnDef and FnPtr descriptors referring to
// the same function share the FnSig pointer; that pointer is the type's
// identity for recursion detection, so a self-referential signature is
// built by mutating the pointed-to value.
type FnSig struct {
	Params   []Ty
	Ret      Ty // Tuple{} for unit results
	Unsafe   bool
	ABI      string // "" means the default ABI; anything else renders as extern
	Variadic bool
}

// FnDef is the zero-sized type of one particular function item.
type FnDef struct {
	Sig *FnSig
}

func (f FnDef) Kind() Kind     { return FnDefKind }
func (f FnDef) String() string { return f.Sig.String() }

// FnPtr is a function pointer type.
type FnPtr struct {
	Sig *FnSig
}

func (f FnPtr) Kind() Kind     { return FnPtrKind }
func (f FnPtr) String() string { return f.Sig.String() }

func (s *FnSig) String() string {
	var sb strings.Builder
	if s.Unsafe {
		sb.WriteString("unsafe ")
	}
	sb.WriteString("fn(")
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")")
	if ret, ok := s.Ret.(Tuple); !ok || !ret.IsUnit() {
		sb.WriteString(" -> ")
		sb.WriteString(s.Ret.String())
	}
	return sb.String()
}

// Closure is the environment type of a closure, generator or async body.
// Args is the full substitution of the definition site; EnclosingGenerics
// is the number of generic parameters declared by the enclosing function,
// and is the truncation bound for naming (entries past it are specific to
// the closure body, not to the outer instantiation).
type Closure struct {
	Item              ItemID
	Body              BodyKind
	Args              []GenericArg
	EnclosingGenerics int
}

func (c Closure) Kind() Kind     { return ClosureKind }
func (c Closure) String() string { return "{" + c.Body.Label() + "@" + c.Item.String() + "}" }

// Param is an unsubstituted generic type parameter surviving into a
// polymorphic encoding path.
type Param struct {
	Name string
}

func (p Param) Kind() Kind     { return ParamKind }
func (p Param) String() string { return p.Name }

// The unrepresentable kinds. Constructible so that precondition failures
// can be exercised, never nameable.

type Infer struct{}

func (Infer) Kind() Kind     { return InferKind }
func (Infer) String() string { return "_" }

type BoundVar struct{}

func (BoundVar) Kind() Kind     { return BoundKind }
func (BoundVar) String() string { return "^bound" }

type Placeholder struct{}

func (Placeholder) Kind() Kind     { return PlaceholderKind }
func (Placeholder) String() string { return "placeholder" }

type Projection struct{}

func (Projection) Kind() Kind     { return ProjectionKind }
func (Projection) String() string { return "<projection>" }

type Opaque struct{}

func (Opaque) Kind() Kind     { return OpaqueKind }
func (Opaque) String() string { return "impl <opaque>" }
