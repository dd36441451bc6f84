package debuginfo

import (
	"go.uber.org/zap"

	"github.com/vellumlang/vellum/types"
)

// VTableNameKind selects which of the two vtable-related names to build:
// the global variable holding the vtable, or the type of that global. The
// two must differ so the debug records do not collide.
type VTableNameKind int

const (
	VTableGlobal VTableNameKind = iota
	VTableType
)

// ComputeVTableName builds the canonical name for a vtable global or
// vtable type:
//
//	<path::to::SomeType as path::to::SomeTrait>::{vtable}      native
//	impl$<path::to::SomeType, path::to::SomeTrait>::vtable$    debugger-native
//
// trait may be nil for the inherent/no-trait case; the trait slot then
// renders as the placeholder "_".
func ComputeVTableName(ctx *Context, t types.Ty, trait *types.TraitRef, kind VTableNameKind) string {
	cpp := ctx.cpp()
	out := NewBuffer()

	if cpp {
		out.WriteString("impl$<")
	} else {
		out.WriteByte('<')
	}

	visited := make(visitSet)
	pushTypeName(ctx, t, true, out, visited)

	if cpp {
		out.WriteString(", ")
	} else {
		out.WriteString(" as ")
	}

	if trait != nil {
		pushItemName(ctx, trait.Item, true, out)
		// Fresh visited set: the trait's generics form a new top-level
		// encoding, unrelated to the type's call stack.
		clear(visited)
		pushGenericParams(ctx, trait.Args, out, visited)
	} else {
		out.WriteByte('_')
	}

	out.pushCloseAngle(cpp)

	switch {
	case cpp && kind == VTableGlobal:
		out.WriteString("::vtable$")
	case !cpp && kind == VTableGlobal:
		out.WriteString("::{vtable}")
	case cpp && kind == VTableType:
		out.WriteString("::vtable_type$")
	default:
		out.WriteString("::{vtable_type}")
	}

	name := out.String()
	ctx.Logger.Debug("computed vtable name", zap.String("name", name))
	return name
}
