package debuginfo

import (
	"github.com/cockroachdb/errors"

	"github.com/vellumlang/vellum/types"
)

// pushEnumName renders the debugger-native enum$<...> form. The name
// carries enough layout information for a memory visualizer to decide
// which variant is active from raw bytes alone:
//
//	enum$<Name<Generics>>                    tagged multi-variant
//	enum$<Name<Generics>, Variant>           single possible variant
//	enum$<Name<Generics>, min, max, Variant> niche-encoded
//
// min and max bound the niche scalar's valid range for the dataful
// variant, truncated to the tag's storage width.
func pushEnumName(ctx *Context, t types.Adt, out *Buffer, visited visitSet) {
	if ctx.Layouts == nil {
		panic(errors.AssertionFailedf("debuginfo: enum naming requires a layout provider: %s", t))
	}
	layout := ctx.Layouts.EnumLayout(t)

	out.WriteString("enum$<")
	pushItemName(ctx, t.Item, true, out)
	pushGenericParams(ctx, t.Args, out, visited)

	switch layout.Kind {
	case types.LayoutNiche:
		niche := layout.Niche
		if niche == nil {
			panic(errors.AssertionFailedf("debuginfo: niche layout without niche data: %s", t))
		}
		lo := truncateToTag(niche.ValidStart, niche.TagBits)
		hi := truncateToTag(niche.ValidEnd, niche.TagBits)

		out.WriteString(", ")
		out.writeUint(lo)
		out.WriteString(", ")
		out.writeUint(hi)
		out.WriteString(", ")
		out.WriteString(niche.DatafulVariant)
	case types.LayoutSingle:
		// An uninhabited enum can never be constructed, so it needs no
		// variant hint; anything else names its only variant.
		if layout.VariantCount != 0 {
			out.WriteString(", ")
			out.WriteString(layout.SingleVariant)
		}
	case types.LayoutTagged:
		// The tag is a real field; the visualizer reads it directly.
	default:
		panic(errors.AssertionFailedf("debuginfo: unknown enum layout kind: %d", int(layout.Kind)))
	}

	out.pushCloseAngle(true)
}

// truncateToTag keeps the low bits bits of v.
func truncateToTag(v uint64, bits uint32) uint64 {
	if bits >= 64 {
		return v
	}
	return v & (1<<bits - 1)
}
