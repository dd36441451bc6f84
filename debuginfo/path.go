package debuginfo

import (
	"github.com/cockroachdb/errors"

	"github.com/vellumlang/vellum/types"
)

// ComputeItemName renders the (optionally qualified) name of an item.
func ComputeItemName(ctx *Context, id types.ItemID, qualified bool) string {
	out := NewBuffer()
	AppendItemName(ctx, id, qualified, out)
	return out.String()
}

// AppendItemName appends the item's name to out. When qualified, the
// externally supplied parent chain is walked outward-to-inward and the
// segments are joined with "::".
func AppendItemName(ctx *Context, id types.ItemID, qualified bool, out *Buffer) {
	pushItemName(ctx, id, qualified, out)
}

func pushItemName(ctx *Context, id types.ItemID, qualified bool, out *Buffer) {
	key := ctx.Items.Key(id)
	if qualified && key.Parent != nil {
		pushItemName(ctx, *key.Parent, true, out)
		out.WriteString("::")
	}
	pushSegment(ctx, key.Segment, out)
}

func pushSegment(ctx *Context, seg types.PathSegment, out *Buffer) {
	switch seg.Kind {
	case types.SegmentCrateRoot, types.SegmentNamed:
		out.WriteString(seg.Name)
	case types.SegmentAnon:
		pushDisambiguatedSpecialName(seg.Name, seg.Disambiguator, ctx.cpp(), out)
	case types.SegmentBody:
		pushDisambiguatedSpecialName(seg.Body.Label(), seg.Disambiguator, ctx.cpp(), out)
	default:
		panic(errors.AssertionFailedf("debuginfo: unknown path segment kind: %d", int(seg.Kind)))
	}
}

// pushDisambiguatedSpecialName renders a compiler-synthesized label plus
// its disambiguator: label$N in the debugger-native dialect (a leading `{`
// confuses expression parsers), {label#N} in the native one.
func pushDisambiguatedSpecialName(label string, disambiguator uint32, cpp bool, out *Buffer) {
	if cpp {
		out.WriteString(label)
		out.WriteByte('$')
		out.writeUint(uint64(disambiguator))
	} else {
		out.WriteByte('{')
		out.WriteString(label)
		out.WriteByte('#')
		out.writeUint(uint64(disambiguator))
		out.WriteByte('}')
	}
}
