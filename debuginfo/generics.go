package debuginfo

import (
	"github.com/cockroachdb/errors"

	"github.com/vellumlang/vellum/types"
)

// ComputeGenericParams renders a generic argument list, brackets included.
// An empty (or fully erased) list renders as the empty string.
func ComputeGenericParams(ctx *Context, args []types.GenericArg) string {
	out := NewBuffer()
	AppendGenericParams(ctx, args, out)
	return out.String()
}

// AppendGenericParams is the append-only variant of ComputeGenericParams,
// for composing into larger strings.
func AppendGenericParams(ctx *Context, args []types.GenericArg, out *Buffer) {
	visited := make(visitSet)
	pushGenericParams(ctx, args, out, visited)
}

// pushGenericParams renders `<A,B,C>` (or `<A, B, C>` in the native
// dialect) and reports whether anything was emitted. Erased arguments are
// skipped; if nothing remains, no bracket is opened at all.
func pushGenericParams(ctx *Context, args []types.GenericArg, out *Buffer, visited visitSet) bool {
	any := false
	for _, arg := range args {
		if !arg.Erased() {
			any = true
			break
		}
	}
	if !any {
		return false
	}

	cpp := ctx.cpp()
	out.WriteByte('<')
	for _, arg := range args {
		switch {
		case arg.Type != nil:
			pushTypeName(ctx, arg.Type, true, out, visited)
		case arg.Const != nil:
			pushConstParam(ctx, *arg.Const, out)
		default:
			continue // erased
		}
		out.pushArgSeparator(cpp)
	}
	out.popArgSeparator()
	out.pushCloseAngle(cpp)
	return true
}

// pushConstParam renders one generic constant argument. Scalars render as
// literals; a bare parameter renders as its name; anything else degrades to
// a stable 64-bit hash of the constant's defining representation, trading
// readability for determinism.
func pushConstParam(ctx *Context, c types.Const, out *Buffer) {
	if c.Param != "" {
		out.WriteString(c.Param)
		return
	}
	if c.Evaluated {
		switch ty := c.Ty.(type) {
		case types.Int:
			out.writeInt(signExtend(c.Bits, ty.Width))
			return
		case types.Uint:
			out.writeUint(c.Bits)
			return
		case types.Bool:
			if c.Bits != 0 {
				out.WriteString("true")
			} else {
				out.WriteString("false")
			}
			return
		default:
			panic(errors.AssertionFailedf("debuginfo: evaluated const of non-scalar type %s", c.Ty))
		}
	}

	// Only 64 bits of hash: plenty against collisions, and it keeps the
	// emitted names short.
	hash := ctx.Hasher.HashConst(c.Defining)
	if ctx.cpp() {
		out.WriteString("CONST$")
		out.writeHex(hash)
	} else {
		out.WriteString("{CONST#")
		out.writeHex(hash)
		out.WriteByte('}')
	}
}

// signExtend widens the raw two's complement bits at the given width to a
// signed 64-bit value.
func signExtend(bits uint64, width uint32) int64 {
	if width >= 64 {
		return int64(bits)
	}
	shift := 64 - width
	return int64(bits<<shift) >> shift
}
