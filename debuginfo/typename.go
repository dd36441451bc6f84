package debuginfo

import (
	"sort"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/vellumlang/vellum/types"
)

// visitSet tracks the function types on the active encoding stack. Only
// FnDef/FnPtr descriptors enter it (they are the one shape that can reach
// itself through its own signature), and an entry is removed before its
// call returns, so sibling occurrences of the same type encode normally.
type visitSet map[types.Ty]struct{}

// ComputeTypeName renders the canonical debug-info name of a type. No
// caching: calling twice does the work twice, and yields byte-identical
// output. The qualified flag only affects the outermost item name; nested
// type arguments are always fully qualified.
func ComputeTypeName(ctx *Context, t types.Ty, qualified bool) string {
	out := NewBuffer()
	AppendTypeName(ctx, t, qualified, out)
	name := out.String()
	ctx.Logger.Debug("computed type name", zap.String("name", name))
	return name
}

// AppendTypeName appends the canonical debug-info name of a type to out.
func AppendTypeName(ctx *Context, t types.Ty, qualified bool, out *Buffer) {
	visited := make(visitSet)
	pushTypeName(ctx, t, qualified, out, visited)
}

func pushTypeName(ctx *Context, t types.Ty, qualified bool, out *Buffer, visited visitSet) {
	cpp := ctx.cpp()

	switch t := t.(type) {
	case types.Bool:
		out.WriteString("bool")
	case types.Char:
		out.WriteString("char")
	case types.Str:
		out.WriteString("str")
	case types.Never:
		if cpp {
			out.WriteString("never$")
		} else {
			out.WriteByte('!')
		}
	case types.Int:
		out.WriteByte('i')
		out.writeUint(uint64(t.Width))
	case types.Uint:
		out.WriteByte('u')
		out.writeUint(uint64(t.Width))
	case types.Float:
		out.WriteByte('f')
		out.writeUint(uint64(t.Width))
	case types.Foreign:
		pushItemName(ctx, t.Item, qualified, out)
	case types.Adt:
		if t.Enum && cpp {
			pushEnumName(ctx, t, out, visited)
		} else {
			pushItemName(ctx, t.Item, qualified, out)
			pushGenericParams(ctx, t.Args, out, visited)
		}
	case types.Tuple:
		if cpp {
			out.WriteString("tuple$<")
		} else {
			out.WriteByte('(')
		}
		for _, elem := range t.Elems {
			pushTypeName(ctx, elem, true, out, visited)
			out.pushArgSeparator(cpp)
		}
		if len(t.Elems) > 0 {
			out.popArgSeparator()
		}
		if cpp {
			out.pushCloseAngle(cpp)
		} else {
			out.WriteByte(')')
		}
	case types.RawPtr:
		if cpp {
			if t.Mutable {
				out.WriteString("ptr_mut$<")
			} else {
				out.WriteString("ptr_const$<")
			}
		} else {
			if t.Mutable {
				out.WriteString("*mut ")
			} else {
				out.WriteString("*const ")
			}
		}
		pushTypeName(ctx, t.Elem, qualified, out, visited)
		if cpp {
			out.pushCloseAngle(cpp)
		}
	case types.Ref:
		// Slice and str referents are opted out of the synthetic wrapper in
		// the debugger-native dialect: the natvis engine fails to display
		// their data when the name is wrapped.
		sliceOrStr := t.Elem.Kind() == types.SliceKind || t.Elem.Kind() == types.StrKind

		if !cpp {
			out.WriteByte('&')
			if t.Mutable {
				out.WriteString("mut ")
			}
		} else if !sliceOrStr {
			if t.Mutable {
				out.WriteString("ref_mut$<")
			} else {
				out.WriteString("ref$<")
			}
		}
		pushTypeName(ctx, t.Elem, qualified, out, visited)
		if cpp && !sliceOrStr {
			out.pushCloseAngle(cpp)
		}
	case types.Array:
		if cpp {
			out.WriteString("array$<")
			pushTypeName(ctx, t.Elem, true, out, visited)
			out.WriteByte(',')
			pushArrayLen(t.Len, out)
			out.WriteByte('>')
		} else {
			out.WriteByte('[')
			pushTypeName(ctx, t.Elem, true, out, visited)
			out.WriteString("; ")
			pushArrayLen(t.Len, out)
			out.WriteByte(']')
		}
	case types.Slice:
		if cpp {
			out.WriteString("slice$<")
		} else {
			out.WriteByte('[')
		}
		pushTypeName(ctx, t.Elem, true, out, visited)
		if cpp {
			out.pushCloseAngle(cpp)
		} else {
			out.WriteByte(']')
		}
	case types.Dynamic:
		pushDynTypeName(ctx, t, qualified, out, visited)
	case types.FnDef, types.FnPtr:
		pushFnTypeName(ctx, t, out, visited)
	case types.Closure:
		key := ctx.Items.Key(t.Item)
		if qualified {
			if key.Parent == nil {
				panic(errors.AssertionFailedf("debuginfo: closure item %s has no parent", t.Item))
			}
			pushItemName(ctx, *key.Parent, true, out)
			out.WriteString("::")
		}
		pushDisambiguatedSpecialName(t.Body.Label()+"_env", key.Segment.Disambiguator, cpp, out)

		// The name must be unique per outer instantiation, not per
		// closure-internal monomorphization, so the substitution is cut at
		// the enclosing function's own declared parameter count.
		args := t.Args
		if t.EnclosingGenerics < len(args) {
			args = args[:t.EnclosingGenerics]
		}
		pushGenericParams(ctx, args, out, visited)
	case types.Param:
		out.WriteString(t.Name)
	default:
		panic(errors.AssertionFailedf("debuginfo: trying to compute type name for unexpected type: %s (kind %d)", t, int(t.Kind())))
	}
}

func pushArrayLen(length types.Const, out *Buffer) {
	if length.Param != "" {
		out.WriteString(length.Param)
	} else {
		out.writeUint(length.Bits)
	}
}

const nativeAutoTraitSeparator = " + "

func pushDynTypeName(ctx *Context, t types.Dynamic, qualified bool, out *Buffer, visited visitSet) {
	cpp := ctx.cpp()

	components := len(t.AutoTraits)
	if t.Principal != nil {
		components++
	}

	enclosingParens := false
	if cpp {
		out.WriteString("dyn$<")
	} else if components > 1 {
		// More than one trait component; parenthesize to keep the result
		// syntactically unambiguous.
		out.WriteString("(dyn ")
		enclosingParens = true
	} else {
		out.WriteString("dyn ")
	}

	if t.Principal != nil {
		pushItemName(ctx, t.Principal.Item, qualified, out)
		hasGenerics := pushGenericParams(ctx, t.Principal.Args, out, visited)

		if len(t.Bindings) > 0 {
			// The associated-type bounds belong in the same bracket as the
			// principal's generics, so reopen the list if one was closed.
			if hasGenerics {
				out.popCloseAngle()
			} else {
				out.WriteByte('<')
			}
			for i, binding := range t.Bindings {
				if i > 0 || hasGenerics {
					out.pushArgSeparator(cpp)
				}
				if cpp {
					out.WriteString("assoc$<")
					pushItemName(ctx, binding.Item, false, out)
					out.pushArgSeparator(cpp)
					pushTypeName(ctx, binding.Ty, true, out, visited)
					out.pushCloseAngle(cpp)
				} else {
					pushItemName(ctx, binding.Item, false, out)
					out.WriteByte('=')
					pushTypeName(ctx, binding.Ty, true, out, visited)
				}
			}
			out.pushCloseAngle(cpp)
		}

		if len(t.AutoTraits) > 0 {
			pushAutoTraitSeparator(cpp, out)
		}
	}

	if len(t.AutoTraits) > 0 {
		// Auto traits sort by qualified name so the output is deterministic
		// regardless of the order bounds were declared in.
		names := make([]string, len(t.AutoTraits))
		for i, id := range t.AutoTraits {
			names[i] = ComputeItemName(ctx, id, true)
		}
		sort.Strings(names)

		for _, name := range names {
			out.WriteString(name)
			pushAutoTraitSeparator(cpp, out)
		}
		popAutoTraitSeparator(out)
	}

	if cpp {
		out.pushCloseAngle(cpp)
	} else if enclosingParens {
		out.WriteByte(')')
	}
}

func pushAutoTraitSeparator(cpp bool, out *Buffer) {
	if cpp {
		out.pushArgSeparator(cpp)
	} else {
		out.WriteString(nativeAutoTraitSeparator)
	}
}

func popAutoTraitSeparator(out *Buffer) {
	if out.endsWithString(nativeAutoTraitSeparator) {
		out.truncate(len(nativeAutoTraitSeparator))
	} else {
		out.popArgSeparator()
	}
}

func pushFnTypeName(ctx *Context, t types.Ty, out *Buffer, visited visitSet) {
	cpp := ctx.cpp()

	// A function type can reach itself through its own signature (a
	// function item returning an opaque type that resolves back to the
	// function). There is no sensible name for the inner occurrence, so a
	// fixed placeholder marks the cycle point.
	if _, ok := visited[t]; ok {
		if cpp {
			out.WriteString("recursive_type$")
		} else {
			out.WriteString("<recursive_type>")
		}
		return
	}
	visited[t] = struct{}{}

	var sig *types.FnSig
	switch t := t.(type) {
	case types.FnDef:
		sig = t.Sig
	case types.FnPtr:
		sig = t.Sig
	}

	retUnit := false
	if ret, ok := sig.Ret.(types.Tuple); ok && ret.IsUnit() {
		retUnit = true
	}

	if cpp {
		// C++ function pointer shape: return_type (*)(params...)
		if retUnit {
			out.WriteString("void")
		} else {
			pushTypeName(ctx, sig.Ret, true, out, visited)
		}
		out.WriteString(" (*)(")
	} else {
		if sig.Unsafe {
			out.WriteString("unsafe ")
		}
		if sig.ABI != "" {
			out.WriteString("extern \"")
			out.WriteString(sig.ABI)
			out.WriteString("\" ")
		}
		out.WriteString("fn(")
	}

	if len(sig.Params) > 0 {
		for _, param := range sig.Params {
			pushTypeName(ctx, param, true, out, visited)
			out.pushArgSeparator(cpp)
		}
		out.popArgSeparator()
	}

	if sig.Variadic {
		if len(sig.Params) > 0 {
			out.WriteString(", ...")
		} else {
			out.WriteString("...")
		}
	}

	out.WriteByte(')')

	if !cpp && !retUnit {
		out.WriteString(" -> ")
		pushTypeName(ctx, sig.Ret, true, out, visited)
	}

	// The type stays in visited only for the duration of this call. The
	// same function type may legitimately appear several times in one
	// larger type; only direct self-recursion is suppressed.
	delete(visited, t)
}
