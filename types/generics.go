package types

import (
	"fmt"
	"strconv"
	"strings"
)

// GenericArg is one entry of a generic substitution. Exactly one of Type
// and Const is set for a renderable argument; when both are nil the entry
// is erased (a region argument) and is skipped by every encoder.
type GenericArg struct {
	Type  Ty
	Const *Const
}

// Erased reports whether the argument carries nothing renderable.
func (g GenericArg) Erased() bool { return g.Type == nil && g.Const == nil }

// TypeArg wraps a type as a generic argument.
func TypeArg(t Ty) GenericArg { return GenericArg{Type: t} }

// ConstArg wraps a constant as a generic argument.
func ConstArg(c Const) GenericArg { return GenericArg{Const: &c} }

// Const is a generic constant argument (or an array length). It is one of:
//
//   - a bare parameter reference (Param != "")
//   - an evaluated scalar of type Ty (Evaluated, raw Bits)
//   - an unevaluable constant, identified only by the stable bytes of its
//     defining representation (hash fallback in the encoders)
//
// Bits holds at most 64 bits; scalars wider than that never reach the
// naming stage in this compiler.
type Const struct {
	Param     string
	Ty        Ty
	Bits      uint64
	Evaluated bool
	Defining  []byte
}

// ParamConst is a bare reference to a const generic parameter.
func ParamConst(name string) Const { return Const{Param: name} }

// IntConst is an evaluated signed scalar. Bits are the raw two's complement
// bits at the type's width.
func IntConst(width uint32, bits uint64) Const {
	return Const{Ty: Int{Width: width}, Bits: bits, Evaluated: true}
}

// UintConst is an evaluated unsigned scalar.
func UintConst(width uint32, bits uint64) Const {
	return Const{Ty: Uint{Width: width}, Bits: bits, Evaluated: true}
}

// BoolConst is an evaluated boolean.
func BoolConst(v bool) Const {
	c := Const{Ty: Bool{}, Evaluated: true}
	if v {
		c.Bits = 1
	}
	return c
}

// OpaqueConst is a constant that could not be reduced to a scalar. defining
// must be a deterministic serialization of the constant's defining body.
func OpaqueConst(ty Ty, defining []byte) Const {
	return Const{Ty: ty, Defining: defining}
}

func (c Const) String() string {
	if c.Param != "" {
		return c.Param
	}
	if !c.Evaluated {
		return fmt.Sprintf("{const:%x}", c.Defining)
	}
	return strconv.FormatUint(c.Bits, 10)
}

func argsStr(args []GenericArg) string {
	var parts []string
	for _, a := range args {
		switch {
		case a.Type != nil:
			parts = append(parts, a.Type.String())
		case a.Const != nil:
			parts = append(parts, a.Const.String())
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return "<" + strings.Join(parts, ", ") + ">"
}
