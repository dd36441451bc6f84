package debuginfo

import (
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/vellumlang/vellum/types"
)

// Dialect selects one of the two output syntaxes. It is fixed for the
// lifetime of a compilation target and never changes mid-encoding.
type Dialect int

const (
	// DialectNative renders source-language-like names: &mut T,
	// dyn Trait + Send, [T; 4].
	DialectNative Dialect = iota
	// DialectCPP renders C++-template-like names for debuggers that parse
	// symbol names as expressions (natvis engines and friends): ref_mut$<T>,
	// dyn$<Trait,...>, array$<T,4>. Such debuggers treat `#`, a leading `{`
	// or `<`, `[` and an unseparated `>>` specially, so those shapes are
	// avoided in this dialect.
	DialectCPP
)

// ItemProvider supplies path metadata for item identities. Lookups must be
// safe for concurrent readers.
type ItemProvider interface {
	Key(id types.ItemID) types.ItemKey
}

// LayoutProvider supplies the enum layout facts of §4.3: variant
// classification, niche range and tag width. Only queried for enums, only
// in the debugger-native dialect.
type LayoutProvider interface {
	EnumLayout(adt types.Adt) types.EnumLayout
}

// ConstHasher produces a stable 64-bit hash of an unevaluable constant's
// defining representation. The same bytes must hash identically across
// compilation runs.
type ConstHasher interface {
	HashConst(defining []byte) uint64
}

type xxConstHasher struct{}

func (xxConstHasher) HashConst(defining []byte) uint64 { return xxhash.Sum64(defining) }

// Context threads the dialect and every external lookup service through an
// encoding call tree. It carries no mutable state and may be shared by
// concurrent encodings.
type Context struct {
	Dialect Dialect
	Items   ItemProvider
	Layouts LayoutProvider
	Hasher  ConstHasher
	Logger  *zap.Logger
}

// NewContext builds a context with the default const hasher and a no-op
// logger. Layouts may be nil when the target dialect is native (it is only
// consulted for debugger-native enum naming).
func NewContext(dialect Dialect, items ItemProvider, layouts LayoutProvider) *Context {
	return &Context{
		Dialect: dialect,
		Items:   items,
		Layouts: layouts,
		Hasher:  xxConstHasher{},
		Logger:  zap.NewNop(),
	}
}

func (ctx *Context) cpp() bool { return ctx.Dialect == DialectCPP }
