package types

import "fmt"

// ItemID is an opaque identity for an item (type, trait, function, module,
// associated item). The naming stage never interprets it; it only hands it
// back to the item metadata provider.
type ItemID struct {
	Crate uint32
	Index uint32
}

func (id ItemID) String() string { return fmt.Sprintf("%d:%d", id.Crate, id.Index) }

// ItemKey is the path metadata of one item: its parent link and its own
// disambiguated path segment. The root of a crate has no parent.
type ItemKey struct {
	Parent  *ItemID
	Segment PathSegment
}

type SegmentKind int

const (
	// SegmentNamed is an ordinary named segment.
	SegmentNamed SegmentKind = iota
	// SegmentCrateRoot carries the crate name.
	SegmentCrateRoot
	// SegmentAnon is a compiler-synthesized anonymous segment (impl block,
	// foreign module, ...); Name holds its namespace label.
	SegmentAnon
	// SegmentBody is a closure/generator segment; Body holds the kind.
	SegmentBody
)

// PathSegment is one component of an item path. Disambiguator separates
// otherwise identically-named entities in the same scope.
type PathSegment struct {
	Kind          SegmentKind
	Name          string
	Disambiguator uint32
	Body          BodyKind // valid when Kind == SegmentBody
}

// BodyKind classifies a closure-like body for naming.
type BodyKind int

const (
	ClosureBody BodyKind = iota
	GeneratorBody
	AsyncBlockBody
	AsyncClosureBody
	AsyncFnBody
)

// Label is the naming label of the body kind, used both in path segments
// and (suffixed with "_env") in environment type names.
func (k BodyKind) Label() string {
	switch k {
	case ClosureBody:
		return "closure"
	case GeneratorBody:
		return "generator"
	case AsyncBlockBody:
		return "async_block"
	case AsyncClosureBody:
		return "async_closure"
	case AsyncFnBody:
		return "async_fn"
	default:
		panic(fmt.Sprintf("unknown body kind: %d", int(k)))
	}
}
