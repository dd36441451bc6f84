package types

// LayoutKind classifies how an enum's variants are represented in memory.
type LayoutKind int

const (
	// LayoutSingle: zero or one possible variant; no discriminant exists.
	LayoutSingle LayoutKind = iota
	// LayoutTagged: multiple variants discriminated by a dedicated tag
	// field. Needs no supplemental naming information.
	LayoutTagged
	// LayoutNiche: multiple variants where the unused bit patterns of one
	// dataful variant encode all the others.
	LayoutNiche
)

// EnumLayout is the slice of layout information the naming stage needs for
// enums. It is produced by the layout engine, not here.
type EnumLayout struct {
	Kind         LayoutKind
	VariantCount int
	// SingleVariant is the name of the only variant; valid for
	// LayoutSingle with VariantCount > 0.
	SingleVariant string
	// Niche is set for LayoutNiche.
	Niche *NicheLayout
}

// NicheLayout describes a niche-encoded multi-variant representation.
type NicheLayout struct {
	// DatafulVariant is the variant whose payload occupies the storage.
	DatafulVariant string
	// ValidStart and ValidEnd are the inclusive bounds of the niche
	// scalar's valid range for the dataful variant, before truncation to
	// the tag width.
	ValidStart uint64
	ValidEnd   uint64
	// TagBits is the storage width of the tag scalar in bits, at most 64.
	TagBits uint32
}
