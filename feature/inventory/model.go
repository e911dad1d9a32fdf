package inventory

import (
	"fmt"
	"path"
)

// Variant identifies one of the derived crops of a card image.
type Variant string

const (
	// VariantOriginal is the full card scan as fetched from a provider.
	VariantOriginal Variant = "original"
	// VariantArtOnly is the pure-art crop, shared across languages.
	VariantArtOnly Variant = "art_only"
	// VariantArtAndName is the art-plus-name crop, one per language.
	VariantArtAndName Variant = "art_and_name"
)

// Format identifies the encoded image format of an artifact.
type Format string

const (
	// FormatWebP is the primary lossy format. Every artifact is generated in
	// WebP first; the AVIF sibling is converted from it.
	FormatWebP Format = "webp"
	// FormatAVIF is the secondary lossy format.
	FormatAVIF Format = "avif"
)

// Formats lists every format an artifact must exist in, primary first.
var Formats = []Format{FormatWebP, FormatAVIF}

// Alternate returns the sibling format of f.
func (f Format) Alternate() Format {
	if f == FormatWebP {
		return FormatAVIF
	}
	return FormatWebP
}

// Ext returns the file extension for f, without the dot.
func (f Format) Ext() string { return string(f) }

// CardKey identifies one card: a set, a language, and a zero-padded card
// number. It is immutable and safe to use as a map key.
type CardKey struct {
	SetID    string
	Language string
	Number   string
}

// String renders the key in set/language/number form for logs and reports.
func (k CardKey) String() string {
	return fmt.Sprintf("%s/%s/%s", k.SetID, k.Language, k.Number)
}

// Dimensions holds expected or probed pixel dimensions.
type Dimensions struct {
	Width  int
	Height int
}

// Fixed dimension table. Width is constant across variants; only height varies
// with the crop policy.
var expectedDims = map[Variant]Dimensions{
	VariantOriginal:   {Width: 734, Height: 1024},
	VariantArtOnly:    {Width: 734, Height: 603},
	VariantArtAndName: {Width: 734, Height: 767},
}

// ExpectedDimensions returns the target pixel dimensions for a variant.
// Generation must hit these exactly; validation applies the configured
// tolerance on top.
func ExpectedDimensions(v Variant) Dimensions {
	return expectedDims[v]
}

// ArtifactRef identifies one physical artifact: a card, a variant, and a
// format. Refs are derived on demand and never persisted.
type ArtifactRef struct {
	Card    CardKey
	Variant Variant
	Format  Format
}

// Sibling returns the same artifact in the alternate format.
func (r ArtifactRef) Sibling() ArtifactRef {
	r.Format = r.Format.Alternate()
	return r
}

// ObjectKey resolves the ref to its storage location, relative to the
// artifact root. The shape is an external compatibility contract.
func (r ArtifactRef) ObjectKey() string {
	file := r.Card.Number + "." + r.Format.Ext()
	switch r.Variant {
	case VariantArtOnly:
		return path.Join(r.Card.SetID, "art_only", file)
	case VariantArtAndName:
		return path.Join(r.Card.Language, r.Card.SetID, "art_and_name", file)
	default:
		return path.Join(r.Card.Language, r.Card.SetID, file)
	}
}

// String renders the ref for logs and failure records.
func (r ArtifactRef) String() string {
	return fmt.Sprintf("%s[%s.%s]", r.Card, r.Variant, r.Format)
}

// Options selects which artifacts a card expands into.
type Options struct {
	// IncludeVariants enables the two derived crops in addition to the
	// original scan.
	IncludeVariants bool

	// PrimaryLanguage designates the language whose originals seed the shared
	// art-only variant. Only cards in this language expand to art-only refs.
	PrimaryLanguage string
}

// ExpectedArtifacts returns the exhaustive set of artifacts that must exist
// for one card. Deterministic, no side effects.
func ExpectedArtifacts(key CardKey, opts Options) []ArtifactRef {
	refs := make([]ArtifactRef, 0, 6)
	for _, f := range Formats {
		refs = append(refs, ArtifactRef{Card: key, Variant: VariantOriginal, Format: f})
	}
	if !opts.IncludeVariants {
		return refs
	}
	for _, f := range Formats {
		refs = append(refs, ArtifactRef{Card: key, Variant: VariantArtAndName, Format: f})
	}
	if key.Language == opts.PrimaryLanguage {
		for _, f := range Formats {
			refs = append(refs, ArtifactRef{Card: key, Variant: VariantArtOnly, Format: f})
		}
	}
	return refs
}
