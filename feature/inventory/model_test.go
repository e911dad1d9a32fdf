package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectedDimensions(t *testing.T) {
	assert.Equal(t, Dimensions{Width: 734, Height: 1024}, ExpectedDimensions(VariantOriginal))
	assert.Equal(t, Dimensions{Width: 734, Height: 603}, ExpectedDimensions(VariantArtOnly))
	assert.Equal(t, Dimensions{Width: 734, Height: 767}, ExpectedDimensions(VariantArtAndName))

	// Width never varies between variants; only the crop height does.
	for _, v := range []Variant{VariantOriginal, VariantArtOnly, VariantArtAndName} {
		assert.Equal(t, 734, ExpectedDimensions(v).Width, "variant %s", v)
	}
}

func TestFormatAlternate(t *testing.T) {
	assert.Equal(t, FormatAVIF, FormatWebP.Alternate())
	assert.Equal(t, FormatWebP, FormatAVIF.Alternate())
}

func TestObjectKeyLayout(t *testing.T) {
	card := CardKey{SetID: "swsh1", Language: "it", Number: "042"}

	tests := []struct {
		name    string
		variant Variant
		format  Format
		want    string
	}{
		{"original webp", VariantOriginal, FormatWebP, "it/swsh1/042.webp"},
		{"original avif", VariantOriginal, FormatAVIF, "it/swsh1/042.avif"},
		{"art only is language independent", VariantArtOnly, FormatWebP, "swsh1/art_only/042.webp"},
		{"art and name", VariantArtAndName, FormatAVIF, "it/swsh1/art_and_name/042.avif"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref := ArtifactRef{Card: card, Variant: tt.variant, Format: tt.format}
			assert.Equal(t, tt.want, ref.ObjectKey())
		})
	}
}

func TestExpectedArtifacts(t *testing.T) {
	opts := Options{IncludeVariants: true, PrimaryLanguage: "en"}

	t.Run("primary language includes the shared art-only variant", func(t *testing.T) {
		card := CardKey{SetID: "swsh1", Language: "en", Number: "001"}
		refs := ExpectedArtifacts(card, opts)
		require.Len(t, refs, 6)
		assert.Equal(t, 2, countVariant(refs, VariantOriginal))
		assert.Equal(t, 2, countVariant(refs, VariantArtAndName))
		assert.Equal(t, 2, countVariant(refs, VariantArtOnly))
	})

	t.Run("non-primary language never expands to art-only", func(t *testing.T) {
		card := CardKey{SetID: "swsh1", Language: "it", Number: "001"}
		refs := ExpectedArtifacts(card, opts)
		require.Len(t, refs, 4)
		assert.Zero(t, countVariant(refs, VariantArtOnly))
	})

	t.Run("variants disabled leaves only the originals", func(t *testing.T) {
		card := CardKey{SetID: "swsh1", Language: "en", Number: "001"}
		refs := ExpectedArtifacts(card, Options{PrimaryLanguage: "en"})
		require.Len(t, refs, 2)
		assert.Equal(t, 2, countVariant(refs, VariantOriginal))
	})

	t.Run("deterministic", func(t *testing.T) {
		card := CardKey{SetID: "swsh1", Language: "en", Number: "001"}
		assert.Equal(t, ExpectedArtifacts(card, opts), ExpectedArtifacts(card, opts))
	})
}

func countVariant(refs []ArtifactRef, v Variant) int {
	n := 0
	for _, r := range refs {
		if r.Variant == v {
			n++
		}
	}
	return n
}
