package inventory

import "math"

// Bands describes a vertical crop as two fractional bands of the source
// image: everything above TopEnd, plus everything below BottomStart. The two
// bands are concatenated vertically, excising the text/stat box between them.
type Bands struct {
	// TopEnd is the fraction of the source height where the top band ends.
	TopEnd float64
	// BottomStart is the fraction of the source height where the bottom band
	// begins.
	BottomStart float64
}

// Field-calibrated split points between pure art, art-plus-name, and the
// excluded text box.
var cropBands = map[Variant]Bands{
	VariantArtOnly:    {TopEnd: 0.520, BottomStart: 0.931},
	VariantArtAndName: {TopEnd: 0.674, BottomStart: 0.925},
}

// CropBands returns the crop specification for a derived variant. The second
// return is false for the original, which is never cropped.
func CropBands(v Variant) (Bands, bool) {
	b, ok := cropBands[v]
	return b, ok
}

// Pixels converts the fractional bands to pixel offsets for a source of the
// given height, using floor semantics on both boundaries.
func (b Bands) Pixels(height int) (topEnd, bottomStart int) {
	topEnd = int(math.Floor(float64(height) * b.TopEnd))
	bottomStart = int(math.Floor(float64(height) * b.BottomStart))
	return topEnd, bottomStart
}

// CroppedHeight returns the height of the concatenated result for a source of
// the given height.
func (b Bands) CroppedHeight(height int) int {
	topEnd, bottomStart := b.Pixels(height)
	return topEnd + (height - bottomStart)
}
