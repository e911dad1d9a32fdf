package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestProbe(t *testing.T) {
	codec := NewCodec()

	info, err := codec.Probe(pngBytes(t, 734, 1024))
	assert.NoError(t, err)
	assert.Equal(t, 734, info.Width)
	assert.Equal(t, 1024, info.Height)
	assert.Equal(t, "png", info.Format)
}

func TestProbeCorrupt(t *testing.T) {
	codec := NewCodec()

	_, err := codec.Probe([]byte("not an image"))
	assert.ErrorIs(t, err, ErrCorrupt)

	_, err = codec.Decode([]byte{0x00, 0x01})
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestResizeToExact(t *testing.T) {
	codec := NewCodec()

	img, err := codec.ResizeToExact(pngBytes(t, 720, 1000), 734, 1024)
	assert.NoError(t, err)
	assert.Equal(t, 734, img.Bounds().Dx())
	assert.Equal(t, 1024, img.Bounds().Dy())
}

func TestCropBands(t *testing.T) {
	codec := NewCodec()
	src := pngBytes(t, 734, 1024)

	// Art band: everything above 52.0% plus everything below 93.1%.
	img, err := codec.CropBands(src, 0.520, 0.931)
	assert.NoError(t, err)
	assert.Equal(t, 734, img.Bounds().Dx())
	assert.Equal(t, 603, img.Bounds().Dy())

	// Art plus name band.
	img, err = codec.CropBands(src, 0.674, 0.925)
	assert.NoError(t, err)
	assert.Equal(t, 767, img.Bounds().Dy())
}

func TestCropBandsInvalid(t *testing.T) {
	codec := NewCodec()
	src := pngBytes(t, 10, 10)

	for _, bands := range [][2]float64{
		{0, 0.9},   // empty top band
		{0.5, 1.0}, // empty bottom band
		{0.9, 0.5}, // inverted
		{0.5, 0.5}, // zero gap
	} {
		_, err := codec.CropBands(src, bands[0], bands[1])
		assert.Error(t, err, "bands %v", bands)
	}
}

func TestEncodeWebPRoundTrip(t *testing.T) {
	codec := NewCodec()

	img := image.NewRGBA(image.Rect(0, 0, 64, 48))
	data, err := codec.Encode(img, "webp")
	assert.NoError(t, err)

	info, err := codec.Probe(data)
	assert.NoError(t, err)
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
}

func TestEncodeUnknownFormat(t *testing.T) {
	codec := NewCodec()

	_, err := codec.Encode(image.NewRGBA(image.Rect(0, 0, 1, 1)), "gif")
	assert.Error(t, err)
}
