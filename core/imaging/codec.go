package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	// Register decoders for every format the pipeline reads.
	_ "image/jpeg"
	_ "image/png"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/avif"
	"github.com/gen2brain/webp"
)

// ErrCorrupt marks input bytes that cannot be decoded as an image. Callers
// treat a corrupt artifact like a missing one.
var ErrCorrupt = errors.New("corrupt image")

// Info describes a probed image.
type Info struct {
	Width  int
	Height int
	Format string
}

// Codec defines the image operations the pipeline depends on.
type Codec interface {
	// Probe returns the dimensions and detected format without a full decode.
	Probe(data []byte) (Info, error)
	// Decode parses the full image.
	Decode(data []byte) (image.Image, error)
	// ResizeToExact scales the image to exactly width x height.
	ResizeToExact(data []byte, width, height int) (image.Image, error)
	// CropBands extracts the band above topEnd and the band below bottomStart
	// (both fractions of the source height, floored to pixels) and
	// concatenates them vertically.
	CropBands(data []byte, topEnd, bottomStart float64) (image.Image, error)
	// Encode serializes the image in the named format ("webp" or "avif").
	Encode(img image.Image, format string) ([]byte, error)
}

// StdCodec implements Codec with lanczos resampling and the gen2brain
// WebP/AVIF encoders.
type StdCodec struct {
	// WebPQuality and AVIFQuality control lossy encoding (0-100).
	WebPQuality int
	AVIFQuality int
}

// NewCodec returns a codec with the pipeline's default encoder settings.
func NewCodec() *StdCodec {
	return &StdCodec{WebPQuality: 90, AVIFQuality: 60}
}

// Probe returns dimensions and format via the registered decoders.
func (c *StdCodec) Probe(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return Info{Width: cfg.Width, Height: cfg.Height, Format: format}, nil
}

// Decode parses the full image via the registered decoders.
func (c *StdCodec) Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return img, nil
}

// ResizeToExact scales to the exact target dimensions, distorting the aspect
// ratio if the source disagrees. Reserved for original scans whose upstream
// dimensions are simply wrong.
func (c *StdCodec) ResizeToExact(data []byte, width, height int) (image.Image, error) {
	img, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return imaging.Resize(img, width, height, imaging.Lanczos), nil
}

// CropBands cuts the two vertical bands and stacks them into one image.
func (c *StdCodec) CropBands(data []byte, topEnd, bottomStart float64) (image.Image, error) {
	if topEnd <= 0 || bottomStart >= 1 || topEnd >= bottomStart {
		return nil, fmt.Errorf("invalid crop bands %.3f-%.3f", topEnd, bottomStart)
	}
	img, err := c.Decode(data)
	if err != nil {
		return nil, err
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	topEndPx := int(float64(h) * topEnd)
	bottomStartPx := int(float64(h) * bottomStart)

	top := imaging.Crop(img, image.Rect(0, 0, w, topEndPx))
	bottom := imaging.Crop(img, image.Rect(0, bottomStartPx, w, h))

	out := imaging.New(w, topEndPx+(h-bottomStartPx), image.Transparent)
	out = imaging.Paste(out, top, image.Pt(0, 0))
	out = imaging.Paste(out, bottom, image.Pt(0, topEndPx))
	return out, nil
}

// Encode serializes to WebP or AVIF.
func (c *StdCodec) Encode(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "webp":
		if err := webp.Encode(&buf, img, webp.Options{Quality: c.WebPQuality}); err != nil {
			return nil, fmt.Errorf("webp encode failed: %w", err)
		}
	case "avif":
		if err := avif.Encode(&buf, img, avif.Options{Quality: c.AVIFQuality}); err != nil {
			return nil, fmt.Errorf("avif encode failed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown encode format %q", format)
	}
	return buf.Bytes(), nil
}
