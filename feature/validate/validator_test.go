package validate

import (
	"context"
	"fmt"
	"image"
	"strings"
	"testing"

	"cardpress/core/imaging"
	"cardpress/feature/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is an in-memory artifact store.
type fakeStore struct {
	objects map[string][]byte
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := s.objects[key]
	return ok, nil
}

func (s *fakeStore) Read(_ context.Context, key string) ([]byte, error) {
	data, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("no such object %s", key)
	}
	return data, nil
}

func (s *fakeStore) Write(_ context.Context, key string, data []byte) error {
	s.objects[key] = data
	return nil
}

func (s *fakeStore) Remove(_ context.Context, key string) error {
	delete(s.objects, key)
	return nil
}

// fakeCodec probes synthetic artifacts of the form "format:WxH".
type fakeCodec struct{}

func (fakeCodec) Probe(data []byte) (imaging.Info, error) {
	format, dims, ok := strings.Cut(string(data), ":")
	if !ok {
		return imaging.Info{}, imaging.ErrCorrupt
	}
	var w, h int
	if _, err := fmt.Sscanf(dims, "%dx%d", &w, &h); err != nil {
		return imaging.Info{}, fmt.Errorf("%w: %v", imaging.ErrCorrupt, err)
	}
	return imaging.Info{Width: w, Height: h, Format: format}, nil
}

func (fakeCodec) Decode([]byte) (image.Image, error)                  { panic("not used") }
func (fakeCodec) ResizeToExact([]byte, int, int) (image.Image, error) { panic("not used") }
func (fakeCodec) CropBands([]byte, float64, float64) (image.Image, error) {
	panic("not used")
}
func (fakeCodec) Encode(image.Image, string) ([]byte, error) { panic("not used") }

func artifact(w, h int) []byte {
	return []byte(fmt.Sprintf("img:%dx%d", w, h))
}

func put(s *fakeStore, ref inventory.ArtifactRef, w, h int) {
	s.objects[ref.ObjectKey()] = artifact(w, h)
}

func ref(card inventory.CardKey, v inventory.Variant, f inventory.Format) inventory.ArtifactRef {
	return inventory.ArtifactRef{Card: card, Variant: v, Format: f}
}

func steps(issues []Issue) []Step {
	out := make([]Step, 0, len(issues))
	for _, i := range issues {
		out = append(out, i.Step)
	}
	return out
}

var testOpts = Options{
	Inventory:   inventory.Options{IncludeVariants: true, PrimaryLanguage: "en"},
	TolerancePx: 2,
}

func TestValidateMissingOriginal(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())
	card := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}

	res, err := v.Validate(context.Background(), card, testOpts)
	require.NoError(t, err)

	// Missing original plus both art-and-name repairs; no art-only issues for
	// a non-primary language.
	assert.ElementsMatch(t,
		[]Step{StepDownload, StepCropArtAndName, StepConvertArtAndName},
		steps(res.Issues))
}

func TestValidateWrongOriginalDimensionsIsResize(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())
	card := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}

	put(store, ref(card, inventory.VariantOriginal, inventory.FormatWebP), 600, 850)
	put(store, ref(card, inventory.VariantArtAndName, inventory.FormatWebP), 734, 767)
	put(store, ref(card, inventory.VariantArtAndName, inventory.FormatAVIF), 734, 767)

	res, err := v.Validate(context.Background(), card, testOpts)
	require.NoError(t, err)

	// Resize only; the alternate-format check waits until the original is
	// sound.
	assert.Equal(t, []Step{StepResizeOriginal}, steps(res.Issues))
}

func TestValidateResizeNeverTargetsVariants(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())
	card := inventory.CardKey{SetID: "swsh1", Language: "en", Number: "007"}

	put(store, ref(card, inventory.VariantOriginal, inventory.FormatWebP), 734, 1024)
	put(store, ref(card, inventory.VariantOriginal, inventory.FormatAVIF), 734, 1024)
	// Every variant carries the full-height passthrough signal.
	put(store, ref(card, inventory.VariantArtOnly, inventory.FormatWebP), 734, 1024)
	put(store, ref(card, inventory.VariantArtAndName, inventory.FormatWebP), 734, 1024)

	res, err := v.Validate(context.Background(), card, testOpts)
	require.NoError(t, err)

	for _, issue := range res.Issues {
		assert.NotEqual(t, StepResizeOriginal, issue.Step)
	}
	assert.ElementsMatch(t,
		[]Step{StepCropArtOnly, StepConvertArtOnly, StepCropArtAndName, StepConvertArtAndName},
		steps(res.Issues))
}

func TestValidateMissingAlternateFormats(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())
	card := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}

	put(store, ref(card, inventory.VariantOriginal, inventory.FormatWebP), 734, 1024)
	put(store, ref(card, inventory.VariantArtAndName, inventory.FormatWebP), 734, 767)

	res, err := v.Validate(context.Background(), card, testOpts)
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]Step{StepConvertOriginal, StepConvertArtAndName},
		steps(res.Issues))
}

func TestValidateToleranceBoundary(t *testing.T) {
	tests := []struct {
		name      string
		height    int
		wantIssue bool
		wantWarn  bool
	}{
		{"exact", 767, false, false},
		{"plus tolerance", 769, false, false},
		{"minus tolerance", 765, false, false},
		{"beyond tolerance", 770, false, true},
		{"well off", 700, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			v := New(store, fakeCodec{}, zap.NewNop())
			card := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}

			put(store, ref(card, inventory.VariantOriginal, inventory.FormatWebP), 734, 1024)
			put(store, ref(card, inventory.VariantOriginal, inventory.FormatAVIF), 734, 1024)
			put(store, ref(card, inventory.VariantArtAndName, inventory.FormatWebP), 734, tt.height)
			put(store, ref(card, inventory.VariantArtAndName, inventory.FormatAVIF), 734, tt.height)

			res, err := v.Validate(context.Background(), card, testOpts)
			require.NoError(t, err)

			if tt.wantIssue {
				assert.NotEmpty(t, res.Issues)
			} else {
				assert.Empty(t, res.Issues)
			}
			if tt.wantWarn {
				assert.NotEmpty(t, res.Warnings, "near-miss dimensions must surface as a warning")
			} else {
				assert.Empty(t, res.Warnings)
			}
		})
	}
}

func TestValidateUncroppedPassthroughIsCropNotWarning(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())
	card := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}

	put(store, ref(card, inventory.VariantOriginal, inventory.FormatWebP), 734, 1024)
	put(store, ref(card, inventory.VariantOriginal, inventory.FormatAVIF), 734, 1024)
	// Full original height: the passthrough signal, not a warning case.
	put(store, ref(card, inventory.VariantArtAndName, inventory.FormatWebP), 734, 1024)
	put(store, ref(card, inventory.VariantArtAndName, inventory.FormatAVIF), 734, 1024)

	res, err := v.Validate(context.Background(), card, testOpts)
	require.NoError(t, err)

	assert.ElementsMatch(t, []Step{StepCropArtAndName, StepConvertArtAndName}, steps(res.Issues))
	assert.Empty(t, res.Warnings)
}

func TestValidateArtOnlyGatedToPrimaryLanguage(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())

	for _, lang := range []string{"en", "it"} {
		card := inventory.CardKey{SetID: "swsh1", Language: lang, Number: "042"}
		put(store, ref(card, inventory.VariantOriginal, inventory.FormatWebP), 734, 1024)
		put(store, ref(card, inventory.VariantOriginal, inventory.FormatAVIF), 734, 1024)
		put(store, ref(card, inventory.VariantArtAndName, inventory.FormatWebP), 734, 767)
		put(store, ref(card, inventory.VariantArtAndName, inventory.FormatAVIF), 734, 767)
	}

	primary := inventory.CardKey{SetID: "swsh1", Language: "en", Number: "042"}
	res, err := v.Validate(context.Background(), primary, testOpts)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Step{StepCropArtOnly, StepConvertArtOnly}, steps(res.Issues))

	other := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}
	res, err = v.Validate(context.Background(), other, testOpts)
	require.NoError(t, err)
	assert.Empty(t, res.Issues, "non-primary language must never request art-only work")
}

func TestValidateCorruptOriginalTreatedAsMissing(t *testing.T) {
	store := newFakeStore()
	v := New(store, fakeCodec{}, zap.NewNop())
	card := inventory.CardKey{SetID: "swsh1", Language: "it", Number: "042"}

	store.objects[ref(card, inventory.VariantOriginal, inventory.FormatWebP).ObjectKey()] = []byte("garbage")

	res, err := v.Validate(context.Background(), card, Options{
		Inventory:   inventory.Options{IncludeVariants: false, PrimaryLanguage: "en"},
		TolerancePx: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, []Step{StepDownload}, steps(res.Issues))
}
