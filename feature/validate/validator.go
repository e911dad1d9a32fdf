package validate

import (
	"context"
	"errors"
	"fmt"

	"cardpress/core/imaging"
	"cardpress/core/storage"
	"cardpress/feature/inventory"

	"go.uber.org/zap"
)

// Validator probes the store for one card's expected artifacts and reports
// the repairs required to converge it.
type Validator struct {
	store storage.Store
	codec imaging.Codec
	log   *zap.Logger
}

// New creates a validator.
func New(store storage.Store, codec imaging.Codec, log *zap.Logger) *Validator {
	return &Validator{store: store, codec: codec, log: log}
}

// Validate checks every expected artifact of one card and returns the issues
// found, unsorted. It re-probes storage from scratch on every call and keeps
// no state between calls.
func (v *Validator) Validate(ctx context.Context, card inventory.CardKey, opts Options) (Result, error) {
	res := Result{Card: card}

	if err := v.checkOriginal(ctx, card, opts, &res); err != nil {
		return res, err
	}
	if !opts.Inventory.IncludeVariants {
		return res, nil
	}
	if card.Language == opts.Inventory.PrimaryLanguage {
		if err := v.checkVariant(ctx, card, inventory.VariantArtOnly, StepCropArtOnly, StepConvertArtOnly, opts, &res); err != nil {
			return res, err
		}
	}
	if err := v.checkVariant(ctx, card, inventory.VariantArtAndName, StepCropArtAndName, StepConvertArtAndName, opts, &res); err != nil {
		return res, err
	}
	return res, nil
}

// checkOriginal validates the original scan and, when it is sound, its
// alternate format.
func (v *Validator) checkOriginal(ctx context.Context, card inventory.CardKey, opts Options, res *Result) error {
	ref := inventory.ArtifactRef{Card: card, Variant: inventory.VariantOriginal, Format: inventory.FormatWebP}

	present, err := v.store.Exists(ctx, ref.ObjectKey())
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", ref, err)
	}
	if !present {
		res.Issues = append(res.Issues, Issue{Card: card, Step: StepDownload, Ref: ref})
		return nil
	}

	info, probeErr := v.probe(ctx, ref)
	if probeErr != nil {
		if errors.Is(probeErr, imaging.ErrCorrupt) {
			// An undecodable original is treated like a missing one.
			v.log.Warn("corrupt original, scheduling re-download",
				zap.String("artifact", ref.String()), zap.Error(probeErr))
			res.Issues = append(res.Issues, Issue{Card: card, Step: StepDownload, Ref: ref})
			return nil
		}
		return probeErr
	}

	want := inventory.ExpectedDimensions(inventory.VariantOriginal)
	if !withinTolerance(info.Width, want.Width, opts.TolerancePx) ||
		!withinTolerance(info.Height, want.Height, opts.TolerancePx) {
		res.Issues = append(res.Issues, Issue{Card: card, Step: StepResizeOriginal, Ref: ref})
		return nil
	}

	// Alternate format is only checked once the original itself is sound;
	// converting from a wrong-sized source would bake the defect in.
	sibling := ref.Sibling()
	altPresent, err := v.store.Exists(ctx, sibling.ObjectKey())
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", sibling, err)
	}
	if !altPresent {
		res.Issues = append(res.Issues, Issue{Card: card, Step: StepConvertOriginal, Ref: sibling})
	}
	return nil
}

// checkVariant validates one derived crop in both formats.
func (v *Validator) checkVariant(ctx context.Context, card inventory.CardKey, variant inventory.Variant, cropStep, convertStep Step, opts Options, res *Result) error {
	ref := inventory.ArtifactRef{Card: card, Variant: variant, Format: inventory.FormatWebP}
	sibling := ref.Sibling()

	present, err := v.store.Exists(ctx, ref.ObjectKey())
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", ref, err)
	}

	needsCrop := false
	switch {
	case !present:
		needsCrop = true
	default:
		info, probeErr := v.probe(ctx, ref)
		if probeErr != nil {
			if !errors.Is(probeErr, imaging.ErrCorrupt) {
				return probeErr
			}
			v.log.Warn("corrupt variant, scheduling re-crop",
				zap.String("artifact", ref.String()), zap.Error(probeErr))
			needsCrop = true
			break
		}

		full := inventory.ExpectedDimensions(inventory.VariantOriginal)
		want := inventory.ExpectedDimensions(variant)
		switch {
		case info.Height == full.Height:
			// Uncropped passthrough: the original was copied through without
			// the crop step. Regenerate; the alternate format is rebuilt from
			// the fresh crop as well.
			needsCrop = true
		case !withinTolerance(info.Height, want.Height, opts.TolerancePx) ||
			!withinTolerance(info.Width, want.Width, opts.TolerancePx):
			// Neither the passthrough signal nor an acceptable crop. A resize
			// here would distort the art, so this is flagged for manual
			// review instead of repaired.
			res.Warnings = append(res.Warnings, fmt.Sprintf(
				"%s has unexpected dimensions %dx%d (want %dx%d ±%dpx); not auto-repaired",
				ref, info.Width, info.Height, want.Width, want.Height, opts.TolerancePx))
			return nil
		}
	}

	if needsCrop {
		res.Issues = append(res.Issues,
			Issue{Card: card, Step: cropStep, Ref: ref},
			Issue{Card: card, Step: convertStep, Ref: sibling},
		)
		return nil
	}

	altPresent, err := v.store.Exists(ctx, sibling.ObjectKey())
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", sibling, err)
	}
	if !altPresent {
		res.Issues = append(res.Issues, Issue{Card: card, Step: convertStep, Ref: sibling})
	}
	return nil
}

func (v *Validator) probe(ctx context.Context, ref inventory.ArtifactRef) (imaging.Info, error) {
	data, err := v.store.Read(ctx, ref.ObjectKey())
	if err != nil {
		return imaging.Info{}, fmt.Errorf("failed to read %s: %w", ref, err)
	}
	return v.codec.Probe(data)
}

func withinTolerance(actual, expected, tolerance int) bool {
	diff := actual - expected
	if diff < 0 {
		diff = -diff
	}
	return diff <= tolerance
}
