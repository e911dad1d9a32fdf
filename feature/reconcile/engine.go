package reconcile

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cardpress/core/imaging"
	"cardpress/core/storage"
	"cardpress/feature/inventory"
	"cardpress/feature/source"
	"cardpress/feature/validate"

	"go.uber.org/zap"
)

// Engine converges cards to their expected artifact inventory.
type Engine struct {
	store     storage.Store
	codec     imaging.Codec
	source    source.Source
	validator *validate.Validator
	cfg       Config
	log       *zap.Logger
}

// New creates a repair engine. All collaborators are explicit; the engine
// keeps no process-wide state.
func New(store storage.Store, codec imaging.Codec, src source.Source, cfg Config, log *zap.Logger) *Engine {
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = 3
	}
	return &Engine{
		store:     store,
		codec:     codec,
		source:    src,
		validator: validate.New(store, codec, log),
		cfg:       cfg,
		log:       log,
	}
}

func (e *Engine) validateOpts() validate.Options {
	return validate.Options{
		Inventory: inventory.Options{
			IncludeVariants: e.cfg.IncludeVariants,
			PrimaryLanguage: e.cfg.PrimaryLanguage,
		},
		TolerancePx: e.cfg.DimensionTolerancePx,
	}
}

// ReconcileCard converges one card: validate, sort by pipeline order, apply,
// re-validate, bounded by the attempt budget. A fully converged card performs
// zero writes.
func (e *Engine) ReconcileCard(ctx context.Context, card inventory.CardKey, dryRun bool) CardOutcome {
	outcome := CardOutcome{Card: card}

	res, err := e.validator.Validate(ctx, card, e.validateOpts())
	if err != nil {
		outcome.Status = StatusStuck
		outcome.Failures = append(outcome.Failures, Failure{Cause: fmt.Sprintf("validation failed: %v", err)})
		return outcome
	}
	outcome.IssuesFound = len(res.Issues)
	outcome.Warnings = res.Warnings

	if res.Converged() {
		outcome.Status = StatusConverged
		return outcome
	}
	if dryRun {
		outcome.Status = StatusPlanned
		outcome.IssuesLeft = len(res.Issues)
		return outcome
	}

	for attempt := 1; attempt <= e.cfg.MaxAttempts && !res.Converged(); attempt++ {
		if ctx.Err() != nil {
			break
		}
		outcome.Attempts = attempt

		issues := append([]validate.Issue(nil), res.Issues...)
		sortIssues(issues)

		for _, issue := range issues {
			if err := e.apply(ctx, issue); err != nil {
				outcome.Failures = append(outcome.Failures, Failure{
					Step:  issue.Step,
					Ref:   issue.Ref,
					Cause: err.Error(),
				})
				e.log.Warn("repair failed",
					zap.String("card", card.String()),
					zap.Stringer("step", issue.Step),
					zap.Error(err),
				)
				continue
			}
			e.log.Debug("repair applied",
				zap.String("card", card.String()),
				zap.Stringer("step", issue.Step),
				zap.String("artifact", issue.Ref.String()),
			)
		}

		// Re-probe from scratch: never trust the in-memory issue list after
		// repairs have run.
		res, err = e.validator.Validate(ctx, card, e.validateOpts())
		if err != nil {
			outcome.Status = StatusStuck
			outcome.Failures = append(outcome.Failures, Failure{Cause: fmt.Sprintf("re-validation failed: %v", err)})
			return outcome
		}
		outcome.Warnings = res.Warnings
	}

	outcome.IssuesLeft = len(res.Issues)
	switch {
	case res.Converged():
		outcome.Status = StatusConverged
	case len(res.Issues) < outcome.IssuesFound:
		outcome.Status = StatusPartial
	default:
		outcome.Status = StatusStuck
	}
	return outcome
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// sortIssues orders issues by pipeline step, keeping the validator's order
// for equal steps.
func sortIssues(issues []validate.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].Step < issues[j].Step
	})
}

// apply dispatches one repair. Failures are returned, never panicked; the
// caller records them and moves on.
func (e *Engine) apply(ctx context.Context, issue validate.Issue) error {
	switch issue.Step {
	case validate.StepDownload:
		return e.applyDownload(ctx, issue.Card)
	case validate.StepResizeOriginal:
		return e.applyResize(ctx, issue.Card)
	case validate.StepConvertOriginal, validate.StepConvertArtOnly, validate.StepConvertArtAndName:
		return e.applyConvert(ctx, issue.Ref)
	case validate.StepCropArtOnly, validate.StepCropArtAndName:
		return e.applyCrop(ctx, issue.Ref)
	default:
		return fmt.Errorf("no repair for step %s", issue.Step)
	}
}

// applyDownload fetches the original scan and writes it in the primary
// format. Wrong source dimensions are left for the resize step to catch on
// the next validation pass.
func (e *Engine) applyDownload(ctx context.Context, card inventory.CardKey) error {
	data, err := e.source.Fetch(ctx, card)
	if err != nil {
		if errors.Is(err, source.ErrNotFound) {
			return fmt.Errorf("upstream has no image for %s: %w", card, err)
		}
		return fmt.Errorf("download failed for %s: %w", card, err)
	}

	img, err := e.codec.Decode(data)
	if err != nil {
		return fmt.Errorf("upstream image for %s is not decodable: %w", card, err)
	}
	encoded, err := e.codec.Encode(img, string(inventory.FormatWebP))
	if err != nil {
		return fmt.Errorf("failed to encode original for %s: %w", card, err)
	}

	ref := inventory.ArtifactRef{Card: card, Variant: inventory.VariantOriginal, Format: inventory.FormatWebP}
	if err := e.store.Write(ctx, ref.ObjectKey(), encoded); err != nil {
		return fmt.Errorf("failed to store %s: %w", ref, err)
	}
	return nil
}

// applyResize forces the original to its exact target dimensions, rewriting
// the alternate format too when it already exists so the siblings never
// diverge. Resize is never applied to derived variants.
func (e *Engine) applyResize(ctx context.Context, card inventory.CardKey) error {
	ref := inventory.ArtifactRef{Card: card, Variant: inventory.VariantOriginal, Format: inventory.FormatWebP}
	want := inventory.ExpectedDimensions(inventory.VariantOriginal)

	data, err := e.store.Read(ctx, ref.ObjectKey())
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", ref, err)
	}
	img, err := e.codec.ResizeToExact(data, want.Width, want.Height)
	if err != nil {
		return fmt.Errorf("failed to resize %s: %w", ref, err)
	}

	encoded, err := e.codec.Encode(img, string(ref.Format))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", ref, err)
	}
	if err := e.store.Write(ctx, ref.ObjectKey(), encoded); err != nil {
		return fmt.Errorf("failed to store %s: %w", ref, err)
	}

	sibling := ref.Sibling()
	altPresent, err := e.store.Exists(ctx, sibling.ObjectKey())
	if err != nil {
		return fmt.Errorf("failed to probe %s: %w", sibling, err)
	}
	if altPresent {
		altEncoded, err := e.codec.Encode(img, string(sibling.Format))
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", sibling, err)
		}
		if err := e.store.Write(ctx, sibling.ObjectKey(), altEncoded); err != nil {
			return fmt.Errorf("failed to store %s: %w", sibling, err)
		}
	}
	return nil
}

// applyConvert produces the target format from its primary-format sibling.
func (e *Engine) applyConvert(ctx context.Context, target inventory.ArtifactRef) error {
	src := target.Sibling()
	data, err := e.store.Read(ctx, src.ObjectKey())
	if err != nil {
		return fmt.Errorf("conversion source %s unavailable: %w", src, err)
	}
	img, err := e.codec.Decode(data)
	if err != nil {
		return fmt.Errorf("conversion source %s is not decodable: %w", src, err)
	}
	encoded, err := e.codec.Encode(img, string(target.Format))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", target, err)
	}
	if err := e.store.Write(ctx, target.ObjectKey(), encoded); err != nil {
		return fmt.Errorf("failed to store %s: %w", target, err)
	}
	return nil
}

// applyCrop regenerates a derived variant from the original scan. It always
// sources from the original, never from a prior (possibly corrupt) variant,
// and verifies the resulting dimensions before the artifact is moved into
// place.
func (e *Engine) applyCrop(ctx context.Context, target inventory.ArtifactRef) error {
	bands, ok := inventory.CropBands(target.Variant)
	if !ok {
		return fmt.Errorf("variant %s has no crop specification", target.Variant)
	}

	origRef := inventory.ArtifactRef{Card: target.Card, Variant: inventory.VariantOriginal, Format: inventory.FormatWebP}
	data, err := e.store.Read(ctx, origRef.ObjectKey())
	if err != nil {
		return fmt.Errorf("crop source %s unavailable: %w", origRef, err)
	}

	img, err := e.codec.CropBands(data, bands.TopEnd, bands.BottomStart)
	if err != nil {
		return fmt.Errorf("failed to crop %s: %w", target, err)
	}

	// Verify before anything is moved into place. Tolerance covers originals
	// accepted within the validation window; a crop from a wrong-sized source
	// is discarded rather than written.
	want := inventory.ExpectedDimensions(target.Variant)
	got := img.Bounds()
	tol := e.cfg.DimensionTolerancePx
	if abs(got.Dx()-want.Width) > tol || abs(got.Dy()-want.Height) > tol {
		return fmt.Errorf("crop for %s produced %dx%d, want %dx%d",
			target, got.Dx(), got.Dy(), want.Width, want.Height)
	}

	encoded, err := e.codec.Encode(img, string(target.Format))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", target, err)
	}
	if err := e.store.Write(ctx, target.ObjectKey(), encoded); err != nil {
		return fmt.Errorf("failed to store %s: %w", target, err)
	}
	return nil
}
