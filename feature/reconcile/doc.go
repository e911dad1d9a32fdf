// Package reconcile is the repair engine of the pipeline.
//
// Given the expected artifact inventory of a card, the engine drives a
// validate, sort, apply, re-validate cycle until the card converges to zero
// issues or the attempt budget runs out. Repairs execute in strict pipeline
// order (download before resize before convert before crop), because every
// later step's input is an artifact a predecessor produces.
//
// # Failure isolation
//
// Each issue is applied individually; one failing repair never aborts the
// remaining issues of that card, and one stuck card never aborts the batch.
// Failures are recorded with their originating step and cause, and surface in
// the run report. An upstream 404 is an expected outcome, reported as a known
// gap.
//
// # State
//
// The engine trusts nothing between passes: after applying fixes it
// re-validates the card from storage, because a fix for one step can change
// what the next validation reports.
//
// # Scheduling
//
// Languages run sequentially with the primary language first, which fences
// the shared art-only variant: it is written during the primary pass only,
// exactly once per card number. Cards within one language may fan out over a
// configured worker count, since every other artifact is exclusively owned by
// its (language, cardNumber) pair.
package reconcile
