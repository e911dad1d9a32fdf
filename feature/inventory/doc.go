// Package inventory defines the artifact data model of the card-image pipeline.
//
// It answers one question with pure functions and no I/O: given a card and the
// pipeline configuration, which encoded image files must exist, where do they
// live, and what pixel dimensions must they have.
//
// # Model
//
// A CardKey identifies one card within a set and language. Each card expands
// into up to three variants (the full original scan, the art-only crop, and
// the art-plus-name crop), each encoded in two formats (WebP and AVIF). An
// ArtifactRef pins down one physical file: (card, variant, format).
//
// The art-only variant is language independent: exactly one copy exists per
// (set, cardNumber), generated from the configured primary language. All other
// variants are per-language.
//
// # Layout
//
// Artifact locations are a pure function of the reference and form an external
// contract with downstream tooling:
//
//	{language}/{set}/{number}.{ext}               original
//	{set}/art_only/{number}.{ext}                 art only (shared)
//	{language}/{set}/art_and_name/{number}.{ext}  art and name
package inventory
