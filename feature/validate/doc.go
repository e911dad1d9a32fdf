// Package validate determines what is missing or malformed for a card.
//
// For one card the Validator expands the expected artifact set, probes the
// store and the codec, and emits one Issue per required repair, tagged with
// the pipeline step that fixes it. Issues are returned unsorted; the repair
// engine owns the execution order.
//
// # Crop versus resize
//
// The discriminating signal for derived variants: a variant whose height
// exactly equals the original's full expected height is an uncropped
// passthrough and needs a crop repair. A height within tolerance of the
// variant's own target is accepted. Anything else is a data-integrity warning
// and is deliberately never auto-repaired, because the only available
// automatic fix (a resize) would distort cropped art. Resize repairs are
// reserved for original scans alone.
package validate
