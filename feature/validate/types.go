package validate

import "cardpress/feature/inventory"

// Step is one stage of the repair pipeline. The numeric order is the strict
// execution order: every later step consumes an artifact a predecessor
// produces or repairs.
type Step int

const (
	// StepDownload fetches the original scan from a provider.
	StepDownload Step = iota + 1
	// StepResizeOriginal forces the original to its exact target dimensions.
	StepResizeOriginal
	// StepConvertOriginal produces the original's alternate format.
	StepConvertOriginal
	// StepCropArtOnly generates the shared art-only crop from the original.
	StepCropArtOnly
	// StepConvertArtOnly produces the art-only alternate format.
	StepConvertArtOnly
	// StepCropArtAndName generates the art-plus-name crop from the original.
	StepCropArtAndName
	// StepConvertArtAndName produces the art-plus-name alternate format.
	StepConvertArtAndName
)

var stepNames = map[Step]string{
	StepDownload:          "download",
	StepResizeOriginal:    "resize_original",
	StepConvertOriginal:   "convert_original",
	StepCropArtOnly:       "crop_art_only",
	StepConvertArtOnly:    "convert_art_only",
	StepCropArtAndName:    "crop_art_and_name",
	StepConvertArtAndName: "convert_art_and_name",
}

// String returns the step name used in logs, failure records, and reports.
func (s Step) String() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return "unknown"
}

// Issue is one unit of required repair work for a card.
type Issue struct {
	Card inventory.CardKey
	Step Step
	Ref  inventory.ArtifactRef
}

// Result is the validation outcome for one card. An empty issue list means
// the card is fully converged. Warnings flag conditions that require manual
// review and are never auto-repaired.
type Result struct {
	Card     inventory.CardKey
	Issues   []Issue
	Warnings []string
}

// Converged reports whether the card needs no repair.
func (r Result) Converged() bool { return len(r.Issues) == 0 }

// Options bundles the validator inputs shared across cards.
type Options struct {
	// Inventory selects which artifacts each card expands into.
	Inventory inventory.Options
	// TolerancePx is the accepted dimension deviation on validation.
	// Generation always targets exact dimensions.
	TolerancePx int
}
