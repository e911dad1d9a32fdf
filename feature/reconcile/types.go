package reconcile

import (
	"time"

	"cardpress/feature/inventory"
	"cardpress/feature/validate"
)

// Config holds the pipeline configuration shared across runs.
type Config struct {
	// PrimaryLanguage designates the language whose originals seed the shared
	// art-only variant. Decoupled from the order of the requested language
	// list on purpose.
	PrimaryLanguage string `mapstructure:"primary_language" default:"en"`
	// IncludeVariants enables generation of the two derived crops.
	IncludeVariants bool `mapstructure:"include_variants" default:"true"`
	// DimensionTolerancePx is the accepted deviation when validating
	// artifact dimensions. Generation always targets exact values.
	DimensionTolerancePx int `mapstructure:"dimension_tolerance_px" default:"2"`
	// MaxAttempts bounds the validate/apply passes per card.
	MaxAttempts int `mapstructure:"max_attempts" default:"3"`
	// Workers is the number of cards repaired concurrently within one
	// language.
	Workers int `mapstructure:"workers" default:"1"`
}

// Job is one reconciliation request: a caller-supplied enumeration of
// expected cards.
type Job struct {
	SetID     string
	Languages []string
	Numbers   []string
	// DryRun computes and reports issues without applying any repair.
	DryRun bool
}

// Status classifies the outcome of one card's reconciliation.
type Status string

const (
	// StatusConverged means validation found no remaining issues.
	StatusConverged Status = "converged"
	// StatusPartial means some issues were repaired but not all.
	StatusPartial Status = "partial"
	// StatusStuck means the issue set did not shrink within the attempt
	// budget.
	StatusStuck Status = "stuck"
	// StatusPlanned is the dry-run outcome: issues computed, nothing applied.
	StatusPlanned Status = "planned"
)

// Failure records one repair that did not take, with a human-readable cause.
type Failure struct {
	Step  validate.Step
	Ref   inventory.ArtifactRef
	Cause string
}

// CardOutcome is the reconciliation result for one card.
type CardOutcome struct {
	Card        inventory.CardKey
	Status      Status
	Attempts    int
	IssuesFound int
	IssuesLeft  int
	Failures    []Failure
	Warnings    []string
}

// LanguageStats aggregates per-language counters for the report.
type LanguageStats struct {
	Checked     int `json:"checked"`
	IssuesFound int `json:"issues_found"`
	Recovered   int `json:"recovered"`
	Failed      int `json:"failed"`
}

// Report is the structured summary of one reconciliation run. Its fields are
// a contract other tooling consumes; rendering is up to the caller.
type Report struct {
	RunID       string                    `json:"run_id"`
	SetID       string                    `json:"set_id"`
	DryRun      bool                      `json:"dry_run"`
	StartedAt   time.Time                 `json:"started_at"`
	Duration    time.Duration             `json:"duration"`
	PerLanguage map[string]*LanguageStats `json:"per_language"`
	Errors      []string                  `json:"errors"`
	Warnings    []string                  `json:"warnings"`
}

// Converged reports whether every checked card ended with zero issues.
func (r *Report) Converged() bool {
	for _, stats := range r.PerLanguage {
		if stats.Failed > 0 {
			return false
		}
	}
	return true
}
