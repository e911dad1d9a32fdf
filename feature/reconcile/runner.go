package reconcile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cardpress/feature/inventory"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Run reconciles every card of the job and aggregates a report.
//
// Languages are processed sequentially with the primary language first: the
// shared art-only variant is written during that pass alone, so later
// languages never race it. Cards within a language fan out over the
// configured worker count.
func (e *Engine) Run(ctx context.Context, job Job) (*Report, error) {
	if job.SetID == "" {
		return nil, fmt.Errorf("job set ID must not be empty")
	}
	if len(job.Languages) == 0 {
		return nil, fmt.Errorf("job must name at least one language")
	}
	if len(job.Numbers) == 0 {
		return nil, fmt.Errorf("job must name at least one card number")
	}

	report := &Report{
		RunID:       uuid.NewString(),
		SetID:       job.SetID,
		DryRun:      job.DryRun,
		StartedAt:   time.Now(),
		PerLanguage: make(map[string]*LanguageStats, len(job.Languages)),
	}

	e.log.Info("reconciliation run started",
		zap.String("run_id", report.RunID),
		zap.String("set", job.SetID),
		zap.Strings("languages", job.Languages),
		zap.Int("cards", len(job.Numbers)),
		zap.Bool("dry_run", job.DryRun),
	)

	for _, language := range orderLanguages(job.Languages, e.cfg.PrimaryLanguage) {
		if ctx.Err() != nil {
			break
		}
		stats := &LanguageStats{}
		report.PerLanguage[language] = stats

		outcomes := e.runLanguage(ctx, job, language)
		for _, outcome := range outcomes {
			if outcome.Status == "" {
				// Card never ran; the run was cancelled mid-language.
				continue
			}
			stats.Checked++
			stats.IssuesFound += outcome.IssuesFound
			switch outcome.Status {
			case StatusConverged:
				if outcome.IssuesFound > 0 {
					stats.Recovered++
				}
			case StatusPlanned:
				// Dry run: issues are reported, nothing counts as failed.
			default:
				stats.Failed++
			}
			for _, f := range outcome.Failures {
				report.Errors = append(report.Errors,
					fmt.Sprintf("%s %s: %s", outcome.Card, f.Step, f.Cause))
			}
			report.Warnings = append(report.Warnings, outcome.Warnings...)
		}

		e.log.Info("language pass finished",
			zap.String("run_id", report.RunID),
			zap.String("language", language),
			zap.Int("checked", stats.Checked),
			zap.Int("issues", stats.IssuesFound),
			zap.Int("recovered", stats.Recovered),
			zap.Int("failed", stats.Failed),
		)
	}

	report.Duration = time.Since(report.StartedAt)
	return report, nil
}

// runLanguage reconciles all cards of one language, preserving the input
// card order in the returned outcomes.
func (e *Engine) runLanguage(ctx context.Context, job Job, language string) []CardOutcome {
	workers := e.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > len(job.Numbers) {
		workers = len(job.Numbers)
	}

	outcomes := make([]CardOutcome, len(job.Numbers))
	indices := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indices {
				card := inventory.CardKey{SetID: job.SetID, Language: language, Number: job.Numbers[i]}
				outcomes[i] = e.ReconcileCard(ctx, card, job.DryRun)
			}
		}()
	}

	for i := range job.Numbers {
		if ctx.Err() != nil {
			break
		}
		indices <- i
	}
	close(indices)
	wg.Wait()

	return outcomes
}

// orderLanguages moves the primary language to the front, keeping the
// caller's order otherwise. Reordering the input list must never change which
// language owns the art-only variant.
func orderLanguages(languages []string, primary string) []string {
	ordered := make([]string, 0, len(languages))
	for _, l := range languages {
		if l == primary {
			ordered = append(ordered, l)
		}
	}
	for _, l := range languages {
		if l != primary {
			ordered = append(ordered, l)
		}
	}
	return ordered
}
