package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"cardpress/feature/inventory"
	"cardpress/feature/reconcile"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	setFlag       string
	languagesFlag string
	cardsFlag     string
	fixFlag       bool
	jsonFlag      bool
)

// repairCmd represents the repair command
var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Validate the card inventory and repair gaps",
	Long: `Walks the expected artifact inventory for the given set, languages, and card
range, then downloads, resizes, crops, and converts whatever is missing or
malformed. Without --fix this is a dry run: issues are computed and reported
but nothing is written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := buildJob(!fixFlag)
		if err != nil {
			return err
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}
		defer d.log.Sync()

		report, err := d.engine.Run(cmd.Context(), job)
		if err != nil {
			return err
		}

		if jsonFlag {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			fmt.Println(string(out))
		} else {
			printReport(report)
		}

		if !report.Converged() {
			d.log.Warn("run finished with unrecovered cards", zap.String("run_id", report.RunID))
			os.Exit(1)
		}
		return nil
	},
}

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the card inventory without repairing",
	Long: `Runs the validator over the expected artifact inventory and reports every
missing or malformed artifact. Nothing is ever written; this is the safe
default to reach for before enabling repair.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		job, err := buildJob(true)
		if err != nil {
			return err
		}

		d, err := buildDeps()
		if err != nil {
			return err
		}
		defer d.log.Sync()

		report, err := d.engine.Run(cmd.Context(), job)
		if err != nil {
			return err
		}

		if jsonFlag {
			out, err := json.MarshalIndent(report, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render report: %w", err)
			}
			fmt.Println(string(out))
		} else {
			printReport(report)
		}

		total := 0
		for _, stats := range report.PerLanguage {
			total += stats.IssuesFound
		}
		if total > 0 {
			os.Exit(1)
		}
		return nil
	},
}

// buildJob turns the enumeration flags into a reconciliation job.
func buildJob(dryRun bool) (reconcile.Job, error) {
	if setFlag == "" {
		return reconcile.Job{}, fmt.Errorf("--set is required")
	}
	var languages []string
	for _, l := range strings.Split(languagesFlag, ",") {
		if l = strings.TrimSpace(l); l != "" {
			languages = append(languages, strings.ToLower(l))
		}
	}
	if len(languages) == 0 {
		return reconcile.Job{}, fmt.Errorf("--languages is required")
	}
	numbers, err := inventory.ParseNumberRange(cardsFlag)
	if err != nil {
		return reconcile.Job{}, fmt.Errorf("--cards: %w", err)
	}
	return reconcile.Job{
		SetID:     setFlag,
		Languages: languages,
		Numbers:   numbers,
		DryRun:    dryRun,
	}, nil
}

// printReport renders the human-readable run summary.
func printReport(report *reconcile.Report) {
	mode := "repair"
	if report.DryRun {
		mode = "dry-run"
	}
	fmt.Printf("run %s (%s) set=%s took %s\n", report.RunID, mode, report.SetID, report.Duration.Round(1e6))

	languages := make([]string, 0, len(report.PerLanguage))
	for l := range report.PerLanguage {
		languages = append(languages, l)
	}
	sort.Strings(languages)
	for _, l := range languages {
		stats := report.PerLanguage[l]
		fmt.Printf("  %-5s checked=%-4d issues=%-4d recovered=%-4d failed=%d\n",
			l, stats.Checked, stats.IssuesFound, stats.Recovered, stats.Failed)
	}
	for _, w := range report.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}
	for _, e := range report.Errors {
		fmt.Printf("  error: %s\n", e)
	}
}

func init() {
	for _, c := range []*cobra.Command{repairCmd, checkCmd} {
		c.Flags().StringVar(&setFlag, "set", "", "set identifier (e.g. swsh1)")
		c.Flags().StringVar(&languagesFlag, "languages", "", "comma-separated language list (e.g. en,it,de)")
		c.Flags().StringVar(&cardsFlag, "cards", "", "card numbers (e.g. 001-165 or 042,099)")
	}
	repairCmd.Flags().BoolVar(&fixFlag, "fix", false, "apply repairs (default is dry run)")
	repairCmd.Flags().BoolVar(&jsonFlag, "json", false, "print the report as JSON")
	checkCmd.Flags().BoolVar(&jsonFlag, "json", false, "print the report as JSON")

	RootCmd.AddCommand(repairCmd)
	RootCmd.AddCommand(checkCmd)
}
