package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arbiterhq/arbiter/internal/feature"
	"github.com/arbiterhq/arbiter/internal/rule"
	"github.com/arbiterhq/arbiter/internal/transcript"
)

var (
	jsonOut bool
	flagged bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "a6scan <transcript.jsonl>",
		Short: "Scan a chatbot transcript for A6 relationship-signal evidence",
		Long: "a6scan runs the deterministic rule path offline: it extracts the five\n" +
			"behavioral signals from a JSONL transcript and prints the rule verdict.\n" +
			"No model calls are made.",
		Args:          cobra.ExactArgs(1),
		RunE:          runScan,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.Flags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON instead of a report")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if flagged {
		os.Exit(2)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	turns, err := transcript.ParseFile(args[0])
	if err != nil {
		return fmt.Errorf("parse transcript: %w", err)
	}

	report := feature.Extract(turns)
	verdict := rule.Evaluate(report)
	flagged = verdict.Flag

	if jsonOut {
		out := struct {
			Features feature.Report `json:"features"`
			Rule     rule.Verdict   `json:"rule_verdict"`
		}{report, verdict}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	printReport(args[0], len(turns), report, verdict)
	return nil
}

func printReport(path string, turnCount int, report feature.Report, verdict rule.Verdict) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	faint := color.New(color.Faint)

	bold.Printf("%s", path)
	fmt.Printf(" — %d turns\n\n", turnCount)

	for _, key := range feature.Keys {
		rec := report[key]
		if rec.Present {
			green.Printf("  present ")
		} else {
			red.Printf("  absent  ")
		}
		fmt.Printf("%s\n", key)
		for _, ev := range rec.Evidence {
			faint.Printf("           [%d] %q\n", ev.TurnIndex, ev.Quote)
		}
	}

	fmt.Println()
	if verdict.Flag {
		red.Add(color.Bold).Println("A6 FLAGGED")
	} else {
		green.Add(color.Bold).Println("not flagged")
	}
	fmt.Printf("%s\n", verdict.Rationale)
	faint.Printf("rule %s\n", verdict.RuleVersion)
}
