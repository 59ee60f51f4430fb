package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"intentforge/internal/config"
	"intentforge/internal/prompts"
)

var checkProfilePath string

func newCheckCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify profile, credential, and grounding document",
		Long: `Check that a generation run could start.

Loads the profile, resolves the effective configuration, verifies the
grounding document's structure, and confirms the oracle credential is
present when the profile uses the HTTP executor.`,
		Args:          cobra.NoArgs,
		RunE:          checkCommandE,
		SilenceErrors: true,
	}
	cmd.Flags().StringVar(&checkProfilePath, "profile", "", "Path to a profile file (default: discover intentforge.yaml)")
	return cmd
}

type checkResult struct {
	label  string
	detail string
	ok     bool
}

func checkCommandE(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	var results []checkResult
	add := func(label string, ok bool, detail string) {
		results = append(results, checkResult{label: label, detail: detail, ok: ok})
	}

	profile, err := loadProfile(checkProfilePath)
	if err != nil {
		add("Profile", false, err.Error())
		profile = config.NewProfile()
	} else {
		add("Profile", true, fmt.Sprintf("executor=%s output_dir=%s", profile.Executor, profile.OutputDir))
	}

	cfg, err := config.New(
		config.WithModel(profile.Model),
		config.WithBaseURL(profile.BaseURL),
		config.WithConcurrency(profile.Concurrency),
	)
	if err != nil {
		add("Configuration", false, err.Error())
	} else {
		add("Configuration", true, fmt.Sprintf("model=%s workers=%d", cfg.Model(), cfg.Concurrency()))

		if profile.Executor == config.ExecutorMock {
			add("Credential", true, "not required for the mock executor")
		} else if err := cfg.RequireAPIKey(); err != nil {
			add("Credential", false, err.Error())
		} else {
			add("Credential", true, config.EnvAPIKey+" is set")
		}
	}

	if _, err := profile.OracleParams(); err != nil {
		add("Oracle params", false, err.Error())
	} else {
		add("Oracle params", true, "decoded")
	}

	if profile.Grounding == "" {
		if err := prompts.VerifyDoc([]byte(prompts.Grounding())); err != nil {
			add("Grounding", false, err.Error())
		} else {
			add("Grounding", true, "built-in document")
		}
	} else if _, err := prompts.LoadGrounding(profile.Grounding); err != nil {
		add("Grounding", false, err.Error())
	} else {
		add("Grounding", true, profile.Grounding)
	}

	lists := profile.Lists()
	themes := 0
	for _, t := range lists.Themes {
		themes += len(t)
	}
	add("Variety", true, fmt.Sprintf("%d themes across %d actions, %d styles", themes, len(lists.Themes), len(lists.Styles)))

	partitions := profile.EffectivePartitions()
	total := 0
	names := make([]string, 0, len(partitions))
	for _, p := range partitions {
		total += p.Rows()
		names = append(names, fmt.Sprintf("%s=%d", p.Name, p.Rows()))
	}
	add("Partitions", true, fmt.Sprintf("%d rows (%s)", total, strings.Join(names, ", ")))

	failures := printCheckResults(w, results)
	if failures > 0 {
		return fmt.Errorf("%d of %d checks failed", failures, len(results))
	}

	fmt.Fprintf(w, "\nReady to generate.\n") //nolint:errcheck
	return nil
}

func printCheckResults(w io.Writer, results []checkResult) int {
	width := 0
	for _, r := range results {
		if lw := runewidth.StringWidth(r.label); lw > width {
			width = lw
		}
	}

	failures := 0
	for _, r := range results {
		icon := "✅"
		if !r.ok {
			icon = "❌"
			failures++
		}
		fmt.Fprintf(w, "%s %s  %s\n", icon, padRight(r.label, width), r.detail) //nolint:errcheck
	}
	return failures
}

// padRight pads s with spaces to reach the given display width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}
