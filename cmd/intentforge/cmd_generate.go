package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"intentforge/internal/config"
	"intentforge/internal/dataset"
	"intentforge/internal/jobs"
	"intentforge/internal/models"
	"intentforge/internal/oracle"
	"intentforge/internal/orchestration"
	"intentforge/internal/progress"
	"intentforge/internal/prompts"
)

var (
	generateRows        int
	generateOut         string
	generateProfilePath string
	generateModel       string
	generateConcurrency int
	generateCompress    bool
	generateMock        bool
	generateSeed        int64
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate labeled dataset partitions",
		Long: `Generate the synthetic dataset.

Builds a shuffled job sequence for every partition (train and test by
default), asks the oracle model for one scenario per job, validates each
response, and writes two JSONL artifacts per partition plus a manifest.

A --rows override replaces the default partitions with a single custom
partition whose rows are split evenly across the intent actions.`,
		Args: cobra.NoArgs,
		RunE: generateCommandE,
	}

	cmd.Flags().IntVar(&generateRows, "rows", 0, "Override total row count with a single custom partition")
	cmd.Flags().StringVarP(&generateOut, "out", "o", "", "Output directory (default: profile output_dir)")
	cmd.Flags().StringVar(&generateProfilePath, "profile", "", "Path to a profile file (default: discover intentforge.yaml)")
	cmd.Flags().StringVar(&generateModel, "model", "", "Oracle model id (overrides profile and environment)")
	cmd.Flags().IntVar(&generateConcurrency, "concurrency", 0, "Concurrent oracle calls (overrides profile and environment)")
	cmd.Flags().BoolVar(&generateCompress, "compress", false, "Gzip the JSONL artifacts")
	cmd.Flags().BoolVar(&generateMock, "mock", false, "Use the built-in mock oracle (no credential needed)")
	cmd.Flags().Int64Var(&generateSeed, "seed", 0, "Job shuffle seed (0 uses the current time)")

	return cmd
}

func generateCommandE(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()

	profile, err := loadProfile(generateProfilePath)
	if err != nil {
		return err
	}

	cfg, err := config.New(
		config.WithModel(firstNonEmpty(generateModel, profile.Model)),
		config.WithBaseURL(profile.BaseURL),
		config.WithConcurrency(firstPositive(generateConcurrency, profile.Concurrency)),
	)
	if err != nil {
		return err
	}

	executor := profile.Executor
	if generateMock {
		executor = config.ExecutorMock
	}

	grounding, err := resolveGrounding(profile)
	if err != nil {
		return err
	}

	gen, err := buildGenerator(executor, cfg, profile, grounding)
	if err != nil {
		return err
	}

	partitions := profile.EffectivePartitions()
	if generateRows > 0 {
		p, err := config.OverridePartition(generateRows)
		if err != nil {
			return err
		}
		partitions = []models.PartitionConfig{p}
	}

	outDir := firstNonEmpty(generateOut, profile.OutputDir, config.DefaultOutputDir)

	seed := generateSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	total := 0
	for _, p := range partitions {
		total += p.Rows()
	}

	fmt.Fprintf(w, "Generating dataset...\n")
	fmt.Fprintf(w, "Model: %s\n", cfg.Model())
	fmt.Fprintf(w, "Executor: %s\n", executor)
	fmt.Fprintf(w, "Workers: %d\n", cfg.Concurrency())
	fmt.Fprintf(w, "Partitions: %d (%d rows total)\n\n", len(partitions), total)

	ctx := cmd.Context()

	manifest := dataset.NewManifest(cfg.Model())
	lists := profile.Lists()

	offset := 0
	for _, p := range partitions {
		jobList, err := jobs.Build(p, offset, rng, lists)
		if err != nil {
			return err
		}
		offset += p.Rows()

		scenarios, err := runPartition(ctx, w, gen, cfg.Concurrency(), p, jobList)
		if err != nil {
			return err
		}

		rows, err := dataset.BuildRows(scenarios, grounding)
		if err != nil {
			return err
		}

		art, err := dataset.WritePartition(outDir, p.OutputID, rows, dataset.WriteOptions{Compress: generateCompress})
		if err != nil {
			return err
		}
		manifest.AddPartition(p, art)
	}

	manifestPath, err := manifest.Write(outDir)
	if err != nil {
		return err
	}

	printGenerateSummary(w, manifest, manifestPath)
	return nil
}

// runPartition executes one partition's jobs on a fresh runner, drawing a
// progress bar unless --quiet was given.
func runPartition(ctx context.Context, w io.Writer, gen oracle.Generator, workers int, p models.PartitionConfig, jobList []models.Job) ([]models.Scenario, error) {
	runner := orchestration.NewRunner(gen, orchestration.WithWorkers(workers))

	var bar *progress.Bar
	if !quiet {
		// Narrow terminals get a shorter fill so the line never wraps.
		var opts []progress.Option
		if tw := progress.TerminalWidth(int(os.Stdout.Fd())); tw > 0 && tw < 80 {
			opts = append(opts, progress.WithBarWidth(tw-50))
		}
		bar = progress.New(w, p.Name, len(jobList), opts...)
		runner.OnProgress(func(event orchestration.ProgressEvent) {
			if event.EventType == orchestration.EventJobComplete {
				bar.Update(event.Completed)
			}
		})
	}

	scenarios, err := runner.Run(ctx, jobList)
	if bar != nil {
		bar.Done()
	}
	if err != nil {
		return nil, fmt.Errorf("partition %s: %w", p.Name, err)
	}
	return scenarios, nil
}

func buildGenerator(executor string, cfg *config.Config, profile *config.Profile, grounding string) (oracle.Generator, error) {
	switch executor {
	case config.ExecutorMock:
		return oracle.NewMock(), nil
	case config.ExecutorHTTP:
		if err := cfg.RequireAPIKey(); err != nil {
			return nil, err
		}
		params, err := profile.OracleParams()
		if err != nil {
			return nil, err
		}
		return oracle.NewClient(oracle.Config{
			BaseURL:   cfg.BaseURL(),
			APIKey:    cfg.APIKey(),
			Model:     cfg.Model(),
			Params:    params,
			Grounding: grounding,
		})
	default:
		return nil, fmt.Errorf("unknown executor %q", executor)
	}
}

// resolveGrounding returns the grounding document text, preferring a file
// named by the profile over the embedded default. File documents are
// structure-checked before use so a malformed doc fails the run up front.
func resolveGrounding(profile *config.Profile) (string, error) {
	if profile.Grounding == "" {
		return prompts.Grounding(), nil
	}

	return prompts.LoadGrounding(profile.Grounding)
}

func printGenerateSummary(w io.Writer, m *dataset.Manifest, manifestPath string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "="+strings.Repeat("=", 50))
	fmt.Fprintln(w, " GENERATION COMPLETE")
	fmt.Fprintln(w, "="+strings.Repeat("=", 50))
	fmt.Fprintf(w, "Run ID: %s\n", m.RunID)
	for _, p := range m.Partitions {
		fmt.Fprintf(w, "  %s: %d rows -> %s (full: %s)\n", p.Name, p.Rows, p.Merged, p.Full)
	}
	fmt.Fprintf(w, "Manifest: %s\n", manifestPath)
}
