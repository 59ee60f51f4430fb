package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"intentforge/internal/config"
)

var initForce bool

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Create an intentforge.yaml profile",
		Long: `Create a generation profile with a guided form.

Collects the executor, oracle model, worker count, and output directory,
then writes intentforge.yaml to the given directory (default: current
directory).`,
		Args: cobra.MaximumNArgs(1),
		RunE: initCommandE,
	}
	cmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing profile")
	return cmd
}

func initCommandE(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, config.ProfileName)
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	profile, err := runProfileForm(cmd.InOrStdin(), cmd.OutOrStdout())
	if err != nil {
		return err
	}

	content, err := yaml.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encoding profile: %w", err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'intentforge check' to verify it.\n")
	return nil
}

// runProfileForm collects profile answers interactively. When the input is
// not a terminal the form switches to accessible mode, which reads
// line-based answers and keeps the command scriptable.
func runProfileForm(in io.Reader, out io.Writer) (*config.Profile, error) {
	var (
		executor       = config.ExecutorHTTP
		model          = config.DefaultModel
		concurrencyRaw = strconv.Itoa(config.DefaultConcurrency)
		outputDir      = config.DefaultOutputDir
	)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Executor").
				Description("http calls the oracle API; mock synthesizes rows locally").
				Options(
					huh.NewOption("http", config.ExecutorHTTP),
					huh.NewOption("mock", config.ExecutorMock),
				).
				Value(&executor),
			huh.NewInput().
				Title("Oracle model").
				Description("Chat-completion model id").
				Placeholder(config.DefaultModel).
				Value(&model).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("model is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Workers").
				Description("Concurrent oracle calls").
				Value(&concurrencyRaw).
				Validate(func(s string) error {
					n, err := strconv.Atoi(strings.TrimSpace(s))
					if err != nil || n < 1 {
						return errors.New("workers must be a positive integer")
					}
					return nil
				}),
			huh.NewInput().
				Title("Output directory").
				Value(&outputDir),
		),
	).
		WithInput(in).
		WithOutput(out)

	if f, ok := in.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		form = form.WithAccessible(true)
	}

	if err := form.Run(); err != nil {
		return nil, fmt.Errorf("profile form failed: %w", err)
	}

	concurrency, err := strconv.Atoi(strings.TrimSpace(concurrencyRaw))
	if err != nil {
		return nil, fmt.Errorf("invalid worker count %q: %w", concurrencyRaw, err)
	}

	return &config.Profile{
		Executor:    executor,
		Model:       strings.TrimSpace(model),
		Concurrency: concurrency,
		OutputDir:   strings.TrimSpace(outputDir),
	}, nil
}
