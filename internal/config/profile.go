package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"intentforge/internal/jobs"
	"intentforge/internal/models"
	"intentforge/internal/oracle"
)

// ProfileName is the file Load searches for.
const ProfileName = "intentforge.yaml"

// Executor selects how scenarios are generated.
const (
	ExecutorHTTP = "http"
	ExecutorMock = "mock"
)

// DefaultOutputDir is where artifacts land unless overridden.
const DefaultOutputDir = "dataset"

// Profile is the optional generation profile loaded from intentforge.yaml.
type Profile struct {
	Executor    string                   `yaml:"executor,omitempty"`
	Model       string                   `yaml:"model,omitempty"`
	BaseURL     string                   `yaml:"base_url,omitempty"`
	Concurrency int                      `yaml:"concurrency,omitempty"`
	OutputDir   string                   `yaml:"output_dir,omitempty"`
	Grounding   string                   `yaml:"grounding,omitempty"`
	Params      map[string]any           `yaml:"params,omitempty"`
	Partitions  []models.PartitionConfig `yaml:"partitions,omitempty"`
	Themes      map[string][]string      `yaml:"themes,omitempty"`
	Styles      []string                 `yaml:"styles,omitempty"`
}

// NewProfile returns a profile with all defaults populated.
func NewProfile() *Profile {
	return &Profile{
		Executor:  ExecutorHTTP,
		OutputDir: DefaultOutputDir,
	}
}

// Load finds intentforge.yaml by walking up from startDir (max 10 levels),
// unmarshals it, and fills in missing fields with defaults. If no profile
// file is found, returns defaults with a nil error. Real I/O errors (e.g.
// permission denied) are returned to the caller.
func Load(startDir string) (*Profile, error) {
	data, err := findProfileFile(startDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return NewProfile(), nil
		}
		return nil, fmt.Errorf("loading %s: %w", ProfileName, err)
	}
	return parseProfile(data)
}

// LoadFile reads a profile from an explicit path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading profile %s: %w", path, err)
	}
	return parseProfile(data)
}

func parseProfile(data []byte) (*Profile, error) {
	p := NewProfile()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ProfileName, err)
	}
	if p.Executor == "" {
		p.Executor = ExecutorHTTP
	}
	if p.OutputDir == "" {
		p.OutputDir = DefaultOutputDir
	}
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

// findProfileFile walks up from dir looking for intentforge.yaml (max 10
// levels). Returns os.ErrNotExist if no profile is found.
func findProfileFile(dir string) ([]byte, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving path %q: %w", dir, err)
	}
	dir = absDir

	for i := 0; i < 10; i++ {
		p := filepath.Join(dir, ProfileName)
		data, err := os.ReadFile(p)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("reading %q: %w", p, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break // reached filesystem root
		}
		dir = parent
	}
	return nil, os.ErrNotExist
}

// Validate checks the profile for values no run could honor.
func (p *Profile) Validate() error {
	switch p.Executor {
	case "", ExecutorHTTP, ExecutorMock:
	default:
		return fmt.Errorf("unknown executor %q (want %q or %q)", p.Executor, ExecutorHTTP, ExecutorMock)
	}
	if p.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", p.Concurrency)
	}
	for i := range p.Partitions {
		if err := p.Partitions[i].Validate(); err != nil {
			return fmt.Errorf("partition %d: %w", i, err)
		}
	}
	for name, themes := range p.Themes {
		if !models.Action(name).Valid() {
			return fmt.Errorf("themes: unknown action %q", name)
		}
		if len(themes) == 0 {
			return fmt.Errorf("themes: empty list for action %q", name)
		}
	}
	for i, s := range p.Styles {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("styles: entry %d is empty", i)
		}
	}
	return nil
}

// EffectivePartitions returns the profile's partitions, or the standard
// train/test split when the profile declares none.
func (p *Profile) EffectivePartitions() []models.PartitionConfig {
	if len(p.Partitions) > 0 {
		return p.Partitions
	}
	return DefaultPartitions()
}

// OracleParams decodes the free-form params map into typed sampling
// parameters, starting from the defaults.
func (p *Profile) OracleParams() (oracle.Params, error) {
	params := oracle.DefaultParams()
	if len(p.Params) == 0 {
		return params, nil
	}
	if err := mapstructure.Decode(p.Params, &params); err != nil {
		return oracle.Params{}, fmt.Errorf("decoding oracle params: %w", err)
	}
	return params, nil
}

// Lists returns the theme and style tables with profile overrides applied.
func (p *Profile) Lists() jobs.Lists {
	lists := jobs.DefaultLists()
	for name, themes := range p.Themes {
		lists.Themes[models.Action(name)] = themes
	}
	if len(p.Styles) > 0 {
		lists.Styles = p.Styles
	}
	return lists
}
