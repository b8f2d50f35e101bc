package wcbplot

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the analysis constants that may be overridden from a file.
type Config struct {
	// Labels is the process label table, in match order.
	Labels []LabelRule `toml:"labels" yaml:"labels"`
	// Lumi is the integrated luminosity in fb^-1 shown on the plots.
	Lumi float64 `toml:"lumi" yaml:"lumi"`
	// Status is the experiment label qualifier.
	Status string `toml:"status" yaml:"status"`
	// WeightSet names the classifier weight set, see WeightSet.
	WeightSet string `toml:"weight-set" yaml:"weight-set"`
}

// DefaultConfig returns the built-in analysis constants.
func DefaultConfig() Config {
	return Config{
		Labels:    DefaultLabelRules(),
		Lumi:      59.8,
		Status:    "Work in progress",
		WeightSet: "0p6ttWcb_and_0p1ttLF",
	}
}

// LoadConfig reads a TOML or YAML file, chosen by extension, over the
// defaults. Fields absent from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(err, "failed to read config")
	}

	var file Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.Decode(string(raw), &file); err != nil {
			return Config{}, errors.Wrap(err, "failed to decode config")
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &file); err != nil {
			return Config{}, errors.Wrap(err, "failed to decode config")
		}
	default:
		return Config{}, errors.Errorf("unsupported config format %q", ext)
	}

	if len(file.Labels) > 0 {
		cfg.Labels = file.Labels
	}
	if file.Lumi > 0 {
		cfg.Lumi = file.Lumi
	}
	if file.Status != "" {
		cfg.Status = file.Status
	}
	if file.WeightSet != "" {
		cfg.WeightSet = file.WeightSet
	}
	return cfg, nil
}

// Resolver builds the process resolver of the configuration, with extra
// rules appended.
func (c Config) Resolver(extra ...LabelRule) (*Resolver, error) {
	rules := append(append([]LabelRule(nil), c.Labels...), extra...)
	return NewResolver(rules...)
}
