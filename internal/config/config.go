// Package config holds the run settings, unmarshalled from viper: defaults,
// an optional YAML settings file, QCTRIAGE_* environment variables and
// command-line flags, in increasing precedence.
package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
	"qctriage/internal/pipeline"
	"qctriage/internal/qc"
	"qctriage/internal/writers"
)

// EnvPrefix prefixes every environment override, e.g. QCTRIAGE_MIN_CRL.
const EnvPrefix = "QCTRIAGE"

// Config is the root-level settings struct for a triage run.
type Config struct {
	// inputs: QC spreadsheets and FASTA files (files or directories)
	QC        []string `mapstructure:"qc"`
	Sequences []string `mapstructure:"sequences"`
	// directory receiving every output file
	Out string `mapstructure:"out"`

	// naming scheme; a custom token pair overrides the named vocabulary
	Vocabulary string `mapstructure:"vocabulary"`
	HeavyToken string `mapstructure:"heavy-token"`
	LightToken string `mapstructure:"light-token"`

	Thresholds category.Thresholds `mapstructure:",squash"`
	Columns    pipeline.Columns    `mapstructure:"columns"`

	Threads int    `mapstructure:"threads"`
	Format  string `mapstructure:"format"`

	SplitQC      bool            `mapstructure:"split-qc"`
	Assignments  bool            `mapstructure:"assignments"`
	CloneMap     string          `mapstructure:"clone-map"`
	CloneColumns qc.CloneColumns `mapstructure:"clone-columns"`
	QCOutput     string          `mapstructure:"qc-output"`
	Gzip         bool            `mapstructure:"gzip"`

	Verbose bool `mapstructure:"verbose"`
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("vocabulary", chainid.Letters.Name)
	v.SetDefault("min-crl", category.DefaultThresholds.MinCRL)
	v.SetDefault("high-quality", category.DefaultThresholds.HighQuality)
	v.SetDefault("low-quality", category.DefaultThresholds.LowQuality)
	v.SetDefault("columns.template", pipeline.DefaultColumns.Template)
	v.SetDefault("columns.crl", pipeline.DefaultColumns.CRL)
	v.SetDefault("columns.quality", pipeline.DefaultColumns.Quality)
	v.SetDefault("clone-columns.light", qc.DefaultCloneColumns.Light)
	v.SetDefault("clone-columns.heavy", qc.DefaultCloneColumns.Heavy)
	v.SetDefault("clone-columns.clone", qc.DefaultCloneColumns.Clone)
	v.SetDefault("threads", 1)
	v.SetDefault("format", "text")
}

// New returns a viper instance with defaults and environment binding.
func New() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional settings file and unmarshals v into a Config.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, eris.Wrapf(err, "read settings %s", file)
		}
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, eris.Wrap(err, "decode settings")
	}
	return c, nil
}

// Vocab resolves the chain token vocabulary.
func (c Config) Vocab() (chainid.Vocabulary, error) {
	if c.HeavyToken != "" || c.LightToken != "" {
		return chainid.Custom(c.HeavyToken, c.LightToken)
	}
	return chainid.Lookup(c.Vocabulary)
}

// Validate checks everything that does not need the file system.
func (c Config) Validate() error {
	if _, err := c.Vocab(); err != nil {
		return err
	}
	if err := c.Thresholds.Validate(); err != nil {
		return err
	}
	if c.Threads < 0 {
		return fmt.Errorf("threads must be >= 0, got %d", c.Threads)
	}
	if !slices.Contains(writers.SummaryFormats(), c.Format) {
		return fmt.Errorf("invalid format %q (want one of %s)", c.Format, strings.Join(writers.SummaryFormats(), ", "))
	}
	for name, col := range map[string]string{
		"columns.template": c.Columns.Template,
		"columns.crl":      c.Columns.CRL,
		"columns.quality":  c.Columns.Quality,
	} {
		if strings.TrimSpace(col) == "" {
			return fmt.Errorf("%s must not be empty", name)
		}
	}
	return nil
}

// ValidateRun additionally requires the inputs and output of a triage run.
func (c Config) ValidateRun() error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch {
	case len(c.QC) == 0:
		return fmt.Errorf("at least one --qc file is required")
	case len(c.Sequences) == 0:
		return fmt.Errorf("at least one --sequences file is required")
	case c.Out == "":
		return fmt.Errorf("--out directory is required")
	}
	return nil
}
