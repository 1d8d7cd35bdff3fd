// internal/cli/options.go
package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
	"qctriage/internal/config"
	"qctriage/internal/writers"
)

// UsageError marks bad invocations: unknown flags, wrong arguments and
// settings that fail validation.
type UsageError struct{ Err error }

func (e *UsageError) Error() string { return e.Err.Error() }
func (e *UsageError) Unwrap() error { return e.Err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	var ue *UsageError
	if errors.As(err, &ue) {
		return err
	}
	return &UsageError{Err: err}
}

// usageArgs wraps a positional-argument validator.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error { return usage(fn(cmd, args)) }
}

// addSettingsFlag registers --config.
func addSettingsFlag(fs *pflag.FlagSet) {
	fs.String("config", "", "YAML settings file (flags and QCTRIAGE_* variables override it)")
}

// addVocabularyFlags registers the naming scheme flags.
func addVocabularyFlags(fs *pflag.FlagSet) {
	fs.String("vocabulary", chainid.Letters.Name, "chain token vocabulary: "+strings.Join(chainid.Names(), " | "))
	fs.String("heavy-token", "", "custom heavy chain token (with --light-token)")
	fs.String("light-token", "", "custom light chain token (with --heavy-token)")
}

// addThresholdFlags registers the classification cut points.
func addThresholdFlags(fs *pflag.FlagSet) {
	d := category.DefaultThresholds
	fs.Float64("min-crl", d.MinCRL, "CRL at or above which a read is long")
	fs.Float64("high-quality", d.HighQuality, "quality score at or above which a read is high quality")
	fs.Float64("low-quality", d.LowQuality, "quality score below which a read is low quality")
}

// addTriageFlags registers the inputs, outputs and run options of triage.
func addTriageFlags(fs *pflag.FlagSet) {
	fs.StringSliceP("qc", "q", nil, "QC spreadsheet(s) or directories: .xlsx | .csv | .tsv (repeatable) [*]")
	fs.StringSliceP("sequences", "s", nil, "FASTA file(s) or directories, '-' for STDIN (repeatable) [*]")
	fs.StringP("out", "o", "", "output directory (created if missing) [*]")
	fs.IntP("threads", "t", 1, "ingestion workers (0 = all CPUs)")
	fs.StringP("format", "f", "text", "summary format on stdout: "+strings.Join(writers.SummaryFormats(), " | "))
	fs.Bool("split-qc", false, "also write one QC table per pair category")
	fs.Bool("assignments", false, "also write assignments.jsonl (one line per sequence)")
	fs.String("clone-map", "", "hybridoma sheet mapping chain names to clone numbers")
	fs.String("qc-output", "", "augmented QC table name (extension selects the format)")
	fs.Bool("gzip", false, "gzip the bucket FASTA files")
	fs.BoolP("verbose", "v", false, "log every event to stderr")
}

// loadConfig merges defaults, the settings file, environment and the flags of
// cmd into a Config.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	v := config.New()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return config.Config{}, err
	}
	file, _ := cmd.Flags().GetString("config")
	c, err := config.Load(v, file)
	if err != nil {
		return c, usage(err)
	}
	return c, nil
}
