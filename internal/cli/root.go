// internal/cli/root.go
package cli

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
	"qctriage/internal/config"
	"qctriage/internal/version"
)

// TriageFunc runs a full triage with validated settings. stdout receives the
// summary.
type TriageFunc func(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error

// NewRoot builds the command tree. triage is called by the triage command.
func NewRoot(triage TriageFunc) *cobra.Command {
	root := &cobra.Command{
		Use:   "qctriage",
		Short: "qctriage: sort antibody heavy/light chain pairs into QC tiers",
		Long: `qctriage matches paired heavy/light chain sequences to laboratory QC
measurements (CRL, quality score) and sorts every pair into one of seven
tiers. Tier 7 collects pairs with missing chains or missing QC data.`,
		Version:       version.Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return usage(fmt.Errorf("unknown command %q for %q", args[0], cmd.CommandPath()))
			}
			return cmd.Help()
		},
	}
	root.SetVersionTemplate("qctriage version {{.Version}}\n")
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error { return usage(err) })

	root.AddCommand(
		newTriageCmd(triage),
		newClassifyCmd(),
		newParseCmd(),
		newVersionCmd(),
	)
	return root
}

func newTriageCmd(triage TriageFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "triage --qc FILE... --sequences FILE... --out DIR",
		Short: "Triage QC data and sequences into seven category buckets",
		Example: `  qctriage triage --qc QC.xlsx --sequences seqs.fasta --out triaged
  qctriage triage -q plate1.xlsx -q plate2.xlsx -s fasta_dir -o out --split-qc --format json
  qctriage triage -q qc.csv -s seqs.fa -o out --vocabulary ab --threads 0`,
		Args: usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateRun(); err != nil {
				return usage(err)
			}
			return triage(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	fs := cmd.Flags()
	addSettingsFlag(fs)
	addTriageFlags(fs)
	addVocabularyFlags(fs)
	addThresholdFlags(fs)
	cmd.Flags().SortFlags = false
	return cmd
}

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify CRL QUALITY",
		Short: "Print the category of one read",
		Long: `Print the category (1-7) for one CRL / quality score pair. Blank or
non-numeric values classify as 7.`,
		Args: usageArgs(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Thresholds.Validate(); err != nil {
				return usage(err)
			}
			c := cfg.Thresholds.Classify(category.ParseMetric(args[0]), category.ParseMetric(args[1]))
			_, err = fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		},
	}
	addSettingsFlag(cmd.Flags())
	addThresholdFlags(cmd.Flags())
	return cmd
}

func newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse NAME...",
		Short: "Show how sequence or template names are parsed",
		Args:  usageArgs(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			voc, err := cfg.Vocab()
			if err != nil {
				return usage(err)
			}
			p := chainid.NewParser(voc)
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "name\tbase\tfull\tchain")
			for _, name := range args {
				id, err := p.Parse(name)
				if err != nil {
					fmt.Fprintf(tw, "%s\t-\t-\t%v\n", name, err)
					continue
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, id.Base, id.Full, id.Chain)
			}
			return tw.Flush()
		},
	}
	addSettingsFlag(cmd.Flags())
	addVocabularyFlags(cmd.Flags())
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "qctriage version %s\n", version.Version)
			return err
		},
	}
}
