// internal/app/triage.go
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"qctriage/internal/chainid"
	"qctriage/internal/cliutil"
	"qctriage/internal/config"
	"qctriage/internal/fasta"
	"qctriage/internal/logging"
	"qctriage/internal/pipeline"
	"qctriage/internal/qc"
	"qctriage/internal/runutil"
	"qctriage/internal/writers"
)

// Output file names inside --out.
const (
	LogName         = "log.txt"
	AssignmentsName = "assignments.jsonl"
)

// Triage runs one full triage: load, validate, run the pipeline, write every
// output and print the summary. Inputs are fully loaded and checked before
// anything is written to the output directory.
func Triage(ctx context.Context, cfg config.Config, stdout, stderr io.Writer) error {
	voc, err := cfg.Vocab()
	if err != nil {
		return err
	}
	parser := chainid.NewParser(voc)

	qcPaths, err := cliutil.ExpandGlobs(cfg.QC)
	if err != nil {
		return err
	}
	seqPaths, err := cliutil.ExpandGlobs(cfg.Sequences)
	if err != nil {
		return err
	}

	table, err := qc.LoadAll(ctx, qcPaths, cfg.Columns.Required()...)
	if err != nil {
		return err
	}
	rows, err := pipeline.RowsFromTable(table, cfg.Columns)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return eris.Wrap(ErrEmptyInput, "no QC rows read")
	}

	seqs, err := fasta.ReadAll(ctx, seqPaths)
	if err != nil {
		return err
	}
	if len(seqs) == 0 {
		return eris.Wrap(ErrEmptyInput, "no sequence records read")
	}

	var clones *qc.CloneMap
	if cfg.CloneMap != "" {
		if clones, err = qc.LoadCloneMap(cfg.CloneMap, cfg.CloneColumns); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.Out, 0o755); err != nil {
		return eris.Wrapf(err, "create output directory %s", cfg.Out)
	}
	logPath := filepath.Join(cfg.Out, LogName)
	logFile, err := os.Create(logPath)
	if err != nil {
		return eris.Wrapf(err, "create %s", logPath)
	}
	defer logFile.Close()

	log := logging.New(logging.Options{File: logFile, Stderr: stderr, Verbose: cfg.Verbose})
	defer func() { _ = log.Sync() }()
	log.Info("run started",
		zap.Strings("qc", qcPaths),
		zap.Strings("sequences", seqPaths),
		zap.String("vocabulary", voc.Name),
		zap.Float64("min_crl", cfg.Thresholds.MinCRL),
		zap.Float64("high_quality", cfg.Thresholds.HighQuality),
		zap.Float64("low_quality", cfg.Thresholds.LowQuality))

	p := pipeline.New(pipeline.Config{
		Threads:    runutil.EffectiveThreads(cfg.Threads),
		Thresholds: cfg.Thresholds,
	}, parser, log)
	res, err := p.Run(ctx, rows, seqs)
	if err != nil {
		return err
	}

	outputs, err := writeOutputs(cfg, qcPaths, table, res, clones, log)
	if err != nil {
		return err
	}
	outputs = append(outputs, logPath)
	log.Info("run finished", zap.Int("files", len(outputs)))

	return writers.WriteSummary(cfg.Format, stdout, writers.ToAPISummary(res.Summary, outputs))
}

// writeOutputs writes the bucket files, the augmented QC table and the
// optional extras, returning their paths.
func writeOutputs(cfg config.Config, qcPaths []string, table *qc.Table, res *pipeline.Result, clones *qc.CloneMap, log *zap.Logger) ([]string, error) {
	outputs, err := fasta.WriteBuckets(cfg.Out, &res.Buckets, cfg.Gzip)
	if err != nil {
		return nil, err
	}

	table.Augment(res.Augmentation())
	if clones != nil {
		n := qc.AnnotateClones(table, clones)
		log.Info("clone numbers annotated", zap.Int("matched", n), zap.Int("rows", len(table.Rows)))
	}
	qcPath := filepath.Join(cfg.Out, runutil.QCOutputName(cfg.QCOutput, qcPaths))
	if err := qc.Save(qcPath, table); err != nil {
		return nil, err
	}
	outputs = append(outputs, qcPath)

	if cfg.SplitQC {
		splits := qc.SplitByCategory(table, qc.ColPairCategory)
		paths, err := qc.SaveSplits(cfg.Out, runutil.QCOutputExt(cfg.QCOutput, qcPaths), splits)
		if err != nil {
			return nil, err
		}
		outputs = append(outputs, paths...)
	}

	if cfg.Assignments {
		p := filepath.Join(cfg.Out, AssignmentsName)
		if err := writeAssignmentsFile(p, res); err != nil {
			return nil, err
		}
		outputs = append(outputs, p)
	}
	return outputs, nil
}

func writeAssignmentsFile(path string, res *pipeline.Result) (err error) {
	fh, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := fh.Close(); err == nil && cerr != nil {
			err = eris.Wrapf(cerr, "close %s", path)
		}
	}()
	if err := writers.WriteAssignments(fh, res.Assignments); err != nil {
		return eris.Wrapf(err, "write %s", path)
	}
	return nil
}
