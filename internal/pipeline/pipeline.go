// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
	"qctriage/internal/pairs"
	"qctriage/internal/partition"
	"qctriage/internal/stats"
)

// Config controls a triage run.
type Config struct {
	Threads    int // ingestion workers (>=1)
	Thresholds category.Thresholds
}

// Pipeline holds what every phase shares: the parser selected for the run,
// the thresholds and the logger.
type Pipeline struct {
	cfg    Config
	parser *chainid.Parser
	log    *zap.Logger
}

// New returns a Pipeline. A nil logger discards events.
func New(cfg Config, p *chainid.Parser, log *zap.Logger) *Pipeline {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, parser: p, log: log}
}

// Outcome is what ingestion made of one QC row.
type Outcome struct {
	Row       Row
	ID        chainid.ID
	Err       error // parse failure; the row was skipped
	Category  category.Category
	Reduction pairs.Reduction
}

// Parsed reports whether the row's name was recognized.
func (o Outcome) Parsed() bool { return o.Err == nil }

// Ingested is the result of the Ingest phase.
type Ingested struct {
	Registry *pairs.Registry
	Reducer  *pairs.Reducer
	Outcomes []Outcome // one per input row, input order
	Parsed   int
}

// Checked is the result of the Check phase.
type Checked struct {
	*Ingested
	Sequences       *pairs.SequenceIndex
	Inconsistencies []pairs.Inconsistency
}

// Resolved is the result of the Resolve phase.
type Resolved struct {
	*Checked
	Resolutions []pairs.Resolution
	Table       pairs.Table
}

// Partitioned is the result of the Partition phase.
type Partitioned struct {
	*Resolved
	Buckets     partition.Buckets
	Assignments []partition.Assignment
}

// Ingest classifies every row and folds it into a fresh registry. With more
// than one worker, rows are sharded by base id so every entry is written by a
// single worker in input order; the outcome is identical to a serial run.
func (p *Pipeline) Ingest(ctx context.Context, rows []Row) (*Ingested, error) {
	in := &Ingested{
		Registry: pairs.NewRegistry(),
		Reducer:  pairs.NewReducer(),
		Outcomes: make([]Outcome, len(rows)),
	}

	ids := make([]chainid.ID, len(rows))
	errs := make([]error, len(rows))
	for i, r := range rows {
		ids[i], errs[i] = p.parser.Parse(r.Name)
	}

	n := p.cfg.Threads
	if n > len(rows) {
		n = len(rows)
	}
	if n <= 1 {
		for i := range rows {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			p.absorb(in, i, rows[i], ids[i], errs[i])
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		for w := 0; w < n; w++ {
			g.Go(func() error {
				for i := range rows {
					key := rows[i].Name
					if errs[i] == nil {
						key = ids[i].Base
					}
					if pairs.ShardOf(key, n) != w {
						continue
					}
					if err := gctx.Err(); err != nil {
						return err
					}
					p.absorb(in, i, rows[i], ids[i], errs[i])
				}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	}

	for _, o := range in.Outcomes {
		if o.Parsed() {
			in.Parsed++
		}
		p.logOutcome(o)
	}
	p.log.Info("ingest complete",
		zap.Int("rows", len(rows)),
		zap.Int("parsed", in.Parsed),
		zap.Int("chains", in.Reducer.Len()),
		zap.Int("pairs", in.Registry.Len()))
	return in, nil
}

// absorb writes Outcomes[i]; each index is owned by exactly one worker.
func (p *Pipeline) absorb(in *Ingested, i int, r Row, id chainid.ID, err error) {
	o := Outcome{Row: r, Err: err, Category: category.Unclassified}
	if err == nil {
		o.ID = id
		o.Category = p.cfg.Thresholds.Classify(r.CRL, r.Quality)
		o.Reduction = in.Reducer.Observe(id.Full, o.Category)
		in.Registry.Upsert(id, o.Category)
	}
	in.Outcomes[i] = o
}

func (p *Pipeline) logOutcome(o Outcome) {
	if !o.Parsed() {
		p.log.Warn("skipping unparsable QC name",
			zap.String("row", o.Row.Label),
			zap.String("name", o.Row.Name))
		return
	}
	p.log.Info("classified",
		zap.String("template", o.Row.Name),
		zap.Stringer("crl", o.Row.CRL),
		zap.Stringer("qs", o.Row.Quality),
		zap.Stringer("chain", o.ID.Chain),
		zap.Stringer("category", o.Category))
	if o.Reduction.Improved && !o.Reduction.First {
		p.log.Debug("updated to lower category",
			zap.String("full_id", o.ID.Full),
			zap.Stringer("from", o.Reduction.Prev),
			zap.Stringer("to", o.Reduction.Best))
	}
}

// Check reconciles the registry with the sequence names, demoting chains
// whose counterpart is missing.
func (p *Pipeline) Check(in *Ingested, seqs []partition.Record) *Checked {
	names := make([]string, len(seqs))
	for i, s := range seqs {
		names[i] = s.ID
	}
	c := &Checked{Ingested: in, Sequences: pairs.IndexSequences(p.parser, names)}
	c.Inconsistencies = pairs.Check(in.Registry, p.parser, c.Sequences)

	for _, inc := range c.Inconsistencies {
		switch inc.Kind {
		case pairs.MissingSequence:
			p.log.Warn("no sequence for QC chain, demoted to 7",
				zap.String("base_id", inc.Base),
				zap.String("full_id", inc.Full),
				zap.Bool("qc_seen", inc.QCSeen))
		case pairs.MissingQC:
			p.log.Warn("no QC data for sequence",
				zap.String("base_id", inc.Base),
				zap.String("full_id", inc.Full))
		case pairs.Unparsable:
			p.log.Warn("skipping unparsable sequence name", zap.String("name", inc.Name))
		}
	}
	return c
}

// Resolve fixes every pair's tier.
func (p *Pipeline) Resolve(c *Checked) *Resolved {
	r := &Resolved{Checked: c, Resolutions: pairs.ResolveAll(c.Registry)}
	r.Table = pairs.NewTable(r.Resolutions)
	for _, res := range r.Resolutions {
		p.log.Info("pair resolved",
			zap.String("base_id", res.Base),
			zap.Stringer("heavy", res.Heavy),
			zap.Stringer("light", res.Light),
			zap.Stringer("pair_category", res.Pair),
			zap.String("determined_by", p.parser.Vocabulary().Token(res.DeterminedBy)),
			zap.Bool("heavy_demoted", res.HeavyDemoted),
			zap.Bool("light_demoted", res.LightDemoted))
	}
	return r
}

// Partition places every sequence record into exactly one bucket.
func (p *Pipeline) Partition(r *Resolved, seqs []partition.Record) *Partitioned {
	b, asg := partition.Partition(p.parser, r.Table, seqs)
	for _, a := range asg {
		p.log.Info("assigned",
			zap.String("fasta_id", a.Record.ID),
			zap.Stringer("category", a.Category),
			zap.Stringer("reason", a.Reason))
	}
	return &Partitioned{Resolved: r, Buckets: b, Assignments: asg}
}

// Summarize counts the result and logs one line per tier.
func (p *Pipeline) Summarize(pt *Partitioned) stats.Summary {
	var badQC []string
	for _, o := range pt.Outcomes {
		if !o.Parsed() {
			badQC = append(badQC, o.Row.Name)
		}
	}
	s := stats.Build(stats.Input{
		Vocabulary:      p.parser.Vocabulary().Name,
		QCRows:          len(pt.Outcomes),
		QCRowsParsed:    pt.Parsed,
		UnparsableQC:    badQC,
		Chains:          pt.Reducer.Len(),
		Buckets:         &pt.Buckets,
		Resolutions:     pt.Resolutions,
		Inconsistencies: pt.Inconsistencies,
	})
	for i, t := range s.SequencesByTier {
		pr := s.PairsByTier[i]
		p.log.Info("tier",
			zap.Stringer("category", t.Category),
			zap.Int("sequences", t.Count),
			zap.Float64("sequences_pct", t.Percent),
			zap.Int("pairs", pr.Count),
			zap.Float64("pairs_pct", pr.Percent))
	}
	p.log.Info("summary",
		zap.Int("sequences", s.TotalSequences),
		zap.Int("pairs", s.TotalPairs),
		zap.Int("qc_missing_sequence", len(s.Anomalies.QCMissingSequence)),
		zap.Int("sequence_missing_qc", len(s.Anomalies.SequenceMissingQC)),
		zap.Int("unparsable_names", len(s.Anomalies.UnparsableNames)),
		zap.Int("unparsable_qc", len(s.Anomalies.UnparsableQC)))
	return s
}

// Result is a completed run.
type Result struct {
	*Partitioned
	Summary stats.Summary
}

// Run chains all phases.
func (p *Pipeline) Run(ctx context.Context, rows []Row, seqs []partition.Record) (*Result, error) {
	in, err := p.Ingest(ctx, rows)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	pt := p.Partition(p.Resolve(p.Check(in, seqs)), seqs)
	return &Result{Partitioned: pt, Summary: p.Summarize(pt)}, nil
}

// Augmentation returns the chain and pair category cells for every QC row,
// aligned with the rows given to Ingest. Rows whose name did not parse get
// blank cells.
func (r *Resolved) Augmentation() (chain, pair []string) {
	chain = make([]string, len(r.Outcomes))
	pair = make([]string, len(r.Outcomes))
	for i, o := range r.Outcomes {
		if !o.Parsed() {
			continue
		}
		chain[i] = o.Category.String()
		pair[i] = r.Table.Category(o.ID.Base).String()
	}
	return chain, pair
}

// IsCanceled reports whether err stems from context cancellation.
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
