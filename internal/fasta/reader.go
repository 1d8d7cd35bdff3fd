// internal/fasta/reader.go
package fasta

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/rotisserie/eris"
	"github.com/shenwei356/bio/seq"
	"github.com/shenwei356/bio/seqio/fastx"
	"golang.org/x/sync/errgroup"

	"qctriage/internal/partition"
)

// Extensions recognized when a directory is given. Each may carry a ".gz"
// suffix.
var Extensions = []string{".fasta", ".fa", ".fas", ".fna", ".seq"}

func init() {
	// Sequence payloads are opaque; never reject a record for its letters.
	seq.ValidateSeq = false
}

// Read loads every record of one FASTA file ("-" is stdin). The record id is
// the first whitespace-delimited token of the header.
func Read(ctx context.Context, path string) ([]partition.Record, error) {
	if path != "-" {
		if st, err := os.Stat(path); err != nil {
			return nil, eris.Wrapf(err, "stat %s", path)
		} else if st.Size() == 0 {
			return nil, nil
		}
	}
	reader, err := fastx.NewReader(seq.Unlimit, path, fastx.DefaultIDRegexp)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer reader.Close()

	var out []partition.Record
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "read %s", path)
		}
		// the reader reuses its buffers, so copy out
		out = append(out, partition.Record{
			ID:       string(rec.ID),
			Sequence: string(rec.Seq.Seq),
		})
	}
	return out, nil
}

// Expand replaces directories in paths by the FASTA files they contain, in
// natural order. "-" passes through.
func Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		if p == "-" {
			out = append(out, p)
			continue
		}
		st, err := os.Stat(p)
		if err != nil {
			return nil, eris.Wrapf(err, "stat %s", p)
		}
		if !st.IsDir() {
			out = append(out, p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, eris.Wrapf(err, "read dir %s", p)
		}
		var found []string
		for _, e := range entries {
			if !e.IsDir() && IsFASTA(e.Name()) {
				found = append(found, filepath.Join(p, e.Name()))
			}
		}
		sort.Slice(found, func(i, j int) bool { return natural.Less(found[i], found[j]) })
		out = append(out, found...)
	}
	return out, nil
}

// IsFASTA reports whether name has a FASTA extension, optionally gzipped.
func IsFASTA(name string) bool {
	name = strings.TrimSuffix(strings.ToLower(name), ".gz")
	ext := filepath.Ext(name)
	for _, e := range Extensions {
		if ext == e {
			return true
		}
	}
	return false
}

// ReadAll expands paths, reads the files concurrently and concatenates the
// records in argument order.
func ReadAll(ctx context.Context, paths []string) ([]partition.Record, error) {
	files, err := Expand(paths)
	if err != nil {
		return nil, err
	}
	parts := make([][]partition.Record, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, fn := range files {
		g.Go(func() error {
			recs, err := Read(gctx, fn)
			if err != nil {
				return err
			}
			parts[i] = recs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []partition.Record
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
