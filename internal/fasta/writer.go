// internal/fasta/writer.go
package fasta

import (
	"fmt"
	"path/filepath"

	"github.com/rotisserie/eris"
	"github.com/shenwei356/xopen"

	"qctriage/internal/category"
	"qctriage/internal/partition"
)

// BucketName is the output file name for category c.
func BucketName(c category.Category, gz bool) string {
	name := fmt.Sprintf("Category_%d_paired_sequences.fasta", int(c))
	if gz {
		name += ".gz"
	}
	return name
}

// Write writes recs to path as ">id\nseq\n" records. A ".gz" path is
// compressed.
func Write(path string, recs []partition.Record) (err error) {
	w, err := xopen.Wopen(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := w.Close(); err == nil && cerr != nil {
			err = eris.Wrapf(cerr, "close %s", path)
		}
	}()
	for _, r := range recs {
		if _, err := fmt.Fprintf(w, ">%s\n%s\n", r.ID, r.Sequence); err != nil {
			return eris.Wrapf(err, "write %s", path)
		}
	}
	return nil
}

// WriteBuckets writes all seven bucket files into dir, empty ones included,
// and returns their paths in category order.
func WriteBuckets(dir string, b *partition.Buckets, gz bool) ([]string, error) {
	paths := make([]string, 0, len(category.All))
	for _, c := range category.All {
		p := filepath.Join(dir, BucketName(c, gz))
		if err := Write(p, b.Get(c)); err != nil {
			return paths, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}
