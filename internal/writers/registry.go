// internal/writers/registry.go
package writers

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"syscall"

	"qctriage/pkg/api"
)

// SummaryWriter renders one summary.
type SummaryWriter func(w io.Writer, s api.SummaryV1) error

// SummaryWriters is the format → handler registry, filled in init blocks.
var SummaryWriters = map[string]SummaryWriter{}

// RegisterSummary adds a format (idempotent, last wins).
func RegisterSummary(format string, fn SummaryWriter) { SummaryWriters[format] = fn }

// SummaryFormats lists the registered formats, sorted.
func SummaryFormats() []string {
	out := make([]string, 0, len(SummaryWriters))
	for f := range SummaryWriters {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// WriteSummary dispatches on format.
func WriteSummary(format string, w io.Writer, s api.SummaryV1) error {
	fn, ok := SummaryWriters[format]
	if !ok {
		return fmt.Errorf("unknown summary format %q (no writer registered)", format)
	}
	return fn(w, s)
}

// IsBrokenPipe reports whether err means the reader of stdout went away, as
// with `qctriage triage ... | head`. Callers treat it as success.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe)
}
