// internal/cliutil/cliutil.go
package cliutil

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maruel/natural"
	"github.com/rotisserie/eris"
)

// ErrNoMatch is returned when a glob pattern matches no file.
var ErrNoMatch = errors.New("no input matched")

func hasGlobMeta(s string) bool { return strings.ContainsAny(s, "*?[") }

// ExpandGlobs expands glob patterns among input paths, for shells that pass
// them through quoted or unexpanded. Plain paths and "-" are kept as given;
// the matches of each pattern are sorted naturally.
func ExpandGlobs(paths []string) ([]string, error) {
	var out []string
	for _, a := range paths {
		if a == "-" || !hasGlobMeta(a) {
			out = append(out, a)
			continue
		}
		m, err := filepath.Glob(a)
		if err != nil {
			return nil, eris.Wrapf(err, "bad glob %q", a)
		}
		if len(m) == 0 {
			return nil, eris.Wrapf(ErrNoMatch, "%q", a)
		}
		sort.Slice(m, func(i, j int) bool { return natural.Less(m[i], m[j]) })
		out = append(out, m...)
	}
	return out, nil
}
