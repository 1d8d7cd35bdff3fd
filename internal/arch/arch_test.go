// internal/arch/arch_test.go
package arch

import (
	"bytes"
	"encoding/json"
	"io"
	"os/exec"
	"strings"
	"testing"
)

type pkg struct {
	ImportPath string
	Imports    []string
	Standard   bool
}

const mod = "qctriage/"

// The triage core works on plain values; files, logging and the command
// line live around it.
var surroundings = []string{
	"qctriage/internal/qc", "qctriage/internal/fasta",
	"qctriage/internal/pipeline", "qctriage/internal/writers",
	"qctriage/internal/config", "qctriage/internal/cli",
	"qctriage/internal/logging", "qctriage/internal/app",
	"qctriage/cmd/",
}

var outer = []string{
	"qctriage/internal/config", "qctriage/internal/cli",
	"qctriage/internal/app", "qctriage/internal/appshell",
	"qctriage/cmd/",
}

func TestImportBoundaries(t *testing.T) {
	cmd := exec.Command("go", "list", "-json", "../../...")
	var out bytes.Buffer
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		t.Fatalf("go list: %v", err)
	}
	dec := json.NewDecoder(&out)

	bans := map[string][]string{
		"qctriage/internal/category":  surroundings,
		"qctriage/internal/chainid":   surroundings,
		"qctriage/internal/pairs":     surroundings,
		"qctriage/internal/partition": surroundings,
		"qctriage/internal/stats":     surroundings,
		"qctriage/internal/pipeline":  append([]string{"qctriage/internal/writers"}, outer...),
		"qctriage/internal/writers":   append([]string{"qctriage/internal/pipeline", "qctriage/internal/qc"}, outer...),
		"qctriage/internal/qc":        append([]string{"qctriage/internal/pipeline", "qctriage/internal/writers"}, outer...),
		"qctriage/internal/fasta":     append([]string{"qctriage/internal/pipeline", "qctriage/internal/writers"}, outer...),
		"qctriage/pkg/api":            {"qctriage/internal/"},
	}
	// Only the edges of the program may log.
	thirdParty := map[string][]string{
		"qctriage/internal/category":  {"go.uber.org/zap"},
		"qctriage/internal/chainid":   {"go.uber.org/zap"},
		"qctriage/internal/pairs":     {"go.uber.org/zap"},
		"qctriage/internal/partition": {"go.uber.org/zap"},
		"qctriage/internal/stats":     {"go.uber.org/zap"},
	}

	var violations []string
	for {
		var p pkg
		if err := dec.Decode(&p); err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if !strings.HasPrefix(p.ImportPath, mod) {
			continue
		}
		imp := p.ImportPath
		for _, dep := range p.Imports {
			for _, ban := range bans[imp] {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, imp+" → "+dep)
				}
			}
			for _, ban := range thirdParty[imp] {
				if strings.HasPrefix(dep, ban) {
					violations = append(violations, imp+" → "+dep)
				}
			}
		}
	}

	if len(violations) > 0 {
		t.Fatalf("import boundary violations:\n  %s", strings.Join(violations, "\n  "))
	}
}
