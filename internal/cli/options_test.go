// internal/cli/options_test.go
package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"qctriage/internal/category"
	"qctriage/internal/chainid"
	"qctriage/internal/config"
)

type captured struct {
	cfg    config.Config
	called bool
}

func execute(t *testing.T, args ...string) (string, *captured, error) {
	t.Helper()
	got := &captured{}
	root := NewRoot(func(_ context.Context, cfg config.Config, _, _ io.Writer) error {
		got.cfg, got.called = cfg, true
		return nil
	})
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), got, err
}

func isUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

func TestTriageFlagsOK(t *testing.T) {
	_, got, err := execute(t, "triage",
		"--qc", "a.xlsx", "-q", "b.csv",
		"--sequences", "ref.fa",
		"--out", "out",
		"--threads", "4", "--format", "json",
		"--min-crl", "450", "--split-qc",
	)
	if err != nil {
		t.Fatalf("parse err: %v", err)
	}
	if !got.called {
		t.Fatal("triage handler not called")
	}
	c := got.cfg
	if len(c.QC) != 2 || c.QC[1] != "b.csv" || c.Sequences[0] != "ref.fa" || c.Out != "out" {
		t.Errorf("bad inputs %+v", c)
	}
	if c.Threads != 4 || c.Format != "json" || !c.SplitQC || c.Assignments {
		t.Errorf("bad run options %+v", c)
	}
	want := category.Thresholds{MinCRL: 450, HighQuality: 40, LowQuality: 25}
	if c.Thresholds != want {
		t.Errorf("thresholds = %+v, want %+v", c.Thresholds, want)
	}
}

func TestTriageCustomVocabulary(t *testing.T) {
	_, got, err := execute(t, "triage", "-q", "qc.csv", "-s", "s.fa", "-o", "o",
		"--heavy-token", "VH", "--light-token", "VL")
	if err != nil {
		t.Fatal(err)
	}
	v, err := got.cfg.Vocab()
	if err != nil || v.Heavy != "VH" || v.Light != "VL" {
		t.Fatalf("vocab = %+v, %v", v, err)
	}
}

func TestTriageUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"missing qc":        {"triage", "-s", "s.fa", "-o", "o"},
		"missing sequences": {"triage", "-q", "qc.csv", "-o", "o"},
		"missing out":       {"triage", "-q", "qc.csv", "-s", "s.fa"},
		"bad format":        {"triage", "-q", "qc.csv", "-s", "s.fa", "-o", "o", "--format", "xml"},
		"bad vocabulary":    {"triage", "-q", "qc.csv", "-s", "s.fa", "-o", "o", "--vocabulary", "xy"},
		"unknown flag":      {"triage", "--bogus"},
		"positional":        {"triage", "extra"},
		"negative threads":  {"triage", "-q", "qc.csv", "-s", "s.fa", "-o", "o", "-t", "-2"},
		"unknown command":   {"frobnicate"},
		"missing settings":  {"triage", "--config", "/nonexistent/settings.yaml"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, got, err := execute(t, args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !isUsage(err) {
				t.Fatalf("want usage error, got %T: %v", err, err)
			}
			if got.called {
				t.Fatal("handler must not run on usage errors")
			}
		})
	}
}

func TestClassifyCommand(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"classify", "600", "45"}, "1"},
		{[]string{"classify", "300", "30"}, "5"},
		{[]string{"classify", "", "30"}, "7"},
		{[]string{"classify", "600", "39.5"}, "7"},
		{[]string{"classify", "--min-crl", "700", "600", "45"}, "4"},
	}
	for _, c := range cases {
		out, _, err := execute(t, c.args...)
		if err != nil {
			t.Fatalf("%v: %v", c.args, err)
		}
		if strings.TrimSpace(out) != c.want {
			t.Errorf("%v => %q, want %s", c.args, out, c.want)
		}
	}
	if _, _, err := execute(t, "classify", "600"); !isUsage(err) {
		t.Errorf("one argument should be a usage error, got %v", err)
	}
}

func TestParseCommand(t *testing.T) {
	out, _, err := execute(t, "parse", "TDM-1-H23-mIgGR1_C04.ab1", "garbage")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("want header + 2 lines, got:\n%s", out)
	}
	if f := strings.Fields(lines[1]); len(f) != 4 || f[1] != "TDM-1-23" || f[2] != "TDM-1-H23" || f[3] != chainid.Heavy.String() {
		t.Errorf("parsed line = %q", lines[1])
	}
	if !strings.Contains(lines[2], "no <prefix>-<chain><number> suffix") {
		t.Errorf("failure line = %q", lines[2])
	}

	out, _, err = execute(t, "parse", "--vocabulary", "ab", "C7-b12")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "C7-12") || !strings.Contains(out, chainid.Light.String()) {
		t.Errorf("positional parse output:\n%s", out)
	}
}

func TestVersion(t *testing.T) {
	for _, args := range [][]string{{"version"}, {"--version"}} {
		out, _, err := execute(t, args...)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(out, "qctriage version ") {
			t.Errorf("%v => %q", args, out)
		}
	}
}

func TestHelpIsNotAnError(t *testing.T) {
	out, _, err := execute(t)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "triage") || !strings.Contains(out, "classify") {
		t.Errorf("help output missing commands:\n%s", out)
	}
}
