package integration

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"qctriage/internal/app"
)

func TestCanceledRunExits130(t *testing.T) {
	in := t.TempDir()
	qcFile := write(t, in, "qc.csv", qcHeader+"P1-H1,600,45\n")
	fa := write(t, in, "seqs.fa", ">P1-H1\nAA\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var errBuf bytes.Buffer
	code := app.RunContext(ctx, []string{"triage", "-q", qcFile, "-s", fa, "-o", filepath.Join(in, "out")}, io.Discard, &errBuf)
	assert.Equal(t, app.ExitInterrupted, code)
	assert.Equal(t, "interrupted\n", errBuf.String())
}
