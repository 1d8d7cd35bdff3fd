package appshell

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunPassesArgsAndCode(t *testing.T) {
	var got []string
	code := run(func(ctx context.Context, argv []string, _, _ io.Writer) int {
		got = argv
		assert.NoError(t, ctx.Err())
		return 3
	}, []string{"triage", "-q", "x"}, io.Discard, io.Discard)

	assert.Equal(t, 3, code)
	assert.Equal(t, []string{"triage", "-q", "x"}, got)
}
