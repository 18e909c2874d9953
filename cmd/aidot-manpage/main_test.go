package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, run(&buf))

	out := buf.String()
	assert.Contains(t, out, `.TH "AIDOT" "1"`)
	assert.Contains(t, out, "aidot manual")
	assert.Contains(t, out, "SEE ALSO")
}
