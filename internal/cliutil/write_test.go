package cliutil

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWritef(t *testing.T) {
	var buf bytes.Buffer
	Writef(&buf, "%s %d\n", "pets", 3)
	Writef(&buf, "done\n")
	assert.Equal(t, "pets 3\ndone\n", buf.String())
}

func TestWritef_WriteError(t *testing.T) {
	assert.NotPanics(t, func() { Writef(failingWriter{}, "lost") })
}

func TestIndent(t *testing.T) {
	tests := []struct {
		depth int
		want  string
	}{
		{-1, ""},
		{0, ""},
		{1, "  "},
		{3, "      "},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Indent(tt.depth), "depth %d", tt.depth)
	}
}
