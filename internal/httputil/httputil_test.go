package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMethod(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"get", true},
		{"GET", true},
		{"Patch", true},
		{"trace", true},
		{"parameters", false},
		{"summary", false},
		{"x-internal", false},
		{"query", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, IsMethod(tt.key))
		})
	}
}

func TestHTTPMethodConstants(t *testing.T) {
	assert.Equal(t, []string{"get", "post", "put", "patch", "delete", "options", "head", "trace"}, Methods)
	for _, m := range Methods {
		assert.True(t, IsMethod(m), m)
	}
}
