package oaserrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseError(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		err := &ParseError{
			Path:    "/path/to/file.yaml",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   errors.New("underlying error"),
		}
		assert.Equal(t, "parse error in /path/to/file.yaml at line 42, column 10: invalid syntax: underlying error", err.Error())
	})

	t.Run("minimal fields", func(t *testing.T) {
		assert.Equal(t, "parse error", (&ParseError{}).Error())
		assert.Equal(t, "parse error at line 10", (&ParseError{Line: 10}).Error())
	})

	t.Run("unwrap and is", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		assert.Equal(t, cause, err.Unwrap())
		assert.ErrorIs(t, err, ErrParse)
		assert.NotErrorIs(t, err, ErrReference)
	})

	t.Run("as through wrapping", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ParseError{Path: "test.yaml", Line: 5})
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "test.yaml", parseErr.Path)
		assert.Equal(t, 5, parseErr.Line)
	})
}

func TestReferenceError(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/components/parameters/Limit", Message: "not found"}
		assert.Equal(t, "reference error: #/components/parameters/Limit: not found", err.Error())
	})

	t.Run("circular", func(t *testing.T) {
		err := &ReferenceError{Ref: "#/components/examples/A", IsCircular: true}
		assert.Equal(t, "circular reference: #/components/examples/A", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.ErrorIs(t, err, ErrCircularReference)
	})

	t.Run("remote", func(t *testing.T) {
		err := &ReferenceError{Ref: "other.yaml#/Pet", Remote: true, Message: "not followed"}
		assert.Equal(t, "remote reference: other.yaml#/Pet: not followed", err.Error())
		assert.ErrorIs(t, err, ErrReference)
		assert.NotErrorIs(t, err, ErrCircularReference)
	})

	t.Run("cause chain", func(t *testing.T) {
		root := errors.New("boom")
		wrapped := fmt.Errorf("resolve: %w", &ReferenceError{Ref: "#/x", Cause: root})
		assert.ErrorIs(t, wrapped, root)
	})
}

func TestResourceLimitError(t *testing.T) {
	err := &ResourceLimitError{ResourceType: "input_size", Limit: 100, Actual: 250}
	assert.Equal(t, "resource limit exceeded: input_size (limit: 100, actual: 250)", err.Error())
	assert.Nil(t, err.Unwrap())
	assert.ErrorIs(t, err, ErrResourceLimit)

	noActual := &ResourceLimitError{ResourceType: "ref_depth", Limit: 32, Message: "too deep"}
	assert.Equal(t, "resource limit exceeded: ref_depth (limit: 32): too deep", noActual.Error())

	assert.Equal(t, "resource limit exceeded", (&ResourceLimitError{}).Error())
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Option: "operations_sorter", Value: "size", Message: "unknown sorter"}
	assert.Equal(t, "configuration error for operations_sorter (value: size): unknown sorter", err.Error())
	assert.ErrorIs(t, err, ErrConfig)
	assert.NotErrorIs(t, err, ErrParse)

	missing := &ConfigError{Option: "input", Message: "exactly one input source is required"}
	assert.Equal(t, "configuration error for input: exactly one input source is required", missing.Error())

	cause := errors.New("bad name")
	assert.ErrorIs(t, &ConfigError{Option: "tags_sorter", Cause: cause}, cause)
}

func TestDuplicateIDError(t *testing.T) {
	err := &DuplicateIDError{ID: "tag/pets", Existing: "Pets", Title: "pets"}
	assert.Equal(t, `duplicate id "tag/pets": "pets" collides with "Pets"`, err.Error())
	assert.ErrorIs(t, fmt.Errorf("traverse: %w", err), ErrDuplicateID)
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrParse,
		ErrReference,
		ErrCircularReference,
		ErrResourceLimit,
		ErrConfig,
		ErrDuplicateID,
	}
	for i, s1 := range sentinels {
		for j, s2 := range sentinels {
			if i != j {
				assert.NotErrorIs(t, s1, s2)
			}
		}
	}
}
