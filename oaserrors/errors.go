package oaserrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinels matched by the error types below through errors.Is.
var (
	ErrParse             = errors.New("parse error")
	ErrReference         = errors.New("reference error")
	ErrCircularReference = errors.New("circular reference")
	ErrResourceLimit     = errors.New("resource limit exceeded")
	ErrConfig            = errors.New("configuration error")
	ErrDuplicateID       = errors.New("duplicate id")
)

// message assembles "kind qualifier: detail: cause", skipping empty parts.
type message struct {
	b strings.Builder
}

func newMessage(kind string) *message {
	m := &message{}
	m.b.WriteString(kind)
	return m
}

func (m *message) qualify(format string, args ...any) *message {
	m.b.WriteByte(' ')
	fmt.Fprintf(&m.b, format, args...)
	return m
}

func (m *message) detail(s string) *message {
	if s != "" {
		m.b.WriteString(": ")
		m.b.WriteString(s)
	}
	return m
}

func (m *message) cause(err error) *message {
	if err != nil {
		m.detail(err.Error())
	}
	return m
}

func (m *message) String() string { return m.b.String() }

// ParseError reports a document that could not be decoded.
type ParseError struct {
	// Path is the file path or synthetic source name.
	Path string
	// Line and Column locate the failure; zero when unknown.
	Line   int
	Column int
	// Message describes the failure.
	Message string
	// Cause is the decoder error, if any.
	Cause error
}

func (e *ParseError) Error() string {
	m := newMessage("parse error")
	if e.Path != "" {
		m.qualify("in %s", e.Path)
	}
	switch {
	case e.Line > 0 && e.Column > 0:
		m.qualify("at line %d, column %d", e.Line, e.Column)
	case e.Line > 0:
		m.qualify("at line %d", e.Line)
	}
	return m.detail(e.Message).cause(e.Cause).String()
}

func (e *ParseError) Unwrap() error { return e.Cause }

func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ReferenceError reports a $ref that was not followed. Reference errors are
// recorded as parse warnings; they never fail a parse.
type ReferenceError struct {
	// Ref is the $ref value as written.
	Ref string
	// Remote is set for refs outside the document, which are never fetched.
	Remote bool
	// IsCircular is set when the ref chain loops back on itself.
	IsCircular bool
	// Message adds context.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ReferenceError) Error() string {
	kind := "reference error"
	switch {
	case e.IsCircular:
		kind = "circular reference"
	case e.Remote:
		kind = "remote reference"
	}
	return newMessage(kind).detail(e.Ref).detail(e.Message).cause(e.Cause).String()
}

func (e *ReferenceError) Unwrap() error { return e.Cause }

// Is matches ErrReference, and ErrCircularReference when IsCircular is set.
func (e *ReferenceError) Is(target error) bool {
	return target == ErrReference || (target == ErrCircularReference && e.IsCircular)
}

// ResourceLimitError reports an input that exceeded a configured limit.
type ResourceLimitError struct {
	// ResourceType is "input_size" or "ref_depth".
	ResourceType string
	// Limit is the configured maximum.
	Limit int64
	// Actual is the observed value; zero when unknown.
	Actual int64
	// Message adds context, typically the source or ref.
	Message string
}

func (e *ResourceLimitError) Error() string {
	m := newMessage("resource limit exceeded").detail(e.ResourceType)
	switch {
	case e.Limit > 0 && e.Actual > 0:
		m.qualify("(limit: %d, actual: %d)", e.Limit, e.Actual)
	case e.Limit > 0:
		m.qualify("(limit: %d)", e.Limit)
	}
	return m.detail(e.Message).String()
}

func (e *ResourceLimitError) Unwrap() error { return nil }

func (e *ResourceLimitError) Is(target error) bool { return target == ErrResourceLimit }

// ConfigError reports an invalid option, input source or sorter name.
type ConfigError struct {
	// Option names the offending option.
	Option string
	// Value is what was provided; nil when the option was missing.
	Value any
	// Message describes the problem.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *ConfigError) Error() string {
	m := newMessage("configuration error")
	if e.Option != "" {
		m.qualify("for %s", e.Option)
	}
	if e.Value != nil {
		m.qualify("(value: %v)", e.Value)
	}
	return m.detail(e.Message).cause(e.Cause).String()
}

func (e *ConfigError) Unwrap() error { return e.Cause }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// DuplicateIDError reports two navigation entries that computed the same id
// while strict id checking was enabled.
type DuplicateIDError struct {
	// ID is the colliding id.
	ID string
	// Existing is the title registered first under ID.
	Existing string
	// Title is the title of the entry that collided.
	Title string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate id %q: %q collides with %q", e.ID, e.Title, e.Existing)
}

func (e *DuplicateIDError) Unwrap() error { return nil }

func (e *DuplicateIDError) Is(target error) bool { return target == ErrDuplicateID }
