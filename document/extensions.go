package document

import (
	"strconv"
	"strings"
)

// Extension keys the navigation layer reads.
const (
	ExtInternal    = "x-internal"
	ExtIgnore      = "x-scalar-ignore"
	ExtDisplayName = "x-displayName"
	ExtTagGroups   = "x-tagGroups"
	ExtOrder       = "x-scalar-order"
)

// Extensions holds the x-* properties of an object, decoded to plain Go values.
type Extensions map[string]any

// Bool reports whether the extension is present and truthy.
// Strings are parsed with strconv.ParseBool when possible; any other
// non-empty string, non-zero number or non-nil collection counts as true.
func (e Extensions) Bool(key string) bool {
	v, ok := e[key]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case uint64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// Text returns the extension as a string, or "" when absent or not a string.
func (e Extensions) Text(key string) string {
	s, _ := e[key].(string)
	return s
}

// Hidden reports whether the object is flagged x-internal or x-scalar-ignore.
func (e Extensions) Hidden() bool {
	return e.Bool(ExtInternal) || e.Bool(ExtIgnore)
}
