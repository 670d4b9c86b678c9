// Package httputil provides the HTTP method constants shared by traversal
// and sorting.
package httputil

import "strings"

// HTTP Method Constants
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace" // OAS 3.0+ only
)

// Methods lists every path-item key that holds an operation, in the
// conventional reading order used for method sorting.
var Methods = []string{
	MethodGet,
	MethodPost,
	MethodPut,
	MethodPatch,
	MethodDelete,
	MethodOptions,
	MethodHead,
	MethodTrace,
}

var methodSet = func() map[string]bool {
	m := make(map[string]bool, len(Methods))
	for _, method := range Methods {
		m[method] = true
	}
	return m
}()

// IsMethod reports whether key names an HTTP operation (case-insensitive).
func IsMethod(key string) bool {
	return methodSet[strings.ToLower(key)]
}
