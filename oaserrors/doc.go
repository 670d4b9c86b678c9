// Package oaserrors provides structured error types for the oasnav library.
//
// Import path: github.com/oasnav/oasnav/oaserrors
//
// Navigation building is tolerant: missing paths, tags or schemas degrade to
// empty results rather than errors. The types here cover the few places that
// do fail: decoding, configuration, resource limits and strict id checking.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON decoding failures and a non-mapping document root
//   - [ReferenceError]: local $ref resolution failures and circular references
//   - [ResourceLimitError]: input size and $ref depth limits
//   - [ConfigError]: invalid options or input sources
//   - [DuplicateIDError]: two navigation entries computed the same id
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrDuplicateID]: Matches any [DuplicateIDError]
//
// # Usage Examples
//
//	result, err := document.ParseWithOptions(document.WithFilePath("api.yaml"))
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // Handle parse error
//	}
//
// Unresolved local references never fail a parse; they are recorded as
// warnings on the result:
//
//	for _, w := range result.Warnings {
//	    fmt.Println(w)
//	}
package oaserrors
