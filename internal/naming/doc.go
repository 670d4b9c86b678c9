// Package naming provides the slug function shared by id strategies and the
// workspace store.
//
// As an internal package, these functions are not part of the public API
// and may change without notice.
package naming
