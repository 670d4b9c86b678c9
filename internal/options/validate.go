// Package options provides shared utilities for option validation across packages.
package options

import (
	"strings"

	"github.com/oasnav/oasnav/oaserrors"
)

// Source names one way of supplying input and whether it was set.
type Source struct {
	Name string
	Set  bool
}

// ValidateSingleInputSource ensures exactly one input source is specified.
// component prefixes the error message (e.g. "document").
// Returns a *oaserrors.ConfigError if zero or more than one source is set.
func ValidateSingleInputSource(component string, sources ...Source) error {
	var names, set []string
	for _, s := range sources {
		names = append(names, s.Name)
		if s.Set {
			set = append(set, s.Name)
		}
	}

	switch len(set) {
	case 1:
		return nil
	case 0:
		return &oaserrors.ConfigError{
			Option:  "input",
			Message: component + ": must specify an input source (use " + strings.Join(names, ", ") + ")",
		}
	default:
		return &oaserrors.ConfigError{
			Option:  "input",
			Value:   strings.Join(set, ", "),
			Message: component + ": must specify exactly one input source",
		}
	}
}
