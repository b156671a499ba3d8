package types

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ErrInvalidValue is returned by the Parse functions of this package.
var ErrInvalidValue = goerr.New("invalid enum value")

// parseEnum matches s against all, ignoring case and surrounding spaces.
func parseEnum[T ~string](kind, s string, all []T) (T, error) {
	trimmed := strings.TrimSpace(s)
	for _, v := range all {
		if strings.EqualFold(string(v), trimmed) {
			return v, nil
		}
	}
	return "", goerr.Wrap(ErrInvalidValue, "unknown "+kind, goerr.V("kind", kind), goerr.V("value", s))
}

// parseOptionalEnum is parseEnum that accepts a blank string as the zero value.
func parseOptionalEnum[T ~string](kind, s string, all []T) (T, error) {
	if strings.TrimSpace(s) == "" {
		return "", nil
	}
	return parseEnum(kind, s, all)
}
