package model

import "github.com/m-mizutani/goerr/v2"

// Validation errors
var (
	ErrMissingRequired = goerr.New("required field is missing")
	ErrInvalidValue    = goerr.New("invalid field value")
)

// Storage errors shared by every repository backend
var (
	ErrNotFound           = goerr.New("record not found")
	ErrDuplicate          = goerr.New("unique constraint violated")
	ErrReferenced         = goerr.New("record is still referenced")
	ErrStorageUnavailable = goerr.New("storage unavailable")
)

// Context keys for error values
const (
	FieldKey = "field"
	ValueKey = "value"
)

func missing(field string) error {
	return goerr.Wrap(ErrMissingRequired, field+" is required", goerr.V(FieldKey, field))
}

func invalid(field string, value any, cause error) error {
	if cause == nil {
		return goerr.Wrap(ErrInvalidValue, "invalid "+field, goerr.V(FieldKey, field), goerr.V(ValueKey, value))
	}
	return goerr.Wrap(ErrInvalidValue, "invalid "+field+": "+cause.Error(), goerr.V(FieldKey, field), goerr.V(ValueKey, value))
}
