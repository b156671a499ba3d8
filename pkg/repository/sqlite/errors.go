package sqlite

import (
	"errors"
	"strings"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
	"gorm.io/gorm"
)

// wrap classifies a driver error into the shared model sentinels so callers
// can branch on them regardless of backend.
func wrap(err error, msg string, opts ...goerr.Option) error {
	if err == nil {
		return nil
	}

	opts = append(opts, goerr.V("cause", err.Error()))
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return goerr.Wrap(model.ErrNotFound, msg, opts...)
	case errors.Is(err, gorm.ErrForeignKeyViolated), isForeignKeyViolation(err):
		return goerr.Wrap(model.ErrNotFound, msg, opts...)
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return goerr.Wrap(model.ErrDuplicate, msg, opts...)
	case isUnavailable(err):
		return goerr.Wrap(model.ErrStorageUnavailable, msg, opts...)
	default:
		return goerr.Wrap(err, msg, opts...)
	}
}

// wrapDelete is wrap for deletes. A foreign key failure on delete means
// another row still points at the target, which only happens on databases
// created before time_logs.user_id lost its constraint.
func wrapDelete(err error, msg string, opts ...goerr.Option) error {
	if err != nil && (errors.Is(err, gorm.ErrForeignKeyViolated) || isForeignKeyViolation(err)) {
		opts = append(opts, goerr.V("cause", err.Error()))
		return goerr.Wrap(model.ErrReferenced, msg, opts...)
	}
	return wrap(err, msg, opts...)
}

func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// On insert or update a foreign key failure means the referenced project
// does not exist.
func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUnavailable(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"database is locked",
		"SQLITE_BUSY",
		"SQLITE_IOERR",
		"disk I/O error",
		"unable to open database file",
		"sql: database is closed",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
