package http_test

import (
	"net/http"
	"testing"

	server "github.com/athelas-portal/athelas/pkg/controller/http"
	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestStatusOf(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		want int
	}{
		{"missing field", goerr.Wrap(model.ErrMissingRequired, "name is required"), http.StatusBadRequest},
		{"unknown user", goerr.Wrap(usecase.ErrUserNotFound, "user not found"), http.StatusNotFound},
		{"duplicate code", goerr.Wrap(model.ErrDuplicate, "taken"), http.StatusConflict},
		{"user with logged time", goerr.Wrap(model.ErrReferenced, "failed to delete user"), http.StatusConflict},
		{"database locked", goerr.Wrap(model.ErrStorageUnavailable, "locked"), http.StatusServiceUnavailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gt.Value(t, server.StatusOf(tc.err)).Equal(tc.want)
		})
	}
}
