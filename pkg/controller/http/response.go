package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/athelas-portal/athelas/pkg/domain/model"
	"github.com/athelas-portal/athelas/pkg/domain/types"
	"github.com/athelas-portal/athelas/pkg/service/tabular"
	"github.com/athelas-portal/athelas/pkg/usecase"
	"github.com/athelas-portal/athelas/pkg/utils/errutil"
	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
)

var errBadRequest = goerr.New("bad request")

// writeJSON writes a JSON response with proper error handling
func writeJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		errutil.Handle(ctx, err, "failed to encode JSON response")
	}
}

// decodeJSON reads a request body into v. Unknown fields are rejected so
// only the columns of the target struct can be set.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return goerr.Wrap(errBadRequest, "request body is empty")
		}
		return goerr.Wrap(errBadRequest, "malformed request body: "+err.Error())
	}
	return nil
}

// handleError maps domain errors to HTTP status codes.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge

	case errors.Is(err, errBadRequest),
		errors.Is(err, model.ErrMissingRequired),
		errors.Is(err, model.ErrInvalidValue),
		errors.Is(err, types.ErrInvalidValue),
		errors.Is(err, usecase.ErrNoFields),
		errors.Is(err, usecase.ErrUnknownEntity),
		errors.Is(err, tabular.ErrEmptyFile),
		errors.Is(err, tabular.ErrMissingColumn):
		return http.StatusBadRequest

	case errors.Is(err, usecase.ErrUserNotFound),
		errors.Is(err, usecase.ErrProjectNotFound),
		errors.Is(err, usecase.ErrIncidentNotFound),
		errors.Is(err, usecase.ErrMilestoneNotFound),
		errors.Is(err, usecase.ErrSessionNotFound),
		errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, model.ErrDuplicate),
		errors.Is(err, model.ErrReferenced):
		return http.StatusConflict

	case errors.Is(err, usecase.ErrAccessDenied):
		return http.StatusUnauthorized
	case errors.Is(err, usecase.ErrAdminDisabled):
		return http.StatusForbidden

	case errors.Is(err, model.ErrStorageUnavailable),
		errors.Is(err, usecase.ErrNoSink):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, goerr.Wrap(errBadRequest, "invalid id", goerr.V("id", raw))
	}
	return id, nil
}

// queryInt64 returns nil when key is absent.
func queryInt64(r *http.Request, key string) (*int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, goerr.Wrap(errBadRequest, "invalid "+key, goerr.V(key, raw))
	}
	return &v, nil
}

func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}
