package errutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/athelas-portal/athelas/pkg/utils/errutil"
	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
)

func TestHandle(t *testing.T) {
	ctx := context.Background()
	gt.NoError(t, errutil.Handle(ctx, nil, "nothing"))

	base := errors.New("boom")
	err := errutil.Handle(ctx, goerr.Wrap(base, "wrapped", goerr.V("id", 1)), "failed")
	gt.Error(t, err).Is(base)
}

func TestHandleReportsToSentry(t *testing.T) {
	transport := &sentry.MockTransport{}
	client, err := sentry.NewClient(sentry.ClientOptions{Transport: transport})
	gt.NoError(t, err).Required()
	ctx := sentry.SetHubOnContext(context.Background(), sentry.NewHub(client, sentry.NewScope()))

	errutil.Handle(ctx, goerr.New("import failed", goerr.V("entity", "projects"), goerr.V("row", 3)), "failed to import")

	events := transport.Events()
	gt.Array(t, events).Length(1).Required()
	gt.Value(t, events[0].Tags["message"]).Equal("failed to import")
	gt.Value(t, events[0].Contexts["goerr"]["entity"]).Equal(any("projects"))
	gt.Value(t, events[0].Contexts["goerr"]["row"]).Equal(any(3))

	t.Run("no client configured", func(t *testing.T) {
		before := len(transport.Events())
		errutil.Handle(context.Background(), goerr.New("quiet"), "ignored")
		gt.Value(t, len(transport.Events())).Equal(before)
	})
}

func TestHandleHTTP(t *testing.T) {
	t.Run("client error echoes message", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("name is required"), http.StatusBadRequest)

		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).Equal("name is required")
	})

	t.Run("server error hides details", func(t *testing.T) {
		w := httptest.NewRecorder()
		errutil.HandleHTTP(context.Background(), w, goerr.New("database is locked"), http.StatusServiceUnavailable)

		gt.Value(t, w.Code).Equal(http.StatusServiceUnavailable)
		var body map[string]string
		gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &body)).Required()
		gt.Value(t, body["error"]).Equal(http.StatusText(http.StatusServiceUnavailable))
	})
}
