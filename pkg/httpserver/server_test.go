package httpserver_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenantward/tenantward/pkg/httpserver"
)

func TestHealthCheckHandler(t *testing.T) {
	t.Parallel()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("liveness without checks", func(t *testing.T) {
		t.Parallel()

		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log)(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "ALIVE", w.Body.String())
	})

	t.Run("readiness with passing checks", func(t *testing.T) {
		t.Parallel()

		ok := func(context.Context) error { return nil }
		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log, ok, ok)(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "READY", w.Body.String())
	})

	t.Run("readiness with failing check", func(t *testing.T) {
		t.Parallel()

		fail := func(context.Context) error { return errors.New("db down") }
		w := httptest.NewRecorder()
		httpserver.HealthCheckHandler(log, fail)(w, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "NOT_READY", w.Body.String())
	})
}

func TestServerRun(t *testing.T) {
	t.Parallel()

	t.Run("stops on context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(httpserver.Config{
			Addr:            "127.0.0.1:0",
			ShutdownTimeout: time.Second,
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() {
			done <- srv.Run(ctx, http.NotFoundHandler())
		}()

		time.Sleep(50 * time.Millisecond)
		cancel()

		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(3 * time.Second):
			t.Fatal("server did not shut down")
		}
	})

	t.Run("reports listen failure", func(t *testing.T) {
		t.Parallel()

		srv := httpserver.New(httpserver.Config{
			Addr:            "256.256.256.256:99999",
			ShutdownTimeout: time.Second,
		}, slog.New(slog.NewTextHandler(io.Discard, nil)))

		err := srv.Run(context.Background(), nil)
		require.ErrorIs(t, err, httpserver.ErrStart)
	})
}
