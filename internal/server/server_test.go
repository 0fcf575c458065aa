package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mpilhlt/dhamps-relay/internal/metrics"
	"github.com/mpilhlt/dhamps-relay/internal/models"

	"github.com/danielgtaylor/huma/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestCORSPreflightFromAnyOrigin(t *testing.T) {
	reached := false
	handler := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
	}), zap.NewNop(), nil, "test")

	srv := httptest.NewServer(handler)
	defer srv.Close()

	for _, origin := range []string{"https://example.com", "http://localhost:5173", "null"} {
		t.Run(origin, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodOptions, srv.URL+"/prompt", nil)
			require.NoError(t, err)
			req.Header.Set("Origin", origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodPost)
			req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom-Header")

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.True(t, resp.StatusCode >= 200 && resp.StatusCode < 300, "preflight status %d", resp.StatusCode)
			assert.Equal(t, origin, resp.Header.Get("Access-Control-Allow-Origin"))
			assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
			assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Methods"))
		})
	}
	assert.False(t, reached, "preflight must not reach the router")
}

func TestCORSSimpleRequest(t *testing.T) {
	handler := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}), zap.NewNop(), nil, "test")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://spa.example.org")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://spa.example.org", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRequestID(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("Generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.NotEmpty(t, seen)
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("Propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})

	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestAccessLogRecordsStatusAndMetrics(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	m := metrics.New(prometheus.NewRegistry())

	handler := Wrap(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}), zap.New(core), m, "test")

	req := httptest.NewRequest(http.MethodGet, "/pot", nil)
	req.Header.Set(RequestIDHeader, "req-1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "/pot", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.EqualValues(t, len("short and stout"), fields["bytes"])

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("test", http.MethodGet, "418")))
}

func TestNewAPIErrorEnvelope(t *testing.T) {
	router := http.NewServeMux()
	api := NewAPI(router, "Test API", false)

	huma.Register(api, huma.Operation{
		OperationID: "fail",
		Method:      http.MethodGet,
		Path:        "/fail",
	}, func(ctx context.Context, input *struct{}) (*struct{}, error) {
		return nil, huma.Error409Conflict("already there")
	})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]interface{}{"error": "already there"}, body)

	_, isEnvelope := huma.NewError(http.StatusBadRequest, "x").(*models.ErrorBody)
	assert.True(t, isEnvelope)
}

func TestNewAPIDocsToggle(t *testing.T) {
	tt := []struct {
		name   string
		docs   bool
		status int
	}{
		{name: "Docs enabled", docs: true, status: http.StatusOK},
		{name: "Docs disabled", docs: false, status: http.StatusNotFound},
	}

	for _, v := range tt {
		t.Run(v.name, func(t *testing.T) {
			router := http.NewServeMux()
			NewAPI(router, "Test API", v.docs)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.json", nil))
			assert.Equal(t, v.status, rec.Code)
		})
	}
}

type fakeHooks struct {
	start func()
	stop  func()
}

func (h *fakeHooks) OnStart(f func()) { h.start = f }
func (h *fakeHooks) OnStop(f func())  { h.stop = f }

func TestServeLifecycle(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	srv := NewHTTPServer("127.0.0.1", 0, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))
	assert.Equal(t, "127.0.0.1:0", srv.Addr)

	hooks := &fakeHooks{}
	Serve(hooks, srv, zap.New(core))
	require.NotNil(t, hooks.start)
	require.NotNil(t, hooks.stop)

	done := make(chan struct{})
	go func() {
		hooks.start()
		close(done)
	}()

	// Give ListenAndServe a moment to bind before stopping.
	time.Sleep(100 * time.Millisecond)
	hooks.stop()

	select {
	case <-done:
	case <-time.After(ShutdownTimeout + time.Second):
		t.Fatal("OnStart did not return after OnStop")
	}
	assert.Equal(t, 1, logs.FilterMessage("server stopped").Len())
}
