package server

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Count int `json:"count" validate:"gte=0,lte=10"`
}

func newTestEcho(t *testing.T, w io.Writer) *echo.Echo {
	t.Helper()
	e := NewWithOptions(Options{LoggerWriter: w, Registry: prometheus.NewRegistry()})
	e.POST("/payload", func(c echo.Context) error {
		var p payload
		if err := GetContext(c).BindValid(&p); err != nil {
			return err
		}
		return c.JSON(http.StatusOK, p)
	})
	e.GET("/panic", func(c echo.Context) error {
		panic("boom")
	})
	e.GET("/bad", func(c echo.Context) error {
		return NewBadRequestError(errors.New("bad input"))
	})
	return e
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestBindValid(t *testing.T) {
	e := newTestEcho(t, io.Discard)

	rec := serve(e, http.MethodPost, "/payload", `{"count": 4}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count": 4}`, rec.Body.String())

	rec = serve(e, http.MethodPost, "/payload", `{"count": 40}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "lte")
}

func TestErrors(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEcho(t, &logs)

	rec := serve(e, http.MethodGet, "/bad", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error": "bad input"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/panic", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, logs.String(), "recovery handler")

	rec = serve(e, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRequestLogAndMetrics(t *testing.T) {
	var logs bytes.Buffer
	e := newTestEcho(t, &logs)

	serve(e, http.MethodPost, "/payload", `{"count": 1}`)
	assert.Contains(t, logs.String(), "request")
	assert.Contains(t, logs.String(), "/payload")

	rec := serve(e, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="POST",route="/payload",status="200"} 1`)
}

func TestNewHttpError(t *testing.T) {
	err := NewHttpError(http.StatusTeapot, "short and stout")
	assert.Equal(t, "short and stout", err.Message)
	assert.Nil(t, err.Internal)

	cause := errors.New("spout")
	err = NewHttpError(http.StatusTeapot, cause)
	assert.Equal(t, "spout", err.Message)
	assert.Equal(t, cause, err.Internal)
}

func TestStartWithOptionsPortInUse(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer l.Close()
	port := l.Addr().(*net.TCPAddr).Port

	e := NewWithOptions(Options{LoggerWriter: io.Discard})
	done := make(chan error, 1)
	go func() {
		done <- StartWithOptions(context.Background(), e, port, StartOptions{GracefulShutdownTimeout: time.Second})
	}()

	select {
	case err := <-done:
		assert.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("StartWithOptions did not return after a failed listen")
	}
}

func TestStartWithOptionsShutdown(t *testing.T) {
	l, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	e := NewWithOptions(Options{LoggerWriter: io.Discard})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- StartWithOptions(ctx, e, port, StartOptions{GracefulShutdownTimeout: time.Second})
	}()

	require.Eventually(t, func() bool { return e.ListenerAddr() != nil }, 5*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("StartWithOptions did not return after cancellation")
	}
}
