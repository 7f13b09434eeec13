package preflight

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func TestCheckReachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	err := NewHTTPCheck(quietLogger(), time.Second).Check(context.Background(), srv.URL)
	require.NoError(t, err)
}

func TestCheckClientErrorStillReachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	err := NewHTTPCheck(quietLogger(), time.Second).Check(context.Background(), srv.URL)
	assert.NoError(t, err)
}

func TestCheckServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPCheck(quietLogger(), time.Second).Check(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrPageServerUnreachable)
}

func TestCheckNothingListening(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := NewHTTPCheck(quietLogger(), 500*time.Millisecond).Check(context.Background(), url)
	assert.ErrorIs(t, err, ErrPageServerUnreachable)
}
