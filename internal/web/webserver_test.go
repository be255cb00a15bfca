package web

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-while/go-hello/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestServer(t *testing.T) *WebServer {
	t.Helper()
	return NewServer(&config.WebConfig{ListenHost: "127.0.0.1", ListenPort: 0})
}

func TestHomePage(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello World!", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}

func TestHomePageIdempotent(t *testing.T) {
	s := newTestServer(t)

	var first *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		s.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if first == nil {
			first = w
			continue
		}
		assert.Equal(t, first.Code, w.Code)
		assert.Equal(t, first.Body.String(), w.Body.String())
		assert.Equal(t, first.Header().Get("Content-Type"), w.Header().Get("Content-Type"))
	}
}

func TestHeadRoot(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/hello"},
		{http.MethodGet, "/index.html"},
		{http.MethodGet, "/api/v1"},
		{http.MethodGet, "/ping"},
		{http.MethodPost, "/"},
		{http.MethodDelete, "/"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			s.Router.ServeHTTP(w, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, http.StatusNotFound, w.Code)
			assert.NotEqual(t, "Hello World!", w.Body.String())
		})
	}
}

func TestServeOverSocket(t *testing.T) {
	s := newTestServer(t)
	assert.Empty(t, s.Addr())

	require.NoError(t, s.Listen())
	addr := s.Addr()
	require.NotEmpty(t, addr)

	errc := make(chan error, 1)
	go func() { errc <- s.Serve() }()

	resp, err := http.Get("http://" + addr + "/")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Hello World!", string(body))

	resp, err = http.Get("http://" + addr + "/missing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))
	assert.ErrorIs(t, <-errc, http.ErrServerClosed)
}

func TestSecondBindFails(t *testing.T) {
	first := newTestServer(t)
	require.NoError(t, first.Listen())
	defer first.Shutdown(context.Background())

	_, portStr, err := net.SplitHostPort(first.Addr())
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	second := NewServer(&config.WebConfig{ListenHost: "127.0.0.1", ListenPort: port})
	err = second.Listen()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bind")
	assert.Empty(t, second.Addr())
}

func TestListenTwice(t *testing.T) {
	s := newTestServer(t)
	require.NoError(t, s.Listen())
	defer s.Shutdown(context.Background())
	assert.Error(t, s.Listen())
}

func TestServeWithoutListen(t *testing.T) {
	s := newTestServer(t)
	assert.ErrorIs(t, s.Serve(), ErrNotListening)
	assert.ErrorIs(t, s.Shutdown(context.Background()), ErrNotListening)
}
