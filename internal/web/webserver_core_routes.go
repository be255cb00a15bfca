// Package web provides the greeting HTTP server for go-hello
package web

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/gin-contrib/secure"
	"github.com/gin-gonic/gin"
	"github.com/go-while/go-hello/internal/config"
	"golang.org/x/term"
)

var ErrNotListening = errors.New("server is not listening")

// WebServer represents the greeting server
type WebServer struct {
	Router    *gin.Engine
	Config    *config.WebConfig
	StartTime time.Time // set once the socket is bound

	mux      sync.Mutex
	srv      *http.Server
	listener net.Listener
}

// NewServer creates a new web server instance
func NewServer(webconfig *config.WebConfig) *WebServer {
	switch {
	case webconfig.Debug:
		gin.SetMode(gin.DebugMode)
	case gin.Mode() != gin.TestMode:
		// Set Gin to release mode for production
		gin.SetMode(gin.ReleaseMode)
	}
	setConsoleColor()

	router := gin.New()

	// Configure security headers based on SSL setup
	secureConfig := secure.Config{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}

	// Only add SSL-specific headers if SSL is enabled on the application itself
	// (not when running behind a reverse proxy like nginx with SSL)
	if webconfig.SSL {
		secureConfig.SSLRedirect = true
		secureConfig.STSSeconds = 31536000
		secureConfig.STSIncludeSubdomains = true
	}

	server := &WebServer{
		Router: router,
		Config: webconfig,
	}

	router.Use(server.ApacheLogFormat(), gin.Recovery())
	router.Use(secure.New(secureConfig))

	server.setupRoutes()
	return server
}

// setupRoutes configures the single greeting route.
// Everything else falls through to gin's default 404.
func (s *WebServer) setupRoutes() {
	s.Router.GET("/", s.homePage)
	s.Router.HEAD("/", s.homePage)
}

// ListenAddr returns the configured host:port
func (s *WebServer) ListenAddr() string {
	return net.JoinHostPort(s.Config.ListenHost, strconv.Itoa(s.Config.ListenPort))
}

// Listen binds the listening socket. A bind failure is returned as is, no retry.
func (s *WebServer) Listen() error {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener != nil {
		return fmt.Errorf("already listening on %s", s.listener.Addr())
	}
	ln, err := net.Listen("tcp", s.ListenAddr())
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.ListenAddr(), err)
	}
	s.listener = ln
	s.srv = &http.Server{
		Handler:           s.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.StartTime = time.Now()
	log.Printf("Server is running on %s://localhost:%d", s.Config.Protocol(), s.port())
	return nil
}

// Serve accepts connections on the bound listener until Shutdown.
// It returns http.ErrServerClosed after a graceful shutdown.
func (s *WebServer) Serve() error {
	s.mux.Lock()
	srv, ln := s.srv, s.listener
	s.mux.Unlock()
	if ln == nil {
		return ErrNotListening
	}
	if s.Config.SSL {
		if s.Config.CertFile == "" || s.Config.KeyFile == "" {
			return config.ErrSSLFiles
		}
		log.Printf("Starting HTTPS server on %s", ln.Addr())
		return srv.ServeTLS(ln, s.Config.CertFile, s.Config.KeyFile)
	}
	log.Printf("Starting HTTP server on %s", ln.Addr())
	return srv.Serve(ln)
}

// Start binds and serves
func (s *WebServer) Start() error {
	if err := s.Listen(); err != nil {
		return err
	}
	return s.Serve()
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *WebServer) Shutdown(ctx context.Context) error {
	s.mux.Lock()
	srv, ln := s.srv, s.listener
	s.mux.Unlock()
	if srv == nil {
		return ErrNotListening
	}
	if err := srv.Shutdown(ctx); err != nil {
		return err
	}
	// Serve may never have taken ownership of the listener
	if err := ln.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}

// Addr returns the bound address, or "" when not listening
func (s *WebServer) Addr() string {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// port reports the bound port, which differs from the configured one when that was 0
func (s *WebServer) port() int {
	if tcp, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return tcp.Port
	}
	return s.Config.ListenPort
}

func (s *WebServer) ApacheLogFormat() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		status := strconv.Itoa(param.StatusCode)
		if param.IsOutputColor() {
			status = param.StatusCodeColor() + status + param.ResetColor()
		}
		return fmt.Sprintf(`%s - - [%s] "%s %s %s" %s %d "%s" "%s"`+"\n",
			param.ClientIP,
			param.TimeStamp.Format("02/Jan/2006:15:04:05 -0700"),
			param.Method,
			param.Path,
			param.Request.Proto,
			status,
			param.BodySize,
			param.Request.Referer(),
			param.Request.UserAgent(),
		)
	})
}

// setConsoleColor colors request logs only on an interactive stdout
func setConsoleColor() {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		gin.ForceConsoleColor()
		return
	}
	gin.DisableConsoleColor()
}
