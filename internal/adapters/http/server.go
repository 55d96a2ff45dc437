package http

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/hsdfat8/kitcheck/internal/domain/ports"
	"github.com/hsdfat8/kitcheck/internal/observability"
)

// ServeMode selects the wire protocol of the kit API listener
type ServeMode string

const (
	ServeHTTP1 ServeMode = "http/1.1"
	ServeH2C   ServeMode = "h2c"
	ServeTLS   ServeMode = "tls"
)

// ServerConfig holds HTTP server configuration. TLS is used whenever a
// certificate is set; H2C only applies to plaintext listeners.
type ServerConfig struct {
	ListenAddr      string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	TLSCertFile     string
	TLSKeyFile      string
	EnableH2C       bool
	ShutdownTimeout time.Duration
}

// Mode reports which protocol Start will serve
func (c ServerConfig) Mode() ServeMode {
	switch {
	case c.TLSCertFile != "":
		return ServeTLS
	case c.EnableH2C:
		return ServeH2C
	default:
		return ServeHTTP1
	}
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.ReadTimeout == 0 {
		c.ReadTimeout = 30 * time.Second
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = 30 * time.Second
	}
	if c.IdleTimeout == 0 {
		c.IdleTimeout = 120 * time.Second
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	return c
}

// Server serves the kit API
type Server struct {
	config     ServerConfig
	handler    http.Handler
	httpServer *http.Server
	addr       string
	logger     observability.Logger
}

// NewServer builds the router for kitService; nothing listens until Start
func NewServer(config ServerConfig, kitService ports.KitService, opts RouterOptions) *Server {
	return &Server{
		config:  config.withDefaults(),
		handler: SetupRouter(kitService, opts),
		logger:  observability.New("http-server", ""),
	}
}

// Start binds the listener and serves in the background. Binding errors are
// returned; serve errors after that are logged.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.addr = listener.Addr().String()

	h2 := &http2.Server{MaxConcurrentStreams: 250, MaxReadFrameSize: 1 << 20}
	s.httpServer = &http.Server{
		Handler:        s.handler,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		IdleTimeout:    s.config.IdleTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	mode := s.config.Mode()
	serve := func() error { return s.httpServer.Serve(listener) }
	switch mode {
	case ServeTLS:
		s.httpServer.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12, NextProtos: []string{"h2", "http/1.1"}}
		if err := http2.ConfigureServer(s.httpServer, h2); err != nil {
			listener.Close()
			return fmt.Errorf("failed to configure HTTP/2: %w", err)
		}
		serve = func() error { return s.httpServer.ServeTLS(listener, s.config.TLSCertFile, s.config.TLSKeyFile) }
	case ServeH2C:
		s.httpServer.Handler = h2c.NewHandler(s.handler, h2)
	}

	s.logger.Infow("Starting kit API server", "address", s.addr, "mode", mode)
	go func() {
		if err := serve(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Errorw("Kit API server error", "mode", mode, "error", err)
		}
	}()
	return nil
}

// Stop drains in-flight requests within the shutdown timeout
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.logger.Infow("Kit API server stopped", "address", s.addr)
	return nil
}

// Addr returns the bound address once started, else the configured one
func (s *Server) Addr() string {
	if s.addr != "" {
		return s.addr
	}
	return s.config.ListenAddr
}
