// CLASSIFICATION: COMMUNITY
// Filename: server.go v0.3
// Author: Lukas Bower
// Date Modified: 2026-10-18
// License: SPDX-License-Identifier: MIT OR Apache-2.0

package http

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"esmserve/internal/fsread"
	"esmserve/internal/resolve"
	"esmserve/internal/watch"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// DefaultPort is the CLI default listen port.
const DefaultPort = 3000

// Config holds server configuration.
type Config struct {
	Bind    string
	Port    int
	Root    string
	Marker  string
	LogFile string
	Watch   bool

	MaxConcurrentReads int
	ReadRate           rate.Limit
	ReadBurst          int

	// AccessLog receives one "<method> <target>" line per request and
	// defaults to stdout. ErrorLog receives read failures and defaults to
	// stderr.
	AccessLog Logger
	ErrorLog  Logger
}

// Server wraps the HTTP server and router.
type Server struct {
	cfg       Config
	paths     resolve.Config
	reader    *fsread.Reader
	router    *chi.Mux
	accessLog Logger
	errorLog  Logger
	logFile   io.WriteCloser
}

// New returns an initialized server.
func New(cfg Config) (*Server, error) {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid port %d", cfg.Port)
	}
	s := &Server{
		cfg:       cfg,
		paths:     resolve.Config{Root: cfg.Root, Marker: cfg.Marker}.WithDefaults(),
		accessLog: cfg.AccessLog,
		errorLog:  cfg.ErrorLog,
		reader: fsread.New(fsread.Options{
			MaxConcurrent: cfg.MaxConcurrentReads,
			Rate:          cfg.ReadRate,
			Burst:         cfg.ReadBurst,
		}),
	}
	if s.accessLog == nil {
		s.accessLog = stdoutLogger()
	}
	if s.errorLog == nil {
		s.errorLog = stderrLogger()
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log: %w", err)
		}
		s.logFile = f
	}
	s.router = s.routes()
	return s, nil
}

// Router returns the underlying router, useful for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Addr returns the listening address.
func (s *Server) Addr() string {
	return net.JoinHostPort(s.cfg.Bind, strconv.Itoa(s.cfg.Port))
}

// Start listens on Addr and serves until ctx is done. A clean shutdown
// returns http.ErrServerClosed.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr())
	if err != nil {
		s.closeLogFile()
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done. The access-log file is
// closed only after in-flight requests have drained.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.closeLogFile()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if s.cfg.Watch {
		w, err := watch.New(s.paths.Root, s.accessLog)
		if err != nil {
			ln.Close()
			return fmt.Errorf("watch %s: %w", s.paths.Root, err)
		}
		go w.Run(ctx)
	}

	srv := &http.Server{Handler: s.router}
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		<-ctx.Done()
		ctxTo, cancelTo := context.WithTimeout(context.Background(), time.Second)
		defer cancelTo()
		srv.Shutdown(ctxTo)
	}()
	s.accessLog.Printf("esmserve listening on %s, serving %s", ln.Addr(), s.paths.Root)
	err := srv.Serve(ln)
	cancel()
	<-drained
	return err
}

func (s *Server) closeLogFile() {
	if s.logFile == nil {
		return
	}
	if err := s.logFile.Close(); err != nil {
		s.errorLog.Printf("close log: %v", err)
	}
}
