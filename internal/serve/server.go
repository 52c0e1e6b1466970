package serve

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
)

// Default CORS header values: fully permissive, for local development only.
const (
	DefaultAllowOrigin  = "*"
	DefaultAllowMethods = "GET, POST, OPTIONS"
	DefaultAllowHeaders = "*"
)

// DefaultPort is where the dev server listens unless configured otherwise.
const DefaultPort = 8000

// shutdownGrace bounds how long an in-flight response may take to finish
// once shutdown begins.
const shutdownGrace = 2 * time.Second

// Config describes one dev server instance. Root is an explicit path; the
// server never touches the process working directory.
type Config struct {
	Host string // empty binds all interfaces
	Port int    // 0 picks an ephemeral port
	Root string
	Open bool // launch the default browser once the listener is up

	AllowOrigin  string
	AllowMethods string
	AllowHeaders string
}

// Server serves a directory of static files with permissive CORS headers,
// one log line per request and an optional one-shot browser launch.
type Server struct {
	cfg Config
	srv *http.Server
	ln  net.Listener
}

// New validates cfg and builds an unstarted server. Zero CORS values are
// filled with the permissive defaults.
func New(cfg Config) (*Server, error) {
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("root dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root dir: %s is not a directory", cfg.Root)
	}
	if cfg.AllowOrigin == "" {
		cfg.AllowOrigin = DefaultAllowOrigin
	}
	if cfg.AllowMethods == "" {
		cfg.AllowMethods = DefaultAllowMethods
	}
	if cfg.AllowHeaders == "" {
		cfg.AllowHeaders = DefaultAllowHeaders
	}

	s := &Server{cfg: cfg}
	s.srv = &http.Server{
		Handler:           s.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Listen binds the TCP listener. A port already in use surfaces here, before
// any background work starts.
func (s *Server) Listen() error {
	addr := net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", addr, err)
	}
	s.ln = ln
	return nil
}

// URL returns the root URL of the bound listener. Wildcard hosts are
// rewritten to localhost so the URL is openable in a browser.
func (s *Server) URL() string {
	host := s.cfg.Host
	if host == "" || host == "0.0.0.0" || host == "::" {
		host = "localhost"
	}
	port := s.cfg.Port
	if s.ln != nil {
		if tcp, ok := s.ln.Addr().(*net.TCPAddr); ok {
			port = tcp.Port
		}
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// Serve handles requests until ctx is cancelled, then shuts down letting an
// in-flight response finish within shutdownGrace. Listen must have
// succeeded first. Cancellation is the normal way to stop; it is not
// reported as an error.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("serve called before listen")
	}
	log.Info().Str("root", s.cfg.Root).Str("url", s.URL()).Msg("serving, press ctrl-c to stop")

	if s.cfg.Open {
		go openBrowser(s.URL(), openDelay)
	}

	errc := make(chan error, 1)
	go func() {
		errc <- s.srv.Serve(s.ln)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		log.Info().Msg("server stopped")
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	}
}

func (s *Server) handler() http.Handler {
	files := http.FileServer(http.Dir(s.cfg.Root))
	return s.logRequests(s.cors(files))
}

// cors stamps the three permissive headers on every response, error pages
// included, and answers preflight requests directly.
func (s *Server) cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", s.cfg.AllowOrigin)
		h.Set("Access-Control-Allow-Methods", s.cfg.AllowMethods)
		h.Set("Access-Control-Allow-Headers", s.cfg.AllowHeaders)
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// logRequests emits the single human-readable line per request that
// replaces the default server log.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Info().
			Str("remote", r.RemoteAddr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Int64("bytes", rec.bytes).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}

// statusRecorder captures the status code and body size a handler writes.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	n, err := r.ResponseWriter.Write(p)
	r.bytes += int64(n)
	return n, err
}
