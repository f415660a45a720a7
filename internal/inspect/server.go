package inspect

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/loom-ui/loom/internal/errors"
	"github.com/loom-ui/loom/pkg/recon"
)

// DefaultAddr is the loopback address the inspect server binds to when
// the config leaves it empty.
const DefaultAddr = "127.0.0.1:7744"

// Config configures the inspect server.
type Config struct {
	// Addr is the listen address (default: DefaultAddr).
	Addr string

	// Logger receives server logs (default: slog.Default()).
	Logger *slog.Logger
}

// Server exposes the latest built tree over HTTP. It is a
// recon.BuildObserver: attach it to a Builder and every completed pass
// becomes visible on /tree, /stats, and as a push to /ws clients.
//
// Example:
//
//	srv := inspect.New(inspect.Config{})
//	builder := recon.NewBuilder(srv)
//	go srv.ListenAndServe(ctx)
type Server struct {
	recon.NopObserver

	addr   string
	logger *slog.Logger
	hub    *hub

	mu         sync.RWMutex
	latest     *TreeSnapshot
	latestJSON []byte
}

// New creates an inspect server.
func New(config Config) *Server {
	if config.Addr == "" {
		config.Addr = DefaultAddr
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Server{
		addr:   config.Addr,
		logger: config.Logger,
		hub:    newHub(),
	}
}

// BuildFinished implements recon.BuildObserver. It snapshots the
// generation and pushes it to connected WebSocket clients.
func (s *Server) BuildFinished(root *recon.ScopeRoot, stats recon.BuildStats) {
	snap := snapshotTree(root, stats)
	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("failed to encode tree snapshot", "error", err)
		return
	}

	s.mu.Lock()
	s.latest = snap
	s.latestJSON = data
	s.mu.Unlock()

	s.hub.broadcast(data)

	s.logger.Debug("build pass observed",
		"generation", stats.Generation,
		"trigger", stats.Trigger.String(),
		"nodes_built", stats.NodesBuilt,
		"nodes_reused", stats.NodesReused,
	)
}

// Handler returns the inspect HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Get("/tree", s.handleTree)
	r.Get("/stats", s.handleStats)
	r.Get("/ws", s.handleWS)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// ListenAndServe runs the inspect server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if _, _, err := net.SplitHostPort(s.addr); err != nil {
		return errors.New("E010").WithDetailf("%q: %v", s.addr, err)
	}

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Handler(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.hub.close()
		srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("inspect server listening", "addr", s.addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleTree(w http.ResponseWriter, req *http.Request) {
	s.mu.RLock()
	data := s.latestJSON
	s.mu.RUnlock()

	if data == nil {
		writeError(w, http.StatusNotFound, errors.New("E020"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

func (s *Server) handleStats(w http.ResponseWriter, req *http.Request) {
	s.mu.RLock()
	snap := s.latest
	s.mu.RUnlock()

	if snap == nil {
		writeError(w, http.StatusNotFound, errors.New("E020"))
		return
	}

	stats := *snap
	stats.Root = nil
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

func (s *Server) handleWS(w http.ResponseWriter, req *http.Request) {
	s.mu.RLock()
	initial := s.latestJSON
	s.mu.RUnlock()

	s.hub.handleWebSocket(w, req, initial)
}

func writeError(w http.ResponseWriter, status int, err *errors.LoomError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"code":    err.Code,
		"message": err.Message,
	})
}
