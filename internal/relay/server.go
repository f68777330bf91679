// Package relay exposes the dispatch coordinator over HTTP so browser
// front-ends (popup, side panel, context menu, options page) can reach it.
package relay

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/solo-ai/solo/internal/credential"
	"github.com/solo-ai/solo/internal/dispatch"
)

// Version is reported by the health endpoint.
const Version = "0.1.0"

// Server serves the relay endpoints. All dispatches reply on one shared
// collector; each request waits only for its own invocation ID.
type Server struct {
	addr   string
	coord  *dispatch.Coordinator
	keys   credential.Store
	bus    *dispatch.Collector
	mirror dispatch.ReplyChannel
	log    *zap.SugaredLogger
	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithMirror also delivers every context-menu reply to ch, the way the
// extension broadcasts menu results to an open side panel. ch must not block.
func WithMirror(ch dispatch.ReplyChannel) Option {
	return func(s *Server) {
		s.mirror = ch
	}
}

// NewServer creates a relay bound to addr.
func NewServer(
	addr string,
	coord *dispatch.Coordinator,
	keys credential.Store,
	log *zap.SugaredLogger,
	opts ...Option,
) *Server {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	s := &Server{
		addr:  addr,
		coord: coord,
		keys:  keys,
		bus:   dispatch.NewCollector(),
		log:   log,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

// Handler returns the HTTP handler for the relay.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Infow("relay listening", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Infow("relay shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/messages", s.handleMessage)
		r.Get("/menu", s.handleMenuList)
		r.Post("/menu/{itemID}", s.handleMenuClick)
		r.Get("/key", s.handleKeyStatus)
		r.Put("/key", s.handleKeySet)
		r.Delete("/key", s.handleKeyClear)
	})

	s.router = r
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debugw("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}
