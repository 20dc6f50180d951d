// Package http provides the local JSON API of huaci and an AnkiConnect
// client.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/fwojciec/huaci"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultAddr is the default listen address of the local API.
const DefaultAddr = "127.0.0.1:8766"

// ShutdownTimeout is the time given for active connections to shut down.
const ShutdownTimeout = 1 * time.Second

// Server represents the local HTTP API.
type Server struct {
	ln     net.Listener
	server *http.Server
	router chi.Router
	events *hub

	// Lifetime of watchers started through the API.
	ctx    context.Context
	cancel context.CancelFunc

	// Bind address for the server's listener.
	Addr string

	// Origins allowed to call the API from a browser. Requests carrying
	// any other Origin header are rejected.
	AllowedOrigins []string

	// Services used by the various HTTP routes.
	Dictionary huaci.DictionaryService
	Lookup     huaci.LookupService
	Config     huaci.ConfigService
	Watcher    huaci.ConfigWatcher
	Shell      huaci.Shell

	Logger *slog.Logger
}

// NewServer returns a new instance of Server.
func NewServer() *Server {
	s := &Server{
		server: &http.Server{},
		events: newHub(),
		Addr:   DefaultAddr,
		Logger: slog.New(slog.DiscardHandler),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(setJSONContentType)
		r.Use(s.checkOrigin)
		r.Use(s.requireJSONBody)
		r.Route("/config", func(r chi.Router) {
			r.Get("/", s.handleConfigView)
			r.Patch("/", s.handleConfigUpdate)
			r.Get("/path", s.handleConfigPath)
			r.Get("/portable", s.handleConfigPortable)
			r.Post("/watch", s.handleConfigWatch)
		})
		r.Get("/events", s.handleEvents)
		r.Route("/dict", func(r chi.Router) {
			r.Get("/collins/{word}", s.handleCollins)
			r.Get("/oxford/{word}", s.handleOxford)
			r.Get("/base/{word}", s.handleBase)
			r.Get("/lookup/{word}", s.handleLookup)
		})
		r.Route("/shell", func(r chi.Router) {
			r.Post("/reveal", s.handleShell(func(sh huaci.Shell) func(context.Context, string) error { return sh.Reveal }))
			r.Post("/open", s.handleShell(func(sh huaci.Shell) func(context.Context, string) error { return sh.OpenFile }))
			r.Post("/browse", s.handleShell(func(sh huaci.Shell) func(context.Context, string) error { return sh.OpenURL }))
		})
		r.Get("/sanitize", s.handleSanitize)
	})

	s.router = r
	s.server.Handler = r
	return s
}

// ServeHTTP routes a request through the API.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// URL returns the base URL of the running server.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// Open starts listening on Addr and serves requests in the background.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return huaci.Errorf(huaci.EIO, "failed to listen on %s: %v", s.Addr, err)
	}
	go func() {
		if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.Logger.Error("http server stopped", "err", err)
		}
	}()
	return nil
}

// Close gracefully shuts down the server and stops watchers it started.
func (s *Server) Close() error {
	s.cancel()
	s.events.close()
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Publish sends an event to every connected event stream.
func (s *Server) Publish(name string, data any) {
	s.events.publish(name, data)
}

func setJSONContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// checkOrigin rejects browser requests from origins not in AllowedOrigins.
func (s *Server) checkOrigin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" && !slices.Contains(s.AllowedOrigins, origin) {
			s.Error(w, r, huaci.Errorf(huaci.EFORBIDDEN, "origin %s is not allowed", origin))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requireJSONBody rejects state-changing requests that are not declared as
// application/json, so browsers must preflight them.
func (s *Server) requireJSONBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
			mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mt != "application/json" {
				s.Error(w, r, huaci.Errorf(huaci.EINVALID, "content type must be application/json"))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	huaci.EINVALID:        http.StatusBadRequest,
	huaci.EFORBIDDEN:      http.StatusForbidden,
	huaci.EPARSE:          http.StatusUnprocessableEntity,
	huaci.EMISSINGKEY:     http.StatusUnprocessableEntity,
	huaci.EKEYTYPE:        http.StatusUnprocessableEntity,
	huaci.ENOTFOUND:       http.StatusNotFound,
	huaci.ENOTIMPLEMENTED: http.StatusNotImplemented,
	huaci.ELOCK:           http.StatusServiceUnavailable,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

// Error writes err as a JSON error response. Internal errors are logged.
func (s *Server) Error(w http.ResponseWriter, r *http.Request, err error) {
	code, message := huaci.ErrorCode(err), huaci.ErrorMessage(err)
	status := ErrorStatusCode(code)
	if status == http.StatusInternalServerError {
		s.Logger.Error("http request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", middleware.GetReqID(r.Context()),
			"err", err,
		)
	}
	s.writeJSON(w, status, ErrorResponse{Code: code, Error: message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Warn("failed to write response", "err", err)
	}
}
