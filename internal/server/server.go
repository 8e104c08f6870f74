package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/DJSquale/gpt-langchain-agent/internal/codefinder"
	"github.com/DJSquale/gpt-langchain-agent/patterns/react"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability"
)

const (
	// PromptPrefix is prepended to the query before it reaches the agent.
	PromptPrefix = "Find a web template or code snippet for: "

	HeaderRequestID = "X-Request-Id"

	shutdownTimeout = 10 * time.Second

	// maxBodyBytes caps the /fetchCode request body.
	maxBodyBytes = 100 << 10
)

// Agent is the part of react.Agent the server depends on.
type Agent interface {
	Execute(ctx context.Context, prompt string) (*react.Result, error)
}

// CodeFinder is the part of codefinder.Finder the server depends on.
type CodeFinder interface {
	FindCode(ctx context.Context, query string) (*codefinder.Result, error)
}

// Server routes HTTP requests to the agent.
type Server struct {
	agent    Agent
	finder   CodeFinder
	observer observability.Provider
	mux      *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithCodeFinder enables POST /fetchCode.
func WithCodeFinder(finder CodeFinder) Option {
	return func(s *Server) { s.finder = finder }
}

// New builds the server. observer may be nil.
func New(agent Agent, observer observability.Provider, opts ...Option) *Server {
	s := &Server{agent: agent, observer: observer, mux: http.NewServeMux()}
	for _, opt := range opts {
		opt(s)
	}
	s.mux.HandleFunc("GET /fetch-template", s.handleFetchTemplate)
	s.mux.HandleFunc("GET /healthCheck", s.handleHealthCheck)
	if s.finder != nil {
		s.mux.HandleFunc("POST /fetchCode", s.handleFetchCode)
	}
	return s
}

// Handler returns the routes wrapped with the request-id middleware.
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.mux)
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if s.observer != nil {
		s.observer.Info(ctx, "http server listening", observability.String(observability.AttrHTTPURL, addr))
	}
	return g.Wait()
}

type fetchTemplateResponse struct {
	Query  string `json:"query"`
	Result string `json:"result"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// validationError mirrors the body FastAPI returns for a missing query
// parameter.
type validationError struct {
	Detail []validationDetail `json:"detail"`
}

type validationDetail struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func missingQueryParam(name string) validationError {
	return validationError{Detail: []validationDetail{{
		Loc:  []string{"query", name},
		Msg:  "field required",
		Type: "value_error.missing",
	}}}
}

func (s *Server) handleFetchTemplate(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()
	if !params.Has("q") {
		writeJSON(w, http.StatusUnprocessableEntity, missingQueryParam("q"))
		return
	}
	q := params.Get("q")

	result, err := s.agent.Execute(r.Context(), PromptPrefix+q)
	if err != nil {
		if s.observer != nil {
			s.observer.Error(r.Context(), "agent failed",
				observability.String(observability.AttrHTTPRequestID, w.Header().Get(HeaderRequestID)),
				observability.Error(err),
			)
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, fetchTemplateResponse{Query: q, Result: result.Content})
}

type fetchCodeRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleFetchCode(w http.ResponseWriter, r *http.Request) {
	var req fetchCodeRequest
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req)
	if err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Invalid JSON body"})
		return
	}
	if req.Query == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Missing query"})
		return
	}

	result, err := s.finder.FindCode(r.Context(), req.Query)
	if err != nil {
		if s.observer != nil {
			s.observer.Error(r.Context(), "code search failed",
				observability.String(observability.AttrHTTPRequestID, w.Header().Get(HeaderRequestID)),
				observability.Error(err),
			)
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Scraper failed"})
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to write response", "error", err.Error())
	}
}
