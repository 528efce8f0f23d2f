package http

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/pkg/catalog"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/problem"
)

//go:embed openapi.yaml
var rawSpec []byte

var (
	swaggerOnce sync.Once
	swagger     *openapi3.T
	swaggerErr  error
)

// GetSwagger returns the parsed and validated OpenAPI document served at /openapi.yaml.
func GetSwagger() (*openapi3.T, error) {
	swaggerOnce.Do(func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromData(rawSpec)
		if err != nil {
			swaggerErr = fmt.Errorf("failed to load openapi spec: %w", err)
			return
		}
		if err := doc.Validate(loader.Context); err != nil {
			swaggerErr = fmt.Errorf("invalid openapi spec: %w", err)
			return
		}
		swagger = doc
	})
	return swagger, swaggerErr
}

// Simulator defines the operations served over HTTP.
type Simulator interface {
	Circuits() []catalog.Entry
	Simulate(ctx context.Context, name string, cycles int) (domain.Trace, error)
	Answer(ctx context.Context, circuitName string, trace domain.Trace, candidates map[string][]string) (*problem.CounterSolution, error)
	StepLatch(ctx context.Context, kind logic.LatchKind, initial domain.State, drives ...domain.Drive) ([]problem.LatchStep, error)
	CountGates(gates map[string][]string) (*problem.GateSolution, error)
	StableStates(kind logic.LatchKind, d domain.Drive) ([]domain.State, error)
	Solve(ctx context.Context, p *problem.Problem) (*problem.Solution, error)
}

var _ Simulator = (*logicsim.Simulator)(nil)

// Server holds the handler dependencies.
type Server struct {
	Sim     Simulator
	Streams *StreamManager
	Logger  *slog.Logger
	metrics http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithStreams attaches the stream manager that feeds GET /events.
// Its Hooks must be registered on the simulator for events to flow.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetrics serves h at GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = l
	}
}

// NewHandler creates the HTTP handler for a simulator.
func NewHandler(sim Simulator, opts ...Option) (http.Handler, error) {
	s := &Server{Sim: sim}
	for _, opt := range opts {
		opt(s)
	}
	if s.Logger == nil {
		s.Logger = slog.New(slog.DiscardHandler)
	}
	if s.Streams == nil {
		s.Streams = NewStreamManager()
	}

	doc, err := GetSwagger()
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to build openapi router: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)
	r.Use(validateRequests(router))

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(rawSpec)
	})
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/circuits", s.ListCircuits)
	r.Get("/circuits/{name}/trace", s.GetTrace)
	r.Get("/latches/{kind}/stable", s.GetStableStates)
	r.Post("/match", s.Match)
	r.Post("/latch", s.StepLatch)
	r.Post("/gates", s.CountGates)
	r.Post("/solve", s.Solve)
	r.Get("/events", s.SubscribeEvents)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r, nil
}

// validateRequests checks requests for documented routes against the OpenAPI document.
// Undocumented routes (/openapi.yaml, /metrics) pass through.
func validateRequests(router routers.Router) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, params, err := router.FindRoute(r)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: params,
				Route:      route,
				Options:    &openapi3filter.Options{MultiError: false},
			}
			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to status codes.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	status := http.StatusInternalServerError
	resp := errorResponse{Error: err.Error()}

	switch {
	case domain.ValidationErrors(err) != nil:
		status = http.StatusBadRequest
		for _, e := range domain.ValidationErrors(err) {
			resp.Details = append(resp.Details, e.Error())
		}
		resp.Error = "invalid problem"
	case errors.Is(err, domain.ErrUnknownCircuit):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrIndeterminate):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalidBit), errors.Is(err, domain.ErrInvalidCycles):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.Logger.Error(op+" failed", "error", err)
	} else {
		s.Logger.Warn(op+" rejected", "error", err, "status", status)
	}
	writeJSON(w, status, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		s.Logger.Warn(op+": invalid request body", "error", err)
		return false
	}
	return true
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	apiVersion := "unknown"
	if doc, err := GetSwagger(); err == nil && doc.Info != nil {
		apiVersion = doc.Info.Version
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "logicsim-http",
		"version":     strings.TrimSpace(logicsim.Version),
		"api_version": apiVersion,
	})
}

// ListCircuits handles the GET /circuits request.
func (s *Server) ListCircuits(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Sim.Circuits())
}

// TraceResponse is the body of GET /circuits/{name}/trace.
type TraceResponse struct {
	Circuit string   `json:"circuit"`
	Trace   []string `json:"trace"`
}

// GetTrace handles the GET /circuits/{name}/trace request.
func (s *Server) GetTrace(w http.ResponseWriter, r *http.Request) {
	params, err := bindTraceParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	trace, err := s.Sim.Simulate(r.Context(), params.Name, params.Cycles)
	if err != nil {
		s.writeError(w, "GetTrace", err)
		return
	}
	writeJSON(w, http.StatusOK, TraceResponse{Circuit: params.Name, Trace: trace.Strings()})
}

// GetStableStates handles the GET /latches/{kind}/stable request.
func (s *Server) GetStableStates(w http.ResponseWriter, r *http.Request) {
	params, err := bindStableParams(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	kind, err := logic.ParseLatchKind(params.Kind)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	d, err := domain.ParseDrive(params.Drive)
	if err != nil {
		s.writeError(w, "GetStableStates", err)
		return
	}

	states, err := s.Sim.StableStates(kind, d)
	if err != nil {
		s.writeError(w, "GetStableStates", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"kind":   kind,
		"drive":  d,
		"stable": domain.Trace(states).Strings(),
	})
}

// MatchRequest is the body of POST /match.
type MatchRequest struct {
	Circuit    string              `json:"circuit,omitempty"`
	Trace      []string            `json:"trace"`
	Candidates map[string][]string `json:"candidates"`
	Policy     string              `json:"policy,omitempty"`
}

// Match handles the POST /match request.
func (s *Server) Match(w http.ResponseWriter, r *http.Request) {
	var body MatchRequest
	if !s.decode(w, r, "Match", &body) {
		return
	}

	trace := make(domain.Trace, len(body.Trace))
	for i, raw := range body.Trace {
		st, err := domain.ParseState(raw)
		if err != nil {
			s.writeError(w, "Match", fmt.Errorf("trace[%d]: %w", i, err))
			return
		}
		trace[i] = st
	}

	sol, err := s.Sim.Answer(r.Context(), body.Circuit, trace, body.Candidates)
	if body.Policy != "" {
		sol.Answer, sol.AnswerError, err = resolve(sol.Result, body.Policy)
	}
	if err != nil {
		s.Logger.Debug("Match: no single answer", "error", err)
	}
	writeJSON(w, http.StatusOK, sol)
}

// LatchRequest is the body of POST /latch.
type LatchRequest struct {
	Kind    string   `json:"kind"`
	Initial string   `json:"initial,omitempty"`
	Drives  []string `json:"drives"`
}

// LatchResponse is the body returned by POST /latch.
type LatchResponse struct {
	Kind    logic.LatchKind     `json:"kind"`
	Initial string              `json:"initial"`
	Steps   []problem.LatchStep `json:"steps"`
}

// StepLatch handles the POST /latch request.
func (s *Server) StepLatch(w http.ResponseWriter, r *http.Request) {
	var body LatchRequest
	if !s.decode(w, r, "StepLatch", &body) {
		return
	}
	kind, err := logic.ParseLatchKind(body.Kind)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	initial := domain.NewState(domain.Unknown, domain.Unknown)
	if body.Initial != "" {
		if initial, err = domain.ParseState(body.Initial); err != nil {
			s.writeError(w, "StepLatch", err)
			return
		}
	}
	drives := make([]domain.Drive, len(body.Drives))
	for i, raw := range body.Drives {
		if drives[i], err = domain.ParseDrive(raw); err != nil {
			s.writeError(w, "StepLatch", fmt.Errorf("drives[%d]: %w", i, err))
			return
		}
	}

	steps, err := s.Sim.StepLatch(r.Context(), kind, initial, drives...)
	if err != nil {
		s.writeError(w, "StepLatch", err)
		return
	}
	writeJSON(w, http.StatusOK, LatchResponse{Kind: kind, Initial: initial.String(), Steps: steps})
}

// GatesRequest is the body of POST /gates.
type GatesRequest struct {
	Gates map[string][]string `json:"gates"`
}

// CountGates handles the POST /gates request.
func (s *Server) CountGates(w http.ResponseWriter, r *http.Request) {
	var body GatesRequest
	if !s.decode(w, r, "CountGates", &body) {
		return
	}
	sol, err := s.Sim.CountGates(body.Gates)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sol)
}

// Solve handles the POST /solve request. The body is a problem document in JSON.
func (s *Server) Solve(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	p, err := problem.Parse(data, ".json")
	if err != nil {
		if domain.ValidationErrors(err) != nil {
			s.writeError(w, "Solve", err)
			return
		}
		if errors.Is(err, problem.ErrDocumentTooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	sol, err := s.Sim.Solve(r.Context(), p)
	if err != nil {
		s.writeError(w, "Solve", err)
		return
	}
	writeJSON(w, http.StatusOK, sol)
}
