package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/pkg/catalog"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/logic"
	"github.com/aretw0/logicsim/pkg/problem"
	"github.com/aretw0/logicsim/pkg/sequence"
)

const circuitsURI = "logicsim://circuits"

// Simulator defines the operations required by the MCP server.
type Simulator interface {
	Circuits() []catalog.Entry
	Simulate(ctx context.Context, name string, cycles int) (domain.Trace, error)
	Answer(ctx context.Context, circuitName string, trace domain.Trace, candidates map[string][]string) (*problem.CounterSolution, error)
	StepLatch(ctx context.Context, kind logic.LatchKind, initial domain.State, drives ...domain.Drive) ([]problem.LatchStep, error)
	CountGates(gates map[string][]string) (*problem.GateSolution, error)
	StableStates(kind logic.LatchKind, d domain.Drive) ([]domain.State, error)
	Solve(ctx context.Context, p *problem.Problem) (*problem.Solution, error)
}

// SimulateArgs are the arguments of simulate_counter.
type SimulateArgs struct {
	Circuit    string              `json:"circuit"`
	Cycles     int                 `json:"cycles"`
	Candidates map[string][]string `json:"candidates,omitempty"`
	Policy     string              `json:"policy,omitempty"`
}

// SimulateResponse is the structured result of simulate_counter.
type SimulateResponse struct {
	Circuit  string                   `json:"circuit" jsonschema_description:"The simulated circuit"`
	Trace    []string                 `json:"trace" jsonschema_description:"One state per cycle, starting with the initial state"`
	Solution *problem.CounterSolution `json:"solution,omitempty" jsonschema_description:"Candidate verdicts and the resolved answer"`
}

// LatchArgs are the arguments of step_latch.
type LatchArgs struct {
	Kind    string   `json:"kind"`
	Initial string   `json:"initial,omitempty"`
	Drives  []string `json:"drives"`
}

// LatchResponse is the structured result of step_latch.
type LatchResponse struct {
	Kind    string              `json:"kind" jsonschema_description:"nand or nor"`
	Initial string              `json:"initial" jsonschema_description:"State before the first drive"`
	Steps   []problem.LatchStep `json:"steps" jsonschema_description:"Settled state after each drive"`
}

// GatesArgs are the arguments of count_gates.
type GatesArgs struct {
	Gates map[string][]string `json:"gates"`
}

// StableArgs are the arguments of stable_states.
type StableArgs struct {
	Kind  string `json:"kind"`
	Drive string `json:"drive"`
}

// StableResponse is the structured result of stable_states.
type StableResponse struct {
	Kind   string   `json:"kind"`
	Drive  string   `json:"drive"`
	Stable []string `json:"stable" jsonschema_description:"States that hold under the drive"`
}

// SolveArgs are the arguments of solve_problem.
type SolveArgs struct {
	Document string `json:"document"`
	Format   string `json:"format,omitempty"`
}

// Server wraps a Simulator and exposes it as an MCP Server.
type Server struct {
	sim       Simulator
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sim Simulator, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		sim:    sim,
		logger: logger,
		mcpServer: server.NewMCPServer("logicsim-mcp", strings.TrimSpace(logicsim.Version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and stops when ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, stopping MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: simulate_counter
	simulateTool := mcp.NewTool("simulate_counter",
		mcp.WithDescription("Clock a catalog JK counter and optionally match the trace against multiple-choice candidates (cyclic rotation)."),
		mcp.WithString("circuit", mcp.Required(), mcp.Description("Catalog circuit name, e.g. jk-ring-counter")),
		mcp.WithNumber("cycles", mcp.Required(), mcp.Description("Number of states to record, at least 1")),
		mcp.WithObject("candidates", mcp.Description("Option name -> list of state strings, e.g. {\"A\": [\"00\", \"01\"]}")),
		mcp.WithString("policy", mcp.Enum(string(sequence.PolicyStrict), string(sequence.PolicyFirst)), mcp.Description("How to pick an answer when several options match")),
		mcp.WithOutputSchema[SimulateResponse](),
	)
	s.mcpServer.AddTool(simulateTool, mcp.NewStructuredToolHandler(s.handleSimulateCounter))

	// TOOL: step_latch
	latchTool := mcp.NewTool("step_latch",
		mcp.WithDescription("Settle a cross-coupled NAND or NOR latch on each drive in turn."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("nand", "nor")),
		mcp.WithString("initial", mcp.Description("Initial Q1Q2, e.g. \"xx\" for power-on (default)")),
		mcp.WithArray("drives", mcp.Required(), mcp.Items(map[string]any{"type": "string"}), mcp.Description("Drives as P1P2 strings, e.g. [\"01\", \"11\"]")),
		mcp.WithOutputSchema[LatchResponse](),
	)
	s.mcpServer.AddTool(latchTool, mcp.NewStructuredToolHandler(s.handleStepLatch))

	// TOOL: count_gates
	gatesTool := mcp.NewTool("count_gates",
		mcp.WithDescription("Count the distinct gates of each kind. Commutative operands are normalized."),
		mcp.WithObject("gates", mcp.Required(), mcp.Description("Gate kind -> expressions, e.g. {\"OR\": [\"a + b\"], \"NOT\": [\"~a\"]}")),
		mcp.WithOutputSchema[problem.GateSolution](),
	)
	s.mcpServer.AddTool(gatesTool, mcp.NewStructuredToolHandler(s.handleCountGates))

	// TOOL: stable_states
	stableTool := mcp.NewTool("stable_states",
		mcp.WithDescription("Enumerate the latch states that hold under a drive (SAT based)."),
		mcp.WithString("kind", mcp.Required(), mcp.Enum("nand", "nor")),
		mcp.WithString("drive", mcp.Required(), mcp.Description("P1P2, e.g. \"11\"")),
		mcp.WithOutputSchema[StableResponse](),
	)
	s.mcpServer.AddTool(stableTool, mcp.NewStructuredToolHandler(s.handleStableStates))

	// TOOL: solve_problem
	solveTool := mcp.NewTool("solve_problem",
		mcp.WithDescription("Solve a problem document (counter, latch or gates)."),
		mcp.WithString("document", mcp.Required(), mcp.Description("The problem document")),
		mcp.WithString("format", mcp.Enum("yaml", "json"), mcp.Description("Document format (default yaml)")),
		mcp.WithOutputSchema[problem.Solution](),
	)
	s.mcpServer.AddTool(solveTool, mcp.NewStructuredToolHandler(s.handleSolve))
}

// Handler methods for structured tools

func (s *Server) handleSimulateCounter(ctx context.Context, request mcp.CallToolRequest, args SimulateArgs) (SimulateResponse, error) {
	trace, err := s.sim.Simulate(ctx, args.Circuit, args.Cycles)
	if err != nil {
		return SimulateResponse{}, fmt.Errorf("simulate failed: %w", err)
	}
	resp := SimulateResponse{Circuit: args.Circuit, Trace: trace.Strings()}
	if len(args.Candidates) == 0 {
		return resp, nil
	}

	sol, err := s.sim.Answer(ctx, args.Circuit, trace, args.Candidates)
	if args.Policy != "" {
		p, perr := sequence.ParsePolicy(args.Policy)
		if perr != nil {
			return SimulateResponse{}, perr
		}
		sol.Answer, err = sequence.Resolve(sol.Result, p)
		sol.AnswerError = ""
		if err != nil {
			sol.AnswerError = err.Error()
		}
	}
	if err != nil {
		s.logger.Debug("MCP simulate_counter: no single answer", "error", err)
	}
	resp.Solution = sol
	return resp, nil
}

func (s *Server) handleStepLatch(ctx context.Context, request mcp.CallToolRequest, args LatchArgs) (LatchResponse, error) {
	kind, err := logic.ParseLatchKind(args.Kind)
	if err != nil {
		return LatchResponse{}, err
	}
	initial := domain.NewState(domain.Unknown, domain.Unknown)
	if args.Initial != "" {
		if initial, err = domain.ParseState(args.Initial); err != nil {
			return LatchResponse{}, fmt.Errorf("initial: %w", err)
		}
	}
	drives := make([]domain.Drive, len(args.Drives))
	for i, raw := range args.Drives {
		if drives[i], err = domain.ParseDrive(raw); err != nil {
			return LatchResponse{}, fmt.Errorf("drives[%d]: %w", i, err)
		}
	}

	steps, err := s.sim.StepLatch(ctx, kind, initial, drives...)
	if err != nil {
		return LatchResponse{}, err
	}
	return LatchResponse{Kind: string(kind), Initial: initial.String(), Steps: steps}, nil
}

func (s *Server) handleCountGates(ctx context.Context, request mcp.CallToolRequest, args GatesArgs) (problem.GateSolution, error) {
	sol, err := s.sim.CountGates(args.Gates)
	if err != nil {
		return problem.GateSolution{}, err
	}
	return *sol, nil
}

func (s *Server) handleStableStates(ctx context.Context, request mcp.CallToolRequest, args StableArgs) (StableResponse, error) {
	kind, err := logic.ParseLatchKind(args.Kind)
	if err != nil {
		return StableResponse{}, err
	}
	d, err := domain.ParseDrive(args.Drive)
	if err != nil {
		return StableResponse{}, err
	}
	states, err := s.sim.StableStates(kind, d)
	if err != nil {
		return StableResponse{}, err
	}
	return StableResponse{Kind: string(kind), Drive: args.Drive, Stable: domain.Trace(states).Strings()}, nil
}

func (s *Server) handleSolve(ctx context.Context, request mcp.CallToolRequest, args SolveArgs) (problem.Solution, error) {
	ext := ".yaml"
	if strings.EqualFold(args.Format, "json") {
		ext = ".json"
	}
	p, err := problem.Parse([]byte(args.Document), ext)
	if err != nil {
		return problem.Solution{}, err
	}
	sol, err := s.sim.Solve(ctx, p)
	if err != nil {
		return problem.Solution{}, err
	}
	return *sol, nil
}

func (s *Server) registerResources() {
	// EXPOSE: logicsim://circuits
	s.mcpServer.AddResource(mcp.NewResource(circuitsURI, "Circuit Catalog",
		mcp.WithResourceDescription("Built-in counters and latches"),
		mcp.WithMIMEType("application/json"),
	), s.readCircuits)
}

func (s *Server) readCircuits(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	jsonBytes, err := json.Marshal(s.sim.Circuits())
	if err != nil {
		return nil, fmt.Errorf("failed to encode catalog: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      circuitsURI,
			MIMEType: "application/json",
			Text:     string(jsonBytes),
		},
	}, nil
}
