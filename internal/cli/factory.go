package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aretw0/logicsim"
	"github.com/aretw0/logicsim/internal/logging"
	"github.com/aretw0/logicsim/pkg/domain"
	"github.com/aretw0/logicsim/pkg/sequence"
)

// EnvLogLevel overrides the default log level when --log-level is not given.
const EnvLogLevel = "LOGICSIM_LOG_LEVEL"

// Options carries the global CLI configuration.
type Options struct {
	LogLevel  string
	LogFormat string
	Policy    string
}

// NewLogger builds the application logger. An empty level falls back to
// $LOGICSIM_LOG_LEVEL and then to warn, so reports stay uncluttered.
func NewLogger(opts Options) (*slog.Logger, error) {
	raw := opts.LogLevel
	if raw == "" {
		raw = os.Getenv(EnvLogLevel)
	}
	if raw == "" {
		raw = "warn"
	}
	level, err := logging.ParseLevel(raw)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseFormat(opts.LogFormat)
	if err != nil {
		return nil, err
	}
	return logging.New(level, format), nil
}

// NewSimulator initializes a simulator with standard CLI conventions:
// the given logger, debug hooks and any extra hooks (metrics, streams).
func NewSimulator(opts Options, logger *slog.Logger, hooks ...domain.Hooks) (*logicsim.Simulator, error) {
	simOpts := []logicsim.Option{
		logicsim.WithLogger(logger),
		logicsim.WithHooks(createDebugHooks(logger)),
	}
	for _, h := range hooks {
		simOpts = append(simOpts, logicsim.WithHooks(h))
	}
	if opts.Policy != "" {
		p, err := sequence.ParsePolicy(opts.Policy)
		if err != nil {
			return nil, fmt.Errorf("error initializing simulator: %w", err)
		}
		simOpts = append(simOpts, logicsim.WithPolicy(p))
	}
	return logicsim.New(simOpts...), nil
}

func createDebugHooks(logger *slog.Logger) domain.Hooks {
	return domain.Hooks{
		OnTraceDone: func(ctx context.Context, e *domain.TraceEvent) {
			logger.Debug("Trace Done", "circuit", e.Circuit, "trace", e.Trace)
		},
		OnMatch: func(ctx context.Context, e *domain.MatchEvent) {
			logger.Debug("Match", "circuit", e.Circuit, "matches", e.Result.Matches)
		},
		OnLatchStep: func(ctx context.Context, e *domain.LatchEvent) {
			logger.Debug("Latch Step", "kind", e.Kind, "drive", e.Drive.String(), "to", e.To.String(), "updates", e.Steps)
		},
	}
}
