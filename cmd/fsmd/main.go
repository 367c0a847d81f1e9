// Command fsmd serves a state machine graph over HTTP.
//
// The graph is read from FSM_GRAPH_FILE (YAML or JSON); without it the
// bundled task graph is served. Graph files may name the built-in listeners
// "log", "history" and "reject".
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/ziguss/fsm/pkg/fsm"
	"github.com/ziguss/fsm/pkg/fsmhttp"
	"github.com/ziguss/fsm/pkg/history"
	"github.com/ziguss/fsm/pkg/logger"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		slog.Error("startup failed", logger.Error(err))
		os.Exit(1)
	}

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("fsmd stopped", logger.Error(err))
		os.Exit(1)
	}
}

func newLogger(cfg config) *slog.Logger {
	opts := []logger.Option{
		logger.WithEnvironment(cfg.AppEnv, cfg.ServiceName),
		logger.WithContextExtractors(fsmhttp.RequestIDExtractor()),
	}
	if cfg.LogLevel != "" {
		opts = append(opts, logger.WithLevelName(cfg.LogLevel))
	}
	if format, err := logger.ParseFormat(cfg.LogFormat); err == nil {
		opts = append(opts, logger.WithFormat(format))
	}
	return logger.New(opts...)
}

func run(ctx context.Context, cfg config, log *slog.Logger) error {
	handler, err := buildHandler(cfg, log)
	if err != nil {
		return err
	}
	return serve(ctx, cfg.HTTP, handler, log)
}

func buildHandler(cfg config, log *slog.Logger) (http.Handler, error) {
	rec := history.NewRecorder(history.WithCapacity(cfg.HistorySize))

	def, source, err := loadGraph(cfg.GraphFile, builtinListeners(log, rec))
	if err != nil {
		return nil, err
	}
	graph, err := fsm.NewConfig(def)
	if err != nil {
		return nil, err
	}
	log.Info("graph loaded",
		logger.Graph(graph.Graph()),
		slog.String("source", source),
		slog.Int("states", len(graph.States())),
		slog.Int("transitions", len(graph.Transitions())),
	)

	return fsmhttp.Router(graph,
		fsmhttp.WithHistory(rec),
		fsmhttp.WithLogger(log),
	), nil
}
