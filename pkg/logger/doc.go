// Package logger builds *slog.Logger instances for the state machine engine
// and its service, and keeps attribute keys consistent across packages.
//
// New creates a logger configured by Option functions:
//
//   - WithDevelopment / WithStaging / WithProduction / WithEnvironment: presets per environment.
//   - WithFormat: output format, parsed from configuration with ParseFormat.
//   - WithLevelName: minimum level.
//   - WithOutput: destination writer.
//   - WithContextExtractors: attributes pulled from context on every record.
//
// The handler chosen by New (text or JSON) is wrapped by ContextHandler,
// which adds every non-empty attribute returned by the registered
// ContextExtractor callbacks.
//
// Attribute helpers (Graph, Transition, FromState, ToState, Position,
// ObjectID, RequestID, Error, ...) live in attr.go. Helpers that take an
// optional value return an empty Attr when the value is absent, so
//
//	log.Info("transition applied", logger.ObjectID(id), logger.Error(err))
//
// needs no nil checks.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "fsmd"),
//	    logger.WithContextExtractors(requestIDExtractor),
//	)
//	logger.SetAsDefault(log)
//
// Discard returns a logger that drops everything; fsm.StateMachine uses it
// when no logger is supplied.
package logger
