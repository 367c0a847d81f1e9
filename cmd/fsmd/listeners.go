package main

import (
	"context"
	"log/slog"

	"github.com/ziguss/fsm/pkg/fsm"
	"github.com/ziguss/fsm/pkg/fsmyaml"
	"github.com/ziguss/fsm/pkg/history"
	"github.com/ziguss/fsm/pkg/logger"
)

// builtinListeners returns the listeners a graph file can name.
func builtinListeners(log *slog.Logger, rec *history.Recorder) fsmyaml.Registry {
	return fsmyaml.Registry{}.
		Register("log", logListener(log)).
		Register("history", rec).
		Register("reject", fsm.Rejector())
}

func logListener(log *slog.Logger) fsm.Listener {
	return fsm.ListenerFunc(func(ctx context.Context, e *fsm.TransitionEvent, pos fsm.Position) error {
		attrs := []slog.Attr{
			logger.Graph(e.Machine().Graph()),
			logger.Transition(e.Transition()),
			logger.FromState(e.From()),
			logger.ToState(e.To()),
			logger.Position(pos.String()),
		}
		if obj, ok := e.Machine().Object().(history.Identifier); ok {
			attrs = append(attrs, logger.ObjectID(obj.ID()))
		}
		log.LogAttrs(ctx, slog.LevelInfo, "transition event", attrs...)
		return nil
	})
}
