package logger

import "log/slog"

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Graph records the state machine graph name under the key "graph".
func Graph(name string) slog.Attr {
	return slog.String("graph", name)
}

// Transition records the transition name under the key "transition".
func Transition(name string) slog.Attr {
	return slog.String("transition", name)
}

// FromState records the source state under the key "from".
func FromState(state string) slog.Attr {
	return slog.String("from", state)
}

// ToState records the target state under the key "to".
func ToState(state string) slog.Attr {
	return slog.String("to", state)
}

// Position records the listener lifecycle position under the key "position".
func Position(position string) slog.Attr {
	return slog.String("position", position)
}

// ObjectID records the stateful object identifier under the key "object_id".
// If id is empty, it returns an empty Attr.
func ObjectID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("object_id", id)
}

// RequestID records the request identifier under the key "request_id".
// If id is empty, it returns an empty Attr.
func RequestID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("request_id", id)
}

// Duration records a duration under the key "duration".
func Duration(d any) slog.Attr {
	return slog.Any("duration", d)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}
