package fsmhttp

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ziguss/fsm/pkg/fsm"
	"github.com/ziguss/fsm/pkg/history"
	"github.com/ziguss/fsm/pkg/logger"
)

// Option configures the HTTP surface.
type Option func(*service)

// WithStore serves tasks from s instead of a fresh in-memory store.
func WithStore(s *Store) Option {
	return func(svc *service) {
		if s != nil {
			svc.store = s
		}
	}
}

// WithHistory exposes the entries of rec under /objects/{id}/history.
// The recorder must also be registered as a listener in the graph.
func WithHistory(rec *history.Recorder) Option {
	return func(svc *service) { svc.history = rec }
}

// WithLogger sets the logger used for request logs and passed to every state machine.
func WithLogger(l *slog.Logger) Option {
	return func(svc *service) {
		if l != nil {
			svc.logger = l
		}
	}
}

type service struct {
	config  *fsm.Config
	store   *Store
	history *history.Recorder
	logger  *slog.Logger
}

// TaskView is the JSON representation of a task.
type TaskView struct {
	ID        string   `json:"id"`
	State     string   `json:"state"`
	Final     bool     `json:"final"`
	Enabled   []string `json:"enabled"`
	Available []string `json:"available"`
}

// GraphView is the JSON representation of the served graph.
type GraphView struct {
	Graph       string           `json:"graph"`
	Initial     string           `json:"initial,omitempty"`
	States      []string         `json:"states"`
	FinalStates []string         `json:"final_states"`
	Transitions []fsm.Transition `json:"transitions"`
}

// Router returns a chi router driving tasks through cfg:
//
//	GET  /health
//	GET  /graph
//	POST /objects
//	GET  /objects/{id}
//	POST /objects/{id}/transitions/{transition}
//	GET  /objects/{id}/history
//
// Applying a transition answers 409 when it is not enabled and 500 when a
// listener fails. A failure of an after listener leaves the new state in
// place; that 500 response carries the task view next to the error.
func Router(cfg *fsm.Config, opts ...Option) chi.Router {
	svc := &service{
		config: cfg,
		store:  NewStore(),
		logger: logger.Discard(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	svc.logger = svc.logger.With(logger.Component("fsmhttp"))

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(svc.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ALIVE"))
	})
	r.Get("/graph", svc.graph)

	r.Route("/objects", func(r chi.Router) {
		r.Post("/", svc.create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", svc.show)
			r.Post("/transitions/{transition}", svc.apply)
			r.Get("/history", svc.listHistory)
		})
	})

	return r
}

// RequestIDExtractor injects chi's request id into log records, so listener
// logs written during a request can be correlated with it.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) slog.Attr {
		return logger.RequestID(middleware.GetReqID(ctx))
	}
}

func (svc *service) machine(t *Task) *fsm.StateMachine {
	return fsm.NewWithConfig(t, svc.config, fsm.WithLogger(svc.logger.With(logger.ObjectID(t.ID()))))
}

func (svc *service) view(ctx context.Context, t *Task) (TaskView, error) {
	sm := svc.machine(t)
	enabled, err := sm.EnabledTransitions(ctx)
	if err != nil {
		return TaskView{}, err
	}
	available, err := sm.EnabledTransitions(ctx, fsm.WithoutTestDispatch())
	if err != nil {
		return TaskView{}, err
	}
	return TaskView{
		ID:        t.ID(),
		State:     sm.State(),
		Final:     sm.IsFinal(),
		Enabled:   enabled,
		Available: available,
	}, nil
}

func (svc *service) graph(w http.ResponseWriter, _ *http.Request) {
	names := svc.config.Transitions()
	transitions := make([]fsm.Transition, 0, len(names))
	for _, name := range names {
		t, _ := svc.config.Transition(name)
		transitions = append(transitions, t)
	}
	writeData(w, http.StatusOK, GraphView{
		Graph:       svc.config.Graph(),
		Initial:     svc.config.Initial(),
		States:      svc.config.States(),
		FinalStates: svc.config.FinalStates(),
		Transitions: transitions,
	})
}

func (svc *service) create(w http.ResponseWriter, r *http.Request) {
	initial := svc.config.Initial()
	if initial == "" {
		states := svc.config.States()
		if len(states) == 0 {
			writeError(w, http.StatusUnprocessableEntity, "no_initial_state", ErrNoInitialState)
			return
		}
		initial = states[0]
	}

	id := svc.store.Create(initial)

	var view TaskView
	err := svc.store.With(id, func(t *Task) error {
		var err error
		view, err = svc.view(r.Context(), t)
		return err
	})
	if err != nil {
		svc.fail(w, r, err)
		return
	}
	svc.logger.InfoContext(r.Context(), "task created", logger.ObjectID(id), logger.ToState(initial))
	writeData(w, http.StatusCreated, view)
}

func (svc *service) show(w http.ResponseWriter, r *http.Request) {
	var view TaskView
	err := svc.store.With(chi.URLParam(r, "id"), func(t *Task) error {
		var err error
		view, err = svc.view(r.Context(), t)
		return err
	})
	if err != nil {
		svc.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, view)
}

func (svc *service) apply(w http.ResponseWriter, r *http.Request) {
	transition := chi.URLParam(r, "transition")

	var (
		view    TaskView
		applied bool
	)
	err := svc.store.With(chi.URLParam(r, "id"), func(t *Task) error {
		writes := t.writes
		applyErr := svc.machine(t).Apply(r.Context(), transition)
		applied = t.writes != writes
		if applyErr != nil && !applied {
			return applyErr
		}

		var viewErr error
		view, viewErr = svc.view(r.Context(), t)
		if viewErr != nil {
			applied = false
			if applyErr != nil {
				return applyErr
			}
			return viewErr
		}
		return applyErr
	})
	switch {
	case err == nil:
		writeData(w, http.StatusOK, view)
	case applied:
		svc.logger.ErrorContext(r.Context(), "listener failed after state change",
			logger.Transition(transition),
			logger.ToState(view.State),
			logger.Error(err),
		)
		writeErrorWithData(w, http.StatusInternalServerError, "listener_failed", err, view)
	default:
		svc.fail(w, r, err)
	}
}

func (svc *service) listHistory(w http.ResponseWriter, r *http.Request) {
	if svc.history == nil {
		writeError(w, http.StatusNotFound, "history_disabled", ErrHistoryDisabled)
		return
	}

	id := chi.URLParam(r, "id")
	err := svc.store.With(id, func(*Task) error { return nil })
	if err != nil {
		svc.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, svc.history.Entries(id))
}

// fail maps engine and store errors onto HTTP responses.
func (svc *service) fail(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrTaskNotFound):
		writeError(w, http.StatusNotFound, "task_not_found", err)
	case fsm.IsInvalidTransitionError(err):
		writeError(w, http.StatusConflict, "transition_not_enabled", err)
	default:
		svc.logger.ErrorContext(r.Context(), "listener failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "listener_failed", err)
	}
}

func (svc *service) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		svc.logger.DebugContext(r.Context(), "request handled",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			logger.Duration(time.Since(start)),
		)
	})
}
