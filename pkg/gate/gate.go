// Package gate implements the submission gate of a form instance: a two-state
// machine that starts pristine and moves to submitted on the first submit
// attempt, never going back.
package gate

import (
	"context"
	"sync"

	"github.com/looplab/fsm"
	"go.uber.org/zap"

	"github.com/goliatone/go-clientform/pkg/field"
)

const (
	StatePristine  = "pristine"
	StateSubmitted = "submitted"

	EventSubmit = "submit"
)

// Gate tracks whether a form has seen a submit attempt. The zero value is not
// usable; construct gates with New.
type Gate struct {
	mu     sync.Mutex
	fsm    *fsm.FSM
	id     string
	logger *zap.Logger
}

// Option configures a Gate.
type Option func(*Gate)

// WithLogger attaches a logger used for transition traces.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New returns a pristine gate for the form instance id.
func New(id string, opts ...Option) *Gate {
	g := &Gate{id: id, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	g.fsm = fsm.NewFSM(
		StatePristine,
		fsm.Events{
			{Name: EventSubmit, Src: []string{StatePristine}, Dst: StateSubmitted},
		},
		fsm.Callbacks{
			"enter_" + StateSubmitted: func(_ context.Context, e *fsm.Event) {
				g.logger.Debug("submission gate opened",
					zap.String("form", g.id),
					zap.String("from", e.Src),
				)
			},
		},
	)
	return g
}

// Submit records a submit attempt. The first call moves the gate to
// submitted; later calls are no-ops.
func (g *Gate) Submit(ctx context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.fsm.Can(EventSubmit) {
		return nil
	}
	return g.fsm.Event(ctx, EventSubmit)
}

// State returns the current state name.
func (g *Gate) State() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.fsm.Current()
}

// Submitted reports whether a submit has been attempted.
func (g *Gate) Submitted() bool {
	return g.State() == StateSubmitted
}

// Visible reports whether state's error should be rendered.
func (g *Gate) Visible(state field.State) bool {
	return state.Error && g.Submitted()
}
