// Package session drives one live form instance. It turns inbound edit and
// submit events into store updates, consulting the submission gate to decide
// whether edits revalidate and whether errors are shown.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/gate"
	"github.com/goliatone/go-clientform/pkg/store"
)

// ErrClosed is returned for events on a form that was closed or already
// submitted successfully.
var ErrClosed = errors.New("session: form is closed")

// Outcome describes a submit attempt. Entity is nil when the submit was
// rejected.
type Outcome struct {
	Accepted   bool
	Dispatched bool
	Entity     form.Entity
	State      form.State
}

// FieldView is the render projection of one field. Error and HelperText are
// only populated once the gate is submitted.
type FieldView struct {
	Name       string
	Label      string
	Value      string
	Error      bool
	HelperText string
}

// Session is a mounted form instance. Events must come from a single caller
// in the order the user produced them.
type Session struct {
	id       string
	entityID string
	def      form.Definition
	store    *store.Store
	gate     *gate.Gate
	logger   *zap.Logger
	metrics  *Metrics
	filter   func(string) string
	closed   bool
}

type config struct {
	id      string
	entity  form.Entity
	logger  *zap.Logger
	metrics *Metrics
	filter  func(string) string
}

// Option configures Open.
type Option func(*config)

// WithID overrides the generated instance id.
func WithID(id string) Option {
	return func(cfg *config) {
		cfg.id = id
	}
}

// WithEntity pre-fills the form from an existing entity (edit forms). An
// "id" key, when present, is carried into the dispatched action.
func WithEntity(entity form.Entity) Option {
	return func(cfg *config) {
		cfg.entity = entity
	}
}

// WithLogger sets the session logger.
func WithLogger(logger *zap.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// WithMetrics enables activity counters.
func WithMetrics(metrics *Metrics) Option {
	return func(cfg *config) {
		cfg.metrics = metrics
	}
}

// WithInputFilter rewrites every edited value before it enters the form, so
// validation and the dispatched entity both see the filtered text.
func WithInputFilter(filter func(string) string) Option {
	return func(cfg *config) {
		cfg.filter = filter
	}
}

// Open mounts a new instance of def in st.
func Open(st *store.Store, def form.Definition, opts ...Option) (*Session, error) {
	if st == nil {
		return nil, errors.New("session: store is required")
	}
	cfg := config{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.id == "" {
		cfg.id = uuid.NewString()
	}
	if cfg.logger == nil {
		cfg.logger = zap.NewNop()
	}
	logger := cfg.logger.With(zap.String("form", cfg.id), zap.String("definition", def.ID))

	initial := def.New()
	if cfg.entity != nil {
		initial = def.FromEntity(cfg.entity)
	}
	if err := st.Mount(cfg.id, initial); err != nil {
		return nil, fmt.Errorf("session: open %s: %w", def.ID, err)
	}

	return &Session{
		id:       cfg.id,
		entityID: cfg.entity["id"],
		def:      def,
		store:    st,
		gate:     gate.New(cfg.id, gate.WithLogger(logger)),
		logger:   logger,
		metrics:  cfg.metrics,
		filter:   cfg.filter,
	}, nil
}

// ID returns the instance id used as the store key.
func (s *Session) ID() string { return s.id }

// Definition returns the form declaration.
func (s *Session) Definition() form.Definition { return s.def }

// Submitted reports whether a submit was attempted.
func (s *Session) Submitted() bool { return s.gate.Submitted() }

// Closed reports whether the form was discarded.
func (s *Session) Closed() bool { return s.closed }

// State returns the current snapshot.
func (s *Session) State() (form.State, error) {
	if s.closed {
		return nil, ErrClosed
	}
	state, ok := s.store.GetFormState(s.id)
	if !ok {
		return nil, ErrClosed
	}
	return state, nil
}

// Edit applies a field edit. Before the first submit only the value changes;
// afterwards the whole form is revalidated so corrections show immediately.
func (s *Session) Edit(name, value string) error {
	current, err := s.State()
	if err != nil {
		return err
	}
	if s.filter != nil {
		value = s.filter(value)
	}
	next, err := s.def.Edit(current, name, value)
	if err != nil {
		return err
	}
	if s.gate.Submitted() {
		next = s.def.Validate(next)
	}
	s.metrics.edit(s.def.ID)
	return s.store.SetFormState(s.id, next)
}

// Submit validates the whole form, opens the gate and, when every field
// passes, dispatches the flattened entity exactly once. A rejected submit
// returns a nil error; the returned error is only ever the dispatcher's.
// When dispatch fails the form stays mounted so the caller can retry.
func (s *Session) Submit(ctx context.Context) (Outcome, error) {
	current, err := s.State()
	if err != nil {
		return Outcome{}, err
	}

	validated := s.def.Validate(current)
	if err := s.gate.Submit(ctx); err != nil {
		return Outcome{}, fmt.Errorf("session: submit gate: %w", err)
	}
	if err := s.store.SetFormState(s.id, validated); err != nil {
		return Outcome{}, err
	}

	if validated.HasErrors() {
		s.logger.Debug("submit rejected", zap.Strings("fields", validated.Failures()))
		s.metrics.submit(s.def.ID, OutcomeRejected)
		return Outcome{State: validated}, nil
	}

	entity := validated.Flatten()
	outcome := Outcome{Accepted: true, Entity: entity, State: validated}
	err = s.store.Dispatch(ctx, store.Action{
		Type:     s.def.Action,
		FormID:   s.id,
		Kind:     s.def.Entity,
		EntityID: s.entityID,
		Entity:   entity,
	})
	if err != nil {
		s.metrics.submit(s.def.ID, OutcomeFailed)
		return outcome, err
	}

	s.metrics.submit(s.def.ID, OutcomeAccepted)
	s.logger.Info("submit accepted", zap.String("action", s.def.Action))
	outcome.Dispatched = true
	s.Close()
	return outcome, nil
}

// View projects the current snapshot for rendering in declaration order.
func (s *Session) View() []FieldView {
	state, err := s.State()
	if err != nil {
		return nil
	}
	views := make([]FieldView, 0, len(s.def.Fields))
	for _, spec := range s.def.Fields {
		current := state[spec.Name]
		view := FieldView{
			Name:  spec.Name,
			Label: s.def.Label(spec.Name),
			Value: current.Value,
		}
		if s.gate.Visible(current) {
			view.Error = true
			view.HelperText = current.HelperText
		}
		views = append(views, view)
	}
	return views
}

// Close unmounts the form. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.store.Unmount(s.id)
}
