// Package store is the coordinating container for form snapshots and the
// entities dispatched from them. All mutation goes through explicit replace
// calls; there is no merging inside the store.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-clientform/pkg/form"
)

var (
	// ErrFormNotMounted is returned when a form id has no snapshot.
	ErrFormNotMounted = errors.New("store: form is not mounted")
	// ErrFormMounted is returned when mounting an id twice.
	ErrFormMounted = errors.New("store: form is already mounted")
)

// Action is the outbound payload of an accepted submit. EntityID is set when
// the form edited an existing entity.
type Action struct {
	Type     string      `json:"type"`
	FormID   string      `json:"formId"`
	Kind     string      `json:"kind"`
	EntityID string      `json:"entityId,omitempty"`
	Entity   form.Entity `json:"entity"`
}

// Dispatcher delivers actions to whatever owns persistence or transport.
type Dispatcher interface {
	Dispatch(ctx context.Context, action Action) error
}

// DispatcherFunc adapts a function into a Dispatcher.
type DispatcherFunc func(ctx context.Context, action Action) error

// Dispatch calls the underlying function.
func (fn DispatcherFunc) Dispatch(ctx context.Context, action Action) error {
	return fn(ctx, action)
}

// Store holds the current snapshot of every mounted form plus the entities
// dispatched so far, grouped by kind.
type Store struct {
	mu         sync.RWMutex
	forms      map[string]form.State
	entities   map[string][]form.Entity
	dispatcher Dispatcher
	logger     *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithDispatcher sets the outbound action channel.
func WithDispatcher(d Dispatcher) Option {
	return func(s *Store) {
		s.dispatcher = d
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs an empty store. Without a dispatcher, dispatched entities
// are only recorded locally.
func New(opts ...Option) *Store {
	s := &Store{
		forms:    make(map[string]form.State),
		entities: make(map[string][]form.Entity),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Mount registers a form snapshot under formID.
func (s *Store) Mount(formID string, state form.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[formID]; exists {
		return fmt.Errorf("%w: %s", ErrFormMounted, formID)
	}
	s.forms[formID] = state.Clone()
	s.logger.Debug("form mounted", zap.String("form", formID), zap.Int("fields", len(state)))
	return nil
}

// Unmount discards the snapshot for formID. Unknown ids are ignored.
func (s *Store) Unmount(formID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[formID]; !exists {
		return
	}
	delete(s.forms, formID)
	s.logger.Debug("form unmounted", zap.String("form", formID))
}

// Mounted reports whether formID has a snapshot.
func (s *Store) Mounted(formID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.forms[formID]
	return ok
}

// FormIDs returns the mounted form ids, sorted.
func (s *Store) FormIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.forms))
	for id := range s.forms {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetFormState returns a copy of the snapshot for formID.
func (s *Store) GetFormState(formID string) (form.State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.forms[formID]
	if !ok {
		return nil, false
	}
	return state.Clone(), true
}

// SetFormState replaces the snapshot for formID wholesale.
func (s *Store) SetFormState(formID string, state form.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[formID]; !ok {
		return fmt.Errorf("%w: %s", ErrFormNotMounted, formID)
	}
	s.forms[formID] = state.Clone()
	return nil
}

// Dispatch hands action to the dispatcher. The entity is recorded under its
// kind only when the dispatcher accepts it.
func (s *Store) Dispatch(ctx context.Context, action Action) error {
	s.mu.RLock()
	dispatcher := s.dispatcher
	s.mu.RUnlock()

	payload := action
	payload.Entity = action.Entity.Clone()
	if dispatcher != nil {
		if err := dispatcher.Dispatch(ctx, payload); err != nil {
			s.logger.Warn("dispatch failed",
				zap.String("action", action.Type),
				zap.String("form", action.FormID),
				zap.Error(err),
			)
			return fmt.Errorf("store: dispatch %s: %w", action.Type, err)
		}
	}

	s.mu.Lock()
	s.entities[action.Kind] = append(s.entities[action.Kind], payload.Entity.Clone())
	s.mu.Unlock()

	s.logger.Debug("action dispatched",
		zap.String("action", action.Type),
		zap.String("form", action.FormID),
		zap.String("kind", action.Kind),
	)
	return nil
}

// Entities returns copies of the entities recorded for kind, oldest first.
func (s *Store) Entities(kind string) []form.Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	recorded := s.entities[kind]
	if len(recorded) == 0 {
		return nil
	}
	out := make([]form.Entity, 0, len(recorded))
	for _, entity := range recorded {
		out = append(out, entity.Clone())
	}
	return out
}
