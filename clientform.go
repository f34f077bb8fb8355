// Package clientform is the quick start entry point: it re-exports the types
// most callers need and opens client and job forms over a fresh store.
package clientform

import (
	"github.com/goliatone/go-clientform/pkg/form"
	"github.com/goliatone/go-clientform/pkg/session"
	"github.com/goliatone/go-clientform/pkg/store"
)

// Entity aliases form.Entity, the flattened record handed to the dispatcher.
type Entity = form.Entity

// Definition aliases form.Definition.
type Definition = form.Definition

// Action aliases store.Action.
type Action = store.Action

// Dispatcher aliases store.Dispatcher.
type Dispatcher = store.Dispatcher

// DispatcherFunc aliases store.DispatcherFunc.
type DispatcherFunc = store.DispatcherFunc

// Outcome aliases session.Outcome.
type Outcome = session.Outcome

// FieldView aliases session.FieldView.
type FieldView = session.FieldView

// Open mounts def on a new store that forwards accepted submits to
// dispatcher.
func Open(dispatcher Dispatcher, def Definition, opts ...session.Option) (*session.Session, error) {
	st := store.New(store.WithDispatcher(dispatcher))
	return session.Open(st, def, opts...)
}

// NewClient opens a blank "new client" form.
func NewClient(dispatcher Dispatcher, opts ...session.Option) (*session.Session, error) {
	return Open(dispatcher, form.ClientDefinition(), opts...)
}

// EditClient opens the client form pre-filled from entity. An "id" key in
// entity is carried to the dispatched action.
func EditClient(dispatcher Dispatcher, entity Entity, opts ...session.Option) (*session.Session, error) {
	return Open(dispatcher, form.ClientDefinition(), append([]session.Option{session.WithEntity(entity)}, opts...)...)
}

// NewJob opens a blank "new job" form.
func NewJob(dispatcher Dispatcher, opts ...session.Option) (*session.Session, error) {
	return Open(dispatcher, form.JobDefinition(), opts...)
}
