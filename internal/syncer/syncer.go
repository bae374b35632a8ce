// Package syncer glues the client task cache to the remote task service. It
// translates user intents into remote calls and server-confirmed responses
// into cache actions; the cache is never touched before a call resolves.
package syncer

import (
	"context"

	"taskflow/internal/cache"
	"taskflow/internal/models"
)

// Service is the remote task API as consumed by the syncer. The HTTP client
// implements it in production; tests substitute an in-memory fake.
type Service interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	GetTask(ctx context.Context, id string) (models.Task, error)
	CreateTask(ctx context.Context, input models.NewTask) (models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error)
	DeleteTask(ctx context.Context, id string) error
	Summary(ctx context.Context) (models.Summary, error)
}

// Syncer drives one cache store from one remote service.
type Syncer struct {
	svc   Service
	store *cache.Store
}

// New wires a service to a cache store.
func New(svc Service, store *cache.Store) *Syncer {
	return &Syncer{svc: svc, store: store}
}

// Store exposes the cache store driven by this syncer.
func (s *Syncer) Store() *cache.Store {
	return s.store
}

// Refresh replaces the cached task list with the server's. A failure is
// recorded in the cache as a user-facing message and also returned.
func (s *Syncer) Refresh(ctx context.Context) error {
	s.store.Dispatch(cache.FetchStart{})

	tasks, err := s.svc.ListTasks(ctx)
	if err != nil {
		s.store.Dispatch(cache.FetchError{Msg: Describe(err)})
		return err
	}
	s.store.Dispatch(cache.FetchSuccess{Tasks: tasks})
	return nil
}

// Create asks the server to create a task and, once confirmed, adds the
// stored task to the cache. On failure the cache is left untouched.
func (s *Syncer) Create(ctx context.Context, input models.NewTask) (models.Task, error) {
	task, err := s.svc.CreateTask(ctx, input)
	if err != nil {
		return models.Task{}, err
	}
	s.store.Dispatch(cache.AddTask{Task: task})
	return task, nil
}

// Update applies a partial update remotely and mirrors the confirmed result
// into the cache. On failure the cache is left untouched.
func (s *Syncer) Update(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	task, err := s.svc.UpdateTask(ctx, id, patch)
	if err != nil {
		return models.Task{}, err
	}
	s.store.Dispatch(cache.UpdateTask{Task: task})
	return task, nil
}

// Delete removes a task remotely and then from the cache. The remote delete
// is idempotent, so an already-absent task still counts as success.
func (s *Syncer) Delete(ctx context.Context, id string) error {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		return err
	}
	s.store.Dispatch(cache.DeleteTask{ID: id})
	return nil
}

// Summary fetches the aggregate view. It is read-only and bypasses the cache.
func (s *Syncer) Summary(ctx context.Context) (models.Summary, error) {
	return s.svc.Summary(ctx)
}
