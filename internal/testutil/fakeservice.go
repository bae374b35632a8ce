// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"taskflow/internal/models"
)

// FakeService is an in-memory implementation of syncer.Service for testing.
// It mirrors the server's semantics: ids are assigned on create, deletes are
// idempotent and the summary counts by status.
type FakeService struct {
	mu    sync.RWMutex
	seq   int
	tasks []models.Task

	// Error injection for testing.
	ListErr    error
	GetErr     error
	CreateErr  error
	UpdateErr  error
	DeleteErr  error
	SummaryErr error

	// Now is the cutoff used for upcoming tasks; zero means time.Now().
	Now time.Time
}

// NewFakeService creates an empty fake service.
func NewFakeService() *FakeService {
	return &FakeService{}
}

// Seed inserts tasks directly, bypassing validation and id assignment.
func (f *FakeService) Seed(tasks ...models.Task) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tasks = append(f.tasks, tasks...)
}

// ListTasks implements syncer.Service.
func (f *FakeService) ListTasks(ctx context.Context) ([]models.Task, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]models.Task, len(f.tasks))
	copy(result, f.tasks)
	return result, nil
}

// GetTask implements syncer.Service.
func (f *FakeService) GetTask(ctx context.Context, id string) (models.Task, error) {
	if f.GetErr != nil {
		return models.Task{}, f.GetErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, t := range f.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return models.Task{}, fmt.Errorf("task %s: %w", id, models.ErrNotFound)
}

// CreateTask implements syncer.Service.
func (f *FakeService) CreateTask(ctx context.Context, input models.NewTask) (models.Task, error) {
	if f.CreateErr != nil {
		return models.Task{}, f.CreateErr
	}
	if err := input.Validate(); err != nil {
		return models.Task{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	now := time.Now().UTC()
	task := models.Task{
		ID:          fmt.Sprintf("task-%d", f.seq),
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

// UpdateTask implements syncer.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if f.UpdateErr != nil {
		return models.Task{}, f.UpdateErr
	}
	if err := patch.Validate(); err != nil {
		return models.Task{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID != id {
			continue
		}
		if patch.Title != nil {
			f.tasks[i].Title = *patch.Title
		}
		if patch.Description != nil {
			f.tasks[i].Description = *patch.Description
		}
		if patch.DueDate != nil {
			f.tasks[i].DueDate = *patch.DueDate
		}
		if patch.Status != nil {
			f.tasks[i].Status = *patch.Status
		}
		f.tasks[i].UpdatedAt = time.Now().UTC()
		return f.tasks[i], nil
	}
	return models.Task{}, fmt.Errorf("task %s: %w", id, models.ErrNotFound)
}

// DeleteTask implements syncer.Service. Deleting an absent task succeeds.
func (f *FakeService) DeleteTask(ctx context.Context, id string) error {
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

// Summary implements syncer.Service.
func (f *FakeService) Summary(ctx context.Context) (models.Summary, error) {
	if f.SummaryErr != nil {
		return models.Summary{}, f.SummaryErr
	}
	now := f.Now
	if now.IsZero() {
		now = time.Now()
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	sum := models.Summary{
		TotalTasks:    len(f.tasks),
		UpcomingTasks: []models.Task{},
	}
	for _, t := range f.tasks {
		switch t.Status {
		case models.StatusCompleted:
			sum.CompletedTasks++
		case models.StatusPending:
			sum.PendingTasks++
		case models.StatusInProgress:
			sum.InProgressTasks++
		}
		if t.Status == models.StatusPending && !t.DueDate.Before(now) {
			sum.UpcomingTasks = append(sum.UpcomingTasks, t)
		}
	}
	sort.SliceStable(sum.UpcomingTasks, func(i, j int) bool {
		return sum.UpcomingTasks[i].DueDate.Before(sum.UpcomingTasks[j].DueDate)
	})
	if len(sum.UpcomingTasks) > 5 {
		sum.UpcomingTasks = sum.UpcomingTasks[:5]
	}
	return sum, nil
}
