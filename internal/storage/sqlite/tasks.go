package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"taskflow/internal/models"
)

// CreateTask validates the input, assigns an id and persists the task.
func (s *Store) CreateTask(ctx context.Context, input models.NewTask) (models.Task, error) {
	if err := input.Validate(); err != nil {
		return models.Task{}, err
	}

	id := uuid.NewString()
	now := time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `INSERT INTO tasks(id, title, description, due_date, status, created_at, updated_at)
        VALUES(?, ?, ?, ?, ?, ?, ?)`,
		id, input.Title, input.Description, input.DueDate.UTC(), input.Status, now, now)
	if err != nil {
		return models.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// ListTasks returns all tasks in insertion order.
func (s *Store) ListTasks(ctx context.Context) ([]models.Task, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, due_date, status, created_at, updated_at
        FROM tasks ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetTask retrieves a task by id.
func (s *Store) GetTask(ctx context.Context, id string) (models.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, title, description, due_date, status, created_at, updated_at
        FROM tasks WHERE id = ?`, id)

	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Task{}, fmt.Errorf("task %s: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return models.Task{}, err
	}
	return t, nil
}

// UpdateTask applies a partial update and returns the stored task.
// Fields not present in the patch are left unchanged.
func (s *Store) UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (models.Task, error) {
	if err := patch.Validate(); err != nil {
		return models.Task{}, err
	}

	current, err := s.GetTask(ctx, id)
	if err != nil {
		return models.Task{}, err
	}

	if patch.Title != nil {
		current.Title = *patch.Title
	}
	if patch.Description != nil {
		current.Description = *patch.Description
	}
	if patch.DueDate != nil {
		current.DueDate = patch.DueDate.UTC()
	}
	if patch.Status != nil {
		current.Status = *patch.Status
	}

	_, err = s.db.ExecContext(ctx, `UPDATE tasks SET title = ?, description = ?, due_date = ?, status = ?, updated_at = ? WHERE id = ?`,
		current.Title, current.Description, current.DueDate, current.Status, time.Now().UTC(), id)
	if err != nil {
		return models.Task{}, fmt.Errorf("update task: %w", err)
	}
	return s.GetTask(ctx, id)
}

// DeleteTask removes a task by id. Deleting an absent task is not an error.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// Summary aggregates task counts by status and collects up to five pending
// tasks due at or after now, soonest first.
func (s *Store) Summary(ctx context.Context, now time.Time) (models.Summary, error) {
	var sum models.Summary
	err := s.db.QueryRowContext(ctx, `SELECT
            COUNT(*),
            COALESCE(SUM(status = 'completed'), 0),
            COALESCE(SUM(status = 'pending'), 0),
            COALESCE(SUM(status = 'in-progress'), 0)
        FROM tasks`).
		Scan(&sum.TotalTasks, &sum.CompletedTasks, &sum.PendingTasks, &sum.InProgressTasks)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summary counts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, title, description, due_date, status, created_at, updated_at
        FROM tasks WHERE status = 'pending' AND due_date >= ? ORDER BY due_date ASC, rowid LIMIT 5`, now.UTC())
	if err != nil {
		return models.Summary{}, fmt.Errorf("summary upcoming: %w", err)
	}
	defer rows.Close()

	sum.UpcomingTasks = []models.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return models.Summary{}, err
		}
		sum.UpcomingTasks = append(sum.UpcomingTasks, t)
	}
	return sum, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var t models.Task
	err := row.Scan(&t.ID, &t.Title, &t.Description, &t.DueDate, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, err
		}
		return models.Task{}, fmt.Errorf("scan task: %w", err)
	}
	return t, nil
}
