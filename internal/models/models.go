package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// TaskStatus is the closed set of workflow states a task moves through.
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// ValidTaskStatuses enumerates the statuses accepted on create and update.
var ValidTaskStatuses = map[TaskStatus]struct{}{
	StatusPending:    {},
	StatusInProgress: {},
	StatusCompleted:  {},
}

// Error taxonomy shared by the storage, server and client layers.
var (
	ErrValidation   = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUnavailable  = errors.New("service unavailable")
)

// Task represents a single unit of work.
type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// User represents an account holder. The password hash never leaves the server.
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
}

// Summary is the aggregate dashboard view over all tasks.
type Summary struct {
	TotalTasks      int    `json:"totalTasks"`
	CompletedTasks  int    `json:"completedTasks"`
	PendingTasks    int    `json:"pendingTasks"`
	InProgressTasks int    `json:"inProgressTasks"`
	UpcomingTasks   []Task `json:"upcomingTasks"`
}

// NewTask carries the fields accepted when creating a task.
type NewTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     time.Time  `json:"dueDate"`
	Status      TaskStatus `json:"status"`
}

// Validate normalizes the input and reports the first violation.
// An empty status defaults to pending.
func (n *NewTask) Validate() error {
	n.Title = strings.TrimSpace(n.Title)
	if n.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if n.DueDate.IsZero() {
		return fmt.Errorf("%w: dueDate is required", ErrValidation)
	}
	if n.Status == "" {
		n.Status = StatusPending
	}
	if _, ok := ValidTaskStatuses[n.Status]; !ok {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, n.Status)
	}
	return nil
}

// TaskPatch carries a partial update; nil fields are left unchanged.
type TaskPatch struct {
	Title       *string     `json:"title,omitempty"`
	Description *string     `json:"description,omitempty"`
	DueDate     *time.Time  `json:"dueDate,omitempty"`
	Status      *TaskStatus `json:"status,omitempty"`
}

// Validate reports the first violation among the fields that are present.
func (p *TaskPatch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if p.Status != nil {
		if _, ok := ValidTaskStatuses[*p.Status]; !ok {
			return fmt.Errorf("%w: unknown status %q", ErrValidation, *p.Status)
		}
	}
	return nil
}

// Credentials is the login/register request body.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
