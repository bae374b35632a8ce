package syncer_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"
	"time"

	"taskflow/internal/cache"
	"taskflow/internal/models"
	"taskflow/internal/syncer"
	"taskflow/internal/testutil"
)

func newSyncer(svc *testutil.FakeService) *syncer.Syncer {
	return syncer.New(svc, cache.NewStore())
}

func seeded(ids ...string) *testutil.FakeService {
	svc := testutil.NewFakeService()
	for _, id := range ids {
		svc.Seed(models.Task{
			ID:      id,
			Title:   "task " + id,
			Status:  models.StatusPending,
			DueDate: time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		})
	}
	return svc
}

func TestRefresh_PopulatesCache(t *testing.T) {
	s := newSyncer(seeded("a", "b"))

	if err := s.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	state := s.Store().State()
	if state.Loading {
		t.Fatal("loading still set after refresh")
	}
	if state.Err != "" {
		t.Fatalf("unexpected error: %q", state.Err)
	}
	if len(state.Tasks) != 2 || state.Tasks[0].ID != "a" || state.Tasks[1].ID != "b" {
		t.Fatalf("unexpected tasks: %+v", state.Tasks)
	}
}

func TestRefresh_FailureRecordsMessage(t *testing.T) {
	svc := seeded("a")
	svc.ListErr = fmt.Errorf("%w: connection refused", models.ErrUnavailable)
	s := newSyncer(svc)

	err := s.Refresh(context.Background())
	if !errors.Is(err, models.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}

	state := s.Store().State()
	if state.Loading {
		t.Fatal("loading still set after failed refresh")
	}
	if state.Err != syncer.Describe(err) {
		t.Fatalf("expected categorized message, got %q", state.Err)
	}
	// The raw error detail must not leak into the cache.
	if state.Err == err.Error() {
		t.Fatalf("cache holds raw error detail: %q", state.Err)
	}
}

func TestCreate_AddsServerConfirmedTask(t *testing.T) {
	s := newSyncer(testutil.NewFakeService())
	ctx := context.Background()

	created, err := s.Create(ctx, models.NewTask{
		Title:   "new task",
		DueDate: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected server-assigned id")
	}

	state := s.Store().State()
	if len(state.Tasks) != 1 || state.Tasks[0].ID != created.ID {
		t.Fatalf("cache does not hold the created task: %+v", state.Tasks)
	}
	if state.Tasks[0].Status != models.StatusPending {
		t.Fatalf("expected defaulted status, got %s", state.Tasks[0].Status)
	}
}

func TestCreate_FailureLeavesCacheUntouched(t *testing.T) {
	svc := seeded("a")
	s := newSyncer(svc)
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := s.Store().State()

	// Server-side rejection.
	if _, err := s.Create(ctx, models.NewTask{DueDate: time.Now()}); !errors.Is(err, models.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	// Transport failure.
	svc.CreateErr = fmt.Errorf("%w: timeout", models.ErrUnavailable)
	if _, err := s.Create(ctx, models.NewTask{Title: "x", DueDate: time.Now()}); !errors.Is(err, models.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}

	if after := s.Store().State(); !reflect.DeepEqual(before, after) {
		t.Fatalf("cache changed on failed create: %+v vs %+v", before, after)
	}
}

func TestUpdate_MirrorsServerResult(t *testing.T) {
	s := newSyncer(seeded("a", "b"))
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	status := models.StatusCompleted
	updated, err := s.Update(ctx, "a", models.TaskPatch{Status: &status})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Status != models.StatusCompleted {
		t.Fatalf("unexpected status: %s", updated.Status)
	}

	state := s.Store().State()
	if state.Tasks[0].Status != models.StatusCompleted {
		t.Fatalf("cache not updated: %+v", state.Tasks[0])
	}
	if state.Tasks[0].Title != "task a" {
		t.Fatalf("untouched field changed: %+v", state.Tasks[0])
	}
	if state.Tasks[1].Status != models.StatusPending {
		t.Fatalf("other task changed: %+v", state.Tasks[1])
	}
}

func TestUpdate_FailureLeavesCacheUntouched(t *testing.T) {
	s := newSyncer(seeded("a"))
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	before := s.Store().State()

	status := models.StatusCompleted
	if _, err := s.Update(ctx, "ghost", models.TaskPatch{Status: &status}); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if after := s.Store().State(); !reflect.DeepEqual(before, after) {
		t.Fatalf("cache changed on failed update: %+v vs %+v", before, after)
	}
}

func TestDelete_RemovesFromCache(t *testing.T) {
	s := newSyncer(seeded("a", "b"))
	ctx := context.Background()

	if err := s.Refresh(ctx); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	state := s.Store().State()
	if len(state.Tasks) != 1 || state.Tasks[0].ID != "b" {
		t.Fatalf("unexpected tasks after delete: %+v", state.Tasks)
	}

	// A second delete of the same id is harmless end to end.
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("repeated delete: %v", err)
	}
	if got := len(s.Store().State().Tasks); got != 1 {
		t.Fatalf("repeated delete changed cache: %d tasks", got)
	}
}

func TestSummary_Passthrough(t *testing.T) {
	svc := seeded("a", "b")
	svc.Now = time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s := newSyncer(svc)

	sum, err := s.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if sum.TotalTasks != 2 || sum.PendingTasks != 2 {
		t.Fatalf("unexpected summary: %+v", sum)
	}
	if len(sum.UpcomingTasks) != 2 {
		t.Fatalf("unexpected upcoming: %+v", sum.UpcomingTasks)
	}
	// Read-only: the cache stays empty.
	if got := len(s.Store().State().Tasks); got != 0 {
		t.Fatalf("summary touched the cache: %d tasks", got)
	}
}

func TestDescribe_CollapsesTaxonomy(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"validation", fmt.Errorf("%w: title", models.ErrValidation)},
		{"not found", fmt.Errorf("task x: %w", models.ErrNotFound)},
		{"conflict", fmt.Errorf("user y: %w", models.ErrConflict)},
		{"unauthorized", fmt.Errorf("%w: expired", models.ErrUnauthorized)},
		{"unavailable", fmt.Errorf("%w: refused", models.ErrUnavailable)},
		{"unknown", errors.New("disk on fire")},
	}

	seen := map[string]bool{}
	for _, tc := range cases {
		msg := syncer.Describe(tc.err)
		if msg == "" {
			t.Fatalf("%s: empty message", tc.name)
		}
		if msg == tc.err.Error() {
			t.Fatalf("%s: message leaks raw error: %q", tc.name, msg)
		}
		if seen[msg] {
			t.Fatalf("%s: message reused across categories: %q", tc.name, msg)
		}
		seen[msg] = true
	}

	if syncer.Describe(nil) != "" {
		t.Fatal("nil error should describe as empty")
	}
}
