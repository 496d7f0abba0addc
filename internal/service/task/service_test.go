package task

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"log/slog"

	"github.com/taskvault/api/internal/domain"
	"github.com/taskvault/api/internal/repository"
	"github.com/taskvault/api/internal/validation"
)

type taskRepoStub struct {
	tasks  map[int64]domain.Task
	nextID int64
}

func newTaskRepoStub() *taskRepoStub {
	return &taskRepoStub{tasks: make(map[int64]domain.Task)}
}

func (s *taskRepoStub) CreateTask(_ context.Context, task *domain.Task) error {
	s.nextID++
	task.ID = s.nextID
	s.tasks[task.ID] = *task
	return nil
}

func (s *taskRepoStub) GetTaskForOwner(_ context.Context, id int64, ownerID string) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (s *taskRepoStub) ListTasksByOwner(_ context.Context, ownerID string) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0)
	for _, task := range s.tasks {
		if task.OwnerID == ownerID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (s *taskRepoStub) UpdateTaskForOwner(_ context.Context, task *domain.Task) error {
	existing, ok := s.tasks[task.ID]
	if !ok || existing.OwnerID != task.OwnerID {
		return repository.ErrNotFound
	}
	task.CreatedAt = existing.CreatedAt
	s.tasks[task.ID] = *task
	return nil
}

func (s *taskRepoStub) DeleteTaskForOwner(_ context.Context, id int64, ownerID string) error {
	existing, ok := s.tasks[id]
	if !ok || existing.OwnerID != ownerID {
		return repository.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

func newService(repo repository.TaskRepository) Service {
	return New(repo, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func validInput() Input {
	return Input{
		Title:   "Buy milk",
		Status:  domain.TaskStatusPending,
		DueDate: time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestCreateForcesOwnerAndAssignsID(t *testing.T) {
	repo := newTaskRepoStub()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), "user-a", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if created.OwnerID != "user-a" {
		t.Fatalf("expected owner forced to caller, got %q", created.OwnerID)
	}
}

func TestCreateValidatesInput(t *testing.T) {
	svc := newService(newTaskRepoStub())

	_, err := svc.Create(context.Background(), "user-a", Input{Title: "  ", Status: "Unknown"})
	var verr *validation.Error
	if !errors.As(err, &verr) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, ok := verr.Fields["title"]; !ok {
		t.Fatalf("expected title error, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["status"]; !ok {
		t.Fatalf("expected status error, got %v", verr.Fields)
	}
}

func TestForeignTaskIsNotFound(t *testing.T) {
	repo := newTaskRepoStub()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), "user-a", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := svc.Get(context.Background(), "user-b", created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("get as other owner: expected ErrNotFound, got %v", err)
	}
	if _, err := svc.Update(context.Background(), "user-b", created.ID, validInput()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("update as other owner: expected ErrNotFound, got %v", err)
	}
	if err := svc.Delete(context.Background(), "user-b", created.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("delete as other owner: expected ErrNotFound, got %v", err)
	}

	// The owner still sees the task untouched.
	got, err := svc.Get(context.Background(), "user-a", created.ID)
	if err != nil {
		t.Fatalf("get as owner: %v", err)
	}
	if got.Title != "Buy milk" {
		t.Fatalf("unexpected title %q", got.Title)
	}
}

func TestListEmptyReturnsEmptySlice(t *testing.T) {
	svc := newService(newTaskRepoStub())

	tasks, err := svc.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tasks == nil || len(tasks) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", tasks)
	}
}

func TestUpdateRewritesMutableFields(t *testing.T) {
	repo := newTaskRepoStub()
	svc := newService(repo)

	created, err := svc.Create(context.Background(), "user-a", validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Title = "Buy oat milk"
	in.Status = domain.TaskStatusCompleted
	updated, err := svc.Update(context.Background(), "user-a", created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "Buy oat milk" || updated.Status != domain.TaskStatusCompleted {
		t.Fatalf("unexpected updated task: %+v", updated)
	}
	if updated.OwnerID != "user-a" {
		t.Fatalf("owner must not change, got %q", updated.OwnerID)
	}
}
