package task

import (
	"context"
	"strings"
	"time"

	"log/slog"

	"github.com/taskvault/api/internal/domain"
	"github.com/taskvault/api/internal/repository"
	"github.com/taskvault/api/internal/validation"
)

// Input carries the client-writable task fields. Owner and id are never read
// from client input; they come from the authenticated subject and the route.
type Input struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Status      domain.TaskStatus `json:"status"`
	DueDate     time.Time         `json:"dueDate"`
}

func (in Input) validate() error {
	verr := validation.NewError()
	if strings.TrimSpace(in.Title) == "" {
		verr.Add("title", "is required")
	}
	if !domain.ValidTaskStatus(in.Status) {
		verr.Add("status", "must be one of Pending, InProgress, Completed")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

// Service is the single choke point for task operations. Every lookup and
// mutation of an existing task goes through an owner-scoped repository call,
// so a task belonging to someone else is indistinguishable from a missing
// one.
type Service struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
}

// New constructs a Service.
func New(tasks repository.TaskRepository, logger *slog.Logger) Service {
	return Service{tasks: tasks, logger: logger}
}

// Create stores a new task owned by the authenticated subject.
func (s Service) Create(ctx context.Context, ownerID string, in Input) (*domain.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	task := &domain.Task{
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tasks.CreateTask(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("task created", "task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// Get returns the task only when it belongs to the subject.
func (s Service) Get(ctx context.Context, ownerID string, id int64) (*domain.Task, error) {
	return s.tasks.GetTaskForOwner(ctx, id, ownerID)
}

// List returns every task owned by the subject; an empty collection is a
// normal result, not an error.
func (s Service) List(ctx context.Context, ownerID string) ([]domain.Task, error) {
	return s.tasks.ListTasksByOwner(ctx, ownerID)
}

// Update rewrites the mutable fields of an owned task.
func (s Service) Update(ctx context.Context, ownerID string, id int64, in Input) (*domain.Task, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	task := &domain.Task{
		ID:          id,
		OwnerID:     ownerID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Status:      in.Status,
		DueDate:     in.DueDate,
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.tasks.UpdateTaskForOwner(ctx, task); err != nil {
		return nil, err
	}
	s.logger.Info("task updated", "task_id", task.ID, "user_id", ownerID)
	return task, nil
}

// Delete removes an owned task.
func (s Service) Delete(ctx context.Context, ownerID string, id int64) error {
	if err := s.tasks.DeleteTaskForOwner(ctx, id, ownerID); err != nil {
		return err
	}
	s.logger.Info("task deleted", "task_id", id, "user_id", ownerID)
	return nil
}
