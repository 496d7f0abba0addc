package repository

import (
	"context"

	"github.com/taskvault/api/internal/domain"
)

// UserRepository persists registered identities.
type UserRepository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
}

// TaskRepository persists tasks. Every read and mutation of an existing task
// carries the owner predicate inside the query itself, so a miss never
// reveals whether the id exists under another owner.
type TaskRepository interface {
	CreateTask(ctx context.Context, task *domain.Task) error
	GetTaskForOwner(ctx context.Context, id int64, ownerID string) (*domain.Task, error)
	ListTasksByOwner(ctx context.Context, ownerID string) ([]domain.Task, error)
	UpdateTaskForOwner(ctx context.Context, task *domain.Task) error
	DeleteTaskForOwner(ctx context.Context, id int64, ownerID string) error
}
