// Package state holds the two client-side state containers: the auth
// session and the task collection. Stores own their state exclusively;
// cross-store effects (logout clearing tasks) happen via explicit calls.
package state

import (
	"context"

	"github.com/Luishgfarias/todo-front/pkg/api"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

// AuthService is the auth surface the session store consumes.
// *api.Client satisfies it.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, name, email, password string) error
	Me(ctx context.Context) (*domain.User, error)
	UpdateMe(ctx context.Context, data domain.UpdateUserData) (*domain.User, error)
	DeleteMe(ctx context.Context) error
}

// TaskService is the task surface the task store consumes.
// *api.Client satisfies it.
type TaskService interface {
	ListTasks(ctx context.Context, page int, title string) (*domain.TaskPage, error)
	GetTask(ctx context.Context, id int) (*domain.FullTask, error)
	CreateTask(ctx context.Context, data domain.CreateTaskData) (*domain.Task, error)
	UpdateTask(ctx context.Context, id int, data domain.UpdateTaskData) (*domain.Task, error)
	ToggleTask(ctx context.Context, id int, completed bool) (*domain.Task, error)
	DeleteTask(ctx context.Context, id int) error
	DeleteTasks(ctx context.Context, ids []int) error
}

// Storage keys. The token is a raw string under its own key so the HTTP
// client can read it without decoding the task cache envelope.
const (
	TokenKey = "token"
	cacheKey = "task-storage"
)
