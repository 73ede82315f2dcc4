// Package testutil provides in-memory fakes for the auth and task
// services, with per-operation error injection.
package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/Luishgfarias/todo-front/pkg/api"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

// FakeAuthService is an in-memory auth backend for store tests.
type FakeAuthService struct {
	mu   sync.Mutex
	User domain.User

	Calls []string // method names in invocation order

	LoginErr    error
	RegisterErr error
	MeErr       error
	UpdateMeErr error
	DeleteMeErr error
}

// NewFakeAuthService creates a fake with a default user.
func NewFakeAuthService() *FakeAuthService {
	return &FakeAuthService{
		User: domain.User{ID: "u-1", Name: "Luis", Email: "luis@example.com"},
	}
}

func (f *FakeAuthService) record(name string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()
}

func (f *FakeAuthService) Login(_ context.Context, email, _ string) (*api.LoginResponse, error) {
	f.record("Login")
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	u := f.User
	u.Email = email
	return &api.LoginResponse{User: u, Token: "fake-token"}, nil
}

func (f *FakeAuthService) Register(_ context.Context, _, _, _ string) error {
	f.record("Register")
	return f.RegisterErr
}

func (f *FakeAuthService) Me(_ context.Context) (*domain.User, error) {
	f.record("Me")
	if f.MeErr != nil {
		return nil, f.MeErr
	}
	u := f.User
	return &u, nil
}

func (f *FakeAuthService) UpdateMe(_ context.Context, data domain.UpdateUserData) (*domain.User, error) {
	f.record("UpdateMe")
	if f.UpdateMeErr != nil {
		return nil, f.UpdateMeErr
	}
	u := f.User
	if data.Name != "" {
		u.Name = data.Name
	}
	if data.Email != "" {
		u.Email = data.Email
	}
	f.User = u
	out := u
	return &out, nil
}

func (f *FakeAuthService) DeleteMe(_ context.Context) error {
	f.record("DeleteMe")
	return f.DeleteMeErr
}

// FakeTaskService is an in-memory task backend for store tests. Pages
// are served from Tasks using PageSize; server-side title filtering is
// a simple substring match.
type FakeTaskService struct {
	mu       sync.Mutex
	Tasks    []domain.Task
	Details  map[int]domain.FullTask
	PageSize int
	NextID   int

	ListCalls int
	Calls     []string

	ListErr    error
	GetErr     error
	CreateErr  error
	UpdateErr  error
	ToggleErr  error
	DeleteErr  error
	DeletesErr error
}

// NewFakeTaskService creates an empty fake with a page size of 6
// (the server default).
func NewFakeTaskService() *FakeTaskService {
	return &FakeTaskService{
		Details:  make(map[int]domain.FullTask),
		PageSize: 6,
		NextID:   1,
	}
}

// Add seeds a task and returns it.
func (f *FakeTaskService) Add(title string, completed bool) domain.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.Task{
		ID:        f.NextID,
		Title:     title,
		Completed: completed,
		Urgency:   domain.UrgencyStandard,
		DueDate:   "2025-01-01",
	}
	f.NextID++
	f.Tasks = append(f.Tasks, t)
	return t
}

func (f *FakeTaskService) record(name string) {
	f.mu.Lock()
	f.Calls = append(f.Calls, name)
	f.mu.Unlock()
}

func (f *FakeTaskService) ListTasks(_ context.Context, page int, title string) (*domain.TaskPage, error) {
	f.record("ListTasks")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ListCalls++
	if f.ListErr != nil {
		return nil, f.ListErr
	}

	var matched []domain.Task
	for _, t := range f.Tasks {
		if title == "" || strings.Contains(t.Title, title) {
			matched = append(matched, t)
		}
	}
	totalPages := (len(matched) + f.PageSize - 1) / f.PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	start := (page - 1) * f.PageSize
	if start > len(matched) {
		start = len(matched)
	}
	end := start + f.PageSize
	if end > len(matched) {
		end = len(matched)
	}
	items := make([]domain.Task, end-start)
	copy(items, matched[start:end])
	return &domain.TaskPage{
		Tasks:       items,
		TotalTasks:  len(matched),
		CurrentPage: page,
		TotalPages:  totalPages,
	}, nil
}

func (f *FakeTaskService) GetTask(_ context.Context, id int) (*domain.FullTask, error) {
	f.record("GetTask")
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if d, ok := f.Details[id]; ok {
		return &d, nil
	}
	for _, t := range f.Tasks {
		if t.ID == id {
			return &domain.FullTask{Task: t, CreatedDate: "2025-01-01"}, nil
		}
	}
	return nil, &api.HTTPError{StatusCode: 404, Body: "Tarefa não encontrada", PlainText: true}
}

func (f *FakeTaskService) CreateTask(_ context.Context, data domain.CreateTaskData) (*domain.Task, error) {
	f.record("CreateTask")
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t := domain.Task{
		ID:      f.NextID,
		Title:   data.Title,
		Urgency: data.Urgency,
		DueDate: data.DueDate,
	}
	f.NextID++
	f.Tasks = append(f.Tasks, t)
	return &t, nil
}

func (f *FakeTaskService) UpdateTask(_ context.Context, id int, data domain.UpdateTaskData) (*domain.Task, error) {
	f.record("UpdateTask")
	if f.UpdateErr != nil {
		return nil, f.UpdateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Tasks {
		if f.Tasks[i].ID != id {
			continue
		}
		if data.Title != "" {
			f.Tasks[i].Title = data.Title
		}
		if data.Urgency != "" {
			f.Tasks[i].Urgency = data.Urgency
		}
		if data.DueDate != "" {
			f.Tasks[i].DueDate = data.DueDate
		}
		if data.Completed != nil {
			f.Tasks[i].Completed = *data.Completed
		}
		t := f.Tasks[i]
		return &t, nil
	}
	return nil, &api.HTTPError{StatusCode: 404, Body: "Tarefa não encontrada", PlainText: true}
}

func (f *FakeTaskService) ToggleTask(_ context.Context, id int, completed bool) (*domain.Task, error) {
	f.record("ToggleTask")
	if f.ToggleErr != nil {
		return nil, f.ToggleErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.Tasks {
		if f.Tasks[i].ID == id {
			f.Tasks[i].Completed = completed
			t := f.Tasks[i]
			return &t, nil
		}
	}
	return nil, &api.HTTPError{StatusCode: 404, Body: "Tarefa não encontrada", PlainText: true}
}

func (f *FakeTaskService) DeleteTask(_ context.Context, id int) error {
	f.record("DeleteTask")
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(map[int]bool{id: true})
	return nil
}

func (f *FakeTaskService) DeleteTasks(_ context.Context, ids []int) error {
	f.record("DeleteTasks")
	if f.DeletesErr != nil {
		return f.DeletesErr
	}
	gone := make(map[int]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removeLocked(gone)
	return nil
}

func (f *FakeTaskService) removeLocked(gone map[int]bool) {
	kept := f.Tasks[:0]
	for _, t := range f.Tasks {
		if !gone[t.ID] {
			kept = append(kept, t)
		}
	}
	f.Tasks = kept
}
