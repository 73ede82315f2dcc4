package state

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/Luishgfarias/todo-front/internal/notify"
	"github.com/Luishgfarias/todo-front/internal/storage"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

// staleAfter is how long a persisted cache envelope stays valid.
// An envelope exactly at the boundary is still kept.
const staleAfter = 10 * time.Minute

// cacheState is the persisted subset of the task page. Loading flags,
// the open detail and the selection set are never persisted.
type cacheState struct {
	Tasks       []domain.Task `json:"tasks"`
	CurrentPage int           `json:"currentPage"`
	TotalPages  int           `json:"totalPages"`
	TotalTasks  int           `json:"totalTasks"`
	SearchTerm  string        `json:"searchTerm"`
	Timestamp   int64         `json:"timestamp"` // unix milliseconds at capture
}

// cacheEnvelope matches the persisted JSON layout.
type cacheEnvelope struct {
	State cacheState `json:"state"`
}

// TaskStore owns the current task page, the single open task detail and
// the multi-select set. All mutations go through service calls first;
// a failed call never leaves a partial write.
type TaskStore struct {
	mu      sync.Mutex
	svc     TaskService
	storage storage.Store
	notify  notify.Notifier
	now     func() time.Time

	tasks       []domain.Task
	currentPage int
	totalPages  int
	totalTasks  int
	searchTerm  string
	loading     bool

	detail        *domain.FullTask
	detailLoading map[int]bool
	selected      map[int]bool

	// fetchGen guards against out-of-order fetch completions: only the
	// most recently issued FetchTasks may write state.
	fetchGen uint64
}

// NewTaskStore creates a task store, rehydrating any fresh persisted
// cache envelope.
func NewTaskStore(svc TaskService, st storage.Store, n notify.Notifier) *TaskStore {
	return newTaskStore(svc, st, n, time.Now)
}

func newTaskStore(svc TaskService, st storage.Store, n notify.Notifier, now func() time.Time) *TaskStore {
	s := &TaskStore{
		svc:           svc,
		storage:       st,
		notify:        n,
		now:           now,
		currentPage:   1,
		totalPages:    1,
		detailLoading: make(map[int]bool),
		selected:      make(map[int]bool),
	}
	s.rehydrate()
	return s
}

// rehydrate reads the persisted envelope back, discarding it (and
// removing the key) when older than staleAfter or unreadable.
func (s *TaskStore) rehydrate() {
	raw, ok := s.storage.Get(cacheKey)
	if !ok {
		return
	}
	var env cacheEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		_ = s.storage.Remove(cacheKey) //nolint:errcheck
		return
	}
	age := s.now().Sub(time.UnixMilli(env.State.Timestamp))
	if age > staleAfter {
		_ = s.storage.Remove(cacheKey) //nolint:errcheck
		return
	}
	s.tasks = env.State.Tasks
	s.currentPage = env.State.CurrentPage
	s.totalPages = env.State.TotalPages
	s.totalTasks = env.State.TotalTasks
	s.searchTerm = env.State.SearchTerm
}

// persistLocked writes the cache envelope. Callers hold s.mu.
// The write is best-effort; in-memory state is already updated.
func (s *TaskStore) persistLocked() {
	env := cacheEnvelope{State: cacheState{
		Tasks:       s.tasks,
		CurrentPage: s.currentPage,
		TotalPages:  s.totalPages,
		TotalTasks:  s.totalTasks,
		SearchTerm:  s.searchTerm,
		Timestamp:   s.now().UnixMilli(),
	}}
	data, err := json.Marshal(env)
	if err != nil {
		return
	}
	_ = s.storage.Set(cacheKey, string(data)) //nolint:errcheck
}

// FetchTasks loads one page of tasks. page defaults to 1, title to "".
//
// When the requested (page, title) equal the held (currentPage,
// searchTerm) and the item list is non-empty, the call is a cache hit
// and no request is issued — even right after rehydration, which trades
// freshness for silence on a to-do list. When two fetches overlap, the
// later-issued one wins regardless of completion order; the superseded
// response is dropped whole.
//
// Failures are reported through the notification layer; callers have
// nothing to branch on.
func (s *TaskStore) FetchTasks(ctx context.Context, page int, title string) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	if len(s.tasks) > 0 && s.currentPage == page && s.searchTerm == title {
		s.mu.Unlock()
		return
	}
	s.fetchGen++
	gen := s.fetchGen
	s.loading = true
	s.mu.Unlock()

	resp, err := s.svc.ListTasks(ctx, page, title)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.fetchGen {
		return // superseded by a newer fetch; leave its state alone
	}
	s.loading = false
	if err != nil {
		notify.Report(s.notify, err, "Erro ao buscar tarefas")
		return
	}
	s.tasks = resp.Tasks
	s.currentPage = resp.CurrentPage
	s.totalPages = resp.TotalPages
	s.totalTasks = resp.TotalTasks
	s.searchTerm = title
	s.persistLocked()
}

// GetTaskDetail fetches the full record for one task and makes it the
// open detail, replacing any previous one. The per-id loading marker
// lets list rows show independent spinners.
func (s *TaskStore) GetTaskDetail(ctx context.Context, id int) {
	s.mu.Lock()
	s.detailLoading[id] = true
	s.mu.Unlock()

	t, err := s.svc.GetTask(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.detailLoading, id)
	if err != nil {
		notify.Report(s.notify, err, "Erro ao buscar tarefa")
		return
	}
	s.detail = t
}

// CreateTask creates a task and appends the server-assigned record to
// the held list. The list is not re-fetched, so the new item may sit
// out of sort order until the next full fetch. The error is returned so
// the form can stay open on failure.
func (s *TaskStore) CreateTask(ctx context.Context, data domain.CreateTaskData) error {
	if !data.Urgency.Valid() {
		s.notify.Error("Urgência inválida")
		return fmt.Errorf("invalid urgency %q", data.Urgency)
	}

	t, err := s.svc.CreateTask(ctx, data)
	if err != nil {
		notify.Report(s.notify, err, "Erro ao adicionar tarefa")
		return err
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, *t)
	s.persistLocked()
	s.mu.Unlock()
	s.notify.Success("Tarefa adicionada com sucesso")
	return nil
}

// UpdateTask applies a partial update and replaces the matching item in
// place. Unknown ids are a no-op on the held list.
func (s *TaskStore) UpdateTask(ctx context.Context, id int, data domain.UpdateTaskData) error {
	// Empty means "leave unchanged" on a partial update.
	if data.Urgency != "" && !data.Urgency.Valid() {
		s.notify.Error("Urgência inválida")
		return fmt.Errorf("invalid urgency %q", data.Urgency)
	}

	t, err := s.svc.UpdateTask(ctx, id, data)
	if err != nil {
		notify.Report(s.notify, err, "Erro ao atualizar tarefa")
		return err
	}

	s.replaceTask(id, *t)
	s.notify.Success("Tarefa atualizada com sucesso")
	return nil
}

// ToggleTask flips a task's completion flag server-side and mirrors the
// returned record into the held list.
func (s *TaskStore) ToggleTask(ctx context.Context, id int, completed bool) {
	t, err := s.svc.ToggleTask(ctx, id, completed)
	if err != nil {
		notify.Report(s.notify, err, "Erro ao alternar conclusão da tarefa")
		return
	}

	s.replaceTask(id, *t)
	if completed {
		s.notify.Success("Tarefa concluída com sucesso")
	} else {
		s.notify.Success("Tarefa reaberta com sucesso")
	}
}

// DeleteTask deletes one task and removes it from the held list.
func (s *TaskStore) DeleteTask(ctx context.Context, id int) {
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		notify.Report(s.notify, err, "Erro ao deletar tarefa")
		return
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	delete(s.selected, id)
	s.persistLocked()
	s.mu.Unlock()
	s.notify.Success("Tarefa deletada com sucesso")
}

// DeleteManyTasks deletes every id in one call. On success the matching
// items are removed and the selection set is cleared unconditionally;
// on failure both are left untouched.
func (s *TaskStore) DeleteManyTasks(ctx context.Context, ids []int) {
	if err := s.svc.DeleteTasks(ctx, ids); err != nil {
		notify.Report(s.notify, err, "Erro ao deletar múltiplas tarefas")
		return
	}

	gone := make(map[int]bool, len(ids))
	for _, id := range ids {
		gone[id] = true
	}

	s.mu.Lock()
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !gone[t.ID] {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
	s.selected = make(map[int]bool)
	s.persistLocked()
	s.mu.Unlock()
	s.notify.Success("Tarefas deletadas com sucesso")
}

func (s *TaskStore) replaceTask(id int, t domain.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks[i] = t
			s.persistLocked()
			return
		}
	}
}

// SelectTask adds a task id to the selection set.
func (s *TaskStore) SelectTask(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected[id] = true
}

// UnselectTask removes a task id from the selection set.
func (s *TaskStore) UnselectTask(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selected, id)
}

// IsSelected reports selection-set membership.
func (s *TaskStore) IsSelected(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[id]
}

// SelectedIDs returns the selection set in ascending order.
func (s *TaskStore) SelectedIDs() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := make([]int, 0, len(s.selected))
	for id := range s.selected {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// ClearStore resets every field to its initial empty value and drops
// the persisted envelope. Called on logout so one account's tasks never
// leak into the next session on the same machine.
func (s *TaskStore) ClearStore() {
	s.mu.Lock()
	// A fetch still in flight must not repopulate the cleared store.
	s.fetchGen++
	s.tasks = nil
	s.currentPage = 1
	s.totalPages = 1
	s.totalTasks = 0
	s.searchTerm = ""
	s.loading = false
	s.detail = nil
	s.detailLoading = make(map[int]bool)
	s.selected = make(map[int]bool)
	s.mu.Unlock()
	_ = s.storage.Remove(cacheKey) //nolint:errcheck
}

// Tasks returns a copy of the held page items.
func (s *TaskStore) Tasks() []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// Page returns the current page number and the total page count.
func (s *TaskStore) Page() (current, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentPage, s.totalPages
}

// TotalTasks returns the server-reported collection size.
func (s *TaskStore) TotalTasks() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalTasks
}

// SearchTerm returns the active title filter.
func (s *TaskStore) SearchTerm() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchTerm
}

// Loading reports whether a page fetch is in flight.
func (s *TaskStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Detail returns the open task detail, or nil.
func (s *TaskStore) Detail() *domain.FullTask {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.detail == nil {
		return nil
	}
	d := *s.detail
	return &d
}

// DetailLoading reports whether the detail for id is being fetched.
func (s *TaskStore) DetailLoading(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detailLoading[id]
}
