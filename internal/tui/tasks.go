package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/state"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

// tasksModel renders the paginated task list, the title search, the
// multi-select markers and the per-task detail panel.
type tasksModel struct {
	store *state.TaskStore

	cursor      int
	searching   bool
	searchInput string
	detailOpen  bool
	detailID    int
	width       int
	height      int

	// Transition requests consumed by the app on the same Update.
	wantNew     bool
	wantEdit    *domain.Task
	wantProfile bool
}

func newTasksModel(store *state.TaskStore) tasksModel {
	return tasksModel{store: store}
}

func (m tasksModel) Update(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	if m.searching {
		return m.updateSearch(msg)
	}
	if m.detailOpen {
		return m.updateDetail(msg)
	}
	return m.updateList(msg)
}

func (m tasksModel) updateSearch(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.searchInput = ""
	case "enter":
		m.searching = false
		term := strings.TrimSpace(m.searchInput)
		return m, m.fetchCmd(1, term)
	default:
		m.searchInput = editRune(m.searchInput, msg.String())
	}
	return m, nil
}

func (m tasksModel) updateDetail(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	detail := m.store.Detail()
	switch msg.String() {
	case "esc":
		m.detailOpen = false
	case "c":
		if detail != nil && detail.ID == m.detailID {
			clipboard.WriteAll(detail.Description) //nolint:errcheck // best-effort copy
		}
	case "e":
		if detail != nil && detail.ID == m.detailID {
			m.wantEdit = &detail.Task
			m.detailOpen = false
		}
	case "t":
		if detail != nil && detail.ID == m.detailID {
			id, completed := detail.ID, detail.Completed
			store := m.store
			m.detailOpen = false
			return m, func() tea.Msg {
				store.ToggleTask(context.Background(), id, !completed)
				return tasksRefreshedMsg{}
			}
		}
	case "d":
		id := m.detailID
		store := m.store
		m.detailOpen = false
		return m, func() tea.Msg {
			store.DeleteTask(context.Background(), id)
			return tasksRefreshedMsg{}
		}
	}
	return m, nil
}

func (m tasksModel) updateList(msg tea.KeyMsg) (tasksModel, tea.Cmd) {
	tasks := m.store.Tasks()
	m.clampCursor(len(tasks))

	switch msg.String() {
	case "j", "down":
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "g":
		m.cursor = 0
	case "G":
		if len(tasks) > 0 {
			m.cursor = len(tasks) - 1
		}
	case "h", "left":
		page, _ := m.store.Page()
		if page > 1 {
			return m, m.fetchCmd(page-1, m.store.SearchTerm())
		}
	case "l", "right":
		page, total := m.store.Page()
		if page < total {
			return m, m.fetchCmd(page+1, m.store.SearchTerm())
		}
	case "/":
		m.searching = true
		m.searchInput = m.store.SearchTerm()
	case "r":
		// Forced refresh: clearing then refetching defeats the
		// same-page short-circuit.
		page := 1
		if p, _ := m.store.Page(); p > 0 {
			page = p
		}
		term := m.store.SearchTerm()
		store := m.store
		return m, func() tea.Msg {
			store.ClearStore()
			store.FetchTasks(context.Background(), page, term)
			return tasksRefreshedMsg{}
		}
	case " ":
		if m.cursor < len(tasks) {
			id := tasks[m.cursor].ID
			if m.store.IsSelected(id) {
				m.store.UnselectTask(id)
			} else {
				m.store.SelectTask(id)
			}
		}
	case "enter":
		if m.cursor < len(tasks) {
			id := tasks[m.cursor].ID
			m.detailOpen = true
			m.detailID = id
			store := m.store
			return m, func() tea.Msg {
				store.GetTaskDetail(context.Background(), id)
				return tasksRefreshedMsg{}
			}
		}
	case "t":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			store := m.store
			return m, func() tea.Msg {
				store.ToggleTask(context.Background(), t.ID, !t.Completed)
				return tasksRefreshedMsg{}
			}
		}
	case "d":
		if m.cursor < len(tasks) {
			id := tasks[m.cursor].ID
			store := m.store
			return m, func() tea.Msg {
				store.DeleteTask(context.Background(), id)
				return tasksRefreshedMsg{}
			}
		}
	case "D":
		ids := m.store.SelectedIDs()
		if len(ids) > 0 {
			store := m.store
			return m, func() tea.Msg {
				store.DeleteManyTasks(context.Background(), ids)
				return tasksRefreshedMsg{}
			}
		}
	case "n":
		m.wantNew = true
	case "e":
		if m.cursor < len(tasks) {
			t := tasks[m.cursor]
			m.wantEdit = &t
		}
	case "p":
		m.wantProfile = true
	}
	return m, nil
}

func (m *tasksModel) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m tasksModel) fetchCmd(page int, term string) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		store.FetchTasks(context.Background(), page, term)
		return tasksRefreshedMsg{}
	}
}

func (m tasksModel) helpLine() string {
	if m.searching {
		return " " + helpEntry("enter", "buscar") + "  " + helpEntry("esc", "cancelar")
	}
	if m.detailOpen {
		return " " + helpEntry("e", "editar") + "  " + helpEntry("t", "concluir") + "  " + helpEntry("d", "deletar") + "  " + helpEntry("c", "copiar") + "  " + helpEntry("esc", "voltar")
	}
	return " " + helpEntry("j/k", "navegar") + "  " + helpEntry("h/l", "página") + "  " + helpEntry("/", "buscar") + "  " + helpEntry("espaço", "marcar") + "  " + helpEntry("enter", "detalhes") + "  " + helpEntry("n", "nova") + "  " + helpEntry("p", "perfil") + "  " + helpEntry("q", "sair")
}

func (m tasksModel) View() string {
	if m.detailOpen {
		return m.detailView()
	}

	var b strings.Builder

	if m.searching {
		fmt.Fprintf(&b, " %s %s█\n\n", searchStyle.Render("buscar:"), m.searchInput)
	} else if term := m.store.SearchTerm(); term != "" {
		fmt.Fprintf(&b, " %s %s\n\n", metaStyle.Render("filtro:"), searchStyle.Render(term))
	}

	tasks := m.store.Tasks()
	if m.store.Loading() && len(tasks) == 0 {
		b.WriteString(" " + dimStyle.Render("carregando tarefas...") + "\n")
		return b.String()
	}
	if len(tasks) == 0 {
		b.WriteString(" " + dimStyle.Render("Nenhuma tarefa encontrada") + "\n")
		return b.String()
	}

	now := time.Now()
	for i, t := range tasks {
		cursor := " "
		if i == m.cursor && !m.searching {
			cursor = ">"
		}

		mark := "[ ]"
		if m.store.IsSelected(t.ID) {
			mark = selectedMarkStyle.Render("[x]")
		}

		check := "○"
		titleSt := normalStyle
		if t.Completed {
			check = accentStyle.Render("●")
			titleSt = doneStyle
		}

		due := formatDate(t.DueDate)
		dueSt := metaStyle
		if !t.Completed && isOverdue(t.DueDate, now) {
			dueSt = overdueStyle
		}

		width := m.width
		if width <= 0 {
			width = 80
		}
		title := truncStr(t.Title, width-36)

		fmt.Fprintf(&b, " %s %s %s %-12s %s  %s\n",
			cursor,
			mark,
			check,
			UrgencyStyle(t.Urgency).Render(urgencyLabel(t.Urgency)),
			titleSt.Render(title),
			dueSt.Render(due),
		)
	}

	page, total := m.store.Page()
	fmt.Fprintf(&b, "\n %s", metaStyle.Render(fmt.Sprintf("página %d/%d · %d tarefas", page, total, m.store.TotalTasks())))
	if n := len(m.store.SelectedIDs()); n > 0 {
		fmt.Fprintf(&b, "  %s", selectedMarkStyle.Render(fmt.Sprintf("%d marcadas (D deleta)", n)))
	}
	if m.store.Loading() {
		b.WriteString("  " + dimStyle.Render("atualizando..."))
	}
	b.WriteString("\n")
	return b.String()
}

func (m tasksModel) detailView() string {
	var b strings.Builder

	if m.store.DetailLoading(m.detailID) {
		b.WriteString(" " + dimStyle.Render("carregando tarefa...") + "\n")
		return b.String()
	}

	d := m.store.Detail()
	if d == nil || d.ID != m.detailID {
		b.WriteString(" " + dimStyle.Render("Tarefa não encontrada") + "\n")
		return b.String()
	}

	status := "pendente"
	statusSt := dimStyle
	if d.Completed {
		status = "concluída"
		statusSt = accentStyle
	}

	b.WriteString(" " + selectedStyle.Render(d.Title) + "\n\n")
	fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("status:"), statusSt.Render(status))
	fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("urgência:"), UrgencyStyle(d.Urgency).Render(urgencyLabel(d.Urgency)))
	fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("prazo:"), normalStyle.Render(formatDate(d.DueDate)))
	if d.CreatedDate != "" {
		fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("criada em:"), normalStyle.Render(formatDate(d.CreatedDate)))
	}
	b.WriteString("\n")
	if d.Description != "" {
		b.WriteString(" " + normalStyle.Render(d.Description) + "\n")
	} else {
		b.WriteString(" " + inputPlaceholderStyle.Render("sem descrição") + "\n")
	}
	return b.String()
}
