package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/state"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

type formField int

const (
	formTitle formField = iota
	formDescription
	formUrgency
	formDueDate
	numFormFields
)

// taskFormModel is the create/edit form. Editing is a create with the
// original values pre-filled and the submit routed to an update.
type taskFormModel struct {
	store *state.TaskStore

	fields     [numFormFields]string
	urgency    int // index into domain.Urgencies
	focus      formField
	statusMsg  string
	submitting bool

	editID  int
	editing bool

	// cancelled asks the app to return to the list.
	cancelled bool
}

func newTaskFormModel(store *state.TaskStore) taskFormModel {
	return taskFormModel{store: store}
}

// loadTask pre-fills the form from an existing task for editing. The
// description comes from the open detail when it matches; the list
// record does not carry it.
func (m *taskFormModel) loadTask(t domain.Task) {
	m.editing = true
	m.editID = t.ID
	m.fields[formTitle] = t.Title
	m.fields[formDueDate] = formatDate(t.DueDate)
	for i, u := range domain.Urgencies {
		if u == t.Urgency {
			m.urgency = i
		}
	}
	if d := m.store.Detail(); d != nil && d.ID == t.ID {
		m.fields[formDescription] = d.Description
	}
}

func (m taskFormModel) Update(msg tea.KeyMsg) (taskFormModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.statusMsg = ""

	switch msg.String() {
	case "esc":
		m.cancelled = true
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numFormFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numFormFields) % numFormFields
	case "enter":
		m.focus = (m.focus + 1) % numFormFields
	case "backspace":
		if m.focus != formUrgency {
			f := &m.fields[m.focus]
			*f = editRune(*f, "backspace")
		}
	default:
		key := msg.String()
		if m.focus == formUrgency {
			// Cycle urgency with h/l
			if key == "l" {
				m.urgency = (m.urgency + 1) % len(domain.Urgencies)
			} else if key == "h" {
				m.urgency = (m.urgency - 1 + len(domain.Urgencies)) % len(domain.Urgencies)
			}
			return m, nil
		}
		if len([]rune(key)) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m taskFormModel) submit() (taskFormModel, tea.Cmd) {
	title := strings.TrimSpace(m.fields[formTitle])
	if title == "" {
		m.statusMsg = "Título é obrigatório"
		return m, nil
	}
	dueDate, ok := parseDateInput(strings.TrimSpace(m.fields[formDueDate]))
	if !ok {
		m.statusMsg = "Data inválida (use dd/mm/aaaa)"
		return m, nil
	}

	urgency := domain.Urgencies[m.urgency]
	description := strings.TrimSpace(m.fields[formDescription])
	m.submitting = true
	store := m.store

	if m.editing {
		id := m.editID
		data := domain.UpdateTaskData{
			Title:       title,
			Description: description,
			Urgency:     urgency,
			DueDate:     dueDate,
		}
		return m, func() tea.Msg {
			err := store.UpdateTask(context.Background(), id, data)
			return taskSavedMsg{err: err}
		}
	}

	data := domain.CreateTaskData{
		Title:       title,
		Description: description,
		Urgency:     urgency,
		DueDate:     dueDate,
	}
	return m, func() tea.Msg {
		err := store.CreateTask(context.Background(), data)
		return taskSavedMsg{err: err}
	}
}

func (m taskFormModel) View() string {
	var b strings.Builder
	heading := "Nova tarefa"
	if m.editing {
		heading = "Editar tarefa"
	}
	b.WriteString(" " + selectedStyle.Render(heading) + "\n\n")

	labels := [numFormFields]string{"título", "descrição", "urgência", "prazo"}
	for i := formField(0); i < numFormFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}

		if i == formUrgency {
			u := domain.Urgencies[m.urgency]
			fmt.Fprintf(&b, " %s %s: %s  %s\n",
				cursor, style.Render(labels[i]),
				UrgencyStyle(u).Render(urgencyLabel(u)),
				inputPlaceholderStyle.Render("(h/l alterna)"))
			continue
		}

		value := m.fields[i]
		if i == m.focus {
			value += "█"
		}
		if i == formDueDate && m.fields[i] == "" && i != m.focus {
			value = inputPlaceholderStyle.Render("dd/mm/aaaa")
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(labels[i]), value)
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("salvando..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + toastErrStyle.Render(m.statusMsg))
	}
	return b.String()
}
