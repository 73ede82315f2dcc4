package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/state"
)

type registerField int

const (
	registerName registerField = iota
	registerEmail
	registerPassword
	registerConfirm
	numRegisterFields
)

type registerModel struct {
	session    *state.SessionStore
	fields     [numRegisterFields]string
	focus      registerField
	statusMsg  string
	submitting bool

	// wantLogin asks the app to switch back to the login screen.
	wantLogin bool
}

func newRegisterModel(s *state.SessionStore) registerModel {
	return registerModel{session: s}
}

func (m registerModel) Update(msg tea.KeyMsg) (registerModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.statusMsg = ""

	switch msg.String() {
	case "esc":
		m.wantLogin = true
	case "tab", "down":
		m.focus = (m.focus + 1) % numRegisterFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numRegisterFields) % numRegisterFields
	case "enter":
		if m.focus == registerConfirm {
			return m.submit()
		}
		m.focus++
	case "backspace":
		f := &m.fields[m.focus]
		*f = editRune(*f, "backspace")
	default:
		key := msg.String()
		if len([]rune(key)) == 1 {
			m.fields[m.focus] = editRune(m.fields[m.focus], key)
		}
	}
	return m, nil
}

func (m registerModel) submit() (registerModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[registerName])
	email := strings.TrimSpace(m.fields[registerEmail])
	password := m.fields[registerPassword]

	switch {
	case name == "":
		m.statusMsg = "Nome é obrigatório"
		return m, nil
	case email == "":
		m.statusMsg = "Email é obrigatório"
		return m, nil
	case len(password) < 6:
		m.statusMsg = "Senha deve ter pelo menos 6 caracteres"
		return m, nil
	case password != m.fields[registerConfirm]:
		m.statusMsg = "As senhas não coincidem"
		return m, nil
	}

	m.submitting = true
	session := m.session
	return m, func() tea.Msg {
		err := session.Register(context.Background(), name, email, password)
		return registerDoneMsg{err: err}
	}
}

func (m registerModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Criar conta") + "\n\n")

	labels := [numRegisterFields]string{"nome", "email", "senha", "confirmar senha"}
	for i := registerField(0); i < numRegisterFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == registerPassword || i == registerConfirm {
			value = strings.Repeat("*", len([]rune(value)))
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(labels[i]), value)
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("criando conta..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + toastErrStyle.Render(m.statusMsg))
	}
	return b.String()
}
