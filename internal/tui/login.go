package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/state"
)

type loginField int

const (
	loginEmail loginField = iota
	loginPassword
	numLoginFields
)

type loginModel struct {
	session    *state.SessionStore
	fields     [numLoginFields]string
	focus      loginField
	statusMsg  string
	submitting bool

	// wantRegister asks the app to switch to the register screen.
	wantRegister bool
}

func newLoginModel(s *state.SessionStore) loginModel {
	return loginModel{session: s}
}

func (m loginModel) Update(msg tea.KeyMsg) (loginModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}
	m.statusMsg = ""

	switch msg.String() {
	case "tab", "down":
		m.focus = (m.focus + 1) % numLoginFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numLoginFields) % numLoginFields
	case "enter":
		if m.focus == loginPassword {
			return m.submit()
		}
		m.focus++
	case "ctrl+r":
		m.wantRegister = true
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

func (m loginModel) submit() (loginModel, tea.Cmd) {
	email := strings.TrimSpace(m.fields[loginEmail])
	password := m.fields[loginPassword]
	if email == "" || password == "" {
		m.statusMsg = "Preencha email e senha"
		return m, nil
	}

	m.submitting = true
	session := m.session
	return m, func() tea.Msg {
		err := session.Login(context.Background(), email, password)
		return authDoneMsg{err: err}
	}
}

func (m loginModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Entrar") + "\n\n")

	labels := [numLoginFields]string{"email", "senha"}
	for i := loginField(0); i < numLoginFields; i++ {
		cursor := " "
		style := metaStyle
		if i == m.focus {
			cursor = ">"
			style = selectedStyle
		}
		value := m.fields[i]
		if i == loginPassword {
			value = strings.Repeat("*", len([]rune(value)))
		}
		if i == m.focus {
			value += "█"
		}
		fmt.Fprintf(&b, " %s %s: %s\n", cursor, style.Render(labels[i]), value)
	}

	b.WriteString("\n")
	if m.submitting {
		b.WriteString(" " + dimStyle.Render("entrando..."))
	} else if m.statusMsg != "" {
		b.WriteString(" " + toastErrStyle.Render(m.statusMsg))
	} else {
		b.WriteString(" " + inputPlaceholderStyle.Render("ctrl+r para criar uma conta"))
	}
	return b.String()
}
