package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/state"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

type profileField int

const (
	profileName profileField = iota
	profileEmail
	profilePassword
	numProfileFields
)

// profileSavedMsg carries the result of a profile update.
type profileSavedMsg struct {
	err error
}

// profileModel shows the account screen: profile editing, logout and
// account deletion behind a confirm step.
type profileModel struct {
	session *state.SessionStore

	editing    bool
	confirming bool
	fields     [numProfileFields]string
	focus      profileField
	statusMsg  string
	submitting bool

	// Transition requests consumed by the app.
	wantBack   bool
	wantLogout bool
}

func newProfileModel(s *state.SessionStore) profileModel {
	return profileModel{session: s}
}

func (m profileModel) Update(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	if m.submitting {
		return m, nil
	}

	if m.confirming {
		switch msg.String() {
		case "y":
			m.submitting = true
			session := m.session
			return m, func() tea.Msg {
				err := session.DeleteCurrentUser(context.Background())
				return accountDeletedMsg{err: err}
			}
		case "n", "esc":
			m.confirming = false
		}
		return m, nil
	}

	if m.editing {
		return m.updateEdit(msg)
	}

	switch msg.String() {
	case "esc":
		m.wantBack = true
	case "e":
		m.editing = true
		m.focus = profileName
		if u := m.session.User(); u != nil {
			m.fields[profileName] = u.Name
			m.fields[profileEmail] = u.Email
		}
		m.fields[profilePassword] = ""
	case "o":
		m.wantLogout = true
	case "d":
		m.confirming = true
	}
	return m, nil
}

func (m profileModel) updateEdit(msg tea.KeyMsg) (profileModel, tea.Cmd) {
	m.statusMsg = ""

	switch msg.String() {
	case "esc":
		m.editing = false
	case "ctrl+s":
		return m.submit()
	case "tab", "down":
		m.focus = (m.focus + 1) % numProfileFields
	case "shift+tab", "up":
		m.focus = (m.focus - 1 + numProfileFields) % numProfileFields
	case "enter":
		if m.focus == profilePassword {
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

func (m profileModel) submit() (profileModel, tea.Cmd) {
	name := strings.TrimSpace(m.fields[profileName])
	email := strings.TrimSpace(m.fields[profileEmail])
	password := m.fields[profilePassword]

	if name == "" && email == "" && password == "" {
		m.statusMsg = "Nada para atualizar"
		return m, nil
	}
	if password != "" && len(password) < 6 {
		m.statusMsg = "Senha deve ter pelo menos 6 caracteres"
		return m, nil
	}

	m.submitting = true
	session := m.session
	data := domain.UpdateUserData{Name: name, Email: email, Password: password}
	return m, func() tea.Msg {
		err := session.UpdateCurrentUser(context.Background(), data)
		return profileSavedMsg{err: err}
	}
}

func (m profileModel) helpLine() string {
	if m.confirming {
		return " " + helpEntry("y", "confirmar") + "  " + helpEntry("n", "cancelar")
	}
	if m.editing {
		return " " + helpEntry("tab", "campo") + "  " + helpEntry("ctrl+s", "salvar") + "  " + helpEntry("esc", "cancelar")
	}
	return " " + helpEntry("e", "editar") + "  " + helpEntry("o", "sair da conta") + "  " + helpEntry("d", "deletar conta") + "  " + helpEntry("esc", "voltar")
}

func (m profileModel) View() string {
	var b strings.Builder
	b.WriteString(" " + selectedStyle.Render("Perfil") + "\n\n")

	if m.confirming {
		b.WriteString(" " + dangerStyle.Render("Deletar sua conta? Esta ação não pode ser desfeita.") + "\n")
		b.WriteString(" " + dimStyle.Render("y confirma, n cancela") + "\n")
		return b.String()
	}

	if m.editing {
		labels := [numProfileFields]string{"nome", "email", "nova senha"}
		for i := profileField(0); i < numProfileFields; i++ {
			cursor := " "
			style := metaStyle
			if i == m.focus {
				cursor = ">"
				style = selectedStyle
			}
			value := m.fields[i]
			if i == profilePassword {
				value = strings.Repeat("*", len([]rune(value)))
			}
			if i == m.focus {
				value += "█"
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

	u := m.session.User()
	if u == nil {
		b.WriteString(" " + dimStyle.Render("carregando perfil...") + "\n")
		return b.String()
	}
	fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("nome:"), normalStyle.Render(u.Name))
	fmt.Fprintf(&b, " %s %s\n", metaStyle.Render("email:"), normalStyle.Render(u.Email))
	if m.submitting {
		b.WriteString("\n " + dimStyle.Render("deletando conta..."))
	}
	return b.String()
}
