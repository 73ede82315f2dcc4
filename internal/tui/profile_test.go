package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Luishgfarias/todo-front/internal/notify"
	"github.com/Luishgfarias/todo-front/internal/state"
	"github.com/Luishgfarias/todo-front/internal/storage"
	"github.com/Luishgfarias/todo-front/internal/testutil"
)

func newTestProfileModel(t *testing.T) (profileModel, *testutil.FakeAuthService, *state.SessionStore) {
	t.Helper()
	svc := testutil.NewFakeAuthService()
	session := state.NewSessionStore(svc, storage.NewMemStore(), notify.NewQueue())
	if err := session.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatal(err)
	}
	return newProfileModel(session), svc, session
}

func TestProfileShowsUser(t *testing.T) {
	m, _, _ := newTestProfileModel(t)
	view := m.View()
	if !strings.Contains(view, "Luis") || !strings.Contains(view, "luis@example.com") {
		t.Errorf("profile view missing user data:\n%s", view)
	}
}

func TestProfileEditPrefillsFields(t *testing.T) {
	m, _, _ := newTestProfileModel(t)
	m, _ = m.Update(keyRunes("e"))
	if !m.editing {
		t.Fatal("e did not enter edit mode")
	}
	if m.fields[profileName] != "Luis" || m.fields[profileEmail] != "luis@example.com" {
		t.Errorf("fields = %v", m.fields)
	}
	if m.fields[profilePassword] != "" {
		t.Error("password field prefilled")
	}
}

func TestProfileEditSubmit(t *testing.T) {
	m, _, session := newTestProfileModel(t)
	m, _ = m.Update(keyRunes("e"))
	m.fields[profileName] = "Luís H."

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd == nil {
		t.Fatalf("submit produced no command (status %q)", m.statusMsg)
	}
	msg := cmd()
	saved, ok := msg.(profileSavedMsg)
	if !ok {
		t.Fatalf("submit returned %T", msg)
	}
	if saved.err != nil {
		t.Fatalf("update failed: %v", saved.err)
	}
	if u := session.User(); u == nil || u.Name != "Luís H." {
		t.Errorf("user after update = %+v", u)
	}
}

func TestProfileShortPasswordRejectedLocally(t *testing.T) {
	m, svc, _ := newTestProfileModel(t)
	m, _ = m.Update(keyRunes("e"))
	m.fields[profilePassword] = "123"

	calls := len(svc.Calls)
	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlS})
	if cmd != nil {
		t.Fatal("short password reached the network")
	}
	if !strings.Contains(m.statusMsg, "pelo menos 6") {
		t.Errorf("statusMsg = %q", m.statusMsg)
	}
	if len(svc.Calls) != calls {
		t.Error("service called despite local rejection")
	}
}

func TestProfileDeleteNeedsConfirmation(t *testing.T) {
	m, _, session := newTestProfileModel(t)

	m, _ = m.Update(keyRunes("d"))
	if !m.confirming {
		t.Fatal("d did not ask for confirmation")
	}
	if !strings.Contains(m.View(), "não pode ser desfeita") {
		t.Errorf("confirm prompt missing:\n%s", m.View())
	}

	// n backs out without touching the account.
	m, _ = m.Update(keyRunes("n"))
	if m.confirming {
		t.Error("n did not cancel")
	}
	if !session.IsAuthenticated() {
		t.Error("cancelled delete logged the session out")
	}

	m, _ = m.Update(keyRunes("d"))
	m, cmd := m.Update(keyRunes("y"))
	if cmd == nil {
		t.Fatal("y did not issue the delete")
	}
	msg := cmd()
	deleted, ok := msg.(accountDeletedMsg)
	if !ok {
		t.Fatalf("delete returned %T", msg)
	}
	if deleted.err != nil {
		t.Fatalf("delete failed: %v", deleted.err)
	}
	if session.IsAuthenticated() {
		t.Error("session survived account deletion")
	}
}

func TestProfileLogoutAndBackFlags(t *testing.T) {
	m, _, _ := newTestProfileModel(t)

	m, _ = m.Update(keyRunes("o"))
	if !m.wantLogout {
		t.Error("o did not request logout")
	}
	m.wantLogout = false

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !m.wantBack {
		t.Error("esc did not request the task list")
	}
}
