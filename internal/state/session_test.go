package state

import (
	"context"
	"testing"

	"github.com/Luishgfarias/todo-front/internal/notify"
	"github.com/Luishgfarias/todo-front/internal/storage"
	"github.com/Luishgfarias/todo-front/internal/testutil"
	"github.com/Luishgfarias/todo-front/pkg/api"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

func newTestSessionStore(t *testing.T) (*SessionStore, *testutil.FakeAuthService, *storage.MemStore, *notify.Queue) {
	t.Helper()
	svc := testutil.NewFakeAuthService()
	st := storage.NewMemStore()
	q := notify.NewQueue()
	return NewSessionStore(svc, st, q), svc, st, q
}

func TestLoginSuccess(t *testing.T) {
	s, _, st, q := newTestSessionStore(t)

	if err := s.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatalf("Login() error: %v", err)
	}

	if !s.IsAuthenticated() {
		t.Error("store not authenticated after login")
	}
	if s.Token() == "" {
		t.Error("token not held after login")
	}
	if tok, ok := st.Get(TokenKey); !ok || tok != s.Token() {
		t.Errorf("persisted token = %q, want %q", tok, s.Token())
	}
	if u := s.User(); u == nil || u.Email != "luis@example.com" {
		t.Errorf("User() = %+v", u)
	}
	notes := q.Drain()
	if len(notes) != 1 || notes[0].Level != notify.LevelSuccess {
		t.Errorf("notifications = %+v, want one success toast", notes)
	}
	if s.Busy() {
		t.Error("busy flag still set after login")
	}
}

func TestLoginFailureStaysAnonymous(t *testing.T) {
	s, svc, st, q := newTestSessionStore(t)
	svc.LoginErr = &api.HTTPError{StatusCode: 401, Body: "Credenciais inválidas", PlainText: true}

	err := s.Login(context.Background(), "luis@example.com", "errada")
	if err == nil {
		t.Fatal("expected login error to be re-raised")
	}
	if s.IsAuthenticated() {
		t.Error("store authenticated after failed login")
	}
	if _, ok := st.Get(TokenKey); ok {
		t.Error("token persisted after failed login")
	}
	notes := q.Drain()
	if len(notes) != 1 || notes[0].Text != "Credenciais inválidas" {
		t.Errorf("notifications = %+v, want the server message verbatim", notes)
	}
	if s.Busy() {
		t.Error("busy flag still set after failed login")
	}
}

func TestRegisterDoesNotAuthenticate(t *testing.T) {
	s, _, _, q := newTestSessionStore(t)

	if err := s.Register(context.Background(), "Luis", "luis@example.com", "123456"); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("register must not authenticate")
	}
	notes := q.Drain()
	if len(notes) != 1 || notes[0].Text != "Conta criada com sucesso" {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestTokenReadOnceAtConstruction(t *testing.T) {
	svc := testutil.NewFakeAuthService()
	st := storage.NewMemStore()
	if err := st.Set(TokenKey, "persisted-token"); err != nil {
		t.Fatal(err)
	}

	s := NewSessionStore(svc, st, notify.NewQueue())
	if !s.IsAuthenticated() {
		t.Error("persisted token not picked up at construction")
	}
	if s.Token() != "persisted-token" {
		t.Errorf("Token() = %q", s.Token())
	}
}

func TestLoadCurrentUser(t *testing.T) {
	svc := testutil.NewFakeAuthService()
	st := storage.NewMemStore()
	if err := st.Set(TokenKey, "persisted-token"); err != nil {
		t.Fatal(err)
	}
	s := NewSessionStore(svc, st, notify.NewQueue())

	s.LoadCurrentUser(context.Background())

	if u := s.User(); u == nil || u.Name != "Luis" {
		t.Errorf("User() = %+v", u)
	}
}

func TestLoadCurrentUserWithoutTokenIsLocalOnly(t *testing.T) {
	s, svc, _, _ := newTestSessionStore(t)

	s.LoadCurrentUser(context.Background())

	if s.IsAuthenticated() {
		t.Error("store authenticated with no token")
	}
	for _, call := range svc.Calls {
		if call == "Me" {
			t.Error("LoadCurrentUser hit the network without a token")
		}
	}
}

func TestLoadCurrentUserFailureForcesLogout(t *testing.T) {
	svc := testutil.NewFakeAuthService()
	st := storage.NewMemStore()
	if err := st.Set(TokenKey, "expired-token"); err != nil {
		t.Fatal(err)
	}
	// Any failure counts, including a transient one.
	svc.MeErr = &api.HTTPError{StatusCode: 503, Body: `{"retry":true}`}
	q := notify.NewQueue()
	s := NewSessionStore(svc, st, q)

	s.LoadCurrentUser(context.Background())

	if s.IsAuthenticated() {
		t.Error("session survived a failed profile load")
	}
	if _, ok := st.Get(TokenKey); ok {
		t.Error("token still persisted after forced logout")
	}
	notes := q.Drain()
	if len(notes) != 1 || notes[0].Text != notify.ServerErrorMsg {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestLoadCurrentUserExpiredToken(t *testing.T) {
	svc := testutil.NewFakeAuthService()
	st := storage.NewMemStore()
	if err := st.Set(TokenKey, "expired-token"); err != nil {
		t.Fatal(err)
	}
	svc.MeErr = &api.HTTPError{StatusCode: 401, Body: `{"code":"TOKEN_EXPIRED"}`}
	q := notify.NewQueue()
	s := NewSessionStore(svc, st, q)

	s.LoadCurrentUser(context.Background())

	if s.IsAuthenticated() {
		t.Error("session survived an expired token")
	}
	if _, ok := st.Get(TokenKey); ok {
		t.Error("token still persisted after forced logout")
	}
	notes := q.Drain()
	if len(notes) != 1 || notes[0].Text != "Sessão expirada. Faça login novamente." {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestUpdateCurrentUser(t *testing.T) {
	s, _, _, _ := newTestSessionStore(t)
	if err := s.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatal(err)
	}

	err := s.UpdateCurrentUser(context.Background(), domain.UpdateUserData{Name: "Luís H."})
	if err != nil {
		t.Fatalf("UpdateCurrentUser() error: %v", err)
	}
	if u := s.User(); u == nil || u.Name != "Luís H." {
		t.Errorf("User() = %+v", u)
	}
	if !s.IsAuthenticated() {
		t.Error("update dropped authentication")
	}
}

func TestUpdateCurrentUserFailureKeepsSession(t *testing.T) {
	s, svc, _, q := newTestSessionStore(t)
	if err := s.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatal(err)
	}
	q.Drain()
	before := s.User()

	svc.UpdateMeErr = &api.HTTPError{StatusCode: 409, Body: "Email já cadastrado", PlainText: true}
	err := s.UpdateCurrentUser(context.Background(), domain.UpdateUserData{Email: "taken@example.com"})
	if err == nil {
		t.Fatal("expected update error to be re-raised")
	}
	if !s.IsAuthenticated() {
		t.Error("failed update dropped authentication")
	}
	if u := s.User(); u == nil || *u != *before {
		t.Errorf("failed update changed the stored user: %+v", u)
	}
	notes := q.Drain()
	if len(notes) != 1 || notes[0].Text != "Email já cadastrado" {
		t.Errorf("notifications = %+v", notes)
	}
}

func TestDeleteCurrentUserLogsOut(t *testing.T) {
	s, _, st, _ := newTestSessionStore(t)
	if err := s.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatal(err)
	}

	if err := s.DeleteCurrentUser(context.Background()); err != nil {
		t.Fatalf("DeleteCurrentUser() error: %v", err)
	}
	if s.IsAuthenticated() {
		t.Error("session survived account deletion")
	}
	if _, ok := st.Get(TokenKey); ok {
		t.Error("token still persisted after account deletion")
	}
}

func TestDeleteCurrentUserFailureKeepsSession(t *testing.T) {
	s, svc, _, _ := newTestSessionStore(t)
	if err := s.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatal(err)
	}
	svc.DeleteMeErr = &api.HTTPError{StatusCode: 500, Body: `{"oops":true}`}

	if err := s.DeleteCurrentUser(context.Background()); err == nil {
		t.Fatal("expected delete error to be re-raised")
	}
	if !s.IsAuthenticated() {
		t.Error("failed deletion logged the session out")
	}
}

func TestLogoutThenLoadCurrentUserStaysAnonymous(t *testing.T) {
	s, svc, st, _ := newTestSessionStore(t)
	if err := s.Login(context.Background(), "luis@example.com", "123456"); err != nil {
		t.Fatal(err)
	}

	s.Logout()

	if s.IsAuthenticated() || s.User() != nil || s.Token() != "" {
		t.Error("logout left residual session state")
	}
	if _, ok := st.Get(TokenKey); ok {
		t.Error("logout left the persisted token behind")
	}

	calls := len(svc.Calls)
	s.LoadCurrentUser(context.Background())
	if len(svc.Calls) != calls {
		t.Error("LoadCurrentUser after logout hit the network")
	}
	if s.IsAuthenticated() {
		t.Error("LoadCurrentUser after logout re-authenticated")
	}
}
