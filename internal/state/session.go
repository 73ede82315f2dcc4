package state

import (
	"context"
	"net/http"
	"sync"

	"github.com/Luishgfarias/todo-front/internal/notify"
	"github.com/Luishgfarias/todo-front/internal/storage"
	"github.com/Luishgfarias/todo-front/pkg/api"
	"github.com/Luishgfarias/todo-front/pkg/domain"
)

// SessionStore owns the auth session: current user, token and the
// derived authenticated flag. The token is the single source of truth;
// it is persisted raw under TokenKey and read back once at construction.
//
// States are anonymous and authenticated, nothing else. Login is the
// only transition in; Logout (directly, or forced by account deletion
// or a failed profile load) is the only transition out. Overlapping
// calls are not serialized; the UI issues one at a time.
type SessionStore struct {
	mu      sync.Mutex
	svc     AuthService
	storage storage.Store
	notify  notify.Notifier

	user  *domain.User
	token string
	busy  bool
}

// NewSessionStore creates a session store, reading any persisted token.
func NewSessionStore(svc AuthService, st storage.Store, n notify.Notifier) *SessionStore {
	s := &SessionStore{svc: svc, storage: st, notify: n}
	if tok, ok := st.Get(TokenKey); ok {
		s.token = tok
	}
	return s
}

// Login exchanges credentials for a session. On success the token is
// persisted and the store becomes authenticated. On failure the error
// is reported and returned so the form can stay open; the store remains
// anonymous.
func (s *SessionStore) Login(ctx context.Context, email, password string) error {
	s.setBusy(true)
	defer s.setBusy(false)

	resp, err := s.svc.Login(ctx, email, password)
	if err != nil {
		notify.Report(s.notify, err, "Erro ao fazer login")
		return err
	}

	s.mu.Lock()
	s.token = resp.Token
	user := resp.User
	s.user = &user
	s.mu.Unlock()

	_ = s.storage.Set(TokenKey, resp.Token) //nolint:errcheck // session continues in-memory if the write fails
	s.notify.Success("Login realizado com sucesso")
	return nil
}

// Register creates an account server-side. It does not authenticate.
func (s *SessionStore) Register(ctx context.Context, name, email, password string) error {
	s.setBusy(true)
	defer s.setBusy(false)

	if err := s.svc.Register(ctx, name, email, password); err != nil {
		notify.Report(s.notify, err, "Erro ao criar conta")
		return err
	}
	s.notify.Success("Conta criada com sucesso")
	return nil
}

// LoadCurrentUser fetches the profile for the held token. Without a
// token it logs out immediately. Any failure, transient or not, is
// treated as an invalid session and forces a logout.
func (s *SessionStore) LoadCurrentUser(ctx context.Context) {
	s.mu.Lock()
	tok := s.token
	s.mu.Unlock()
	if tok == "" {
		s.Logout()
		return
	}

	user, err := s.svc.Me(ctx)
	if err != nil {
		if api.IsStatus(err, http.StatusUnauthorized) {
			s.notify.Error("Sessão expirada. Faça login novamente.")
		} else {
			notify.Report(s.notify, err, "Erro ao carregar usuário")
		}
		s.Logout()
		return
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
}

// UpdateCurrentUser sends a partial profile update; only non-empty
// fields of data reach the wire. The session stays authenticated
// whether or not the call succeeds.
func (s *SessionStore) UpdateCurrentUser(ctx context.Context, data domain.UpdateUserData) error {
	s.setBusy(true)
	defer s.setBusy(false)

	user, err := s.svc.UpdateMe(ctx, data)
	if err != nil {
		notify.Report(s.notify, err, "Erro ao atualizar usuário")
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()
	return nil
}

// DeleteCurrentUser deletes the account and, on success, logs out.
func (s *SessionStore) DeleteCurrentUser(ctx context.Context) error {
	s.setBusy(true)
	defer s.setBusy(false)

	if err := s.svc.DeleteMe(ctx); err != nil {
		notify.Report(s.notify, err, "Erro ao deletar conta")
		return err
	}
	s.Logout()
	return nil
}

// Logout clears the persisted token and all session state. It cannot
// fail; a storage error leaves the in-memory session cleared anyway.
func (s *SessionStore) Logout() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()
	_ = s.storage.Remove(TokenKey) //nolint:errcheck
}

// IsAuthenticated reports whether a token is held.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the held token, or "" when anonymous.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// User returns a copy of the loaded profile, or nil before LoadCurrentUser.
func (s *SessionStore) User() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Busy reports whether an auth operation is in flight.
func (s *SessionStore) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

func (s *SessionStore) setBusy(v bool) {
	s.mu.Lock()
	s.busy = v
	s.mu.Unlock()
}
