// Package notify is the single place user-facing failure text is
// decided. Every service-action failure path goes through Report;
// stores and screens never compose error messages themselves.
package notify

import (
	"errors"
	"sync"

	"github.com/Luishgfarias/todo-front/pkg/api"
)

// Fixed texts for failures the caller cannot phrase better.
const (
	ServerErrorMsg     = "Erro no servidor. Tente novamente mais tarde."
	UnexpectedErrorMsg = "Erro inesperado. Tente novamente mais tarde."
)

// Level distinguishes success toasts from error toasts.
type Level int

const (
	LevelSuccess Level = iota
	LevelError
)

// Notification is one user-facing message.
type Notification struct {
	Level Level
	Text  string
}

// Notifier receives user-facing messages.
type Notifier interface {
	Success(text string)
	Error(text string)
}

// Report classifies err and emits exactly one notification. Policy, in
// order: a plain-string response body is shown verbatim; a structured
// body with status >= 500 gets the fixed server-error text; no response
// at all (network, timeout, decode) gets the fixed unexpected text;
// anything else gets defaultMsg.
func Report(n Notifier, err error, defaultMsg string) {
	var httpErr *api.HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.PlainText && httpErr.Body != "":
			n.Error(httpErr.Body)
		case httpErr.StatusCode >= 500:
			n.Error(ServerErrorMsg)
		default:
			n.Error(defaultMsg)
		}
		return
	}
	n.Error(UnexpectedErrorMsg)
}

// Queue is a thread-safe Notifier that buffers notifications until the
// UI drains them. Store actions run in background goroutines; the TUI
// drains the queue after each action message arrives.
type Queue struct {
	mu      sync.Mutex
	pending []Notification
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Success(text string) {
	q.push(Notification{Level: LevelSuccess, Text: text})
}

func (q *Queue) Error(text string) {
	q.push(Notification{Level: LevelError, Text: text})
}

func (q *Queue) push(n Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, n)
}

// Drain returns all buffered notifications in arrival order and empties
// the queue.
func (q *Queue) Drain() []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.pending
	q.pending = nil
	return out
}
