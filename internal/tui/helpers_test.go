package tui

import (
	"strings"
	"testing"
	"time"
)

func TestFormatDate(t *testing.T) {
	if got := formatDate("2025-02-01"); got != "01/02/2025" {
		t.Errorf("formatDate = %q", got)
	}
	// Server-assigned fields arrive as full timestamps.
	if got := formatDate("2025-02-01T12:34:56.000Z"); got != "01/02/2025" {
		t.Errorf("formatDate(timestamp) = %q", got)
	}
	// Unparseable values pass through untouched.
	if got := formatDate("amanhã"); got != "amanhã" {
		t.Errorf("formatDate = %q", got)
	}
}

func TestParseDateInput(t *testing.T) {
	iso, ok := parseDateInput("01/02/2025")
	if !ok || iso != "2025-02-01" {
		t.Errorf("parseDateInput = %q, %v", iso, ok)
	}
	if _, ok := parseDateInput("2025-02-01"); ok {
		t.Error("ISO input accepted as dd/mm/yyyy")
	}
	if _, ok := parseDateInput("32/13/2025"); ok {
		t.Error("impossible date accepted")
	}
}

func TestIsOverdue(t *testing.T) {
	now := time.Date(2025, 2, 10, 15, 0, 0, 0, time.UTC)
	if !isOverdue("2025-02-09", now) {
		t.Error("yesterday not overdue")
	}
	if isOverdue("2025-02-10", now) {
		t.Error("today reported overdue")
	}
	if isOverdue("2025-02-11", now) {
		t.Error("tomorrow reported overdue")
	}
	if isOverdue("invalid", now) {
		t.Error("unparseable date reported overdue")
	}
	if !isOverdue("2025-02-09T08:00:00Z", now) {
		t.Error("timestamp form not recognized")
	}
}

func TestEditRune(t *testing.T) {
	if got := editRune("abc", "d"); got != "abcd" {
		t.Errorf("append: got %q", got)
	}
	if got := editRune("abc", "backspace"); got != "ab" {
		t.Errorf("backspace: got %q", got)
	}
	if got := editRune("", "backspace"); got != "" {
		t.Errorf("backspace on empty: got %q", got)
	}
	// Multi-byte runes are removed whole.
	if got := editRune("café", "backspace"); got != "caf" {
		t.Errorf("backspace rune: got %q", got)
	}
	if got := editRune("abc", "enter"); got != "abc" {
		t.Errorf("non-printable: got %q", got)
	}

	full := strings.Repeat("x", maxInputLen)
	if got := editRune(full, "y"); got != full {
		t.Error("input grew past maxInputLen")
	}
}

func TestTruncateToHeight(t *testing.T) {
	s := "a\nb\nc\nd\n"
	if got := truncateToHeight(s, 2); got != "a\nb\n" {
		t.Errorf("got %q", got)
	}
	if got := truncateToHeight(s, 0); got != s {
		t.Errorf("maxLines 0 should be a no-op, got %q", got)
	}
	if got := truncateToHeight("one line", 5); got != "one line" {
		t.Errorf("got %q", got)
	}
}

func TestTruncStr(t *testing.T) {
	if got := truncStr("comprar leite", 50); got != "comprar leite" {
		t.Errorf("truncStr = %q", got)
	}
	got := truncStr("uma tarefa com título bem comprido", 10)
	if len([]rune(got)) != 10 {
		t.Errorf("truncStr length = %d, want 10", len([]rune(got)))
	}
	if got[len(got)-3:] != "…" {
		t.Errorf("truncStr = %q, want ellipsis suffix", got)
	}
}
