package tui

import (
	"strings"
	"time"
	"unicode/utf8"
)

// maxInputLen caps form fields; the server rejects longer values anyway.
const maxInputLen = 500

// editRune applies one keystroke to an in-progress text value:
// backspace drops the last rune, a single printable rune is appended up
// to maxInputLen, and multi-rune key names (enter, esc, arrows) leave
// the text alone.
func editRune(text, key string) string {
	if key == "backspace" {
		runes := []rune(text)
		if len(runes) == 0 {
			return text
		}
		return string(runes[:len(runes)-1])
	}
	if utf8.RuneCountInString(key) != 1 || utf8.RuneCountInString(text) >= maxInputLen {
		return text
	}
	return text + key
}

// truncateToHeight caps s at maxLines lines so a small terminal never
// scrolls the chrome away. Non-positive maxLines disables the cap.
func truncateToHeight(s string, maxLines int) string {
	if maxLines <= 0 {
		return s
	}
	end := 0
	for n := 0; n < maxLines; n++ {
		next := strings.IndexByte(s[end:], '\n')
		if next < 0 {
			return s
		}
		end += next + 1
	}
	return s[:end]
}

// Dates travel as ISO yyyy-mm-dd on the wire but are shown and typed
// as dd/mm/yyyy.
const (
	wireDateLayout    = "2006-01-02"
	displayDateLayout = "02/01/2006"
)

// parseWireDate accepts the plain date the task endpoints use and the
// full RFC 3339 timestamps server-assigned fields may carry.
func parseWireDate(s string) (time.Time, error) {
	if t, err := time.Parse(wireDateLayout, s); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// formatDate renders a wire date for display. Values that do not parse
// are shown as-is rather than hidden.
func formatDate(iso string) string {
	t, err := parseWireDate(iso)
	if err != nil {
		return iso
	}
	return t.Format(displayDateLayout)
}

// parseDateInput converts a typed dd/mm/yyyy date to the wire format.
func parseDateInput(s string) (string, bool) {
	t, err := time.Parse(displayDateLayout, s)
	if err != nil {
		return "", false
	}
	return t.Format(wireDateLayout), true
}

// isOverdue reports whether a wire date is strictly before today.
// Unparseable dates are never overdue.
func isOverdue(iso string, now time.Time) bool {
	t, err := parseWireDate(iso)
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return t.Before(today)
}

// truncStr truncates a string to maxLen runes, appending an ellipsis if needed.
func truncStr(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxLen-1]) + "…"
}
