package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/Luishgfarias/todo-front/pkg/domain"
)

var (
	// Base palette
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e4e4ec")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#c0c4d0"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d474"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	// Help bar
	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#8890a0"))

	helpLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868"))

	// Search / filter
	searchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80")).
			Bold(true)

	// Toast line
	toastOkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ade80"))

	toastErrStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	// Task rows
	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#505868")).
			Strikethrough(true)

	overdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06060"))

	selectedMarkStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#f0944a"))

	inputPlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#343c4a"))

	dangerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d05050")).
			Bold(true)
)

// urgencyColors maps each server urgency level to its display color.
var urgencyColors = map[domain.Urgency]lipgloss.Color{
	domain.UrgencyStandard:  lipgloss.Color("#8890a0"),
	domain.UrgencyImportant: lipgloss.Color("#d4a844"),
	domain.UrgencyUrgent:    lipgloss.Color("#f0944a"),
	domain.UrgencyCritical:  lipgloss.Color("#e06060"),
}

// urgencyLabels are the short Portuguese labels shown in lists and forms.
var urgencyLabels = map[domain.Urgency]string{
	domain.UrgencyStandard:  "Padrão",
	domain.UrgencyImportant: "Importante",
	domain.UrgencyUrgent:    "Urgente",
	domain.UrgencyCritical:  "Crítica",
}

// UrgencyStyle returns a bold style colored for the given urgency.
func UrgencyStyle(u domain.Urgency) lipgloss.Style {
	if c, ok := urgencyColors[u]; ok {
		return lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color("#606878")).Bold(true)
}

// urgencyLabel returns the display label for an urgency, falling back to
// the raw wire value for levels this build does not know.
func urgencyLabel(u domain.Urgency) string {
	if l, ok := urgencyLabels[u]; ok {
		return l
	}
	return string(u)
}

// helpEntry renders a single "key label" pair for help bars.
func helpEntry(key, label string) string {
	return helpKeyStyle.Render(key) + " " + helpLabelStyle.Render(label)
}
