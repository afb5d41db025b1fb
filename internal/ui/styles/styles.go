// Package styles centralizes colors and lipgloss styles for the thread view.
package styles

import "github.com/charmbracelet/lipgloss"

// Adaptive colors pick the variant matching the terminal background.
var (
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#1A1A2E", Dark: "#E6E6E6"}
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#8A8A9E", Dark: "#6C6C80"}
	AccentColor      = lipgloss.AdaptiveColor{Light: "#5A4FCF", Dark: "#8B7CF6"}
	SelectionBG      = lipgloss.AdaptiveColor{Light: "#E8E4FF", Dark: "#2D2B55"}
	PendingColor     = lipgloss.AdaptiveColor{Light: "#B8860B", Dark: "#E5C07B"}
	TombstoneColor   = lipgloss.AdaptiveColor{Light: "#A0A0A0", Dark: "#5C6370"}
	StatusErrorColor = lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#E06C75"}
	BorderColor      = lipgloss.AdaptiveColor{Light: "#D0D0E0", Dark: "#3E4451"}
)

var (
	// AncestorRow renders the chain above the focused message, dimmed.
	AncestorRow = lipgloss.NewStyle().Foreground(TextMutedColor)

	// FocusedRow highlights the message the view is centered on.
	FocusedRow = lipgloss.NewStyle().
			Bold(true).
			Foreground(TextPrimaryColor).
			Background(SelectionBG)

	// ReplyRow renders descendants below the focus.
	ReplyRow = lipgloss.NewStyle().Foreground(TextPrimaryColor)

	// SelectedRow marks the cursor row.
	SelectedRow = lipgloss.NewStyle().
			Foreground(AccentColor).
			Bold(true)

	// PendingRow renders optimistic local replies not yet confirmed.
	PendingRow = lipgloss.NewStyle().
			Italic(true).
			Foreground(PendingColor)

	// TombstoneRow renders deleted messages.
	TombstoneRow = lipgloss.NewStyle().
			Italic(true).
			Foreground(TombstoneColor)

	// LoadMoreRow renders the trailing fetch-more affordance.
	LoadMoreRow = lipgloss.NewStyle().Foreground(AccentColor)

	// AuthorStyle renders the author handle in a row header.
	AuthorStyle = lipgloss.NewStyle().Bold(true)

	// TimeStyle renders timestamps.
	TimeStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// MutedStyle renders placeholder text for unavailable entries.
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)

	// HeaderStyle renders the title bar.
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(BorderColor)

	// FooterStyle renders the key hint bar.
	FooterStyle = lipgloss.NewStyle().Foreground(TextMutedColor)

	// ErrorStyle renders transient error lines in the footer.
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor)
)
