package threadview

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/strandtui/strand/internal/paginate"
	"github.com/strandtui/strand/internal/store"
)

// pageMsg carries a resolved pagination fetch into the update loop.
type pageMsg struct {
	res paginate.Result
}

// ReloadMsg swaps the backing thread data after the fixture file changed on
// disk. FocusID is the fixture's focus; the model keeps the current focus
// when the new data still contains it.
type ReloadMsg struct {
	Store   store.Store
	Pager   paginate.Pager
	FocusID string
}

// waitForPage re-arms the listener for the session's result channel.
func (m Model) waitForPage() tea.Cmd {
	return func() tea.Msg {
		return pageMsg{res: <-m.results}
	}
}
