package threadview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/strandtui/strand/internal/thread"
	"github.com/strandtui/strand/internal/ui/styles"
)

// chromeHeight is the lines taken by the header and footer around the
// viewport: title + border, status + hints.
const chromeHeight = 4

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "loading thread..."
	}

	if m.notFound {
		msg := styles.ErrorStyle.Render("message not found") + "\n" +
			styles.MutedStyle.Render(m.view.FocusedID) + "\n\n" +
			styles.FooterStyle.Render("q quit")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, msg)
	}

	if m.showBody {
		hint := styles.FooterStyle.Render("esc close · q quit")
		return lipgloss.JoinVertical(lipgloss.Left, m.bodyText, hint)
	}

	frame := strings.Join([]string{
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	}, "\n")
	return m.zones.Scan(frame)
}

func (m Model) renderHeader() string {
	title := fmt.Sprintf("strand · %d in thread", m.view.Len())
	return styles.HeaderStyle.Width(m.width).Render(title)
}

func (m Model) renderFooter() string {
	status := " "
	switch {
	case m.err != nil:
		status = styles.ErrorStyle.Render(ansi.Truncate("error: "+m.err.Error(), m.width, "..."))
	case m.loading:
		status = styles.TimeStyle.Render(m.spinner.View() + " fetching replies")
	}

	if m.composing {
		return status + "\n" + styles.AuthorStyle.Render("reply: ") + m.compose.View()
	}

	hints := styles.FooterStyle.Render("j/k move · enter focus · r reply · b body · q quit")
	return status + "\n" + hints
}

// syncViewport re-renders all rows into the viewport and scrolls the
// selection into view.
func (m *Model) syncViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	spans := make([]rowSpan, len(m.rows))
	line := 0
	for i, row := range m.rows {
		rendered := m.renderRow(row, i == m.selected)
		n := lipgloss.Height(rendered)
		spans[i] = rowSpan{start: line, lines: n}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(rendered)
		line += n
	}

	m.spans = spans
	m.viewport.SetContent(b.String())
	m.ensureVisible()
}

func (m *Model) ensureVisible() {
	if m.selected < 0 || m.selected >= len(m.spans) {
		return
	}
	span := m.spans[m.selected]
	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1
	switch {
	case span.start < top:
		m.viewport.SetYOffset(span.start)
	case span.start+span.lines-1 > bottom:
		m.viewport.SetYOffset(span.start + span.lines - m.viewport.Height)
	}
}

func (m Model) renderRow(row Row, selected bool) string {
	prefix := "  "
	if selected {
		prefix = styles.SelectedRow.Render("> ")
	}
	width := max(m.width-2, 20)

	if row.Kind == RowLoadMore {
		label := fmt.Sprintf("+ %d more replies", remainingReplies(m.view.FocusedID, m.store))
		if m.loading {
			label = m.spinner.View() + " fetching replies"
		}
		return m.zones.Mark(rowZoneID(row.ID), prefix+styles.LoadMoreRow.Render(label))
	}

	var content string
	switch row.Kind {
	case RowFocused:
		content = m.renderFocused(row, width)
	default:
		content = m.renderOneLine(row, width)
	}
	return m.zones.Mark(rowZoneID(row.ID), prefix+content)
}

// renderFocused renders the centered message in full: author line, wrapped
// body, reply count.
func (m Model) renderFocused(row Row, width int) string {
	msg, err := m.store.Message(row.ID)
	if err != nil {
		return styles.MutedStyle.Render("[unavailable]")
	}

	entry, _ := m.store.Entry(row.ID)
	header := styles.FocusedRow.Render(
		styles.AuthorStyle.Render(msg.Author) + "  " + relTime(msg.CreatedAt, m.now()),
	)

	var body string
	switch entry.Kind {
	case thread.KindTombstone:
		body = styles.TombstoneRow.Render("[removed]")
	case thread.KindPending:
		body = styles.PendingRow.Render(wordwrap.String(msg.Body, width) + "\n(sending)")
	default:
		body = wordwrap.String(msg.Body, width)
	}

	meta := styles.TimeStyle.Render(fmt.Sprintf("%d replies", msg.ReplyCount))
	return header + "\n" + body + "\n" + meta
}

// renderOneLine renders an ancestor or reply as a single compact line.
func (m Model) renderOneLine(row Row, width int) string {
	indent := strings.Repeat("  ", row.Depth)

	entry, known := m.store.Entry(row.ID)
	if !known {
		return indent + styles.MutedStyle.Render("[unavailable]")
	}

	switch entry.Kind {
	case thread.KindTombstone:
		return indent + styles.TombstoneRow.Render("[removed]")
	case thread.KindPending:
		msg, err := m.store.Message(row.ID)
		if err != nil {
			return indent + styles.PendingRow.Render("(sending)")
		}
		line := runewidth.Truncate(msg.Author+": "+snippet(msg.Body), width-len(indent)-10, "…")
		return indent + styles.PendingRow.Render(line+" (sending)")
	}

	msg, err := m.store.Message(row.ID)
	if err != nil {
		return indent + styles.MutedStyle.Render("[unavailable]")
	}

	line := styles.AuthorStyle.Render(msg.Author) + " " +
		styles.TimeStyle.Render(relTime(msg.CreatedAt, m.now())) + " " +
		runewidth.Truncate(snippet(msg.Body), max(width-len(indent)-runewidth.StringWidth(msg.Author)-8, 10), "…")

	style := styles.ReplyRow
	if row.Kind == RowAncestor {
		style = styles.AncestorRow
	}
	return indent + ansi.Truncate(style.Render(line), width, "…")
}

// renderBody renders a message body as markdown for the full-body overlay.
func renderBody(body string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(min(width-2, 100)),
	)
	if err != nil {
		return "", err
	}
	return r.Render(body)
}
