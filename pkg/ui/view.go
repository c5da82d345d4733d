package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/SandeshR98/scaleview/pkg/metrics"
)

func (m Model) View() string {
	defer metrics.Timer(metrics.UIRender)()

	if m.focus == focusHelp {
		return m.renderOverlay("Help", m.helpView.View())
	}
	if m.focus == focusInsights {
		return m.renderOverlay("Insights", m.insightsView.View())
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(RenderDivider(m.width))
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString(m.renderMountLine())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m Model) renderHeader() string {
	t := m.theme

	title := t.Header.Render("sv")

	var parts []string
	parts = append(parts, fmt.Sprintf("%s products", FormatCount(m.store.Len())))
	if len(m.visible) != m.store.Len() {
		parts = append(parts, fmt.Sprintf("%s matches", FormatCount(len(m.visible))))
	}
	if cat := m.currentCategory(); cat != "" {
		parts = append(parts, t.InfoText.Render(cat))
	}
	if m.sorted {
		parts = append(parts, t.SecondaryText.Render(m.sortSpec.String()))
	}

	var modes []string
	if m.windowsOn {
		modes = append(modes, "win")
	} else {
		modes = append(modes, "mount")
	}
	if m.workerOn {
		modes = append(modes, "worker")
	} else {
		modes = append(modes, "inline")
	}
	parts = append(parts, t.MutedText.Render(strings.Join(modes, "·")))

	info := strings.Join(parts, t.MutedText.Render(" │ "))

	gap := m.width - lipgloss.Width(title) - lipgloss.Width(info) - 2
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + info
}

func (m Model) renderSearchBar() string {
	if m.focus == focusSearch || m.input.Value() != "" {
		return m.input.View()
	}
	return m.theme.MutedText.Render("/ to search · s sort · tab category · w windowing · c worker · ? help")
}

// renderList renders the visible extent. Under windowing only rows inside
// the materialized window exist; anything the scheduler did not
// materialize renders as a placeholder, which overscan keeps out of sight
// during normal scrolling.
func (m Model) renderList() string {
	records := m.listRecords()
	rows := Rows(len(records), m.groupSize())
	extent := m.listHeight()

	if m.loading {
		return m.renderCenteredNotice(m.spin.View()+" preparing catalog...", extent)
	}
	if rows == 0 {
		return m.renderCenteredNotice("no matching products", extent)
	}

	win := m.windows.Current()
	var b strings.Builder
	for line := 0; line < extent; line++ {
		row := m.offset + line
		switch {
		case row >= rows:
			// past the end: blank line
		case m.windowsOn && !win.Contains(row):
			b.WriteString(m.theme.MutedText.Render("…"))
		default:
			lo, hi := GroupBounds(row, len(records), m.groupSize())
			b.WriteString(m.rows.RenderGroup(records[lo:hi], row == m.cursor, m.width))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderCenteredNotice(notice string, extent int) string {
	var b strings.Builder
	for i := 0; i < extent; i++ {
		if i == extent/2 {
			pad := (m.width - lipgloss.Width(notice)) / 2
			if pad < 0 {
				pad = 0
			}
			b.WriteString(strings.Repeat(" ", pad))
			b.WriteString(notice)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderMountLine shows progressive mounting progress while incomplete and
// the capped notice once done.
func (m Model) renderMountLine() string {
	if m.windowsOn || m.mount == nil {
		return ""
	}
	t := m.theme
	if !m.mount.Complete() {
		mounted := len(m.mount.Mounted())
		label := fmt.Sprintf("mounting %s/%s ", FormatCount(mounted), FormatCount(len(m.mount.items)))
		return t.MutedText.Render(label) + m.mountProgress.ViewAs(m.mount.Progress())
	}
	if m.mount.Capped() {
		return t.StatusError.Render(fmt.Sprintf("showing first %s of %s matches",
			FormatCount(len(m.mount.items)), FormatCount(m.mount.trueTotal)))
	}
	return ""
}

func (m Model) renderFooter() string {
	t := m.theme

	var left string
	switch {
	case m.statusMsg != "" && m.statusIsError:
		left = t.StatusError.Render(m.statusMsg)
	case m.statusMsg != "":
		left = t.InfoText.Render(m.statusMsg)
	case m.Busy():
		left = t.StatusBusy.Render(m.spin.View() + " working...")
	default:
		left = t.MutedText.Render(m.positionLabel())
	}

	var right string
	if m.lastElapsed > 0 {
		right = t.MutedText.Render(m.lastElapsed.Round(time.Millisecond).String())
	}
	if metrics.Enabled() {
		total, materialized := metrics.ResultCounts()
		right = t.MutedText.Render(fmt.Sprintf("%s · mat %s/%s",
			m.lastElapsed.Round(time.Millisecond), FormatCount(materialized), FormatCount(total)))
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m Model) positionLabel() string {
	rows := m.rowCount()
	if rows == 0 {
		return ""
	}
	return fmt.Sprintf("%s/%s", FormatCount(m.cursor+1), FormatCount(rows))
}

func (m Model) renderOverlay(title, body string) string {
	header := m.theme.Header.Render(title) + m.theme.MutedText.Render("  esc to close")
	panel := FocusedPanelStyle.Width(m.width - 4).Render(header + "\n\n" + body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, panel)
}
