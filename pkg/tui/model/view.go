package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/modoterra/logforge/pkg/core"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	idleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	dimStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the TUI.
func (a App) View() string {
	if a.width == 0 || a.height == 0 {
		return "loading..."
	}

	statusBarH := 2
	countersH := len(core.Categories()) + 2
	tailH := a.height - countersH - statusBarH - 4

	counters := a.renderCounters(a.width - 4)
	countersPane := paneStyle.Width(a.width - 4).Height(countersH).Render(
		titleStyle.Render(a.countersTitle()) + "\n" + counters,
	)

	tail := a.renderTail(a.width-4, tailH)
	tailPane := paneStyle.Width(a.width - 4).Height(tailH).Render(
		titleStyle.Render(a.tailTitle()) + "\n" + tail,
	)

	statusBar := a.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, countersPane, tailPane, statusBar)
}

func (a App) countersTitle() string {
	title := " Categories "
	if a.emitterPaused {
		title += pausedStyle.Render("[EMITTER PAUSED]") + " "
	}
	return title
}

func (a App) tailTitle() string {
	title := " Tail "
	if a.tailPaused {
		title += dimStyle.Render("[PAUSED]") + " "
	}
	return title
}

func (a App) renderCounters(w int) string {
	if !a.connected {
		return dimStyle.Render("connecting to emitter...")
	}
	if len(a.stats) == 0 {
		return dimStyle.Render("no counters yet")
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %-12s %-16s %8s %10s\n", "CATEGORY", "FILE", "LINES", "LAST")
	for _, st := range a.stats {
		indicator := a.statIndicator(st)
		line := fmt.Sprintf("%s %-11s %-16s %8d %10s",
			indicator, st.Category, st.File, st.Lines, lastAge(st))
		b.WriteString(truncate(line, w) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (a App) statIndicator(st core.Stat) string {
	if a.emitterPaused {
		return pausedStyle.Render("◦")
	}
	if st.LastTsUnixMs > 0 && time.Since(time.UnixMilli(st.LastTsUnixMs)) < 3*time.Second {
		return activeStyle.Render("●")
	}
	return idleStyle.Render("○")
}

func lastAge(st core.Stat) string {
	if st.LastTsUnixMs == 0 {
		return "-"
	}
	d := time.Since(time.UnixMilli(st.LastTsUnixMs)).Round(time.Second)
	if d < time.Second {
		return "now"
	}
	return d.String() + " ago"
}

func (a App) renderTail(w, h int) string {
	tail := a.filteredTail()
	if len(tail) == 0 {
		return dimStyle.Render("no lines yet")
	}

	start := 0
	if len(tail) > h-1 {
		start = len(tail) - h + 1
	}

	var b strings.Builder
	for i := start; i < len(tail); i++ {
		e := tail[i]
		line := fmt.Sprintf("%-11s %s", dimStyle.Render(string(e.Category)), e.Line)
		b.WriteString(truncate(line, w) + "\n")
	}

	if a.mode == ModeFilter {
		b.WriteString("\n" + a.filter.View())
	}

	return b.String()
}

func (a App) renderStatusBar() string {
	left := a.statusMsg
	right := "space:pause tail p:pause emitter /:filter q:quit"
	if a.mode == ModeFilter {
		right = "enter:apply esc:cancel"
	}

	gap := a.width - len(left) - len(right)
	if gap < 1 {
		gap = 1
	}
	return helpStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
