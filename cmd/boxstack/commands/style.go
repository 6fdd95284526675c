package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/piwi3910/BoxStack/internal/model"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#AAAAAA")).
			Width(22)

	valueStyle = lipgloss.NewStyle().Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFAA00"))

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF5555"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444444")).
			Padding(0, 1)
)

type kv struct {
	key, value string
}

func renderPairs(title string, pairs []kv) string {
	lines := []string{titleStyle.Render(title)}
	for _, p := range pairs {
		lines = append(lines, labelStyle.Render(p.key)+valueStyle.Render(p.value))
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

// renderRunSummary formats the headline numbers of a run.
func renderRunSummary(run model.RunResult) string {
	loads := make([]string, 0, len(run.Best.Bins))
	for _, b := range run.Best.Bins {
		loads = append(loads, fmt.Sprintf("%.1f%%", b.Efficiency()))
	}

	pairs := []kv{
		{"Problem", run.Problem},
		{"Bin size", run.BinSize.String()},
		{"Items", fmt.Sprintf("%d (placed %d)", run.ItemCount, run.Best.PlacedCount())},
		{"Bins used", fmt.Sprintf("%d (lower bound %d)", run.Best.BinsUsed, run.LowerBound)},
		{"Fitness", fmt.Sprintf("%.4f", run.Best.Fitness)},
		{"Efficiency", fmt.Sprintf("%.1f%%", run.Best.TotalEfficiency())},
		{"Bin fill", strings.Join(loads, " ")},
		{"Generations", fmt.Sprintf("%d", run.Generations())},
		{"Evaluations", fmt.Sprintf("%d", run.Evaluations)},
		{"Elapsed", run.Elapsed.Round(time.Millisecond).String()},
	}
	return renderPairs("Packing result", pairs)
}

// renderTable lays out rows under a bold header with padded columns.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = lipgloss.Width(h)
	}
	for _, r := range rows {
		for i, c := range r {
			if w := lipgloss.Width(c); w > widths[i] {
				widths[i] = w
			}
		}
	}

	cell := func(s string, i int) string {
		return lipgloss.NewStyle().Width(widths[i] + 2).Render(s)
	}

	var b strings.Builder
	for i, h := range header {
		b.WriteString(titleStyle.Render(cell(h, i)))
	}
	b.WriteString("\n")
	for _, r := range rows {
		for i, c := range r {
			b.WriteString(cell(c, i))
		}
		b.WriteString("\n")
	}
	return b.String()
}
