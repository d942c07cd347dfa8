package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/dmitrijs2005/userdesk/internal/client/analytics"
	"github.com/dmitrijs2005/userdesk/internal/client/directory"
	"github.com/dmitrijs2005/userdesk/internal/models"
)

const maxBarWidth = 40

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func renderTable(users []models.User) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(directory.Headers...).
		Rows(directory.Rows(users)...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

func renderDashboard(s analytics.Snapshot) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Registrations"))
	b.WriteString("\n")
	for _, w := range []struct {
		label string
		n     int
	}{
		{"Last 24 hours", s.Last24h},
		{"Last 7 days", s.Last7d},
		{"Last 15 days", s.Last15d},
		{"Last 30 days", s.Last30d},
	} {
		fmt.Fprintf(&b, "%s %d\n", labelStyle.Render(fmt.Sprintf("%-14s", w.label)), w.n)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("By month"))
	b.WriteString("\n")
	b.WriteString(renderBars(s.Months))
	return b.String()
}

// renderBars draws one horizontal bar per label, scaled to the largest count.
func renderBars(series analytics.Series) string {
	if len(series.Labels) == 0 {
		return labelStyle.Render("no data") + "\n"
	}

	top := 1
	for _, c := range series.Counts {
		top = max(top, c)
	}

	var b strings.Builder
	for i, label := range series.Labels {
		n := series.Counts[i]
		width := n * maxBarWidth / top
		if width == 0 && n > 0 {
			width = 1
		}
		fmt.Fprintf(&b, "%s %s %d\n",
			labelStyle.Render(fmt.Sprintf("%-3s", label)),
			barStyle.Render(strings.Repeat("█", width)),
			n)
	}
	return b.String()
}
