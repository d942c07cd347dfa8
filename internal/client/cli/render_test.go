package cli

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/userdesk/internal/client/analytics"
	"github.com/stretchr/testify/assert"
)

func TestRenderBars_ScalesToLargest(t *testing.T) {
	out := renderBars(analytics.Series{Labels: []string{"Jan", "Feb", "Mar"}, Counts: []int{80, 40, 1}})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")

	assert.Len(t, lines, 3)
	assert.Equal(t, maxBarWidth, strings.Count(lines[0], "█"))
	assert.Equal(t, maxBarWidth/2, strings.Count(lines[1], "█"))
	assert.Equal(t, 1, strings.Count(lines[2], "█"), "non-zero counts get at least one cell")
	assert.True(t, strings.HasPrefix(lines[0], "Jan"))
	assert.True(t, strings.HasSuffix(lines[2], " 1"))
}

func TestRenderBars_Empty(t *testing.T) {
	assert.Contains(t, renderBars(analytics.Series{}), "no data")
}

func TestRenderTable_Placeholder(t *testing.T) {
	out := renderTable(nil)
	assert.Contains(t, out, "No users found")
	assert.Contains(t, out, "ID")
}
