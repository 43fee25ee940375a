package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderTable_AlignsStyledCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"ID", "NAME"},
		[][]string{
			{"WEB01", Bold("Website")},
			{"API1234", "Api"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "ID       NAME", lines[0])
	assert.Equal(t, "WEB01    Website", lines[2])
	assert.Equal(t, "API1234  Api", lines[3])
}

func TestRenderTable_NoHeaders(t *testing.T) {
	assert.Empty(t, RenderTable(nil, [][]string{{"x"}}))
}

func TestRenderTable_PadsShortRowsAndDropsExtraCells(t *testing.T) {
	out := stripANSI(RenderTable(
		[]string{"NAME", "ROLE"},
		[][]string{
			{"Ada"},
			{"Grace", "Engineer", "ignored"},
		},
	))

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "─────  ────────", lines[1])
	assert.Equal(t, "Ada    ", lines[2])
	assert.Equal(t, "Grace  Engineer", lines[3])
}
