package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDataset() Dataset {
	return Dataset{
		Title: "Borrowing Requests",
		Columns: []Column{
			{Key: "student", Title: "Student", Weight: 2},
			{Key: "item", Title: "Item", Weight: 3},
			{Key: "status", Title: "Status"},
		},
		Rows: []map[string]string{
			{"student": "Ana Reyes", "item": "Kulintang, set of 8", "status": "pending"},
			{"student": "Unknown Student", "item": "Barong", "status": "approved"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Student,Item,Status", lines[0])
	assert.Equal(t, `Ana Reyes,"Kulintang, set of 8",pending`, lines[1])
}

func TestCSVExporterRequiresColumns(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	data := sampleDataset()
	for i := 0; i < 80; i++ {
		data.Rows = append(data.Rows, map[string]string{"student": "Student", "item": strings.Repeat("x", 90), "status": "pending"})
	}

	out, err := NewPDFExporter().Render(data)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestColumnWidthsFillPage(t *testing.T) {
	widths := columnWidths(sampleDataset().Columns)
	sum := 0.0
	for _, w := range widths {
		sum += w
	}
	assert.InDelta(t, pageWidthMM, sum, 0.001)
	assert.InDelta(t, widths[0]*1.5, widths[1], 0.001)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short"))
	long := truncate(strings.Repeat("a", 100))
	assert.Len(t, []rune(long), maxCellChars)
	assert.True(t, strings.HasSuffix(long, "..."))
}
