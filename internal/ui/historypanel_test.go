package ui

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vidyasagar/tcalc/internal/storage"
)

func records(n int) []storage.HistoryRecord {
	recs := make([]storage.HistoryRecord, n)
	for i := range recs {
		recs[i] = storage.HistoryRecord{
			ID:        fmt.Sprintf("id-%d", i),
			Equation:  fmt.Sprintf("%d+1=", i),
			Result:    fmt.Sprint(i + 1),
			Timestamp: time.Now().UnixMilli(),
		}
	}
	return recs
}

func TestHistoryPanelNavigation(t *testing.T) {
	hp := NewHistoryPanel()
	hp.SetSize(30, 12) // four rows visible
	hp.SetEntries(records(10))
	hp.Show()

	hp.CursorUp()
	assert.Equal(t, 0, hp.SelectedIndex())

	hp.CursorDown()
	hp.CursorDown()
	assert.Equal(t, 2, hp.SelectedIndex())

	hp.GotoBottom()
	assert.Equal(t, 9, hp.SelectedIndex())
	hp.CursorDown()
	assert.Equal(t, 9, hp.SelectedIndex())

	hp.HalfPageUp()
	assert.Equal(t, 7, hp.SelectedIndex())

	assert.False(t, hp.HandleGKey())
	assert.True(t, hp.HandleGKey())
	assert.Equal(t, 0, hp.SelectedIndex())

	hp.HalfPageDown()
	assert.Equal(t, 2, hp.SelectedIndex())

	sel := hp.SelectedEntry()
	require.NotNil(t, sel)
	assert.Equal(t, "2+1=", sel.Equation)
}

func TestHistoryPanelShrinkingEntriesClampsCursor(t *testing.T) {
	hp := NewHistoryPanel()
	hp.SetSize(30, 12)
	hp.SetEntries(records(5))
	hp.GotoBottom()

	hp.SetEntries(records(2))
	assert.Equal(t, 1, hp.SelectedIndex())

	hp.SetEntries(nil)
	assert.Equal(t, 0, hp.SelectedIndex())
	assert.Nil(t, hp.SelectedEntry())
}

func TestHistoryPanelView(t *testing.T) {
	hp := NewHistoryPanel()
	hp.SetSize(40, 20)
	assert.Empty(t, hp.View())

	hp.Show()
	assert.Contains(t, hp.View(), "No calculations yet.")

	hp.SetEntries(records(3))
	out := hp.View()
	assert.Contains(t, out, "History (3)")
	assert.Contains(t, out, "just now")
	assert.Contains(t, out, "Esc:close")

	// Second render is served from the row cache and must match.
	assert.Equal(t, out, hp.View())
	assert.Positive(t, hp.rows.Len())
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "1234", truncateLeft("1234", 10))
	got := truncateLeft("123,456,789", 6)
	assert.True(t, strings.HasPrefix(got, "…"))
	assert.True(t, strings.HasSuffix(got, "789"))
}

func TestKeypadPressRelease(t *testing.T) {
	k := NewKeypad()
	k.Press("7")
	assert.Equal(t, "7", k.Pressed())

	k.Release("8")
	assert.Equal(t, "7", k.Pressed())

	k.Release("7")
	assert.Empty(t, k.Pressed())
}
