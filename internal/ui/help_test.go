package ui

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHelpScreenLines(t *testing.T) {
	h := NewHelpScreen(
		[]KeyHelp{{"j/k", "Move"}, {"PgDn", "Page down"}},
		[]KeyHelp{{":q", "Quit"}},
	)

	lines := h.Lines()
	assert.Equal(t, "Keys:", lines[0])
	assert.Contains(t, lines, "  j/k   Move")
	assert.Contains(t, lines, "  PgDn  Page down")
	assert.Contains(t, lines, "Commands:")
	assert.Contains(t, lines, "  :q    Quit")
}

func TestHelpScreenRender(t *testing.T) {
	screen, sim := newTestScreen(t, 40, 12)
	h := NewHelpScreen([]KeyHelp{{"q", "Quit"}}, nil)

	h.Render(screen)
	screen.Show()
	assert.Equal(t, "", screenRow(sim, 1), "hidden overlay draws nothing")

	h.Toggle()
	assert.True(t, h.IsVisible())
	h.Render(screen)
	screen.Show()

	assert.True(t, strings.HasPrefix(screenRow(sim, 1), "  ┌"))
	assert.Contains(t, screenRow(sim, 2), "Help (? or Esc to close)")
	assert.Contains(t, screenRow(sim, 4), "Keys:")
}

func TestHelpScreenScrollClamps(t *testing.T) {
	h := NewHelpScreen([]KeyHelp{{"q", "Quit"}}, nil)
	h.Scroll(-5)
	assert.Equal(t, 0, h.offset)
	h.Scroll(100)
	assert.Equal(t, len(h.Lines())-1, h.offset)

	h.Toggle()
	assert.Equal(t, 0, h.offset)
}

func TestMessageLog(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ml := NewMessageLog(2, 3*time.Second)
	ml.now = func() time.Time { return now }

	_, ok := ml.Current()
	assert.False(t, ok)

	ml.Info("one")
	ml.Info("")
	ml.Error("two")
	ml.Info("three")

	msg, ok := ml.Current()
	assert.True(t, ok)
	assert.Equal(t, "three", msg.Text)
	assert.False(t, msg.Error)

	all := ml.All()
	assert.Len(t, all, 2)
	assert.Equal(t, "two", all[0].Text)
	assert.True(t, all[0].Error)

	now = now.Add(4 * time.Second)
	_, ok = ml.Current()
	assert.False(t, ok, "message expired")

	ml.Clear()
	assert.Empty(t, ml.All())
}
