package ui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-vlist/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func typeString(p *Prompt, s string) {
	for _, r := range s {
		p.HandleKey(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

func key(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func TestPromptEditing(t *testing.T) {
	p := NewPrompt(":", nil)
	p.Start("")
	typeString(p, "set overscan 5")
	assert.Equal(t, "set overscan 5", p.Input())

	p.HandleKey(key(tcell.KeyCtrlW))
	assert.Equal(t, "set overscan ", p.Input())

	p.HandleKey(key(tcell.KeyHome))
	p.HandleKey(key(tcell.KeyDelete))
	assert.Equal(t, "et overscan ", p.Input())

	p.HandleKey(key(tcell.KeyEnd))
	p.HandleKey(key(tcell.KeyLeft))
	p.HandleKey(key(tcell.KeyCtrlK))
	assert.Equal(t, "et overscan", p.Input())

	p.HandleKey(key(tcell.KeyLeft))
	p.HandleKey(key(tcell.KeyCtrlU))
	assert.Equal(t, "n", p.Input())
	assert.Equal(t, 0, p.Cursor())
}

func TestPromptMultiByteInput(t *testing.T) {
	p := NewPrompt("/", nil)
	p.Start("")
	typeString(p, "café")
	p.HandleKey(key(tcell.KeyBackspace2))
	assert.Equal(t, "caf", p.Input())

	p.HandleKey(key(tcell.KeyLeft))
	typeString(p, "ä")
	assert.Equal(t, "caäf", p.Input())
}

func TestPromptAcceptAndCancel(t *testing.T) {
	p := NewPrompt(":", nil)

	p.Start("")
	typeString(p, "  goto 10 ")
	text, done, accepted := p.HandleKey(key(tcell.KeyEnter))
	assert.Equal(t, "goto 10", text)
	assert.True(t, done)
	assert.True(t, accepted)
	assert.False(t, p.IsActive())

	p.Start("abc")
	_, done, accepted = p.HandleKey(key(tcell.KeyEscape))
	assert.True(t, done)
	assert.False(t, accepted)

	p.Start("")
	_, done, accepted = p.HandleKey(key(tcell.KeyBackspace))
	assert.True(t, done, "backspace on empty input closes the prompt")
	assert.False(t, accepted)
}

func TestPromptHistory(t *testing.T) {
	dir := t.TempDir()
	manager, err := history.NewManagerAt(dir)
	require.NoError(t, err)
	h, err := history.NewPersistent(10, manager, "command.toml")
	require.NoError(t, err)

	p := NewPrompt(":", h)
	for _, cmd := range []string{"goto 1", "set overscan 2"} {
		p.Start("")
		typeString(p, cmd)
		p.HandleKey(key(tcell.KeyEnter))
	}

	p.Start("")
	typeString(p, "draft")
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "set overscan 2", p.Input())
	p.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, "goto 1", p.Input())
	p.HandleKey(key(tcell.KeyDown))
	p.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, "draft", p.Input())

	reloaded, err := history.NewPersistent(10, manager, "command.toml")
	require.NoError(t, err)
	assert.Equal(t, []string{"goto 1", "set overscan 2"}, reloaded.GetAll())
}

func TestPromptOnChange(t *testing.T) {
	p := NewPrompt("/", nil)
	var seen []string
	p.SetOnChange(func(s string) { seen = append(seen, s) })

	p.Start("")
	typeString(p, "ab")
	p.HandleKey(key(tcell.KeyLeft))
	p.HandleKey(key(tcell.KeyBackspace2))

	assert.Equal(t, []string{"a", "ab", "b"}, seen)
}

func TestPromptRender(t *testing.T) {
	screen, sim := newTestScreen(t, 20, 2)
	p := NewPrompt("/", nil)
	p.Start("query")

	p.Render(screen, 0)
	screen.Show()
	assert.Equal(t, "/query", screenRow(sim, 0))

	p.Stop()
	screen.Clear()
	p.Render(screen, 0)
	screen.Show()
	assert.Equal(t, "", screenRow(sim, 0))
}
