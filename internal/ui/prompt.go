package ui

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-vlist/internal/history"
)

// Prompt is a single line input used for `:command` and `/search`
type Prompt struct {
	label   string
	active  bool
	input   []rune
	cursor  int
	history *history.History

	// onChange is called after every edit, used for incremental search
	onChange func(string)
}

// NewPrompt creates a prompt drawn with label in front of the input.
// h may be nil for a prompt without history.
func NewPrompt(label string, h *history.History) *Prompt {
	if h == nil {
		h = history.New(50)
	}
	return &Prompt{
		label:   label,
		history: h,
	}
}

// SetOnChange sets the callback run after each edit
func (p *Prompt) SetOnChange(fn func(string)) {
	p.onChange = fn
}

// Start activates the prompt with initial text and the cursor at its end
func (p *Prompt) Start(initial string) {
	p.active = true
	p.input = []rune(initial)
	p.cursor = len(p.input)
	p.history.Reset()
}

// Stop deactivates the prompt
func (p *Prompt) Stop() {
	p.active = false
}

// IsActive returns whether the prompt takes input
func (p *Prompt) IsActive() bool {
	return p.active
}

// Input returns the text typed so far
func (p *Prompt) Input() string {
	return string(p.input)
}

// History returns the prompt's history
func (p *Prompt) History() *history.History {
	return p.history
}

// Cursor returns the cursor position in runes
func (p *Prompt) Cursor() int {
	return p.cursor
}

func (p *Prompt) set(s string) {
	p.input = []rune(s)
	p.cursor = len(p.input)
}

func (p *Prompt) changed() {
	if p.onChange != nil {
		p.onChange(string(p.input))
	}
}

// deleteWordBackwards deletes the word before the cursor
func (p *Prompt) deleteWordBackwards() {
	pos := p.cursor
	for pos > 0 && unicode.IsSpace(p.input[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(p.input[pos-1]) {
		pos--
	}
	p.input = append(p.input[:pos], p.input[p.cursor:]...)
	p.cursor = pos
}

// HandleKey edits the input. done is true when the prompt closed: accepted
// is true for Enter and false for Escape or backspace on empty input. The
// returned text is trimmed.
func (p *Prompt) HandleKey(ev *tcell.EventKey) (text string, done, accepted bool) {
	edited := false

	switch ev.Key() {
	case tcell.KeyEscape:
		p.Stop()
		return "", true, false
	case tcell.KeyEnter:
		text = strings.TrimSpace(string(p.input))
		// A failed history save only loses the entry
		_ = p.history.Add(text)
		p.Stop()
		return text, true, true
	case tcell.KeyUp:
		if prev, ok := p.history.Previous(string(p.input)); ok {
			p.set(prev)
			edited = true
		}
	case tcell.KeyDown:
		if next, ok := p.history.Next(); ok {
			p.set(next)
			edited = true
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(p.input) == 0 {
			p.Stop()
			return "", true, false
		}
		if p.cursor > 0 {
			p.input = append(p.input[:p.cursor-1], p.input[p.cursor:]...)
			p.cursor--
			edited = true
		}
	case tcell.KeyDelete:
		if p.cursor < len(p.input) {
			p.input = append(p.input[:p.cursor], p.input[p.cursor+1:]...)
			edited = true
		}
	case tcell.KeyLeft:
		p.cursor = max(0, p.cursor-1)
	case tcell.KeyRight:
		p.cursor = min(len(p.input), p.cursor+1)
	case tcell.KeyHome, tcell.KeyCtrlA:
		p.cursor = 0
	case tcell.KeyEnd, tcell.KeyCtrlE:
		p.cursor = len(p.input)
	case tcell.KeyCtrlW:
		p.deleteWordBackwards()
		edited = true
	case tcell.KeyCtrlU:
		p.input = append([]rune(nil), p.input[p.cursor:]...)
		p.cursor = 0
		edited = true
	case tcell.KeyCtrlK:
		p.input = p.input[:p.cursor]
		edited = true
	case tcell.KeyRune:
		r := ev.Rune()
		p.input = append(p.input[:p.cursor], append([]rune{r}, p.input[p.cursor:]...)...)
		p.cursor++
		edited = true
	}

	if edited {
		p.changed()
	}
	return "", false, false
}

// Render draws the prompt on row y across the screen width
func (p *Prompt) Render(screen *Screen, y int) {
	if !p.active {
		return
	}

	labelStyle := screen.PromptLabelStyle()
	textStyle := screen.PromptTextStyle()
	cursorStyle := screen.PromptCursorStyle()
	width := screen.GetWidth()

	screen.Fill(0, y, width, 1, ' ', textStyle)
	x := screen.DrawString(0, y, p.label, labelStyle)

	// Scroll the input horizontally so the cursor stays on screen
	avail := width - x - 1
	start := 0
	for start < p.cursor && StringWidth(string(p.input[start:p.cursor])) > avail {
		start++
	}

	for i := start; i < len(p.input) && x < width; i++ {
		style := textStyle
		if i == p.cursor {
			style = cursorStyle
		}
		screen.SetCell(x, y, p.input[i], style)
		x += max(1, RuneWidth(p.input[i]))
	}
	if p.cursor >= len(p.input) && x < width {
		screen.SetCell(x, y, ' ', cursorStyle)
	}
}
