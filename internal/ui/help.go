package ui

import "fmt"

// KeyHelp describes one binding shown in the help overlay
type KeyHelp struct {
	Keys        string
	Description string
}

// HelpScreen is an overlay listing key bindings and commands
type HelpScreen struct {
	visible  bool
	bindings []KeyHelp
	commands []KeyHelp
	offset   int
}

// NewHelpScreen creates a hidden help overlay
func NewHelpScreen(bindings, commands []KeyHelp) *HelpScreen {
	return &HelpScreen{
		bindings: bindings,
		commands: commands,
	}
}

// Toggle shows or hides the overlay
func (h *HelpScreen) Toggle() {
	h.visible = !h.visible
	h.offset = 0
}

// IsVisible returns whether the overlay is shown
func (h *HelpScreen) IsVisible() bool {
	return h.visible
}

// Scroll moves the overlay content by delta lines
func (h *HelpScreen) Scroll(delta int) {
	h.offset = max(0, min(h.offset+delta, len(h.Lines())-1))
}

// Lines returns the overlay content
func (h *HelpScreen) Lines() []string {
	keyWidth := 0
	for _, kb := range append(h.bindings, h.commands...) {
		keyWidth = max(keyWidth, StringWidth(kb.Keys))
	}

	lines := []string{"Keys:", ""}
	for _, kb := range h.bindings {
		lines = append(lines, fmt.Sprintf("  %s  %s", PadToWidth(kb.Keys, keyWidth), kb.Description))
	}
	if len(h.commands) > 0 {
		lines = append(lines, "", "Commands:", "")
		for _, kb := range h.commands {
			lines = append(lines, fmt.Sprintf("  %s  %s", PadToWidth(kb.Keys, keyWidth), kb.Description))
		}
	}
	return lines
}

// Render draws the overlay in a box inset from the screen edges
func (h *HelpScreen) Render(screen *Screen) {
	if !h.visible {
		return
	}

	width, height := screen.Size()
	contentStyle := screen.HelpStyle()
	borderStyle := screen.HelpBorderStyle()
	titleStyle := screen.HelpTitleStyle()

	startX, startY := 2, 1
	boxWidth := width - 2*startX
	boxHeight := height - 2*startY
	if boxWidth < 10 || boxHeight < 5 {
		return
	}
	right := startX + boxWidth - 1
	bottom := startY + boxHeight - 1

	screen.Fill(startX, startY, boxWidth, boxHeight, ' ', contentStyle)

	for x := startX + 1; x < right; x++ {
		screen.SetCell(x, startY, '─', borderStyle)
		screen.SetCell(x, startY+2, '─', borderStyle)
		screen.SetCell(x, bottom, '─', borderStyle)
	}
	for y := startY; y <= bottom; y++ {
		screen.SetCell(startX, y, '│', borderStyle)
		screen.SetCell(right, y, '│', borderStyle)
	}
	screen.SetCell(startX, startY, '┌', borderStyle)
	screen.SetCell(right, startY, '┐', borderStyle)
	screen.SetCell(startX, startY+2, '├', borderStyle)
	screen.SetCell(right, startY+2, '┤', borderStyle)
	screen.SetCell(startX, bottom, '└', borderStyle)
	screen.SetCell(right, bottom, '┘', borderStyle)

	screen.DrawStringLimited(startX+2, startY+1, "Help (? or Esc to close)", boxWidth-4, titleStyle)

	lines := h.Lines()
	y := startY + 3
	for i := h.offset; i < len(lines) && y < bottom; i++ {
		screen.DrawStringLimited(startX+2, y, lines[i], boxWidth-4, contentStyle)
		y++
	}
}
