package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-vlist/internal/theme"
)

// Screen manages the tcell screen and rendering
type Screen struct {
	tcellScreen tcell.Screen
	width       int
	height      int
	Theme       *theme.Theme
}

// NewScreen creates and initializes a terminal screen with the given theme
func NewScreen(t *theme.Theme) (*Screen, error) {
	tcellScreen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	return NewScreenFrom(tcellScreen, t)
}

// NewScreenFrom initializes an existing tcell screen, e.g. a simulation screen in tests
func NewScreenFrom(tcellScreen tcell.Screen, t *theme.Theme) (*Screen, error) {
	if err := tcellScreen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}
	if t == nil {
		t = theme.Default()
	}

	width, height := tcellScreen.Size()
	return &Screen{
		tcellScreen: tcellScreen,
		width:       width,
		height:      height,
		Theme:       t,
	}, nil
}

// Close closes the screen
func (s *Screen) Close() error {
	s.tcellScreen.Fini()
	return nil
}

// Clear clears the entire screen
func (s *Screen) Clear() {
	s.tcellScreen.Clear()
}

// Sync refreshes the cached size; call it after a resize event
func (s *Screen) Sync() {
	s.width, s.height = s.tcellScreen.Size()
}

// SetCell sets a cell at the given position
func (s *Screen) SetCell(x, y int, r rune, style tcell.Style) {
	if x >= 0 && x < s.width && y >= 0 && y < s.height {
		s.tcellScreen.SetContent(x, y, r, nil, style)
	}
}

// DrawString draws text at the given position, advancing by display width.
// Returns the column after the last drawn rune.
func (s *Screen) DrawString(x, y int, text string, style tcell.Style) int {
	for _, r := range text {
		w := RuneWidth(r)
		if w == 0 {
			continue
		}
		s.SetCell(x, y, r, style)
		x += w
	}
	return x
}

// DrawStringLimited draws text truncated to maxWidth columns
func (s *Screen) DrawStringLimited(x, y int, text string, maxWidth int, style tcell.Style) int {
	if maxWidth <= 0 {
		return x
	}
	return s.DrawString(x, y, TruncateToWidth(text, maxWidth), style)
}

// Fill paints a rectangle with r
func (s *Screen) Fill(x, y, width, height int, r rune, style tcell.Style) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			s.SetCell(col, row, r, style)
		}
	}
}

// PollEvent polls for the next event (key press, mouse, resize)
func (s *Screen) PollEvent() tcell.Event {
	return s.tcellScreen.PollEvent()
}

// Show shows the screen
func (s *Screen) Show() {
	s.tcellScreen.Show()
}

// Size returns the width and height of the screen
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// GetWidth returns the width of the screen
func (s *Screen) GetWidth() int {
	return s.width
}

// EnableMouse enables mouse support on the screen
func (s *Screen) EnableMouse() {
	s.tcellScreen.EnableMouse()
}

// BackgroundStyle returns the default background style for the application
func (s *Screen) BackgroundStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListText, s.Theme.Colors.Background)
}

// ListTextStyle returns the style for unselected rows
func (s *Screen) ListTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListText, s.Theme.Colors.Background)
}

// ListIndexStyle returns the style for the row number gutter
func (s *Screen) ListIndexStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListIndex, s.Theme.Colors.Background)
}

// ListSelectedStyle returns the style for the selected row
func (s *Screen) ListSelectedStyle() tcell.Style {
	style := theme.ColorPairToStyle(s.Theme.Colors.ListSelected, s.Theme.Colors.ListSelectedBg).Bold(true)
	if s.Theme.Colors.ListSelectedBg == tcell.ColorDefault {
		style = style.Reverse(true)
	}
	return style
}

// ListEmptyStyle returns the style for the empty list placeholder
func (s *Screen) ListEmptyStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ListEmpty, s.Theme.Colors.Background).Dim(true)
}

// ScrollbarTrackStyle returns the style for the scrollbar track
func (s *Screen) ScrollbarTrackStyle() tcell.Style {
	track := theme.Dim(s.Theme.Colors.ScrollbarTrack, s.Theme.Colors.Background, 0.3)
	return theme.ColorPairToStyle(track, s.Theme.Colors.Background)
}

// ScrollbarThumbStyle returns the style for the scrollbar thumb
func (s *Screen) ScrollbarThumbStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.ScrollbarThumb, s.Theme.Colors.Background)
}

// PromptLabelStyle returns the style for the prompt label
func (s *Screen) PromptLabelStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PromptLabel, s.Theme.Colors.Background).Bold(true)
}

// PromptTextStyle returns the style for prompt input
func (s *Screen) PromptTextStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.PromptText, s.Theme.Colors.Background)
}

// PromptCursorStyle returns the style for the prompt cursor
func (s *Screen) PromptCursorStyle() tcell.Style {
	style := theme.ColorPairToStyle(s.Theme.Colors.PromptCursor, s.Theme.Colors.PromptCursorBg)
	if s.Theme.Colors.PromptCursorBg == tcell.ColorDefault {
		style = style.Reverse(true)
	}
	return style
}

// HelpStyle returns the style for help background
func (s *Screen) HelpStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpContent, s.Theme.Colors.HelpBackground)
}

// HelpBorderStyle returns the style for help borders
func (s *Screen) HelpBorderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpBorder, s.Theme.Colors.HelpBackground)
}

// HelpTitleStyle returns the style for help title
func (s *Screen) HelpTitleStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HelpTitle, s.Theme.Colors.HelpBackground).Bold(true)
}

// StatusModeStyle returns the style for mode indicator
func (s *Screen) StatusModeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMode, s.Theme.Colors.StatusModeBg).Bold(true)
}

// StatusMessageStyle returns the style for status messages
func (s *Screen) StatusMessageStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusMessage, s.Theme.Colors.Background)
}

// StatusRangeStyle returns the style for the range indicator
func (s *Screen) StatusRangeStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.StatusRange, s.Theme.Colors.Background)
}

// HeaderStyle returns the style for header title
func (s *Screen) HeaderStyle() tcell.Style {
	return theme.ColorPairToStyle(s.Theme.Colors.HeaderTitle, s.Theme.Colors.HeaderBg).Bold(true)
}
