package theme

import (
	"github.com/gdamore/tcell/v2"
)

// Colors holds all the color definitions for the theme
type Colors struct {
	Background tcell.Color

	// List colors
	ListText       tcell.Color
	ListIndex      tcell.Color
	ListSelected   tcell.Color
	ListSelectedBg tcell.Color
	ListMatch      tcell.Color
	ListEmpty      tcell.Color

	// Scrollbar colors
	ScrollbarTrack tcell.Color
	ScrollbarThumb tcell.Color

	// Prompt colors (search and command line)
	PromptLabel    tcell.Color
	PromptText     tcell.Color
	PromptCursor   tcell.Color
	PromptCursorBg tcell.Color

	// Help overlay colors
	HelpBackground tcell.Color
	HelpBorder     tcell.Color
	HelpTitle      tcell.Color
	HelpContent    tcell.Color

	// Status line colors
	StatusMode    tcell.Color
	StatusModeBg  tcell.Color
	StatusMessage tcell.Color
	StatusRange   tcell.Color

	// Header colors
	HeaderTitle tcell.Color
	HeaderBg    tcell.Color
}

// Theme represents a complete color theme
type Theme struct {
	Name   string
	Colors Colors
}

// Default returns a default theme using terminal defaults
func Default() *Theme {
	return &Theme{
		Name: "default",
		Colors: Colors{
			Background:     tcell.ColorDefault,
			ListText:       tcell.ColorDefault,
			ListIndex:      tcell.ColorDefault,
			ListSelected:   tcell.ColorDefault,
			ListSelectedBg: tcell.ColorDefault,
			ListMatch:      tcell.ColorDefault,
			ListEmpty:      tcell.ColorDefault,
			ScrollbarTrack: tcell.ColorDefault,
			ScrollbarThumb: tcell.ColorDefault,
			PromptLabel:    tcell.ColorDefault,
			PromptText:     tcell.ColorDefault,
			PromptCursor:   tcell.ColorDefault,
			PromptCursorBg: tcell.ColorDefault,
			HelpBackground: tcell.ColorDefault,
			HelpBorder:     tcell.ColorDefault,
			HelpTitle:      tcell.ColorDefault,
			HelpContent:    tcell.ColorDefault,
			StatusMode:     tcell.ColorDefault,
			StatusModeBg:   tcell.ColorDefault,
			StatusMessage:  tcell.ColorDefault,
			StatusRange:    tcell.ColorDefault,
			HeaderTitle:    tcell.ColorDefault,
			HeaderBg:       tcell.ColorDefault,
		},
	}
}

// TokyoNight returns the Tokyo Night theme
func TokyoNight() *Theme {
	return &Theme{
		Name: "tokyo-night",
		Colors: Colors{
			Background:     HexToColor("#1a1b26"), // Night
			ListText:       HexToColor("#c0caf5"), // Foreground
			ListIndex:      HexToColor("#565f89"), // Comment
			ListSelected:   HexToColor("#c0caf5"),
			ListSelectedBg: HexToColor("#283457"), // Selection
			ListMatch:      HexToColor("#ff9e64"), // Orange
			ListEmpty:      HexToColor("#565f89"),
			ScrollbarTrack: HexToColor("#292e42"),
			ScrollbarThumb: HexToColor("#7aa2f7"), // Blue
			PromptLabel:    HexToColor("#bb9af7"), // Magenta
			PromptText:     HexToColor("#c0caf5"),
			PromptCursor:   HexToColor("#1a1b26"),
			PromptCursorBg: HexToColor("#7aa2f7"),
			HelpBackground: HexToColor("#16161e"),
			HelpBorder:     HexToColor("#7dcfff"), // Cyan
			HelpTitle:      HexToColor("#bb9af7"),
			HelpContent:    HexToColor("#a9b1d6"),
			StatusMode:     HexToColor("#1a1b26"),
			StatusModeBg:   HexToColor("#7aa2f7"),
			StatusMessage:  HexToColor("#9ece6a"), // Green
			StatusRange:    HexToColor("#565f89"),
			HeaderTitle:    HexToColor("#bb9af7"),
			HeaderBg:       HexToColor("#16161e"),
		},
	}
}

// colorFields maps theme file keys to the color they set
func (c *Colors) colorFields() map[string]*tcell.Color {
	return map[string]*tcell.Color{
		"background":       &c.Background,
		"list_text":        &c.ListText,
		"list_index":       &c.ListIndex,
		"list_selected":    &c.ListSelected,
		"list_selected_bg": &c.ListSelectedBg,
		"list_match":       &c.ListMatch,
		"list_empty":       &c.ListEmpty,
		"scrollbar_track":  &c.ScrollbarTrack,
		"scrollbar_thumb":  &c.ScrollbarThumb,
		"prompt_label":     &c.PromptLabel,
		"prompt_text":      &c.PromptText,
		"prompt_cursor":    &c.PromptCursor,
		"prompt_cursor_bg": &c.PromptCursorBg,
		"help_background":  &c.HelpBackground,
		"help_border":      &c.HelpBorder,
		"help_title":       &c.HelpTitle,
		"help_content":     &c.HelpContent,
		"status_mode":      &c.StatusMode,
		"status_mode_bg":   &c.StatusModeBg,
		"status_message":   &c.StatusMessage,
		"status_range":     &c.StatusRange,
		"header_title":     &c.HeaderTitle,
		"header_bg":        &c.HeaderBg,
	}
}
