package app

import (
	"fmt"

	"github.com/pstuifzand/tui-vlist/internal/ui"
)

// KeyBinding represents a key binding with its description and handler
type KeyBinding struct {
	Key         rune
	Description string
	Handler     func(*App)
}

// listKeys documents the navigation keys handled by the list itself
var listKeys = []ui.KeyHelp{
	{Keys: "j/k Up/Down", Description: "Move selection"},
	{Keys: "PgUp/PgDn", Description: "Page up/down"},
	{Keys: "Ctrl-U/Ctrl-D", Description: "Half page up/down"},
	{Keys: "Ctrl-E/Ctrl-Y", Description: "Scroll one row"},
	{Keys: "g/G Home/End", Description: "First/last item"},
	{Keys: "Esc", Description: "Clear filter"},
}

// InitializeKeybindings sets up the normal mode key bindings
func (a *App) InitializeKeybindings() []KeyBinding {
	return []KeyBinding{
		{
			Key:         '/',
			Description: "Filter items",
			Handler: func(app *App) {
				app.startSearch()
			},
		},
		{
			Key:         ':',
			Description: "Enter command",
			Handler: func(app *App) {
				app.command.Start("")
			},
		},
		{
			Key:         '?',
			Description: "Toggle help",
			Handler: func(app *App) {
				app.help.Toggle()
			},
		},
		{
			Key:         'q',
			Description: "Quit",
			Handler: func(app *App) {
				app.Quit()
			},
		},
		{
			Key:         '+',
			Description: "Increase overscan",
			Handler: func(app *App) {
				app.setOverscan(app.list.Engine().Options().Overscan + 1)
			},
		},
		{
			Key:         '-',
			Description: "Decrease overscan",
			Handler: func(app *App) {
				app.setOverscan(app.list.Engine().Options().Overscan - 1)
			},
		},
		{
			Key:         '#',
			Description: "Toggle row numbers",
			Handler: func(app *App) {
				app.list.SetShowIndex(!app.list.ShowIndex())
			},
		},
		{
			Key:         'z',
			Description: "Center selection",
			Handler: func(app *App) {
				_, _, _, height := app.list.Bounds()
				top := app.list.Selected() * app.list.ItemHeight()
				app.list.ScrollTo(top - (height-app.list.ItemHeight())/2)
			},
		},
		{
			Key:         'i',
			Description: "Show range info",
			Handler: func(app *App) {
				m := app.list.Engine().Metrics()
				app.SetStatus(fmt.Sprintf("range %s  top %.0f  total %.0f",
					app.list.Engine().Range(), m.TopOffset, m.TotalHeight))
			},
		},
	}
}

// GetKeybindingByKey returns the binding for key, or nil
func (a *App) GetKeybindingByKey(key rune) *KeyBinding {
	for i := range a.keys {
		if a.keys[i].Key == key {
			return &a.keys[i]
		}
	}
	return nil
}

// keyHelp lists all key bindings for the help overlay
func (a *App) keyHelp() []ui.KeyHelp {
	help := append([]ui.KeyHelp(nil), listKeys...)
	for _, kb := range a.keys {
		help = append(help, ui.KeyHelp{Keys: string(kb.Key), Description: kb.Description})
	}
	return help
}
