package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pstuifzand/tui-vlist/internal/export"
	"github.com/pstuifzand/tui-vlist/internal/ui"
	"go.uber.org/zap"
)

var commandHelp = []ui.KeyHelp{
	{Keys: ":q", Description: "Quit"},
	{Keys: ":goto N", Description: "Select item N"},
	{Keys: ":filter Q", Description: "Filter items, no query clears"},
	{Keys: ":set", Description: "Show settings"},
	{Keys: ":set K V", Description: "overscan, itemheight, listheight, fuzzy, rank, index"},
	{Keys: ":w", Description: "Save settings to the config file"},
	{Keys: ":export F [fields]", Description: "Write the shown items to F, format by extension"},
	{Keys: ":e", Description: "Reload the file"},
	{Keys: ":dump", Description: "Log engine state"},
	{Keys: ":debug", Description: "Toggle debug logging of events"},
	{Keys: ":help", Description: "Show this help"},
}

// parseCommand splits a command line into words. Single and double quotes
// group words, backslash escapes the next character.
func parseCommand(input string) []string {
	var (
		args    []string
		current strings.Builder
		quote   rune
		escaped bool
		inWord  bool
	)

	for _, r := range input {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}
	if inWord {
		args = append(args, current.String())
	}
	return args
}

// handleCommand processes a command from command mode
func (a *App) handleCommand(cmd string) {
	parts := parseCommand(cmd)
	if len(parts) == 0 {
		return
	}
	a.log.Debug("command", zap.Strings("args", parts))

	switch parts[0] {
	case "q", "quit", "q!":
		a.Quit()
	case "goto":
		if len(parts) != 2 {
			a.SetError("Usage: goto N")
			return
		}
		n, err := strconv.Atoi(parts[1])
		if err != nil || n < 1 {
			a.SetError("Invalid item number: " + parts[1])
			return
		}
		a.list.SelectIndex(n - 1)
	case "filter":
		a.applyFilter(strings.Join(parts[1:], " "))
	case "set":
		a.handleSet(parts[1:])
	case "w", "write":
		a.saveSettings()
	case "e", "reload":
		a.reload()
	case "export":
		a.exportView(parts[1:])
	case "dump":
		a.log.Info("engine state", zap.String("dump", a.list.Engine().DebugDump()))
		a.SetStatus("Engine state written to log")
	case "help":
		a.help.Toggle()
	case "debug":
		a.debugMode = !a.debugMode
		if a.debugMode {
			a.SetStatus("Debug mode ON")
		} else {
			a.SetStatus("Debug mode OFF")
		}
	default:
		a.SetError("Unknown command: " + parts[0])
	}
}

func (a *App) handleSet(args []string) {
	if len(args) == 0 {
		a.showSettings()
		return
	}
	if len(args) != 2 {
		a.SetError("Usage: set KEY VALUE")
		return
	}

	key, value := args[0], args[1]
	switch key {
	case "overscan":
		n, err := strconv.Atoi(value)
		if err != nil {
			a.SetError("overscan must be a number")
			return
		}
		a.setOverscan(n)
	case "itemheight":
		n, err := strconv.Atoi(value)
		if err != nil {
			a.SetError("itemheight must be a number")
			return
		}
		if err := a.list.SetItemHeight(n); err != nil {
			a.SetError(err.Error())
			return
		}
		a.SetStatus(fmt.Sprintf("itemheight=%d", n))
	case "listheight":
		n, err := strconv.Atoi(value)
		if err != nil {
			a.SetError("listheight must be a number")
			return
		}
		if err := a.list.SetListHeight(n); err != nil {
			a.SetError(err.Error())
			return
		}
		a.SetStatus(fmt.Sprintf("listheight=%d", n))
	case "fuzzy", "rank", "index":
		b, err := strconv.ParseBool(value)
		if err != nil {
			a.SetError(key + " must be true or false")
			return
		}
		a.cfg.Set(key, strconv.FormatBool(b))
		if key == "index" {
			a.list.SetShowIndex(b)
		} else {
			a.applyFilter(a.query)
		}
		a.SetStatus(fmt.Sprintf("%s=%t", key, b))
	default:
		a.SetError("Unknown setting: " + key)
	}
}

func (a *App) setOverscan(n int) {
	if err := a.list.Engine().SetOverscan(n); err != nil {
		a.SetError(err.Error())
		return
	}
	a.SetStatus(fmt.Sprintf("overscan=%d", n))
}

func (a *App) showSettings() {
	opts := a.list.Engine().Options()
	settings := a.cfg.GetAll()
	settings["overscan"] = strconv.Itoa(opts.Overscan)
	settings["itemheight"] = strconv.Itoa(a.list.ItemHeight())
	settings["listheight"] = strconv.FormatFloat(opts.ListHeight, 'f', -1, 64)

	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + settings[k]
	}
	a.SetStatus(strings.Join(parts, " "))
}

// saveSettings writes the current layout and session settings to the config file
func (a *App) saveSettings() {
	opts := a.list.Engine().Options()
	a.cfg.ItemHeight = a.list.ItemHeight()
	a.cfg.Overscan = opts.Overscan
	a.cfg.ListHeight = int(opts.ListHeight)
	for k, v := range a.cfg.GetAll() {
		a.cfg.Settings[k] = v
	}

	if err := a.cfg.Save(); err != nil {
		a.SetError("Failed to save settings: " + err.Error())
		return
	}
	a.SetStatus("Settings saved")
}

// exportView writes the items of the current view, filtered or not
func (a *App) exportView(args []string) {
	if len(args) == 0 || len(args) > 2 {
		a.SetError("Usage: export FILE [fields]")
		return
	}

	var fields []string
	if len(args) == 2 {
		fields = export.ParseFields(args[1])
	}
	if err := export.ToFile(args[0], a.view, fields); err != nil {
		a.SetError(fmt.Sprintf("Export failed: %v", err))
		return
	}
	a.log.Info("exported items", zap.String("path", args[0]), zap.Int("count", a.view.Len()))
	a.SetStatus(fmt.Sprintf("Exported %d items to %s", a.view.Len(), args[0]))
}
