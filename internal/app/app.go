package app

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pstuifzand/tui-vlist/internal/config"
	"github.com/pstuifzand/tui-vlist/internal/history"
	"github.com/pstuifzand/tui-vlist/internal/model"
	"github.com/pstuifzand/tui-vlist/internal/search"
	"github.com/pstuifzand/tui-vlist/internal/socket"
	"github.com/pstuifzand/tui-vlist/internal/storage"
	"github.com/pstuifzand/tui-vlist/internal/theme"
	"github.com/pstuifzand/tui-vlist/internal/ui"
	"github.com/pstuifzand/tui-vlist/internal/virtual"
	"github.com/pstuifzand/tui-vlist/internal/watch"
	"go.uber.org/zap"
)

// frameInterval is the render tick, one animation frame
const frameInterval = 16 * time.Millisecond

// Options configures NewApp
type Options struct {
	// Path of the item file, "-" for stdin, empty for an empty list
	Path string
	// Collection is used instead of loading Path when set
	Collection *model.Collection
	Config     *config.Config
	Logger     *zap.Logger
	Debug      bool
	// Screen replaces the terminal, e.g. a tcell.SimulationScreen
	Screen tcell.Screen
	// HistoryDir overrides the prompt history location
	HistoryDir string
	// Remote delivers commands from `vlist send`, may be nil
	Remote *socket.Server
	// Version is shown on the splash screen
	Version string
	// Watch reports changes to Path, may be nil
	Watch *watch.Watcher
}

// App is the main application controller
type App struct {
	screen     *ui.Screen
	cfg        *config.Config
	log        *zap.Logger
	collection *model.Collection
	view       *model.View
	list       *ui.ListView
	frames     *virtual.FrameBatcher
	search     *ui.Prompt
	command    *ui.Prompt
	help       *ui.HelpScreen
	splash     *ui.SplashScreen
	messages   *ui.MessageLog
	keys       []KeyBinding
	remote     *socket.Server
	watch      *watch.Watcher
	path       string

	query      string
	savedQuery string // restored when the search prompt is cancelled
	quit       bool
	debugMode  bool
	coalesced  int
}

// NewApp creates a new App instance
func NewApp(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		var err error
		if cfg, err = config.Load(); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	collection := opts.Collection
	if collection == nil {
		var err error
		if collection, err = loadCollection(opts.Path); err != nil {
			return nil, err
		}
	}

	engineOpts, err := cfg.EngineOptions()
	if err != nil {
		return nil, fmt.Errorf("invalid list options: %w", err)
	}
	frames := virtual.NewFrameBatcher()
	engineOpts.Scheduler = frames
	engineOpts.Logger = log.Named("engine")

	th := theme.LoadThemeOrDefault(cfg.Theme)
	var screen *ui.Screen
	if opts.Screen != nil {
		screen, err = ui.NewScreenFrom(opts.Screen, th)
	} else {
		screen, err = ui.NewScreen(th)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}

	view := model.NewView(collection, nil)
	list, err := ui.NewListView(view, engineOpts)
	if err != nil {
		screen.Close()
		return nil, fmt.Errorf("failed to create list: %w", err)
	}
	list.SetShowIndex(cfg.GetBool("index", false))

	a := &App{
		screen:     screen,
		cfg:        cfg,
		log:        log,
		collection: collection,
		view:       view,
		list:       list,
		frames:     frames,
		messages:   ui.NewMessageLog(50, 5*time.Second),
		debugMode:  opts.Debug,
		remote:     opts.Remote,
		watch:      opts.Watch,
		path:       opts.Path,
	}

	manager := a.historyManager(opts.HistoryDir)
	a.search = ui.NewPrompt("/", a.loadHistory(manager, "search.toml"))
	a.search.SetOnChange(a.applyFilter)
	a.command = ui.NewPrompt(":", a.loadHistory(manager, "command.toml"))

	a.keys = a.InitializeKeybindings()
	a.help = ui.NewHelpScreen(a.keyHelp(), commandHelp)
	a.splash = ui.NewSplashScreen(opts.Version)
	if opts.Path == "" && opts.Collection == nil {
		a.splash.Show()
	}
	list.SetOnRangeChange(a.rangeChanged)

	screen.EnableMouse()
	a.layout()

	log.Info("started",
		zap.String("path", opts.Path),
		zap.Int("items", collection.Len()),
		zap.Float64("itemHeight", engineOpts.ItemHeight),
		zap.Int("overscan", engineOpts.Overscan))
	a.SetStatus(fmt.Sprintf("%d items", collection.Len()))
	return a, nil
}

func loadCollection(path string) (*model.Collection, error) {
	if path == "" {
		return model.NewCollection("Untitled", nil), nil
	}
	collection, err := storage.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}
	if collection.Title == "" {
		collection.Title = filepath.Base(path)
	}
	return collection, nil
}

func (a *App) historyManager(dir string) *history.Manager {
	var (
		manager *history.Manager
		err     error
	)
	if dir != "" {
		manager, err = history.NewManagerAt(dir)
	} else {
		manager, err = history.NewManager()
	}
	if err != nil {
		a.log.Warn("prompt history disabled", zap.Error(err))
		return nil
	}
	return manager
}

func (a *App) loadHistory(manager *history.Manager, filename string) *history.History {
	if manager == nil {
		return history.New(50)
	}
	h, err := history.NewPersistent(50, manager, filename)
	if err != nil {
		// Continue with what could be read, usually nothing
		a.log.Warn("failed to load history", zap.String("file", filename), zap.Error(err))
	}
	return h
}

// Run starts the main event loop
func (a *App) Run() error {
	events := make(chan tcell.Event)
	done := make(chan struct{})
	polled := make(chan struct{})

	go func() {
		defer close(polled)
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	defer func() {
		close(done)
		a.Close()
		<-polled
	}()

	var remote <-chan socket.Message
	if a.remote != nil {
		remote = a.remote.Messages()
	}

	var changes <-chan struct{}
	if a.watch != nil {
		changes = a.watch.Changes()
	}

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	a.frame()
	for !a.quit {
		select {
		case ev := <-events:
			a.handleRawEvent(ev)
		case msg := <-remote:
			a.handleSocketMessage(msg)
		case <-changes:
			a.reload()
		case <-ticker.C:
			a.frame()
		}
	}

	return nil
}

// Close releases the list and the terminal
func (a *App) Close() error {
	a.list.Close()
	if a.screen != nil {
		return a.screen.Close()
	}
	return nil
}

// frame runs the recomputation batched since the last frame, then renders
func (a *App) frame() {
	if a.frames.Flush() {
		if n := a.frames.Coalesced(); n > a.coalesced {
			a.log.Debug("frame flushed", zap.Int("coalesced", n-a.coalesced))
			a.coalesced = n
		}
	}
	a.render()
}

// layout places the list between the header and the status line
func (a *App) layout() {
	width, height := a.screen.Size()
	a.list.SetBounds(0, 1, width, height-2)
}

func (a *App) render() {
	a.screen.Clear()
	width, height := a.screen.Size()
	if width <= 0 || height <= 0 {
		a.screen.Show()
		return
	}

	a.renderHeader(width)
	a.list.Render(a.screen)

	switch {
	case a.command.IsActive():
		a.command.Render(a.screen, height-1)
	case a.search.IsActive():
		a.search.Render(a.screen, height-1)
	default:
		a.renderStatus(width, height-1)
	}

	a.help.Render(a.screen)
	a.splash.Render(a.screen)
	a.screen.Show()
}

func (a *App) renderHeader(width int) {
	style := a.screen.HeaderStyle()
	a.screen.Fill(0, 0, width, 1, ' ', style)

	title := a.collection.Title
	if a.query != "" {
		title = fmt.Sprintf("%s  /%s  (%d of %d)", title, a.query, a.view.Len(), a.collection.Len())
	}
	a.screen.DrawStringLimited(1, 0, title, width-2, style)
}

// StatusRange formats the visible range for the status line
func (a *App) StatusRange() string {
	r := a.list.Engine().Range()
	return fmt.Sprintf("%d-%d/%d  overscan %d", r.StartIndex, r.EndIndex, a.view.Len(),
		a.list.Engine().Options().Overscan)
}

func (a *App) renderStatus(width, y int) {
	a.screen.Fill(0, y, width, 1, ' ', a.screen.StatusMessageStyle())

	mode := " LIST "
	if a.view.Filtered() {
		mode = " FILTER "
	}
	x := a.screen.DrawString(0, y, mode, a.screen.StatusModeStyle())

	right := a.StatusRange()
	rightX := max(x+1, width-ui.StringWidth(right)-1)

	if msg, ok := a.messages.Current(); ok {
		a.screen.DrawStringLimited(x+1, y, msg.Text, rightX-x-2, a.screen.StatusMessageStyle())
	}
	a.screen.DrawStringLimited(rightX, y, right, width-rightX, a.screen.StatusRangeStyle())
}

func (a *App) rangeChanged(r virtual.VisibleRange) {
	if a.debugMode {
		a.log.Debug("engine state", zap.Stringer("range", r),
			zap.String("dump", a.list.Engine().DebugDump()))
	}
}

// handleRawEvent processes raw input events
func (a *App) handleRawEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
		a.layout()
	case *tcell.EventMouse:
		if !a.help.IsVisible() && !a.splash.IsVisible() {
			a.list.HandleMouse(ev)
		}
	case *tcell.EventKey:
		a.handleKey(ev)
	}
}

func (a *App) handleKey(ev *tcell.EventKey) {
	if a.splash.IsVisible() {
		a.splash.Hide()
		return
	}

	if a.command.IsActive() {
		if cmd, done, accepted := a.command.HandleKey(ev); done && accepted {
			a.handleCommand(cmd)
		}
		return
	}

	if a.search.IsActive() {
		text, done, accepted := a.search.HandleKey(ev)
		if done {
			if accepted {
				a.applyFilter(text)
				a.log.Debug("filter applied", zap.String("query", text), zap.Int("matches", a.view.Len()))
			} else {
				a.applyFilter(a.savedQuery)
			}
		}
		return
	}

	if a.help.IsVisible() {
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Rune() == '?':
			a.help.Toggle()
		case ev.Key() == tcell.KeyDown || ev.Rune() == 'j':
			a.help.Scroll(1)
		case ev.Key() == tcell.KeyUp || ev.Rune() == 'k':
			a.help.Scroll(-1)
		}
		return
	}

	if a.debugMode {
		a.log.Debug("key", zap.String("key", ev.Name()))
	}

	if ev.Key() == tcell.KeyEscape {
		if a.query != "" {
			a.applyFilter("")
			a.SetStatus("Filter cleared")
		}
		return
	}
	if ev.Key() == tcell.KeyCtrlC {
		a.Quit()
		return
	}
	if a.list.HandleKey(ev) {
		return
	}
	if ev.Key() == tcell.KeyRune {
		if kb := a.GetKeybindingByKey(ev.Rune()); kb != nil {
			kb.Handler(a)
		}
	}
}

// searchMode returns the matching mode for plain query words
func (a *App) searchMode() search.Mode {
	if a.cfg.GetBool("fuzzy", true) {
		return search.ModeFuzzy
	}
	return search.ModeSubstring
}

// applyFilter narrows the list to items matching query. An invalid query
// keeps the current view and reports the error.
func (a *App) applyFilter(query string) {
	query = strings.TrimSpace(query)
	view, err := a.filterView(query)
	if err != nil {
		a.SetError(err.Error())
		return
	}

	a.query = query
	a.view = view
	a.list.SetSource(a.view)
	a.list.SelectFirst()
}

func (a *App) filterView(query string) (*model.View, error) {
	if query != "" && a.cfg.GetBool("rank", false) {
		return model.NewView(a.collection, search.Rank(a.collection, query)), nil
	}
	indices, err := search.Run(a.collection, query, a.searchMode())
	if err != nil {
		return nil, err
	}
	return model.NewView(a.collection, indices), nil
}

// reload reads the item file again. The filter is applied to the new items
// and the selection stays at the same position, or at the end when it was on
// the last item.
func (a *App) reload() {
	if a.path == "" || a.path == "-" {
		a.SetError("No file to reload")
		return
	}

	collection, err := loadCollection(a.path)
	if err != nil {
		a.SetError(err.Error())
		return
	}
	followEnd := a.view.Len() > 0 && a.list.Selected() == a.view.Len()-1

	a.collection = collection
	view, err := a.filterView(a.query)
	if err != nil {
		a.query = ""
		view = model.NewView(collection, nil)
	}
	a.view = view
	a.list.SetSource(view)
	if followEnd {
		a.list.SelectLast()
	}

	a.log.Info("reloaded", zap.String("path", a.path), zap.Int("items", collection.Len()), zap.Int("shown", view.Len()))
	a.SetStatus(fmt.Sprintf("Reloaded %d items", collection.Len()))
}

// startSearch opens the search prompt with the current query
func (a *App) startSearch() {
	a.savedQuery = a.query
	a.search.Start(a.query)
}

// SetStatus shows an informational message in the status line
func (a *App) SetStatus(msg string) {
	a.messages.Info(msg)
}

// SetError shows an error in the status line and logs it
func (a *App) SetError(msg string) {
	a.messages.Error(msg)
	a.log.Warn(msg)
}

// Quit signals the app to quit
func (a *App) Quit() {
	a.quit = true
}

// SetDebugMode enables or disables debug mode
func (a *App) SetDebugMode(debug bool) {
	a.debugMode = debug
}
