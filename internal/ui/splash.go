package ui

// SplashScreen is shown when the viewer starts without a file
type SplashScreen struct {
	visible bool
	version string
}

// NewSplashScreen creates a hidden splash screen
func NewSplashScreen(version string) *SplashScreen {
	return &SplashScreen{version: version}
}

func (s *SplashScreen) Show() {
	s.visible = true
}

func (s *SplashScreen) Hide() {
	s.visible = false
}

func (s *SplashScreen) IsVisible() bool {
	return s.visible
}

// Lines returns the text of the splash screen
func (s *SplashScreen) Lines() []string {
	return []string{
		"~~ vlist ~~",
		"",
		"Version " + s.version,
		"",
		"Browse large item lists,",
		"drawing only the visible rows",
		"",
		"Usage:",
		"  vlist FILE       one item per line",
		"  vlist FILE.json  JSON items",
		"  vlist FILE.md    markdown outline",
		"  cmd | vlist -    read stdin",
		"",
		"Press any key to continue",
	}
}

// Render draws the splash screen centered over the whole screen
func (s *SplashScreen) Render(screen *Screen) {
	if !s.visible {
		return
	}

	width, height := screen.Size()
	screen.Fill(0, 0, width, height, ' ', screen.BackgroundStyle())

	lines := s.Lines()
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, StringWidth(line))
	}
	startX := max(0, (width-blockWidth)/2)
	startY := max(0, (height-len(lines))/2)

	for i, line := range lines {
		y := startY + i
		if y >= height {
			break
		}
		style := screen.HeaderStyle()
		if i >= 7 {
			style = screen.StatusMessageStyle()
		}
		screen.DrawStringLimited(startX, y, line, width-startX, style)
	}
}
