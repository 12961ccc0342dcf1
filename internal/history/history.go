// Package history keeps prompt input history and persists it between runs
package history

// History manages input history for the search and command prompts.
// It allows navigating backward and forward through previous entries.
type History struct {
	entries        []string
	currentIndex   int // -1 when not navigating
	maxEntries     int
	temporaryInput string // input typed before navigation started
	manager        *Manager
	filename       string
}

// New creates an in-memory history
func New(maxEntries int) *History {
	return &History{
		currentIndex: -1,
		maxEntries:   maxEntries,
	}
}

// NewPersistent creates a history backed by a file of the manager.
// On load failure the history starts empty and the error is returned.
func NewPersistent(maxEntries int, manager *Manager, filename string) (*History, error) {
	h := New(maxEntries)
	h.manager = manager
	h.filename = filename

	entries, err := manager.Load(filename)
	if err != nil {
		return h, err
	}
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}
	h.entries = entries
	return h, nil
}

// Add appends entry, skipping empty entries and repeats of the last one,
// and saves when persistent
func (h *History) Add(entry string) error {
	h.Reset()
	if entry == "" {
		return nil
	}
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == entry {
		return nil
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.maxEntries {
		h.entries = h.entries[len(h.entries)-h.maxEntries:]
	}

	return h.Save()
}

// Save persists the current entries, a no-op for in-memory history
func (h *History) Save() error {
	if h.manager == nil || h.filename == "" {
		return nil
	}
	return h.manager.Save(h.filename, h.entries)
}

// Previous steps back through history. The first call remembers current so
// Next can restore it after walking past the newest entry.
func (h *History) Previous(current string) (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}

	if h.currentIndex < 0 {
		h.temporaryInput = current
		h.currentIndex = len(h.entries) - 1
	} else if h.currentIndex > 0 {
		h.currentIndex--
	}

	return h.entries[h.currentIndex], true
}

// Next steps forward through history
func (h *History) Next() (string, bool) {
	if h.currentIndex < 0 {
		return "", false
	}

	h.currentIndex++
	if h.currentIndex >= len(h.entries) {
		temp := h.temporaryInput
		h.Reset()
		return temp, true
	}

	return h.entries[h.currentIndex], true
}

// Reset leaves navigation mode
func (h *History) Reset() {
	h.currentIndex = -1
	h.temporaryInput = ""
}

// GetAll returns a copy of all history entries
func (h *History) GetAll() []string {
	entries := make([]string, len(h.entries))
	copy(entries, h.entries)
	return entries
}

// Len returns the number of entries in history
func (h *History) Len() int {
	return len(h.entries)
}

// IsNavigating returns true if currently navigating through history
func (h *History) IsNavigating() bool {
	return h.currentIndex >= 0
}
