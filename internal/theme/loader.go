package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/pelletier/go-toml/v2"
)

// ThemeConfig represents the raw TOML theme configuration
type ThemeConfig struct {
	Name   string            `toml:"name"`
	Base   string            `toml:"base"`
	Colors map[string]string `toml:"colors"`
}

// getThemePaths returns the search paths for theme files
func getThemePaths() []string {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	return []string{
		filepath.Join(home, ".config", "tui-vlist", "themes"),
		filepath.Join(home, ".local", "share", "tui-vlist", "themes"),
	}
}

// findThemeFile searches for a theme file in standard locations
func findThemeFile(themeName string) (string, error) {
	filename := themeName + ".toml"

	for _, dir := range getThemePaths() {
		path := filepath.Join(dir, filename)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("theme file not found: %s", filename)
}

// LoadThemeFromFile loads a theme from a TOML file
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
	return ParseTheme(data)
}

// ParseTheme decodes a TOML theme. Colors not named in the file come from
// the base theme ("default" or "tokyo-night", the latter when unset).
func ParseTheme(data []byte) (*Theme, error) {
	var config ThemeConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse theme file: %w", err)
	}
	return configToTheme(config)
}

func configToTheme(config ThemeConfig) (*Theme, error) {
	t := TokyoNight()
	if config.Base == "default" {
		t = Default()
	}

	fields := t.Colors.colorFields()
	var unknown []string
	for key, value := range config.Colors {
		field, ok := fields[key]
		if !ok {
			unknown = append(unknown, key)
			continue
		}
		*field = ParseColorString(value)
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown theme colors: %v", unknown)
	}

	if config.Name != "" {
		t.Name = config.Name
	}
	return t, nil
}

// LoadTheme loads a theme by name, searching standard theme directories
func LoadTheme(themeName string) (*Theme, error) {
	filePath, err := findThemeFile(themeName)
	if err != nil {
		return nil, err
	}

	return LoadThemeFromFile(filePath)
}

// LoadThemeOrDefault loads a theme by name, or returns Tokyo Night if not found
func LoadThemeOrDefault(themeName string) *Theme {
	switch themeName {
	case "default":
		return Default()
	case "", "tokyo-night":
		return TokyoNight()
	}

	t, err := LoadTheme(themeName)
	if err != nil {
		return TokyoNight()
	}
	return t
}
