package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/roomwaves/roomwaves/internal/panels"
)

// Skin is the on-disk color scheme, read from <configDir>/skins/<name>.yml.
type Skin struct {
	Name   string       `yaml:"name"`
	Colors SkinColors   `yaml:"colors"`
	Series panels.Theme `yaml:"series"`
}

// SkinColors override the dashboard chrome. Empty fields keep the default.
type SkinColors struct {
	Primary    string `yaml:"primary"`
	Muted      string `yaml:"muted"`
	Text       string `yaml:"text"`
	Background string `yaml:"background"`
	Error      string `yaml:"error"`
	Warning    string `yaml:"warning"`
	Success    string `yaml:"success"`
}

var seriesTheme = panels.DefaultTheme()

// SeriesTheme returns the chart palette of the active skin.
func SeriesTheme() panels.Theme { return seriesTheme }

// InitializeSkin loads and applies the named skin. "" and "default" use the
// built-in palette. On error the built-in palette stays in effect.
func InitializeSkin(name, configDir string) error {
	if name == "" || name == "default" {
		return nil
	}
	skin, err := LoadSkin(name, configDir)
	if err != nil {
		return err
	}
	applySkin(skin)
	return nil
}

// LoadSkin reads a skin file without applying it.
func LoadSkin(name, configDir string) (Skin, error) {
	var skin Skin
	dir := filepath.Join(configDir, "skins")
	var data []byte
	var err error
	for _, ext := range []string{".yml", ".yaml"} {
		data, err = os.ReadFile(filepath.Join(dir, name+ext))
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			break
		}
	}
	if err != nil {
		return skin, fmt.Errorf("read skin %q: %w", name, err)
	}
	if err := yaml.Unmarshal(data, &skin); err != nil {
		return skin, fmt.Errorf("parse skin %q: %w", name, err)
	}
	if skin.Name == "" {
		skin.Name = name
	}
	return skin, nil
}

func applySkin(s Skin) {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&ColorBlue, s.Colors.Primary)
	set(&ColorGray, s.Colors.Muted)
	set(&ColorWhite, s.Colors.Text)
	set(&ColorNavy, s.Colors.Background)
	set(&ColorRed, s.Colors.Error)
	set(&ColorOrange, s.Colors.Warning)
	set(&ColorGreen, s.Colors.Success)
	seriesTheme = seriesTheme.Merge(s.Series)
	rebuildStyles()
}
