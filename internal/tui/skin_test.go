package tui

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadSkin(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "skins"), 0o755); err != nil {
		t.Fatal(err)
	}
	data := []byte(`colors:
  primary: "#ff0000"
series:
  waveform: "#00ff00"
`)
	if err := os.WriteFile(filepath.Join(dir, "skins", "studio.yaml"), data, 0o644); err != nil {
		t.Fatal(err)
	}

	skin, err := LoadSkin("studio", dir)
	if err != nil {
		t.Fatalf("LoadSkin: %v", err)
	}
	if skin.Name != "studio" {
		t.Fatalf("name = %q, want file name fallback", skin.Name)
	}
	if skin.Colors.Primary != "#ff0000" {
		t.Fatalf("primary = %q", skin.Colors.Primary)
	}
	if skin.Series.Waveform != "#00ff00" {
		t.Fatalf("series waveform = %q", skin.Series.Waveform)
	}
}

func TestLoadSkin_Missing(t *testing.T) {
	t.Parallel()

	if _, err := LoadSkin("nope", t.TempDir()); err == nil {
		t.Fatal("expected error for missing skin")
	}
}

func TestLoadSkin_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "skins"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "skins", "bad.yml"), []byte("colors: [1, 2"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadSkin("bad", dir); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestInitializeSkin_Default(t *testing.T) {
	t.Parallel()

	if err := InitializeSkin("default", t.TempDir()); err != nil {
		t.Fatalf("default skin: %v", err)
	}
	if err := InitializeSkin("", ""); err != nil {
		t.Fatalf("empty skin: %v", err)
	}
}
