package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/roomwaves/roomwaves/internal/model"
)

func TestLoadConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := loadConfig(viper.New(), "")
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIURL != model.DefaultAPIURL || cfg.APITimeout != model.DefaultAPITimeout {
		t.Fatalf("api = %s %s", cfg.APIURL, cfg.APITimeout)
	}
	if cfg.FrequencyBands != 24 || cfg.SurfaceBands != 48 || cfg.ParameterBands != 1 {
		t.Fatalf("bands = %d/%d/%d", cfg.FrequencyBands, cfg.SurfaceBands, cfg.ParameterBands)
	}
	if want := filepath.Join(home, ".local", "share", "roomwaves", "fixtures"); cfg.FixturesDir != want {
		t.Fatalf("fixtures-dir = %q, want %q", cfg.FixturesDir, want)
	}
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "api-url: http://analysis.lan:9000\napi-timeout: 5s\nfrequency-bands: 12\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ROOMWAVES_SURFACE_BANDS", "6")

	cfg, err := loadConfig(viper.New(), path)
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.APIURL != "http://analysis.lan:9000" || cfg.APITimeout != 5*time.Second {
		t.Fatalf("api = %s %s", cfg.APIURL, cfg.APITimeout)
	}
	if cfg.FrequencyBands != 12 || cfg.SurfaceBands != 6 {
		t.Fatalf("bands = %d/%d", cfg.FrequencyBands, cfg.SurfaceBands)
	}
	if cfg.ConfigPath != path {
		t.Fatalf("config path = %q", cfg.ConfigPath)
	}
}

func TestLoadConfigRejectsUnknownBands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ROOMWAVES_PARAMETER_BANDS", "24")

	if _, err := loadConfig(viper.New(), ""); err == nil {
		t.Fatal("expected parameter-bands validation error")
	}
}

func TestLoadConfigBadFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("api-url: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(viper.New(), path); err == nil {
		t.Fatal("expected parse error")
	}
}
