package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	t.Run("all keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `hierarchy_file = "/data/hierarchy.xml"
separator = ","
path_separator = "/"
database = "/data/runs.db"

[ui]
accent = "39"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.HierarchyFile != "/data/hierarchy.xml" {
			t.Errorf("expected hierarchy file, got %q", cfg.HierarchyFile)
		}
		if cfg.Separator != "," || cfg.PathSeparator != "/" {
			t.Errorf("unexpected separators %q %q", cfg.Separator, cfg.PathSeparator)
		}
		if cfg.Database != "/data/runs.db" {
			t.Errorf("expected database path, got %q", cfg.Database)
		}
		if cfg.UI.Accent != "39" {
			t.Errorf("expected accent 39, got %q", cfg.UI.Accent)
		}
	})

	t.Run("home expansion", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)
		t.Setenv("USERPROFILE", home)

		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte(`hierarchy_file = "~/notes.xml"`), 0644); err != nil {
			t.Fatal(err)
		}
		cfg, err := LoadFrom(path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := filepath.Join(home, "notes.xml"); cfg.HierarchyFile != want {
			t.Errorf("expected %q, got %q", want, cfg.HierarchyFile)
		}
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("separator = "), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadFrom(path); err == nil {
			t.Fatal("expected parse error")
		}
	})
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "xdg"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.HierarchyFile != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}
