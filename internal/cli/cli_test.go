package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/flowboardhq/flowboard/pkg/view"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	if dir == "" {
		t.Error("cacheDir() returned empty string")
	}

	// Should be under home directory
	home, _ := os.UserHomeDir()
	if !strings.HasPrefix(dir, home) {
		t.Errorf("cacheDir() = %q, should be under home %q", dir, home)
	}

	// Should end with "flowboard"
	if !strings.HasSuffix(dir, "flowboard") {
		t.Errorf("cacheDir() = %q, should end with 'flowboard'", dir)
	}

	// Should contain ".cache" in path
	if !strings.Contains(dir, ".cache") {
		t.Errorf("cacheDir() = %q, should contain '.cache'", dir)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	expected := filepath.Join("/tmp/xdg-cache", "flowboard")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestRootCommandSubcommands(t *testing.T) {
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()

	want := []string{"compose", "render", "board", "views", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, sub := range root.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestLoadViewConfigFromFlags(t *testing.T) {
	c := New(io.Discard, LogInfo)

	cfg, err := c.loadViewConfig(context.Background(), composeOpts{
		style:   "kanban",
		focal:   "n1",
		maxHops: 2,
		colorBy: "priority",
	})
	if err != nil {
		t.Fatalf("loadViewConfig() error: %v", err)
	}

	if cfg.Style != view.StyleKanban {
		t.Errorf("Style = %q, want kanban", cfg.Style)
	}
	if cfg.FocalNodeID != "n1" || cfg.MaxHops != 2 {
		t.Errorf("hop filter = (%q, %d), want (n1, 2)", cfg.FocalNodeID, cfg.MaxHops)
	}
	if cfg.ColorField != "priority" {
		t.Errorf("ColorField = %q, want priority", cfg.ColorField)
	}
	// Kanban defaults apply
	if cfg.Column.Key != "status" {
		t.Errorf("Column.Key = %q, want status", cfg.Column.Key)
	}
}

func TestLoadViewConfigFromFile(t *testing.T) {
	c := New(io.Discard, LogInfo)

	path := filepath.Join(t.TempDir(), "view.toml")
	toml := "name = \"Roadmap\"\nstyle = \"tree\"\nedge_type = \"subtask\"\n"
	if err := os.WriteFile(path, []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := c.loadViewConfig(context.Background(), composeOpts{viewFile: path})
	if err != nil {
		t.Fatalf("loadViewConfig() error: %v", err)
	}

	if cfg.Name != "Roadmap" || cfg.Style != view.StyleTree || cfg.EdgeType != "subtask" {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadViewConfigStyleOverridesFile(t *testing.T) {
	c := New(io.Discard, LogInfo)

	path := filepath.Join(t.TempDir(), "view.toml")
	toml := "style = \"table\"\n"
	if err := os.WriteFile(path, []byte(toml), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := c.loadViewConfig(context.Background(), composeOpts{viewFile: path, style: "canvas"})
	if err != nil {
		t.Fatalf("loadViewConfig() error: %v", err)
	}
	if cfg.Style != view.StyleCanvas {
		t.Errorf("Style = %q, want canvas", cfg.Style)
	}
}

func TestLoadViewConfigMutuallyExclusive(t *testing.T) {
	c := New(io.Discard, LogInfo)

	_, err := c.loadViewConfig(context.Background(), composeOpts{viewFile: "a.toml", viewID: "some-id"})
	if err == nil {
		t.Error("expected error for --view with --view-id")
	}
}
