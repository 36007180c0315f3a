package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaultWhenMissing(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Cluster.DefaultNamespace != "default" {
		t.Fatalf("expected default namespace, got %q", cfg.Cluster.DefaultNamespace)
	}
	if !cfg.Persistence.Enabled {
		t.Fatal("expected persistence enabled by default")
	}
	if cfg.History.Size != 100 {
		t.Fatalf("expected history size 100, got %d", cfg.History.Size)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Default()
	if err := cfg.SetByKey("persistence.debounce_window", "250ms"); err != nil {
		t.Fatalf("SetByKey error: %v", err)
	}
	if err := cfg.SetByKey("history.size", "42"); err != nil {
		t.Fatalf("SetByKey error: %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load after save error: %v", err)
	}
	if loaded.Persistence.DebounceWindow != "250ms" {
		t.Fatalf("expected debounce window 250ms, got %q", loaded.Persistence.DebounceWindow)
	}
	if loaded.History.Size != 42 {
		t.Fatalf("expected history size 42, got %d", loaded.History.Size)
	}

	path, err := FilePath()
	if err != nil {
		t.Fatalf("FilePath error: %v", err)
	}
	if want := filepath.Join(home, ".kubeplay", "config.yaml"); path != want {
		t.Fatalf("unexpected config path %q want %q", path, want)
	}
}

func TestLoadFilePartialOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "history:\n  size: 7\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.History.Size != 7 {
		t.Fatalf("expected history size 7, got %d", cfg.History.Size)
	}
	if cfg.Cluster.DefaultNamespace != "default" {
		t.Fatalf("expected untouched namespace default, got %q", cfg.Cluster.DefaultNamespace)
	}
}

func TestValidateRejectsInvalidValues(t *testing.T) {
	cfg := Default()
	cfg.History.Size = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid history.size error")
	}

	cfg = Default()
	cfg.Persistence.DebounceWindow = "soon"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected invalid debounce window error")
	}

	cfg = Default()
	cfg.Cluster.DefaultNamespace = "  "
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected empty namespace error")
	}
}

func TestSetByKeyRejectsInvalidInput(t *testing.T) {
	cfg := Default()
	if err := cfg.SetByKey("history.size", "abc"); err == nil {
		t.Fatal("expected history size parse error")
	}
	if err := cfg.SetByKey("unknown.key", "x"); err == nil {
		t.Fatal("expected unsupported key error")
	}
	if err := cfg.SetByKey("persistence.enabled", "maybe"); err == nil {
		t.Fatal("expected bool parse error")
	}
}

func TestGetByKey(t *testing.T) {
	cfg := Default()
	v, err := cfg.GetByKey("persistence.state_key")
	if err != nil {
		t.Fatalf("GetByKey error: %v", err)
	}
	if v != "cluster" {
		t.Fatalf("expected cluster, got %v", v)
	}
	if _, err := cfg.GetByKey("nope"); err == nil {
		t.Fatal("expected unsupported key error")
	}
}

func TestToYAMLContainsSections(t *testing.T) {
	cfg := Default()
	out, err := cfg.ToYAML()
	if err != nil {
		t.Fatalf("ToYAML error: %v", err)
	}
	for _, section := range []string{"general:", "cluster:", "persistence:", "history:"} {
		if !strings.Contains(out, section) {
			t.Fatalf("expected section %q in YAML:\n%s", section, out)
		}
	}
}
