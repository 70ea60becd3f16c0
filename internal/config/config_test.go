package config

import (
	"os"
	"path/filepath"
	"testing"
)

// withConfigHome points XDG_CONFIG_HOME at a temp directory for one test.
func withConfigHome(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)
	ResetCache()
	t.Cleanup(ResetCache)
	return tmp
}

func TestLoad_MissingFileYieldsZeroConfig(t *testing.T) {
	withConfigHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProviderURL != "" || cfg.DescriptorSet != "" {
		t.Errorf("cfg = %+v, want zero values", cfg)
	}
	if cfg.CachePath == "" {
		t.Error("CachePath should default next to the config file")
	}
}

func TestLoad_ReadsYAML(t *testing.T) {
	tmp := withConfigHome(t)

	dir := filepath.Join(tmp, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "provider_url: http://descriptors:8410\ndescriptor_set: magpie\nworkers: 8\n"
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProviderURL != "http://descriptors:8410" {
		t.Errorf("ProviderURL = %s, want http://descriptors:8410", cfg.ProviderURL)
	}
	if cfg.DescriptorSet != "magpie" {
		t.Errorf("DescriptorSet = %s, want magpie", cfg.DescriptorSet)
	}
	if cfg.Workers != 8 {
		t.Errorf("Workers = %d, want 8", cfg.Workers)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	tmp := withConfigHome(t)

	dir := filepath.Join(tmp, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile),
		[]byte("provider_url: http://from-file:8410\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvProviderURL, "http://from-env:9000")
	t.Setenv(EnvWorkers, "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.ProviderURL != "http://from-env:9000" {
		t.Errorf("ProviderURL = %s, want env override", cfg.ProviderURL)
	}
	if cfg.Workers != 3 {
		t.Errorf("Workers = %d, want 3", cfg.Workers)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmp := withConfigHome(t)

	dir := filepath.Join(tmp, ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, ConfigFile),
		[]byte("provider_url: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail on malformed YAML")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	withConfigHome(t)

	cfg := &Config{
		ProviderURL:   "http://descriptors:8410",
		DescriptorSet: "physchem-2d",
		Workers:       4,
	}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	ResetCache()
	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.ProviderURL != cfg.ProviderURL || loaded.DescriptorSet != cfg.DescriptorSet || loaded.Workers != cfg.Workers {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~/cache/features.db", filepath.Join(home, "cache/features.db")},
		{"/absolute/path", "/absolute/path"},
		{"relative/path", "relative/path"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ExpandTilde(tt.in); got != tt.want {
			t.Errorf("ExpandTilde(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
