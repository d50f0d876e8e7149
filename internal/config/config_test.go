package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Root != "" {
		t.Errorf("Root = %q, want empty", cfg.Root)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogDir != "" {
		t.Errorf("LogDir = %q, want empty", cfg.LogDir)
	}
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatText)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `root: /srv/data
include_filenames: [readme, main]
include_extensions:
  - go
  - .MD
exclude_dirs:
  - /srv/data/vendor
respect_gitignore: true
log_level: debug
log_dir: /tmp/logs
output:
  format: json
  file: out.json
history:
  enabled: true
  db_path: /tmp/history.db
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.Root != "/srv/data" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/srv/data")
	}
	if !reflect.DeepEqual(cfg.IncludeFilenames, []string{"readme", "main"}) {
		t.Errorf("IncludeFilenames = %v", cfg.IncludeFilenames)
	}
	if !reflect.DeepEqual(cfg.IncludeExtensions, []string{"go", ".MD"}) {
		t.Errorf("IncludeExtensions = %v", cfg.IncludeExtensions)
	}
	if !reflect.DeepEqual(cfg.ExcludeDirs, []string{"/srv/data/vendor"}) {
		t.Errorf("ExcludeDirs = %v", cfg.ExcludeDirs)
	}
	if !cfg.RespectGitignore {
		t.Error("RespectGitignore = false, want true")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogDir != "/tmp/logs" {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, "/tmp/logs")
	}
	if cfg.Output.Format != FormatJSON || cfg.Output.File != "out.json" {
		t.Errorf("Output = %+v", cfg.Output)
	}
	if !cfg.History.Enabled || cfg.History.DBPath != "/tmp/history.db" {
		t.Errorf("History = %+v", cfg.History)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("LoadConfig() = %+v, want defaults", cfg)
	}
}

// TestLoadConfigInvalidYAML tests error handling for malformed YAML
func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	invalidYAML := `
root: /srv
exclude_dirs: [this is not valid
log_level: debug
`
	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	_, err := LoadConfig(configPath)
	if err == nil {
		t.Error("LoadConfig() expected error for invalid YAML, got nil")
	}
}

// TestLoadConfigPartialValues tests that partial config merges with defaults
func TestLoadConfigPartialValues(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `include_extensions: [txt]
output:
  clipboard: true
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if !reflect.DeepEqual(cfg.IncludeExtensions, []string{"txt"}) {
		t.Errorf("IncludeExtensions = %v, want [txt]", cfg.IncludeExtensions)
	}
	if !cfg.Output.Clipboard {
		t.Error("Output.Clipboard = false, want true")
	}

	// Unset fields keep their defaults
	if cfg.Output.Format != FormatText {
		t.Errorf("Output.Format = %q, want %q (default)", cfg.Output.Format, FormatText)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q (default)", cfg.LogLevel, "info")
	}
	if cfg.Root != "" {
		t.Errorf("Root = %q, want empty (default)", cfg.Root)
	}
}

// TestLoadConfigFromDir tests loading config from <home>/config.yaml
func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, ConfigFileName)
	if err := os.WriteFile(configPath, []byte("log_level: warn\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "warn")
	}
}

// TestMergeWithFlags tests CLI flag precedence over config values
func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/from/config"
	cfg.IncludeExtensions = []string{"md"}

	root := "/from/flag"
	exts := []string{"go"}
	format := FormatYAML
	history := true

	cfg.MergeWithFlags(Overrides{
		Root:              &root,
		IncludeExtensions: &exts,
		Format:            &format,
		History:           &history,
	})

	if cfg.Root != "/from/flag" {
		t.Errorf("Root = %q, want %q", cfg.Root, "/from/flag")
	}
	if !reflect.DeepEqual(cfg.IncludeExtensions, []string{"go"}) {
		t.Errorf("IncludeExtensions = %v, want [go]", cfg.IncludeExtensions)
	}
	if cfg.Output.Format != FormatYAML {
		t.Errorf("Output.Format = %q, want %q", cfg.Output.Format, FormatYAML)
	}
	if !cfg.History.Enabled {
		t.Error("History.Enabled = false, want true")
	}
	// Nil overrides leave values alone
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
}

// TestValidate covers invalid configurations
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "invalid log_level",
		},
		{
			name:    "bad format",
			mutate:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: "invalid output.format",
		},
		{
			name: "file and clipboard",
			mutate: func(c *Config) {
				c.Output.File = "out.txt"
				c.Output.Clipboard = true
			},
			wantErr: "cannot both be set",
		},
		{
			name:   "every format accepted",
			mutate: func(c *Config) { c.Output.Format = FormatHTML },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

// TestScanConfig verifies the mapping onto scanner configuration
func TestScanConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Root = "/r"
	cfg.IncludeFilenames = []string{"a"}
	cfg.IncludeExtensions = []string{"txt"}
	cfg.ExcludeDirs = []string{"/r/skip"}

	sc := cfg.ScanConfig()
	if sc.Root != "/r" {
		t.Errorf("Root = %q", sc.Root)
	}
	if !reflect.DeepEqual(sc.IncludedFilenames, []string{"a"}) ||
		!reflect.DeepEqual(sc.IncludedExtensions, []string{"txt"}) ||
		!reflect.DeepEqual(sc.ExcludedDirs, []string{"/r/skip"}) {
		t.Errorf("ScanConfig() = %+v", sc)
	}
}
