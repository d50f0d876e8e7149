package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/syn-chromatic/filesearch/internal/scanner"
)

// Supported report formats
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "markdown"
	FormatHTML     = "html"
)

// ValidFormats lists every accepted output.format value.
var ValidFormats = []string{FormatText, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// OutputConfig controls how search results are rendered and where they go
type OutputConfig struct {
	// Format is one of text, json, yaml, markdown, html
	Format string `yaml:"format"`

	// File writes the report to this path instead of stdout
	File string `yaml:"file"`

	// Clipboard copies the report to the system clipboard
	Clipboard bool `yaml:"clipboard"`
}

// HistoryConfig controls the run history database
type HistoryConfig struct {
	// Enabled records every search run in the history database
	Enabled bool `yaml:"enabled"`

	// DBPath is the path to the history database (empty = <home>/history.db)
	DBPath string `yaml:"db_path"`
}

// Config represents filesearch configuration options
type Config struct {
	// Root is the directory to search (empty = current working directory)
	Root string `yaml:"root"`

	// IncludeFilenames keeps only files whose stem is listed
	IncludeFilenames []string `yaml:"include_filenames"`

	// IncludeExtensions keeps only files whose extension is listed
	IncludeExtensions []string `yaml:"include_extensions"`

	// ExcludeDirs lists directories that are never entered
	ExcludeDirs []string `yaml:"exclude_dirs"`

	// RespectGitignore prunes paths matched by the root .gitignore
	RespectGitignore bool `yaml:"respect_gitignore"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogDir enables per-run log files in this directory when set
	LogDir string `yaml:"log_dir"`

	// Output contains report configuration
	Output OutputConfig `yaml:"output"`

	// History contains run history configuration
	History HistoryConfig `yaml:"history"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		Root:             "",
		RespectGitignore: false,
		LogLevel:         "info",
		LogDir:           "",
		Output: OutputConfig{
			Format: FormatText,
		},
		History: HistoryConfig{
			Enabled: false,
			DBPath:  "",
		},
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// A second pass tells us which keys were present, so explicit false values
	// and empty lists override the defaults.
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if _, exists := rawMap["root"]; exists {
		cfg.Root = fileCfg.Root
	}
	if _, exists := rawMap["include_filenames"]; exists {
		cfg.IncludeFilenames = fileCfg.IncludeFilenames
	}
	if _, exists := rawMap["include_extensions"]; exists {
		cfg.IncludeExtensions = fileCfg.IncludeExtensions
	}
	if _, exists := rawMap["exclude_dirs"]; exists {
		cfg.ExcludeDirs = fileCfg.ExcludeDirs
	}
	if _, exists := rawMap["respect_gitignore"]; exists {
		cfg.RespectGitignore = fileCfg.RespectGitignore
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if _, exists := rawMap["log_dir"]; exists {
		cfg.LogDir = fileCfg.LogDir
	}

	if outputMap, ok := rawMap["output"].(map[string]interface{}); ok {
		if fileCfg.Output.Format != "" {
			cfg.Output.Format = fileCfg.Output.Format
		}
		if _, exists := outputMap["file"]; exists {
			cfg.Output.File = fileCfg.Output.File
		}
		if _, exists := outputMap["clipboard"]; exists {
			cfg.Output.Clipboard = fileCfg.Output.Clipboard
		}
	}

	if historyMap, ok := rawMap["history"].(map[string]interface{}); ok {
		if _, exists := historyMap["enabled"]; exists {
			cfg.History.Enabled = fileCfg.History.Enabled
		}
		if _, exists := historyMap["db_path"]; exists {
			cfg.History.DBPath = fileCfg.History.DBPath
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from config.yaml in the specified home directory
// If the directory or file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, ConfigFileName))
}

// Overrides carries values given on the command line. Nil fields were not set.
type Overrides struct {
	Root              *string
	IncludeFilenames  *[]string
	IncludeExtensions *[]string
	ExcludeDirs       *[]string
	RespectGitignore  *bool
	LogLevel          *string
	LogDir            *string
	Format            *string
	OutputFile        *string
	Clipboard         *bool
	History           *bool
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(o Overrides) {
	if o.Root != nil {
		c.Root = *o.Root
	}
	if o.IncludeFilenames != nil {
		c.IncludeFilenames = *o.IncludeFilenames
	}
	if o.IncludeExtensions != nil {
		c.IncludeExtensions = *o.IncludeExtensions
	}
	if o.ExcludeDirs != nil {
		c.ExcludeDirs = *o.ExcludeDirs
	}
	if o.RespectGitignore != nil {
		c.RespectGitignore = *o.RespectGitignore
	}
	if o.LogLevel != nil {
		c.LogLevel = *o.LogLevel
	}
	if o.LogDir != nil {
		c.LogDir = *o.LogDir
	}
	if o.Format != nil {
		c.Output.Format = *o.Format
	}
	if o.OutputFile != nil {
		c.Output.File = *o.OutputFile
	}
	if o.Clipboard != nil {
		c.Output.Clipboard = *o.Clipboard
	}
	if o.History != nil {
		c.History.Enabled = *o.History
	}
}

// Validate validates the configuration values
// Returns an error if any values are invalid
func (c *Config) Validate() error {
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	validFormat := false
	for _, f := range ValidFormats {
		if c.Output.Format == f {
			validFormat = true
			break
		}
	}
	if !validFormat {
		return fmt.Errorf("invalid output.format %q, must be one of: text, json, yaml, markdown, html", c.Output.Format)
	}

	if c.Output.File != "" && c.Output.Clipboard {
		return fmt.Errorf("output.file and output.clipboard cannot both be set")
	}

	return nil
}

// ScanConfig returns the scanner configuration described by c.
func (c *Config) ScanConfig() scanner.ScanConfig {
	return scanner.ScanConfig{
		Root:               c.Root,
		IncludedFilenames:  c.IncludeFilenames,
		IncludedExtensions: c.IncludeExtensions,
		ExcludedDirs:       c.ExcludeDirs,
	}
}
