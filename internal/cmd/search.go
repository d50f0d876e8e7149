package cmd

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/syn-chromatic/filesearch/internal/config"
	"github.com/syn-chromatic/filesearch/internal/display"
	"github.com/syn-chromatic/filesearch/internal/history"
	"github.com/syn-chromatic/filesearch/internal/ignore"
	"github.com/syn-chromatic/filesearch/internal/logger"
	"github.com/syn-chromatic/filesearch/internal/models"
	"github.com/syn-chromatic/filesearch/internal/report"
	"github.com/syn-chromatic/filesearch/internal/scanner"
)

// NewSearchCommand creates the search command
func NewSearchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search [root]",
		Short: "Search a directory tree for matching files",
		Long: `Search a directory tree for regular files matching the given filters.

With no root argument the search starts from root in the config file, or the
current working directory when that is unset too.

Configuration is loaded from $FILESEARCH_HOME/config.yaml (default
.filesearch/config.yaml) if present. CLI flags override configuration file settings.

Examples:
  # Every file under the current directory
  filesearch search

  # Go and Markdown files, skipping vendor
  filesearch search ./src --ext go --ext md --exclude ./src/vendor

  # Files named README or LICENSE with any extension
  filesearch search --name README,LICENSE

  # JSON report written to a file, run recorded in history
  filesearch search ~/code --format json --output report.json --history

  # Honour the root .gitignore
  filesearch search --gitignore`,
		Args: cobra.MaximumNArgs(1),
		RunE: searchCommand,
	}

	cmd.Flags().String("config", "", "Path to config file (default: $FILESEARCH_HOME/config.yaml)")
	cmd.Flags().StringSlice("name", nil, "Include only files with this stem (repeatable, case-insensitive)")
	cmd.Flags().StringSlice("ext", nil, "Include only files with this extension, with or without the dot (repeatable)")
	cmd.Flags().StringSlice("exclude", nil, "Directory that is never entered (repeatable)")
	cmd.Flags().Bool("gitignore", false, "Skip paths matched by the root .gitignore")
	cmd.Flags().String("format", "", "Report format: text, json, yaml, markdown, html")
	cmd.Flags().StringP("output", "o", "", "Write the report to this file instead of stdout")
	cmd.Flags().Bool("clipboard", false, "Copy the report to the clipboard instead of stdout")
	cmd.Flags().Bool("history", false, "Record this run in the history database")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files")

	return cmd
}

// searchCommand implements the search command logic
func searchCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	overrides, err := searchOverrides(cmd, args)
	if err != nil {
		return err
	}
	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	runID := models.NewRunID()
	log, closeLog, err := buildLogger(cmd.ErrOrStderr(), cfg, runID)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := []scanner.Option{scanner.WithLogger(log)}
	if cfg.RespectGitignore {
		matcher, err := ignore.Load(cfg.Root)
		switch {
		case err != nil:
			log.LogWarn(fmt.Sprintf("Ignoring .gitignore: %v", err))
		case matcher != nil:
			log.LogDebug(fmt.Sprintf("Loaded ignore rules from %s", matcher.Source()))
			opts = append(opts, scanner.WithIgnorer(matcher))
		}
	}

	s := scanner.NewWithConfig(cfg.ScanConfig(), opts...)

	log.LogSearchStart(runID, cfg.Root)
	started := time.Now()
	outcome := s.Search()
	run := newSearchRun(runID, cfg, started, outcome)
	log.LogSearchSummary(run)

	if len(run.Inaccessible) > 0 {
		display.WarnInaccessible(run.Inaccessible).Display(cmd.ErrOrStderr())
	}

	data, err := report.Render(run, cfg.Output.Format)
	if err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	dest := report.Destination{
		File:      cfg.Output.File,
		Clipboard: cfg.Output.Clipboard,
		Stdout:    cmd.OutOrStdout(),
	}
	if err := report.Deliver(data, dest); err != nil {
		return err
	}
	if cfg.Output.File != "" {
		log.LogInfo(fmt.Sprintf("Report written to %s", cfg.Output.File))
	}

	if cfg.History.Enabled {
		// History is a side record; failing to write it does not fail the search.
		if err := recordHistory(cmd.Context(), cfg, run); err != nil {
			log.LogWarn(fmt.Sprintf("Failed to record search history: %v", err))
		}
	}

	return nil
}

// loadConfig loads --config when given, otherwise the config file in the filesearch home
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	defaultPath, err := config.GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to locate config: %w", err)
	}
	cfg, err := config.LoadConfig(defaultPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// searchOverrides collects only the flags the user actually set
func searchOverrides(cmd *cobra.Command, args []string) (config.Overrides, error) {
	var o config.Overrides
	flags := cmd.Flags()

	if len(args) == 1 {
		root := args[0]
		o.Root = &root
	}

	stringSlice := func(name string) (*[]string, error) {
		if !flags.Changed(name) {
			return nil, nil
		}
		v, err := flags.GetStringSlice(name)
		if err != nil {
			return nil, fmt.Errorf("invalid --%s: %w", name, err)
		}
		return &v, nil
	}
	str := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	boolean := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}

	var err error
	if o.IncludeFilenames, err = stringSlice("name"); err != nil {
		return o, err
	}
	if o.IncludeExtensions, err = stringSlice("ext"); err != nil {
		return o, err
	}
	if o.ExcludeDirs, err = stringSlice("exclude"); err != nil {
		return o, err
	}

	o.RespectGitignore = boolean("gitignore")
	o.Format = str("format")
	o.OutputFile = str("output")
	o.Clipboard = boolean("clipboard")
	o.History = boolean("history")
	o.LogLevel = str("log-level")
	o.LogDir = str("log-dir")

	return o, nil
}

// buildLogger returns the console logger, fanned out to a per-run file logger when
// log_dir is configured. The returned close func is always safe to call.
func buildLogger(stderr io.Writer, cfg *config.Config, runID string) (logger.Logger, func(), error) {
	console := logger.NewConsoleLogger(stderr, cfg.LogLevel)
	if cfg.LogDir == "" {
		return console, func() {}, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create file logger: %w", err)
	}
	return logger.NewMultiLogger(console, fileLog), func() { fileLog.Close() }, nil
}

// newSearchRun turns a scanner outcome into the run record shared by reports and history
func newSearchRun(runID string, cfg *config.Config, started time.Time, outcome *scanner.Outcome) *models.SearchRun {
	root := outcome.Root
	if root == "" {
		root = cfg.Root
	}
	return &models.SearchRun{
		ID:        runID,
		Root:      root,
		StartedAt: started,
		Duration:  time.Since(started),
		Filters: models.SearchFilters{
			Filenames:    cfg.IncludeFilenames,
			Extensions:   cfg.IncludeExtensions,
			ExcludedDirs: cfg.ExcludeDirs,
		},
		Files:        outcome.Files,
		Inaccessible: outcome.InaccessiblePaths(),
		VisitedDirs:  outcome.VisitedDirs,
		RootResolved: outcome.Root != "",
	}
}

// recordHistory appends run to the history database
func recordHistory(ctx context.Context, cfg *config.Config, run *models.SearchRun) error {
	if ctx == nil {
		ctx = context.Background()
	}

	dbPath, err := config.GetHistoryDBPath(cfg)
	if err != nil {
		return fmt.Errorf("failed to get history database path: %w", err)
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return fmt.Errorf("open history store: %w", err)
	}
	defer store.Close()

	return store.RecordRun(ctx, run)
}
