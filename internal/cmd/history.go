package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/syn-chromatic/filesearch/internal/config"
	"github.com/syn-chromatic/filesearch/internal/history"
	"github.com/syn-chromatic/filesearch/internal/models"
)

// NewHistoryCommand creates the 'filesearch history' command
func NewHistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded search runs",
		Long: `List search runs recorded with --history (or history.enabled in the config),
newest first.`,
		Args: cobra.NoArgs,
		RunE: runHistory,
	}

	cmd.Flags().String("config", "", "Path to config file (default: $FILESEARCH_HOME/config.yaml)")
	cmd.Flags().Int("limit", 20, "Maximum number of runs to show (0 = all)")

	cmd.AddCommand(NewHistoryPruneCommand())

	return cmd
}

// NewHistoryPruneCommand creates the 'filesearch history prune' command
func NewHistoryPruneCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete recorded runs older than a given age",
		Args:  cobra.NoArgs,
		RunE:  runHistoryPrune,
	}

	cmd.Flags().String("config", "", "Path to config file (default: $FILESEARCH_HOME/config.yaml)")
	cmd.Flags().Duration("older-than", 30*24*time.Hour, "Delete runs that started longer ago than this")

	return cmd
}

// runHistory executes the history command
func runHistory(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	limit, _ := cmd.Flags().GetInt("limit")
	if limit < 0 {
		return fmt.Errorf("--limit must be >= 0, got %d", limit)
	}

	store, dbPath, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(output, "No search history recorded.")
		fmt.Fprintf(output, "Database path: %s\n", dbPath)
		return nil
	}
	defer store.Close()

	runs, err := store.ListRuns(commandContext(cmd), limit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(output, "No search history recorded.")
		return nil
	}

	printRuns(output, runs, isTerminalWriter(output))
	return nil
}

// runHistoryPrune executes the history prune command
func runHistoryPrune(cmd *cobra.Command, args []string) error {
	output := cmd.OutOrStdout()
	olderThan, _ := cmd.Flags().GetDuration("older-than")
	if olderThan <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", olderThan)
	}

	store, _, err := openHistory(cmd)
	if err != nil {
		return err
	}
	if store == nil {
		fmt.Fprintln(output, "No search history recorded.")
		return nil
	}
	defer store.Close()

	n, err := store.DeleteRunsBefore(commandContext(cmd), time.Now().Add(-olderThan))
	if err != nil {
		return err
	}
	fmt.Fprintf(output, "Deleted %d run(s)\n", n)
	return nil
}

// openHistory opens the configured history database. It returns a nil store when the
// database has never been created.
func openHistory(cmd *cobra.Command) (*history.Store, string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, "", err
	}

	dbPath, err := config.GetHistoryDBPath(cfg)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get history database path: %w", err)
	}

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return nil, dbPath, nil
	}

	store, err := history.NewStore(dbPath)
	if err != nil {
		return nil, dbPath, fmt.Errorf("open history store: %w", err)
	}
	return store, dbPath, nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// printRuns writes one row per run
func printRuns(w io.Writer, runs []*history.RunRecord, colorOutput bool) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tSTARTED\tSTATUS\tFILES\tINACCESSIBLE\tDURATION\tROOT")

	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		status := r.Status
		if colorOutput {
			status = statusColor(r.Status).Sprint(r.Status)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			id,
			r.StartedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			r.FileCount,
			r.InaccessibleCount,
			r.Duration.Round(time.Millisecond),
			r.Root,
		)
	}
	tw.Flush()
}

func statusColor(status string) *color.Color {
	switch status {
	case models.RunStatusComplete:
		return color.New(color.FgGreen)
	case models.RunStatusPartial:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}
