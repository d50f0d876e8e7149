package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for filesearch
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filesearch",
		Short: "Recursive file search with extension, name and directory filters",
		Long: `filesearch walks a directory tree and lists every regular file that matches
the configured filename and extension filters.

Paths are canonicalized (symlinks resolved) so every file is reported once and
symlink cycles are never followed. Directories that cannot be read are reported
and skipped; the search always completes.`,
		Version: Version,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
	}

	cmd.AddCommand(NewSearchCommand())
	cmd.AddCommand(NewHistoryCommand())

	return cmd
}
