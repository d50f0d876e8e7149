// Package display renders user-facing warning blocks for the filesearch CLI.
//
// A search that skips paths it could not read still succeeds, so the skipped
// paths are surfaced as a warning on stderr rather than as an error:
//
//	if len(run.Inaccessible) > 0 {
//	    display.WarnInaccessible(run.Inaccessible).Display(os.Stderr)
//	}
//
// Color is applied only when the destination is a terminal (checked with
// go-isatty) and color has not been disabled through NO_COLOR.
package display
