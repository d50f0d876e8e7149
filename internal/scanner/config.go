package scanner

// ScanConfig configures a single search run.
// It is read-only while a search is in progress.
type ScanConfig struct {
	// Root is the starting directory. Empty means the current working directory.
	Root string
	// IncludedFilenames lists file stems (name without final extension) to keep.
	IncludedFilenames []string
	// IncludedExtensions lists extensions to keep, with or without the leading dot.
	IncludedExtensions []string
	// ExcludedDirs lists directories that are pruned together with their subtrees.
	ExcludedDirs []string
}

// Clone returns a deep copy so callers cannot mutate a scanner's configuration
// through shared slices.
func (c ScanConfig) Clone() ScanConfig {
	return ScanConfig{
		Root:               c.Root,
		IncludedFilenames:  cloneStrings(c.IncludedFilenames),
		IncludedExtensions: cloneStrings(c.IncludedExtensions),
		ExcludedDirs:       cloneStrings(c.ExcludedDirs),
	}
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
