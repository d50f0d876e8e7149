package scanner

import (
	"fmt"
	"os"
	"path/filepath"
)

// Logger receives traversal diagnostics. Implementations must not influence the walk:
// swapping in a no-op logger yields the same result.
type Logger interface {
	LogWarn(message string)
	LogDebug(message string)
}

// Ignorer reports whether a canonical path should be left out of the search.
// Ignored directories are pruned; ignored files are skipped.
type Ignorer interface {
	Ignore(path string, isDir bool) bool
}

// Option configures optional collaborators of a Scanner.
type Option func(*Scanner)

// WithLogger sets the diagnostic sink. A nil logger discards diagnostics.
func WithLogger(logger Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// WithIgnorer sets an additional ignore matcher consulted for every entry.
func WithIgnorer(ignorer Ignorer) Option {
	return func(s *Scanner) {
		s.ignorer = ignorer
	}
}

// WithWorkingDir replaces os.Getwd as the source of the working directory used for
// an unset root and for resolving relative paths.
func WithWorkingDir(getwd func() (string, error)) Option {
	return func(s *Scanner) {
		if getwd != nil {
			s.getwd = getwd
		}
	}
}

// Scanner searches a directory tree for files matching its ScanConfig.
// A Scanner is not safe for concurrent configuration changes, but each Search call
// owns its own traversal state.
type Scanner struct {
	config  ScanConfig
	logger  Logger
	ignorer Ignorer
	getwd   func() (string, error)
}

// New creates a Scanner with the default configuration: no root, no filters and no
// exclusions.
func New(opts ...Option) *Scanner {
	return NewWithConfig(ScanConfig{}, opts...)
}

// NewWithConfig creates a Scanner with a copy of cfg.
func NewWithConfig(cfg ScanConfig, opts ...Option) *Scanner {
	s := &Scanner{
		config: cfg.Clone(),
		getwd:  os.Getwd,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns a copy of the current configuration.
func (s *Scanner) Config() ScanConfig {
	return s.config.Clone()
}

// SetRoot stores the starting directory as given. It is resolved at search time.
func (s *Scanner) SetRoot(path string) {
	s.config.Root = path
}

// SetIncludedFilenames replaces the filename filter.
func (s *Scanner) SetIncludedFilenames(names []string) {
	s.config.IncludedFilenames = cloneStrings(names)
}

// SetIncludedExtensions replaces the extension filter.
func (s *Scanner) SetIncludedExtensions(exts []string) {
	s.config.IncludedExtensions = cloneStrings(exts)
}

// SetExcludedDirs replaces the excluded directory set.
func (s *Scanner) SetExcludedDirs(paths []string) {
	s.config.ExcludedDirs = cloneStrings(paths)
}

// Outcome is the structured result of a search.
type Outcome struct {
	// Root is the canonical root directory, empty if it could not be resolved.
	Root string
	// Files holds canonical file paths in discovery order, without duplicates.
	Files []string
	// Inaccessible holds every path that could not be resolved or read.
	Inaccessible []*PathError
	// VisitedDirs counts the directories whose entries were read.
	VisitedDirs int
}

// InaccessiblePaths returns the paths of all inaccessible entries.
func (o *Outcome) InaccessiblePaths() []string {
	paths := make([]string, 0, len(o.Inaccessible))
	for _, pe := range o.Inaccessible {
		paths = append(paths, pe.Path)
	}
	return paths
}

// SearchFiles runs a search and returns only the matched canonical file paths.
func (s *Scanner) SearchFiles() []string {
	return s.Search().Files
}

// Search walks the tree from the configured root and returns the full outcome.
// It never fails: unreadable branches are reported and skipped.
func (s *Scanner) Search() *Outcome {
	w := &walk{
		scanner: s,
		config:  s.config,
		visited: make(map[string]struct{}),
		seen:    make(map[string]struct{}),
		outcome: &Outcome{Files: make([]string, 0)},
	}

	root, err := s.rootPath()
	if err != nil {
		w.inaccessible(OpResolve, ".", err)
		return w.outcome
	}

	w.excluded = w.resolveExcluded()

	canonical, ok := w.canonicalize(root)
	if !ok {
		return w.outcome
	}
	w.outcome.Root = canonical
	w.enterDir(canonical)

	return w.outcome
}

// rootPath returns the configured root or the working directory when unset.
func (s *Scanner) rootPath() (string, error) {
	if s.config.Root != "" {
		return s.config.Root, nil
	}
	wd, err := s.getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return wd, nil
}

// absolute makes path absolute against the scanner's working directory.
func (s *Scanner) absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := s.getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return filepath.Join(wd, path), nil
}

func (s *Scanner) warn(message string) {
	if s.logger != nil {
		s.logger.LogWarn(message)
	}
}

func (s *Scanner) debug(message string) {
	if s.logger != nil {
		s.logger.LogDebug(message)
	}
}

// walk is the per-call traversal state.
type walk struct {
	scanner  *Scanner
	config   ScanConfig
	excluded map[string]struct{}
	visited  map[string]struct{}
	seen     map[string]struct{}
	outcome  *Outcome
}

// canonicalize resolves path to its absolute, symlink-free form. Failures are
// reported and recorded.
func (w *walk) canonicalize(path string) (string, bool) {
	abs, err := w.scanner.absolute(path)
	if err != nil {
		w.inaccessible(OpResolve, path, err)
		return "", false
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		w.inaccessible(OpResolve, path, err)
		return "", false
	}
	return resolved, true
}

func (w *walk) inaccessible(op, path string, err error) {
	pe := &PathError{Op: op, Path: path, Err: err}
	w.outcome.Inaccessible = append(w.outcome.Inaccessible, pe)
	w.scanner.warn(fmt.Sprintf("Path Inaccessible: %s: %v", path, err))
}

// resolveExcluded canonicalizes the excluded directories once per search.
// Entries that cannot be resolved cannot match an existing directory and are dropped.
func (w *walk) resolveExcluded() map[string]struct{} {
	excluded := make(map[string]struct{}, len(w.config.ExcludedDirs))
	for _, dir := range w.config.ExcludedDirs {
		abs, err := w.scanner.absolute(dir)
		if err != nil {
			w.scanner.debug(fmt.Sprintf("Ignoring excluded directory %s: %v", dir, err))
			continue
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			w.scanner.debug(fmt.Sprintf("Ignoring excluded directory %s: %v", dir, err))
			continue
		}
		excluded[resolved] = struct{}{}
	}
	return excluded
}

// isExcluded reports whether dir or any of its ancestors is an excluded directory.
func (w *walk) isExcluded(dir string) bool {
	if len(w.excluded) == 0 {
		return false
	}
	for current := dir; ; {
		if _, ok := w.excluded[current]; ok {
			return true
		}
		parent := filepath.Dir(current)
		if parent == current {
			return false
		}
		current = parent
	}
}

// enterDir descends into an already canonical directory.
func (w *walk) enterDir(dir string) {
	if w.isExcluded(dir) {
		w.scanner.debug(fmt.Sprintf("Skipping excluded directory: %s", dir))
		return
	}
	if _, ok := w.visited[dir]; ok {
		w.scanner.debug(fmt.Sprintf("Skipping visited directory: %s", dir))
		return
	}
	w.visited[dir] = struct{}{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.inaccessible(OpRead, dir, err)
		return
	}
	w.outcome.VisitedDirs++

	for _, entry := range entries {
		path, ok := w.canonicalize(filepath.Join(dir, entry.Name()))
		if !ok {
			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			w.inaccessible(OpStat, path, err)
			continue
		}

		switch {
		case info.Mode().IsRegular():
			w.visitFile(path)
		case info.IsDir():
			if w.ignored(path, true) {
				continue
			}
			w.enterDir(path)
		}
		// Sockets, devices and pipes are neither files nor directories.
	}
}

func (w *walk) visitFile(path string) {
	if w.ignored(path, false) {
		return
	}
	if !w.config.matchesFilters(filepath.Base(path)) {
		return
	}
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.outcome.Files = append(w.outcome.Files, path)
}

func (w *walk) ignored(path string, isDir bool) bool {
	if w.scanner.ignorer == nil || !w.scanner.ignorer.Ignore(path, isDir) {
		return false
	}
	w.scanner.debug(fmt.Sprintf("Skipping ignored path: %s", path))
	return true
}
