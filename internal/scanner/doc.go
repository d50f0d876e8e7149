// Package scanner implements the recursive file search at the heart of filesearch.
//
// A Scanner walks a directory tree depth-first from a configured root and returns the
// canonical paths of every regular file that passes the filename and extension filters,
// while pruning configured excluded directories.
//
// # Configuration
//
// ScanConfig holds the four knobs of a run:
//   - Root: starting directory (empty = current working directory)
//   - IncludedFilenames: file stems to keep, compared case-insensitively (empty = all)
//   - IncludedExtensions: extensions to keep; "txt", ".txt" and "TXT" are equivalent (empty = all)
//   - ExcludedDirs: directories that are never entered, nor is anything beneath them
//
// Setters only store values. Paths are resolved when Search runs, so a root that does
// not exist is reported at search time rather than rejected up front.
//
// # Canonical paths
//
// Every directory and file is resolved with filepath.Abs and filepath.EvalSymlinks
// before it is used. The canonical path is the identity of an entry:
//   - a directory whose canonical path was already entered during the run is pruned,
//     which breaks symlink cycles
//   - a file reachable through several links appears in the result once
//
// # Error tolerance
//
// Resolution and read failures never abort a search. Each failure is reported to the
// Logger as a "Path Inaccessible" warning, recorded in Outcome.Inaccessible, and the
// branch contributes no files. SearchFiles drops that detail; use Search when the caller
// needs to tell "nothing matched" apart from "nothing was readable".
//
// # Usage
//
//	s := scanner.New(scanner.WithLogger(log))
//	s.SetRoot("./src")
//	s.SetIncludedExtensions([]string{"go", ".md"})
//	s.SetExcludedDirs([]string{"./src/vendor"})
//	for _, path := range s.SearchFiles() {
//	    fmt.Println(path)
//	}
//
// The walk is single-threaded and recursive, so stack depth follows directory nesting.
package scanner
