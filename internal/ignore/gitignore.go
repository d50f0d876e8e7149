// Package ignore adapts .gitignore rules to the scanner's Ignorer hook.
package ignore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// FileName is the ignore file looked up at the search root
const FileName = ".gitignore"

// Matcher applies the rules of a single .gitignore file to canonical paths
// under the directory that holds it.
type Matcher struct {
	base    string
	source  string
	matcher gitignore.IgnoreMatcher
}

// Load reads <root>/.gitignore. It returns (nil, nil) when the root has no
// ignore file, so callers can pass the result straight to scanner.WithIgnorer
// after a nil check.
func Load(root string) (*Matcher, error) {
	base, err := canonicalDir(root)
	if err != nil {
		return nil, err
	}

	source := filepath.Join(base, FileName)
	info, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", source, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", source)
	}

	m, err := gitignore.NewGitIgnore(source, base)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", source, err)
	}
	return &Matcher{base: base, source: source, matcher: m}, nil
}

// Source returns the path of the loaded ignore file
func (m *Matcher) Source() string {
	return m.source
}

// Ignore reports whether path is excluded by the loaded rules. Paths outside
// the base directory, and the base itself, are never ignored.
func (m *Matcher) Ignore(path string, isDir bool) bool {
	if m == nil || m.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(m.base, path)
	if err != nil || rel == "." || rel == ".." || filepath.IsAbs(rel) || hasParentPrefix(rel) {
		return false
	}
	return m.matcher.Match(path, isDir)
}

func hasParentPrefix(rel string) bool {
	prefix := ".." + string(filepath.Separator)
	return len(rel) >= len(prefix) && rel[:len(prefix)] == prefix
}

// canonicalDir resolves root the same way the scanner resolves its root, so
// relative matches line up with the canonical paths handed to Ignore.
func canonicalDir(root string) (string, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", root, err)
	}
	return resolved, nil
}
