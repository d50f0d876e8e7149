package scanner

import "strings"

// splitName splits a file name into its stem and extension (without the dot).
// A leading dot does not start an extension, so ".bashrc" has no extension, and a
// trailing dot yields an empty extension.
func splitName(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i+1:]
}

// normalizeExtension trims and lower-cases ext and inserts a leading dot if missing.
// Blank input stays blank.
func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// matchesFilename reports whether the stem of name is one of the included names.
// An empty include list matches everything.
func matchesFilename(name string, included []string) bool {
	if len(included) == 0 {
		return true
	}
	stem, _ := splitName(name)
	for _, want := range included {
		if strings.EqualFold(stem, want) {
			return true
		}
	}
	return false
}

// matchesExtension reports whether the extension of name is one of the included
// extensions after normalization. An empty include list matches everything; a file
// without an extension never matches a non-empty list.
func matchesExtension(name string, included []string) bool {
	if len(included) == 0 {
		return true
	}
	_, ext := splitName(name)
	fileExt := normalizeExtension(ext)
	if fileExt == "" {
		return false
	}
	for _, want := range included {
		if normalizeExtension(want) == fileExt {
			return true
		}
	}
	return false
}

// matchesFilters combines the filename and extension filters.
func (c ScanConfig) matchesFilters(name string) bool {
	return matchesFilename(name, c.IncludedFilenames) && matchesExtension(name, c.IncludedExtensions)
}
