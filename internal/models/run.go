package models

import (
	"time"

	"github.com/google/uuid"
)

// Search run status constants
const (
	RunStatusComplete = "COMPLETE" // Every path was readable
	RunStatusPartial  = "PARTIAL"  // Some paths were inaccessible
	RunStatusFailed   = "FAILED"   // The root itself could not be read
)

// SearchFilters records the filters a run was configured with
type SearchFilters struct {
	Filenames    []string `json:"filenames,omitempty" yaml:"filenames,omitempty"`
	Extensions   []string `json:"extensions,omitempty" yaml:"extensions,omitempty"`
	ExcludedDirs []string `json:"excluded_dirs,omitempty" yaml:"excluded_dirs,omitempty"`
}

// SearchRun is the record of one completed search, shared by reports, logs and history
type SearchRun struct {
	ID           string        `json:"id" yaml:"id"`
	Root         string        `json:"root" yaml:"root"`
	StartedAt    time.Time     `json:"started_at" yaml:"started_at"`
	Duration     time.Duration `json:"duration_ns" yaml:"duration"`
	Filters      SearchFilters `json:"filters" yaml:"filters"`
	Files        []string      `json:"files" yaml:"files"`
	Inaccessible []string      `json:"inaccessible" yaml:"inaccessible"`
	VisitedDirs  int           `json:"visited_dirs" yaml:"visited_dirs"`
	RootResolved bool          `json:"root_resolved" yaml:"root_resolved"`
}

// NewRunID returns a fresh identifier for a search run
func NewRunID() string {
	return uuid.New().String()
}

// Status summarises how complete the run was
func (r *SearchRun) Status() string {
	switch {
	case !r.RootResolved || (r.VisitedDirs == 0 && len(r.Inaccessible) > 0):
		return RunStatusFailed
	case len(r.Inaccessible) > 0:
		return RunStatusPartial
	default:
		return RunStatusComplete
	}
}

// FileCount returns the number of matched files
func (r *SearchRun) FileCount() int {
	return len(r.Files)
}

// InaccessibleCount returns the number of inaccessible paths
func (r *SearchRun) InaccessibleCount() int {
	return len(r.Inaccessible)
}
