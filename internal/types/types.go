// Package types defines every cross‑package data structure used by the codedump CLI.
package types

import "time"

// Verdict is the include/exclude decision produced for one filesystem entry.
type Verdict int

const (
	VerdictInclude Verdict = iota
	VerdictExclude
)

// String returns a lower-case label for the verdict.
func (verdict Verdict) String() string {
	if verdict == VerdictExclude {
		return "exclude"
	}
	return "include"
}

// EntryDescriptor describes one filesystem entry as seen by the exclusion policy.
// Descriptors are rebuilt on every visit and never cached across walks.
type EntryDescriptor struct {
	AbsolutePath string
	RelativePath string
	IsDirectory  bool
	IsSymlink    bool
	IsRegular    bool
	Name         string
	Extension    string
	SizeBytes    int64
	ModTime      time.Time
}

// FilterConfig holds the run-wide inputs of the exclusion policy.
type FilterConfig struct {
	RootDirectory      string
	OutputArtifactPath string
	AllowedExtensions  []string
}

// TraversalStats aggregates counts collected by the structural walk.
type TraversalStats struct {
	IncludedFiles int
	ExcludedFiles int
	IncludedDirs  int
	ExcludedDirs  int
}

// TotalFiles returns the sum of included and excluded files.
func (stats TraversalStats) TotalFiles() int {
	return stats.IncludedFiles + stats.ExcludedFiles
}

// ListingEntryKind identifies what a structural listing line represents.
type ListingEntryKind int

const (
	ListingDirectory ListingEntryKind = iota
	ListingFile
	ListingPermissionDenied
	ListingError
)

// ListingEntry is one line of the structural listing before rendering.
type ListingEntry struct {
	Kind      ListingEntryKind
	Depth     int
	Name      string
	Extension string
	SizeBytes int64
	FileCount int
	Message   string
}

// Listing is the structural listing of a root directory.
// Stats is nil when the root directory itself could not be listed.
type Listing struct {
	Entries []ListingEntry
	Stats   *TraversalStats
}

// BodyKind classifies the body emitted for one file.
type BodyKind int

const (
	BodyText BodyKind = iota
	BodyBinary
	BodyError
)

// FileContent is one file section produced by the content walk.
type FileContent struct {
	AbsolutePath string
	RelativePath string
	SizeBytes    int64
	ModTime      time.Time
	Kind         BodyKind
	Body         string
	ErrorMessage string
}
