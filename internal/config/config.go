// Package config loads ignore files into pattern sets and reads application configuration.
package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/codedump/internal/utils"
)

const (
	commentPrefix = "#"

	// maxIgnoreLineBytes bounds a single ignore-file line.
	maxIgnoreLineBytes     = 64 << 20
	initialScanBufferBytes = 64 << 10

	errorOpenIgnoreFileFormat = "opening %s: %w"
	errorReadIgnoreFileFormat = "reading %s: %w"
)

// PatternSet is the ordered, immutable list of raw ignore patterns for one run.
// It always ends with the version-control directory pattern.
type PatternSet struct {
	patterns []string
}

// NewPatternSet builds a PatternSet from raw pattern strings and appends the
// version-control directory pattern.
func NewPatternSet(rawPatterns ...string) PatternSet {
	patterns := make([]string, 0, len(rawPatterns)+1)
	patterns = append(patterns, rawPatterns...)
	patterns = append(patterns, utils.GitDirectoryPattern)
	return PatternSet{patterns: patterns}
}

// Patterns returns a copy of the patterns in source order.
func (set PatternSet) Patterns() []string {
	return append([]string(nil), set.patterns...)
}

// Len reports the number of patterns, including the implicit version-control pattern.
func (set PatternSet) Len() int {
	return len(set.patterns)
}

// LoadPatternSet reads the .gitignore file in rootDirectory. A missing ignore file
// yields a set holding only the version-control directory pattern.
//
// #nosec G304
func LoadPatternSet(rootDirectory string) (PatternSet, error) {
	ignoreFilePath := filepath.Join(rootDirectory, utils.GitIgnoreFileName)
	rawPatterns, loadError := LoadIgnoreFilePatterns(ignoreFilePath)
	if loadError != nil {
		return PatternSet{}, loadError
	}
	return NewPatternSet(rawPatterns...), nil
}

// LoadIgnoreFilePatterns reads an ignore file and returns its non-empty, non-comment
// lines trimmed of surrounding whitespace. A missing file is not an error.
func LoadIgnoreFilePatterns(ignoreFilePath string) ([]string, error) {
	fileHandle, openFileError := os.Open(ignoreFilePath)
	if openFileError != nil {
		if os.IsNotExist(openFileError) {
			return nil, nil
		}
		return nil, fmt.Errorf(errorOpenIgnoreFileFormat, ignoreFilePath, openFileError)
	}
	defer func() {
		closeError := fileHandle.Close()
		if closeError != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close %s: %v\n", ignoreFilePath, closeError)
		}
	}()

	var ignorePatterns []string
	scanner := bufio.NewScanner(fileHandle)
	scanner.Buffer(make([]byte, 0, initialScanBufferBytes), maxIgnoreLineBytes)
	for scanner.Scan() {
		trimmedLine := strings.TrimSpace(scanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, commentPrefix) {
			continue
		}
		ignorePatterns = append(ignorePatterns, trimmedLine)
	}
	if scanError := scanner.Err(); scanError != nil {
		return nil, fmt.Errorf(errorReadIgnoreFileFormat, ignoreFilePath, scanError)
	}
	return ignorePatterns, nil
}
