// Package utils contains general helper functions used across the codedump tool.
package utils

import (
	"path/filepath"
	"strings"
)

// DeduplicatePatterns removes duplicate values from a slice while preserving order.
// The first occurrence of each unique value is kept.
func DeduplicatePatterns(patterns []string) []string {
	encounteredPatterns := make(map[string]struct{})
	result := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if _, exists := encounteredPatterns[pattern]; !exists {
			encounteredPatterns[pattern] = struct{}{}
			result = append(result, pattern)
		}
	}
	return result
}

// RelativePathOrSelf calculates the relative path from root to fullPath using the
// platform separator. Returns the cleaned fullPath if relative calculation fails and
// "." if fullPath and root resolve to the same directory.
func RelativePathOrSelf(fullPath, root string) string {
	cleanPath := filepath.Clean(fullPath)
	cleanRoot := filepath.Clean(root)
	if cleanPath == cleanRoot {
		return "."
	}
	relativePath, relErr := filepath.Rel(cleanRoot, cleanPath)
	if relErr != nil {
		return cleanPath
	}
	return relativePath
}

// FileExtension returns the lower-cased extension of name without the dot.
// Leading dots are part of the stem, so ".bashrc" has no extension while
// "archive.tar.gz" has "gz".
func FileExtension(name string) string {
	stem := strings.TrimLeft(name, ".")
	dotIndex := strings.LastIndex(stem, ".")
	if dotIndex < 0 {
		return ""
	}
	return strings.ToLower(stem[dotIndex+1:])
}

// NormalizeExtensions converts a list of user supplied extensions into the
// allow-list form: trimmed, lower-cased, without a leading dot, deduplicated.
func NormalizeExtensions(values []string) []string {
	normalized := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			extension := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(part), "."))
			if extension == "" {
				continue
			}
			normalized = append(normalized, extension)
		}
	}
	return DeduplicatePatterns(normalized)
}
