package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

const (
	warningSkipEntryMessage       = "skipping entry that cannot be inspected"
	warningUnreadableDirectoryMsg = "directory cannot be listed"

	errorAbsolutePathFormat = "getting absolute path for %s: %w"
)

// ExclusionPolicy decides whether an entry takes part in the snapshot.
type ExclusionPolicy interface {
	Decide(entry types.EntryDescriptor) types.Verdict
}

// TreeBuilder produces the structural listing of a directory.
type TreeBuilder struct {
	policy ExclusionPolicy
	logger *zap.Logger
}

// NewTreeBuilder returns a TreeBuilder applying policy. A nil logger discards diagnostics.
func NewTreeBuilder(policy ExclusionPolicy, logger *zap.Logger) *TreeBuilder {
	return &TreeBuilder{policy: policy, logger: utils.LoggerOrNop(logger)}
}

// subtreeCounts aggregates the verdicts below one directory, pruning excluded directories.
type subtreeCounts struct {
	includedFiles int
	excludedFiles int
	includedDirs  int
	excludedDirs  int
}

func (counts *subtreeCounts) add(other subtreeCounts) {
	counts.includedFiles += other.includedFiles
	counts.excludedFiles += other.excludedFiles
	counts.includedDirs += other.includedDirs
	counts.excludedDirs += other.excludedDirs
}

// BuildListing walks rootDirectory depth-first and returns its listing. Each level
// is sorted by name and lists included directories before included files. Every
// directory line carries the number of included files beneath it; those counts
// are computed bottom-up in the same pass and equal a separate pruned walk of
// each directory. Stats is nil when rootDirectory itself cannot be listed.
func (treeBuilder *TreeBuilder) BuildListing(rootDirectory string) (types.Listing, error) {
	absoluteRoot, absolutePathError := filepath.Abs(rootDirectory)
	if absolutePathError != nil {
		return types.Listing{}, fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absolutePathError)
	}

	entries, counts, listable := treeBuilder.buildLevel(absoluteRoot, absoluteRoot, 0)
	listing := types.Listing{Entries: entries}
	if listable {
		listing.Stats = &types.TraversalStats{
			IncludedFiles: counts.includedFiles,
			ExcludedFiles: counts.excludedFiles,
			IncludedDirs:  counts.includedDirs,
			ExcludedDirs:  counts.excludedDirs,
		}
	}
	return listing, nil
}

// buildLevel lists one directory. The boolean reports whether it could be read.
func (treeBuilder *TreeBuilder) buildLevel(rootDirectory string, directoryPath string, depth int) ([]types.ListingEntry, subtreeCounts, bool) {
	var counts subtreeCounts

	children, readError := describeChildren(rootDirectory, directoryPath, treeBuilder.warnSkipped)
	if readError != nil {
		treeBuilder.logger.Warn(warningUnreadableDirectoryMsg, zap.String("path", directoryPath), zap.Error(readError))
		return []types.ListingEntry{unreadableDirectoryEntry(depth, readError)}, counts, false
	}

	directories, files := partitionEntries(children)
	var entries []types.ListingEntry

	for _, directory := range directories {
		if treeBuilder.policy.Decide(directory) == types.VerdictExclude {
			counts.excludedDirs++
			continue
		}
		counts.includedDirs++

		var childEntries []types.ListingEntry
		var childCounts subtreeCounts
		if !directory.IsSymlink {
			childEntries, childCounts, _ = treeBuilder.buildLevel(rootDirectory, directory.AbsolutePath, depth+1)
		}
		counts.add(childCounts)

		entries = append(entries, types.ListingEntry{
			Kind:      types.ListingDirectory,
			Depth:     depth,
			Name:      directory.Name,
			FileCount: childCounts.includedFiles,
		})
		entries = append(entries, childEntries...)
	}

	for _, file := range files {
		if treeBuilder.policy.Decide(file) == types.VerdictExclude {
			counts.excludedFiles++
			continue
		}
		counts.includedFiles++
		entries = append(entries, types.ListingEntry{
			Kind:      types.ListingFile,
			Depth:     depth,
			Name:      file.Name,
			Extension: file.Extension,
			SizeBytes: file.SizeBytes,
		})
	}

	return entries, counts, true
}

func (treeBuilder *TreeBuilder) warnSkipped(path string, err error) {
	treeBuilder.logger.Warn(warningSkipEntryMessage, zap.String("path", path), zap.Error(err))
}

func unreadableDirectoryEntry(depth int, readError error) types.ListingEntry {
	if errors.Is(readError, fs.ErrPermission) {
		return types.ListingEntry{Kind: types.ListingPermissionDenied, Depth: depth}
	}
	return types.ListingEntry{Kind: types.ListingError, Depth: depth, Message: readError.Error()}
}
