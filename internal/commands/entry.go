// Package commands contains the traversal logic that feeds the snapshot artifact:
// the structural listing with its statistics and the content walk.
package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

const (
	// errorStatPathFormat is used when file information cannot be retrieved.
	errorStatPathFormat = "stat %s: %w"
)

// DescribeEntry stats absolutePath, following symbolic links, and derives the
// descriptor queried by the exclusion policy.
func DescribeEntry(rootDirectory string, absolutePath string) (types.EntryDescriptor, error) {
	info, statError := os.Stat(absolutePath)
	if statError != nil {
		return types.EntryDescriptor{}, fmt.Errorf(errorStatPathFormat, absolutePath, statError)
	}
	name := filepath.Base(absolutePath)
	descriptor := types.EntryDescriptor{
		AbsolutePath: absolutePath,
		RelativePath: utils.RelativePathOrSelf(absolutePath, rootDirectory),
		IsDirectory:  info.IsDir(),
		IsRegular:    info.Mode().IsRegular(),
		Name:         name,
		ModTime:      info.ModTime(),
	}
	if linkInfo, linkError := os.Lstat(absolutePath); linkError == nil {
		descriptor.IsSymlink = linkInfo.Mode()&os.ModeSymlink != 0
	}
	if !descriptor.IsDirectory {
		descriptor.Extension = utils.FileExtension(name)
		descriptor.SizeBytes = info.Size()
	}
	return descriptor, nil
}

// describeChildren lists directoryPath in name order and describes each child.
// Children that cannot be described are passed to skip and left out.
func describeChildren(rootDirectory string, directoryPath string, skip func(path string, err error)) ([]types.EntryDescriptor, error) {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		return nil, readError
	}
	descriptors := make([]types.EntryDescriptor, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		descriptor, describeError := DescribeEntry(rootDirectory, childPath)
		if describeError != nil {
			skip(childPath, describeError)
			continue
		}
		descriptors = append(descriptors, descriptor)
	}
	return descriptors, nil
}

// partitionEntries splits descriptors into directories and files, preserving order.
func partitionEntries(descriptors []types.EntryDescriptor) ([]types.EntryDescriptor, []types.EntryDescriptor) {
	var directories []types.EntryDescriptor
	var files []types.EntryDescriptor
	for _, descriptor := range descriptors {
		if descriptor.IsDirectory {
			directories = append(directories, descriptor)
		} else {
			files = append(files, descriptor)
		}
	}
	return directories, files
}
