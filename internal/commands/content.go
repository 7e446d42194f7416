package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

const (
	warningBinaryFileMessage = "skipping binary file contents"
	warningFileReadMessage   = "failed to read file"
	warningIrregularFileMsg  = "skipping contents of a file that is not a regular file"
)

// ContentVisitor receives each FileContent discovered during traversal.
// Returning an error stops the walk.
type ContentVisitor func(types.FileContent) error

// ContentWalker emits the contents of every included file.
type ContentWalker struct {
	policy ExclusionPolicy
	logger *zap.Logger
}

// NewContentWalker returns a ContentWalker applying policy. A nil logger discards diagnostics.
func NewContentWalker(policy ExclusionPolicy, logger *zap.Logger) *ContentWalker {
	return &ContentWalker{policy: policy, logger: utils.LoggerOrNop(logger)}
}

// Walk visits rootDirectory in pre-order: the included files of a directory in
// name order, then each included subdirectory. Excluded directories are never
// entered. Unreadable directories, undecodable files and read failures are
// logged and reported in place; only a visitor error ends the walk early.
func (contentWalker *ContentWalker) Walk(rootDirectory string, visitor ContentVisitor) error {
	absoluteRoot, absolutePathError := filepath.Abs(rootDirectory)
	if absolutePathError != nil {
		return fmt.Errorf(errorAbsolutePathFormat, rootDirectory, absolutePathError)
	}
	return contentWalker.walkDirectory(absoluteRoot, absoluteRoot, visitor)
}

func (contentWalker *ContentWalker) walkDirectory(rootDirectory string, directoryPath string, visitor ContentVisitor) error {
	children, readError := describeChildren(rootDirectory, directoryPath, contentWalker.warnSkipped)
	if readError != nil {
		contentWalker.logger.Warn(warningUnreadableDirectoryMsg, zap.String("path", directoryPath), zap.Error(readError))
		return nil
	}

	directories, files := partitionEntries(children)

	for _, file := range files {
		if contentWalker.policy.Decide(file) == types.VerdictExclude {
			continue
		}
		if !file.IsRegular {
			contentWalker.logger.Warn(warningIrregularFileMsg, zap.String("path", file.RelativePath))
			continue
		}
		if visitor == nil {
			continue
		}
		if visitError := visitor(contentWalker.readFile(file)); visitError != nil {
			return visitError
		}
	}

	for _, directory := range directories {
		if contentWalker.policy.Decide(directory) == types.VerdictExclude || directory.IsSymlink {
			continue
		}
		if walkError := contentWalker.walkDirectory(rootDirectory, directory.AbsolutePath, visitor); walkError != nil {
			return walkError
		}
	}
	return nil
}

// readFile loads one file body. Invalid UTF-8 yields a binary body and read
// failures yield an error body; neither is returned as an error.
//
// #nosec G304
func (contentWalker *ContentWalker) readFile(file types.EntryDescriptor) types.FileContent {
	content := types.FileContent{
		AbsolutePath: file.AbsolutePath,
		RelativePath: file.RelativePath,
		SizeBytes:    file.SizeBytes,
		ModTime:      file.ModTime,
	}

	fileBytes, readError := os.ReadFile(file.AbsolutePath)
	if readError != nil {
		contentWalker.logger.Warn(warningFileReadMessage, zap.String("path", file.RelativePath), zap.Error(readError))
		content.Kind = types.BodyError
		content.ErrorMessage = readError.Error()
		return content
	}

	text, isText := utils.DecodeText(fileBytes)
	if !isText {
		contentWalker.logger.Info(warningBinaryFileMessage, zap.String("path", file.RelativePath))
		content.Kind = types.BodyBinary
		return content
	}
	content.Kind = types.BodyText
	content.Body = text
	return content
}

func (contentWalker *ContentWalker) warnSkipped(path string, err error) {
	contentWalker.logger.Warn(warningSkipEntryMessage, zap.String("path", path), zap.Error(err))
}
