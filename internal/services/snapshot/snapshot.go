// Package snapshot produces the flattened directory artifact: it validates the
// root, assembles the exclusion policy, and streams the listing, the rules and
// every included file into the output path.
package snapshot

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/temirov/codedump/internal/commands"
	"github.com/temirov/codedump/internal/config"
	"github.com/temirov/codedump/internal/filter"
	"github.com/temirov/codedump/internal/output"
	"github.com/temirov/codedump/internal/types"
	"github.com/temirov/codedump/internal/utils"
)

// ErrInvalidRoot reports a root directory that is missing or not a directory.
var ErrInvalidRoot = errors.New("invalid root directory")

const (
	outputDirectoryPermissions = 0o755

	errorInvalidRootFormat      = "%w: %s"
	errorLoadPatternsFormat     = "loading ignore patterns for %s: %w"
	errorCreateOutputDirFormat  = "creating output directory %s: %w"
	errorCreateOutputFormat     = "creating output file %s: %w"
	errorWriteSectionFormat     = "writing %s: %w"
	errorFlushOutputFormat      = "flushing output file %s: %w"
	errorCloseOutputFormat      = "closing output file %s: %w"
	errorBuildListingFormat     = "building listing for %s: %w"
	sectionHeader               = "header"
	sectionListing              = "listing"
	sectionRules                = "rules"
	sectionFiles                = "file sections"
	debugSnapshotStartedMessage = "building snapshot"
	debugSnapshotDoneMessage    = "snapshot written"
)

// Options configures one snapshot run.
type Options struct {
	// RootDirectory is the directory to flatten.
	RootDirectory string
	// OutputPath is where the artifact is written. It is created or truncated
	// before traversal, so an artifact inside RootDirectory excludes itself.
	OutputPath string
	// Extensions is the normalized allow-list. Empty admits every extension.
	Extensions []string
	// RetainText keeps a copy of the artifact in Result.Text.
	RetainText bool
	Logger     *zap.Logger
	// Now supplies the generation timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result summarizes a completed run.
type Result struct {
	OutputPath string
	// Stats is nil when the root directory could not be listed.
	Stats *types.TraversalStats
	Files int
	Bytes int64
	Text  string
}

// Run writes the artifact described by options. Only configuration problems and
// output write failures are returned; unreadable entries are reported inside the
// artifact and through the logger.
func Run(options Options) (Result, error) {
	logger := utils.LoggerOrNop(options.Logger)
	now := options.Now
	if now == nil {
		now = time.Now
	}

	rootDirectory, rootError := validateRoot(options.RootDirectory)
	if rootError != nil {
		return Result{}, rootError
	}
	outputPath, absoluteError := filepath.Abs(options.OutputPath)
	if absoluteError != nil {
		return Result{}, fmt.Errorf(errorCreateOutputFormat, options.OutputPath, absoluteError)
	}

	patterns, patternsError := config.LoadPatternSet(rootDirectory)
	if patternsError != nil {
		return Result{}, fmt.Errorf(errorLoadPatternsFormat, rootDirectory, patternsError)
	}
	policy := filter.NewPolicy(types.FilterConfig{
		RootDirectory:      rootDirectory,
		OutputArtifactPath: outputPath,
		AllowedExtensions:  options.Extensions,
	}, patterns, logger)

	logger.Debug(debugSnapshotStartedMessage,
		zap.String("root", rootDirectory),
		zap.String("output", outputPath),
		zap.Int("patterns", patterns.Len()),
		zap.Strings("extensions", options.Extensions))

	if mkdirError := os.MkdirAll(filepath.Dir(outputPath), outputDirectoryPermissions); mkdirError != nil {
		return Result{}, fmt.Errorf(errorCreateOutputDirFormat, filepath.Dir(outputPath), mkdirError)
	}
	outputFile, createError := os.Create(outputPath)
	if createError != nil {
		return Result{}, fmt.Errorf(errorCreateOutputFormat, outputPath, createError)
	}

	result := Result{OutputPath: outputPath}
	writeError := writeArtifact(outputFile, rootDirectory, policy, options, now(), logger, &result)
	closeError := outputFile.Close()
	if writeError != nil {
		return Result{}, writeError
	}
	if closeError != nil {
		return Result{}, fmt.Errorf(errorCloseOutputFormat, outputPath, closeError)
	}

	logger.Debug(debugSnapshotDoneMessage,
		zap.String("output", outputPath),
		zap.Int("files", result.Files),
		zap.Int64("bytes", result.Bytes))
	return result, nil
}

func validateRoot(rootDirectory string) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootDirectory)
	if absoluteError != nil {
		return "", fmt.Errorf(errorInvalidRootFormat, ErrInvalidRoot, rootDirectory)
	}
	info, statError := os.Stat(absoluteRoot)
	if statError != nil || !info.IsDir() {
		return "", fmt.Errorf(errorInvalidRootFormat, ErrInvalidRoot, rootDirectory)
	}
	return absoluteRoot, nil
}

func writeArtifact(destination io.Writer, rootDirectory string, policy *filter.Policy, options Options, generatedAt time.Time, logger *zap.Logger, result *Result) error {
	bufferedWriter := bufio.NewWriter(destination)
	counter := &countingWriter{}
	writers := []io.Writer{bufferedWriter, counter}
	var textBuilder *strings.Builder
	if options.RetainText {
		textBuilder = &strings.Builder{}
		writers = append(writers, textBuilder)
	}
	artifactWriter := output.NewArtifactWriter(io.MultiWriter(writers...), options.Extensions)
	outputPath := result.OutputPath

	if headerError := artifactWriter.WriteHeader(filepath.Base(rootDirectory), generatedAt); headerError != nil {
		return fmt.Errorf(errorWriteSectionFormat, sectionHeader, headerError)
	}

	listing, listingError := commands.NewTreeBuilder(policy, logger).BuildListing(rootDirectory)
	if listingError != nil {
		return fmt.Errorf(errorBuildListingFormat, rootDirectory, listingError)
	}
	if writeError := artifactWriter.WriteListing(listing); writeError != nil {
		return fmt.Errorf(errorWriteSectionFormat, sectionListing, writeError)
	}
	if writeError := artifactWriter.WriteRules(); writeError != nil {
		return fmt.Errorf(errorWriteSectionFormat, sectionRules, writeError)
	}

	contentWalker := commands.NewContentWalker(policy, logger)
	walkError := contentWalker.Walk(rootDirectory, func(file types.FileContent) error {
		result.Files++
		return artifactWriter.WriteFile(file)
	})
	if walkError != nil {
		return fmt.Errorf(errorWriteSectionFormat, sectionFiles, walkError)
	}

	if flushError := bufferedWriter.Flush(); flushError != nil {
		return fmt.Errorf(errorFlushOutputFormat, outputPath, flushError)
	}

	result.Stats = listing.Stats
	result.Bytes = counter.count
	if textBuilder != nil {
		result.Text = textBuilder.String()
	}
	return nil
}

type countingWriter struct {
	count int64
}

func (writer *countingWriter) Write(payload []byte) (int, error) {
	writer.count += int64(len(payload))
	return len(payload), nil
}
