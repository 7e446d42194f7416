package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/temirov/codedump/internal/config"
	"github.com/temirov/codedump/internal/services/snapshot"
	"github.com/temirov/codedump/internal/tokenizer"
	"github.com/temirov/codedump/internal/utils"
)

const (
	errorRootDirectoryFormat = "%w: %s"
	errorOutputPathFormat    = "resolving output path %s: %w"
)

// runSettings is the effective configuration after flags override configuration files.
type runSettings struct {
	outputPath    string
	extensions    []string
	copyEnabled   bool
	tokensEnabled bool
	model         string
}

// resolveSettings applies flags the user set explicitly on top of the configuration file values.
func resolveSettings(command *cobra.Command, options commandOptions, applicationConfig config.ApplicationConfiguration) runSettings {
	flagSet := command.Flags()
	settings := runSettings{
		outputPath: applicationConfig.Output,
		extensions: applicationConfig.Extensions,
		model:      tokenizer.DefaultModel,
	}
	if applicationConfig.Copy != nil {
		settings.copyEnabled = *applicationConfig.Copy
	}
	if applicationConfig.Tokens.Enabled != nil {
		settings.tokensEnabled = *applicationConfig.Tokens.Enabled
	}
	if applicationConfig.Tokens.Model != "" {
		settings.model = applicationConfig.Tokens.Model
	}

	if flagSet.Changed(outputFlagName) {
		settings.outputPath = options.outputPath
	}
	if flagSet.Changed(extensionsFlagName) {
		settings.extensions = utils.NormalizeExtensions(options.extensions)
	}
	if flagSet.Changed(copyFlagName) {
		settings.copyEnabled = options.copyEnabled
	}
	if flagSet.Changed(tokensFlagName) {
		settings.tokensEnabled = options.tokens
	}
	if flagSet.Changed(modelFlagName) {
		settings.model = options.model
	}
	return settings
}

// resolveRootDirectory returns the absolute, symlink-free form of directoryArgument.
func resolveRootDirectory(workingDirectory string, directoryArgument string) (string, error) {
	absolutePath := absoluteFrom(workingDirectory, directoryArgument)
	resolvedPath, resolveError := filepath.EvalSymlinks(absolutePath)
	if resolveError != nil {
		return "", fmt.Errorf(errorRootDirectoryFormat, snapshot.ErrInvalidRoot, directoryArgument)
	}
	info, statError := os.Stat(resolvedPath)
	if statError != nil || !info.IsDir() {
		return "", fmt.Errorf(errorRootDirectoryFormat, snapshot.ErrInvalidRoot, directoryArgument)
	}
	return resolvedPath, nil
}

// resolveOutputPath returns the artifact location. Without an explicit path the
// artifact is placed beside rootDirectory and named after it. Symlinks in an
// existing parent directory are resolved so the artifact can be recognized
// inside the tree.
func resolveOutputPath(workingDirectory string, rootDirectory string, requestedPath string) (string, error) {
	if requestedPath == "" {
		return filepath.Join(filepath.Dir(rootDirectory), filepath.Base(rootDirectory)+utils.OutputFileExtension), nil
	}
	absolutePath := absoluteFrom(workingDirectory, requestedPath)
	parentDirectory := filepath.Dir(absolutePath)
	resolvedParent, resolveError := filepath.EvalSymlinks(parentDirectory)
	if resolveError != nil {
		if os.IsNotExist(resolveError) {
			return absolutePath, nil
		}
		return "", fmt.Errorf(errorOutputPathFormat, requestedPath, resolveError)
	}
	return filepath.Join(resolvedParent, filepath.Base(absolutePath)), nil
}

func absoluteFrom(workingDirectory string, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(workingDirectory, path)
}
