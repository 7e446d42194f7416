// Package cli provides the command line interface.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codedump/internal/config"
	"github.com/temirov/codedump/internal/services/clipboard"
	"github.com/temirov/codedump/internal/services/snapshot"
	"github.com/temirov/codedump/internal/tokenizer"
	"github.com/temirov/codedump/internal/utils"
)

const (
	rootUse              = "codedump <directory>"
	rootShortDescription = "combine a directory into a single annotated text file"
	rootLongDescription  = `codedump walks a directory and writes one text file holding an annotated
directory listing followed by the contents of every included file.
Entries named in .gitignore, hidden directories, names containing "cache" and
files with five or more consecutive digits are always left out.
Use -e to restrict files to a list of extensions and -o to choose the output file.`
	rootUsageExample = `  # Write ../project.txt next to the project directory
  codedump ./project

  # Only Python and Markdown files, written to a chosen path
  codedump ./project -e py,md -o /tmp/project.txt

  # Copy the result to the clipboard and report its token count
  codedump ./project --copy --tokens`

	outputFlagName            = "output"
	outputFlagShorthand       = "o"
	extensionsFlagName        = "extensions"
	extensionsFlagShorthand   = "e"
	configFlagName            = "config"
	copyFlagName              = "copy"
	tokensFlagName            = "tokens"
	modelFlagName             = "model"
	verboseFlagName           = "verbose"
	outputFlagDescription     = "output file (default: <parent>/<directory>.txt)"
	extensionsFlagDescription = "comma-separated list of file extensions to include, e.g. py,md"
	configFlagDescription     = "configuration file (default: ./.codedump.yaml)"
	copyFlagDescription       = "copy the combined text to the system clipboard"
	tokensFlagDescription     = "report the estimated token count of the combined text"
	modelFlagDescription      = "tokenizer model used for token counting"
	verboseFlagDescription    = "enable debug logging"
	versionTemplate           = "codedump version: {{.Version}}\n"

	successMessageFormat   = "Files combined into: %s\n"
	tokenSummaryFormat     = "Tokens (%s): %d\n"
	clipboardSuccessFormat = "Copied %d bytes to clipboard\n"

	warningTokenCountMessage = "token counting failed"
	warningClipboardMessage  = "copying to clipboard failed"
	errorLoadConfigFormat    = "loading configuration: %w"
	errorLoggerFormat        = "initializing logger: %w"
	workingDirectoryErrorFmt = "unable to determine working directory: %w"
)

// environment holds the collaborators of one command execution.
type environment struct {
	stdout           io.Writer
	workingDirectory string
	homeDirectory    string
	copier           clipboard.Copier
	newCounter       func(tokenizer.Config) (tokenizer.Counter, string, error)
	newLogger        func(verbose bool) (*zap.Logger, error)
}

func defaultEnvironment() environment {
	return environment{
		stdout:     color.Output,
		copier:     clipboard.NewService(),
		newCounter: tokenizer.NewCounter,
		newLogger:  utils.NewApplicationLogger,
	}
}

// commandOptions stores flag values for the root command.
type commandOptions struct {
	outputPath  string
	extensions  []string
	configPath  string
	copyEnabled bool
	tokens      bool
	model       string
	verbose     bool
}

// Execute runs the codedump application.
func Execute() error {
	rootCommand := createRootCommand(defaultEnvironment())
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// createRootCommand builds the root Cobra command.
func createRootCommand(env environment) *cobra.Command {
	var options commandOptions

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription,
		Example:       rootUsageExample,
		Version:       utils.GetApplicationVersion(),
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return runCombine(command, env, options, arguments[0])
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)

	flagSet := rootCommand.Flags()
	flagSet.StringVarP(&options.outputPath, outputFlagName, outputFlagShorthand, "", outputFlagDescription)
	flagSet.StringSliceVarP(&options.extensions, extensionsFlagName, extensionsFlagShorthand, nil, extensionsFlagDescription)
	flagSet.StringVar(&options.configPath, configFlagName, "", configFlagDescription)
	registerBooleanFlag(flagSet, &options.copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(flagSet, &options.tokens, tokensFlagName, false, tokensFlagDescription)
	flagSet.StringVar(&options.model, modelFlagName, tokenizer.DefaultModel, modelFlagDescription)
	flagSet.BoolVar(&options.verbose, verboseFlagName, false, verboseFlagDescription)
	return rootCommand
}

// runCombine merges configuration with flags, writes the artifact and runs the
// optional clipboard and token consumers.
func runCombine(command *cobra.Command, env environment, options commandOptions, directoryArgument string) error {
	logger, loggerError := env.newLogger(options.verbose)
	if loggerError != nil {
		return fmt.Errorf(errorLoggerFormat, loggerError)
	}
	defer func() { _ = logger.Sync() }()

	workingDirectory := env.workingDirectory
	if workingDirectory == "" {
		currentDirectory, workingDirectoryError := os.Getwd()
		if workingDirectoryError != nil {
			return fmt.Errorf(workingDirectoryErrorFmt, workingDirectoryError)
		}
		workingDirectory = currentDirectory
	}

	applicationConfig, configError := config.LoadApplicationConfiguration(config.LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: options.configPath,
		HomeDirectory:    env.homeDirectory,
	})
	if configError != nil {
		return fmt.Errorf(errorLoadConfigFormat, configError)
	}
	settings := resolveSettings(command, options, applicationConfig)

	rootDirectory, rootError := resolveRootDirectory(workingDirectory, directoryArgument)
	if rootError != nil {
		return rootError
	}
	outputPath, outputError := resolveOutputPath(workingDirectory, rootDirectory, settings.outputPath)
	if outputError != nil {
		return outputError
	}

	result, runError := snapshot.Run(snapshot.Options{
		RootDirectory: rootDirectory,
		OutputPath:    outputPath,
		Extensions:    settings.extensions,
		RetainText:    settings.copyEnabled || settings.tokensEnabled,
		Logger:        logger,
	})
	if runError != nil {
		return runError
	}

	stdout := env.stdout
	if stdout == nil {
		stdout = command.OutOrStdout()
	}
	color.New(color.FgGreen).Fprintf(stdout, successMessageFormat, result.OutputPath)

	if settings.tokensEnabled {
		reportTokens(stdout, env, settings.model, result.Text, logger)
	}
	if settings.copyEnabled {
		if copyError := env.copier.Copy(result.Text); copyError != nil {
			logger.Warn(warningClipboardMessage, zap.Error(copyError))
		} else {
			fmt.Fprintf(stdout, clipboardSuccessFormat, len(result.Text))
		}
	}
	return nil
}

func reportTokens(stdout io.Writer, env environment, model string, text string, logger *zap.Logger) {
	counter, resolvedModel, counterError := env.newCounter(tokenizer.Config{Model: model})
	if counterError != nil {
		logger.Warn(warningTokenCountMessage, zap.String("model", model), zap.Error(counterError))
		return
	}
	countResult, countError := tokenizer.CountText(counter, text)
	if countError != nil {
		logger.Warn(warningTokenCountMessage, zap.String("model", resolvedModel), zap.Error(countError))
		return
	}
	color.New(color.FgCyan).Fprintf(stdout, tokenSummaryFormat, resolvedModel, countResult.Tokens)
}
