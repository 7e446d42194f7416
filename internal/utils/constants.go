package utils

const (
	// GitIgnoreFileName is the name of the ignore file read from the root directory.
	GitIgnoreFileName = ".gitignore"
	// GitDirectoryPattern is appended to every pattern set so version-control metadata is skipped.
	GitDirectoryPattern = ".git/"
	// ConfigFileName is the file name of the global configuration inside GlobalConfigDirectoryName.
	ConfigFileName = "config.yaml"
	// LocalConfigFileName is the configuration file discovered in the working directory.
	LocalConfigFileName = ".codedump.yaml"
	// GlobalConfigDirectoryName is the directory under the user's home holding the global configuration.
	GlobalConfigDirectoryName = ".codedump"
	// OutputFileExtension is appended to the directory name to form the default artifact path.
	OutputFileExtension = ".txt"

	// LoggerInitializationFailedMessageFormat reports a logger construction failure.
	LoggerInitializationFailedMessageFormat = "failed to initialize logger: %w"
	// ApplicationExecutionFailedMessage prefixes fatal execution errors.
	ApplicationExecutionFailedMessage = "codedump failed"
)
