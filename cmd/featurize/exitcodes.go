package main

// Exit codes used by all featurize commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing capability, invalid config)
	ExitDataError   = 3 // Data error (malformed input file)
	ExitNoProvider  = 4 // Descriptor service not available
)
