package main

// Flag names for Viper binding
const (
	// Global flags
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagLogFile = "log-file"

	// Plan command flags
	FlagTUI           = "tui"
	FlagOutputDir     = "output-dir"
	FlagFormat        = "format"
	FlagMarker        = "marker"
	FlagMaxIterations = "max-iterations"
	FlagNoMemoize     = "no-memoize"
)
