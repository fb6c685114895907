// Package utils contains helpers shared across the stx tool: logging setup,
// version retrieval, and cross-package constants.
package utils

// GlobalConfigDirectoryName is the directory under the user's home that holds
// the global configuration file.
const GlobalConfigDirectoryName = ".stx"

// GlobalConfigFileName is the name of the global configuration file.
const GlobalConfigFileName = "config.yaml"

// LocalConfigFileName is the name of the per-project configuration file.
const LocalConfigFileName = ".stx.yaml"

// GitDirectoryName is the name of the Git repository directory.
const GitDirectoryName = ".git"

// LoggerInitializationFailedMessageFormat reports a logger construction failure.
const LoggerInitializationFailedMessageFormat = "logger initialization failed: %w"
