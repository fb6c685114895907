// Package config loads and merges application configuration for the stx CLI.
// A global file under the user's home directory is overlaid by a local file
// in the working directory; command-line handling never reads files itself.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/haltepunkt/stx/internal/utils"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration holds the tool's configurable defaults.
type ApplicationConfiguration struct {
	Directory DirectoryConfiguration `mapstructure:"directory"`
	Search    SearchConfiguration    `mapstructure:"search"`
	Storage   StorageConfiguration   `mapstructure:"storage"`
	Clipboard *bool                  `mapstructure:"clipboard"`
}

// DirectoryConfiguration configures the remote station directory client.
type DirectoryConfiguration struct {
	Endpoint       string `mapstructure:"endpoint"`
	PageSize       *int   `mapstructure:"page_size"`
	TimeoutSeconds *int   `mapstructure:"timeout_seconds"`
	Parallelism    *int   `mapstructure:"parallelism"`
}

// SearchConfiguration configures result presentation for searches.
type SearchConfiguration struct {
	Limit *int `mapstructure:"limit"`
}

// StorageConfiguration configures where the local snapshot lives.
type StorageConfiguration struct {
	DataDirectory string `mapstructure:"data_directory"`
}

// LoadApplicationConfiguration loads configuration from global and local files.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.GlobalConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath, resolveErr := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	if resolveErr != nil {
		return ApplicationConfiguration{}, resolveErr
	}
	if localPath != "" {
		localConfig, loadErr := loadConfigurationFromPath(localPath)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(localConfig)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) (string, error) {
	if explicitPath != "" {
		if filepath.IsAbs(explicitPath) {
			return explicitPath, nil
		}
		if workingDirectory == "" {
			absolute, err := filepath.Abs(explicitPath)
			if err != nil {
				return "", fmt.Errorf("resolve configuration path %s: %w", explicitPath, err)
			}
			return absolute, nil
		}
		return filepath.Join(workingDirectory, explicitPath), nil
	}
	if workingDirectory == "" {
		return "", nil
	}
	return filepath.Join(workingDirectory, utils.LocalConfigFileName), nil
}

func loadConfigurationFromPath(path string) (ApplicationConfiguration, error) {
	if path == "" {
		return ApplicationConfiguration{}, nil
	}
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var configuration ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&configuration); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return configuration, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (configuration ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := configuration
	result.Directory = result.Directory.merge(override.Directory)
	result.Search = result.Search.merge(override.Search)
	result.Storage = result.Storage.merge(override.Storage)
	if override.Clipboard != nil {
		result.Clipboard = cloneBool(override.Clipboard)
	}
	return result
}

func (configuration DirectoryConfiguration) merge(override DirectoryConfiguration) DirectoryConfiguration {
	result := configuration
	if override.Endpoint != "" {
		result.Endpoint = override.Endpoint
	}
	if override.PageSize != nil {
		result.PageSize = cloneInt(override.PageSize)
	}
	if override.TimeoutSeconds != nil {
		result.TimeoutSeconds = cloneInt(override.TimeoutSeconds)
	}
	if override.Parallelism != nil {
		result.Parallelism = cloneInt(override.Parallelism)
	}
	return result
}

func (configuration SearchConfiguration) merge(override SearchConfiguration) SearchConfiguration {
	result := configuration
	if override.Limit != nil {
		result.Limit = cloneInt(override.Limit)
	}
	return result
}

func (configuration StorageConfiguration) merge(override StorageConfiguration) StorageConfiguration {
	result := configuration
	if override.DataDirectory != "" {
		result.DataDirectory = override.DataDirectory
	}
	return result
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
