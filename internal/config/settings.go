package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/haltepunkt/stx/internal/utils"
)

// Defaults applied when neither configuration file sets a value.
const (
	DefaultEndpoint    = "https://data.haltepunkt.dev/v1/stations"
	DefaultPageSize    = 500
	DefaultTimeout     = 20 * time.Second
	DefaultParallelism = 4
	DefaultSearchLimit = 10
)

// Settings are the fully resolved runtime settings the command layer works
// with: every optional field replaced by its default.
type Settings struct {
	Endpoint        string
	PageSize        int
	Timeout         time.Duration
	Parallelism     int
	SearchLimit     int
	DataDirectory   string
	CopyToClipboard bool
}

// Resolve applies defaults to a loaded configuration. The default data
// directory sits next to the global configuration file under the user's home.
func Resolve(configuration ApplicationConfiguration) (Settings, error) {
	settings := Settings{
		Endpoint:    DefaultEndpoint,
		PageSize:    DefaultPageSize,
		Timeout:     DefaultTimeout,
		Parallelism: DefaultParallelism,
		SearchLimit: DefaultSearchLimit,
	}

	if configuration.Directory.Endpoint != "" {
		settings.Endpoint = configuration.Directory.Endpoint
	}
	if configuration.Directory.PageSize != nil && *configuration.Directory.PageSize > 0 {
		settings.PageSize = *configuration.Directory.PageSize
	}
	if configuration.Directory.TimeoutSeconds != nil && *configuration.Directory.TimeoutSeconds > 0 {
		settings.Timeout = time.Duration(*configuration.Directory.TimeoutSeconds) * time.Second
	}
	if configuration.Directory.Parallelism != nil && *configuration.Directory.Parallelism > 0 {
		settings.Parallelism = *configuration.Directory.Parallelism
	}
	if configuration.Search.Limit != nil && *configuration.Search.Limit > 0 {
		settings.SearchLimit = *configuration.Search.Limit
	}
	if configuration.Clipboard != nil {
		settings.CopyToClipboard = *configuration.Clipboard
	}

	if configuration.Storage.DataDirectory != "" {
		settings.DataDirectory = configuration.Storage.DataDirectory
	} else {
		homeDirectory, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return Settings{}, fmt.Errorf("determine home directory: %w", homeErr)
		}
		settings.DataDirectory = filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
	}

	return settings, nil
}
