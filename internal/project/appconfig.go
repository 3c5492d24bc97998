package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/piwi3910/shelfpack/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.shelfpack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shelfpack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path.
// If the file does not exist, it returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}
	var config model.AppConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, err
	}
	normalizeConfig(&config)
	return config, nil
}

// normalizeConfig fills fields an older or hand-edited file left empty.
func normalizeConfig(c *model.AppConfig) {
	defaults := model.DefaultAppConfig()
	if c.RecentFiles == nil {
		c.RecentFiles = []string{}
	}
	switch d := c.DefaultDimensions; {
	case d == model.Dimensions{}:
		c.DefaultDimensions = defaults.DefaultDimensions
	case d.Validate() != nil:
		// pull a hand-edited bay back into the slider range
		c.DefaultDimensions = d.Clamp()
		if c.DefaultDimensions.Validate() != nil {
			c.DefaultDimensions = defaults.DefaultDimensions
		}
	}
	if c.PlacementAttempts <= 0 {
		c.PlacementAttempts = defaults.PlacementAttempts
	}
	if c.Theme == "" {
		c.Theme = defaults.Theme
	}
}
