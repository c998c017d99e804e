package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/debcatalog/config.yml
// - macOS: ~/Library/Application Support/debcatalog/config.yml
// - Windows: %APPDATA%\debcatalog\config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "debcatalog", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file,
// relative to the current directory.
func ProjectConfigPath() string {
	return ".debcatalog.yml"
}

// ProjectJSONConfigPath returns the path to the JSON form of the project config.
func ProjectJSONConfigPath() string {
	return ".debcatalog.json"
}

// Layout holds the catalog repository paths, relative to the repository root.
type Layout struct {
	VersionFile     string
	ChangelogPath   string
	StoreFile       string
	AppsDir         string
	BumpversionFile string
}

// Layout derives the repository paths from the configuration.
func (c *Configuration) Layout() Layout {
	return Layout{
		VersionFile:     c.VersionFile,
		ChangelogPath:   c.ChangelogPath,
		StoreFile:       filepath.Join(c.StoreDir, c.StoreID+".yaml"),
		AppsDir:         c.AppsDir,
		BumpversionFile: c.BumpversionFile,
	}
}
