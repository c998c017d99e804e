package config

import (
	"fmt"
	"sort"
	"strings"
)

// ConfigKeySchema describes a known configuration key.
type ConfigKeySchema struct {
	Path          string   // Dotted key path (e.g., "maintainer.email")
	AllowedValues []string // Valid values for enum keys (empty otherwise)
	Description   string   // Human-readable description for help text
}

// KnownKeys is the registry of all known configuration keys.
var KnownKeys = map[string]ConfigKeySchema{
	"root":             {Path: "root", Description: "Catalog repository root (empty = enclosing git repository)"},
	"store_id":         {Path: "store_id", Description: "Store document id, selects store/<store_id>.yaml"},
	"store_package":    {Path: "store_package", Description: "Debian package name used in changelog headers"},
	"changelog_path":   {Path: "changelog_path", Description: "Store package changelog"},
	"version_file":     {Path: "version_file", Description: "Repository version marker"},
	"apps_dir":         {Path: "apps_dir", Description: "Directory holding <app>/metadata.yaml"},
	"store_dir":        {Path: "store_dir", Description: "Directory holding store documents"},
	"bumpversion_file": {Path: "bumpversion_file", Description: "bump2version config checked by validate (empty = skip)"},
	"distribution":     {Path: "distribution", Description: "Distribution written into new changelog entries"},
	"urgency": {
		Path:          "urgency",
		AllowedValues: []string{"low", "medium", "high", "critical"},
		Description:   "Urgency written into new changelog entries",
	},
	"maintainer.name":  {Path: "maintainer.name", Description: "Changelog trailer name (empty = git user.name)"},
	"maintainer.email": {Path: "maintainer.email", Description: "Changelog trailer email (empty = git user.email)"},
	"log_level": {
		Path:          "log_level",
		AllowedValues: []string{"trace", "debug", "info", "warn", "error"},
		Description:   "Minimum log level written to stderr",
	},
}

// ErrUnknownKey is returned when a key is not in the schema registry.
type ErrUnknownKey struct {
	Key string
}

func (e ErrUnknownKey) Error() string {
	return fmt.Sprintf("unknown configuration key: %s", e.Key)
}

// GetKeySchema returns the schema for a configuration key.
func GetKeySchema(path string) (ConfigKeySchema, error) {
	schema, ok := KnownKeys[path]
	if !ok {
		return ConfigKeySchema{}, ErrUnknownKey{Key: path}
	}
	return schema, nil
}

// SortedKeys returns all known key paths in lexical order.
func SortedKeys() []string {
	keys := make([]string, 0, len(KnownKeys))
	for k := range KnownKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Value returns the effective value of a known key as a string.
func (c *Configuration) Value(path string) (string, error) {
	if _, err := GetKeySchema(path); err != nil {
		return "", err
	}
	switch path {
	case "root":
		return c.Root, nil
	case "store_id":
		return c.StoreID, nil
	case "store_package":
		return c.StorePackage, nil
	case "changelog_path":
		return c.ChangelogPath, nil
	case "version_file":
		return c.VersionFile, nil
	case "apps_dir":
		return c.AppsDir, nil
	case "store_dir":
		return c.StoreDir, nil
	case "bumpversion_file":
		return c.BumpversionFile, nil
	case "distribution":
		return c.Distribution, nil
	case "urgency":
		return c.Urgency, nil
	case "maintainer.name":
		return c.Maintainer.Name, nil
	case "maintainer.email":
		return c.Maintainer.Email, nil
	default:
		return c.LogLevel, nil
	}
}

// SourceNames renders the load sources for display.
func (c *Configuration) SourceNames() string {
	names := make([]string, len(c.Sources))
	for i, s := range c.Sources {
		names[i] = string(s)
	}
	return strings.Join(names, " < ")
}
