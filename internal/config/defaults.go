package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# debcatalog configuration
# See 'debcatalog config show' for the effective values

# Repository layout (relative to root)
root: ""                              # Empty = enclosing git repository
store_id: marine                      # Selects store/<store_id>.yaml
store_package: marine-container-store # Package name in changelog headers
changelog_path: store/debian/changelog
version_file: VERSION
apps_dir: apps
store_dir: store
bumpversion_file: .bumpversion.cfg    # Empty = skip the bumpversion check

# New changelog entries
distribution: stable
urgency: medium                       # low | medium | high | critical
maintainer:
  name: ""                            # Empty = git config user.name
  email: ""                           # Empty = git config user.email

log_level: warn                       # trace | debug | info | warn | error
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"root":             "",
		"store_id":         "marine",
		"store_package":    "marine-container-store",
		"changelog_path":   "store/debian/changelog",
		"version_file":     "VERSION",
		"apps_dir":         "apps",
		"store_dir":        "store",
		"bumpversion_file": ".bumpversion.cfg",
		"distribution":     "stable",
		"urgency":          "medium",
		"maintainer": map[string]interface{}{
			"name":  "",
			"email": "",
		},
		"log_level": "warn",
	}
}
