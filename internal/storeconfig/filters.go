package storeconfig

// Filters selects the packages a store shows. Every set is optional and its
// members are opaque matchers for the catalog query engine.
type Filters struct {
	IncludeTags     []string `yaml:"include_tags,omitempty" json:"include_tags,omitempty"`
	IncludeOrigins  []string `yaml:"include_origins,omitempty" json:"include_origins,omitempty"`
	IncludeSections []string `yaml:"include_sections,omitempty" json:"include_sections,omitempty"`
	IncludePackages []string `yaml:"include_packages,omitempty" json:"include_packages,omitempty"`
}

// IsVacuous reports whether no inclusion set has any member.
func (f Filters) IsVacuous() bool {
	return len(f.IncludeTags) == 0 &&
		len(f.IncludeOrigins) == 0 &&
		len(f.IncludeSections) == 0 &&
		len(f.IncludePackages) == 0
}

// ValidateFilters fails with ErrVacuousFilter unless at least one inclusion
// set is non-empty. No other constraint is imposed.
func ValidateFilters(f Filters) error {
	if f.IsVacuous() {
		return ErrVacuousFilter
	}
	return nil
}
