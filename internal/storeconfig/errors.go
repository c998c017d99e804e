package storeconfig

import (
	"errors"
	"fmt"
)

// ErrVacuousFilter is returned when no inclusion filter is set, which would
// make the store match nothing.
var ErrVacuousFilter = errors.New("at least one of include_tags, include_origins, include_sections or include_packages must be non-empty")

// DeprecatedFieldError reports a legacy key that must be migrated away.
type DeprecatedFieldError struct {
	Path        string
	Field       string
	Replacement string
}

func (e *DeprecatedFieldError) Error() string {
	return fmt.Sprintf("%s: field '%s' is deprecated, use '%s' instead", e.Path, e.Field, e.Replacement)
}

// FieldError reports a required key that is missing or has the wrong type.
type FieldError struct {
	Path    string
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: field '%s': %s", e.Path, e.Field, e.Message)
}

// MetadataError reports a malformed category_metadata item.
type MetadataError struct {
	Path    string
	Index   int
	Field   string
	Message string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("%s: category_metadata[%d].%s: %s", e.Path, e.Index, e.Field, e.Message)
}
