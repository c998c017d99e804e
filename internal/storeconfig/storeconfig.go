// Package storeconfig loads and validates store configuration documents
// (store/<id>.yaml): identity, package filters and the category taxonomy
// shown by the store frontend.
package storeconfig

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/go-git/go-billy/v5"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// requiredKeys must be present in every store document.
var requiredKeys = []string{"id", "name", "description", "filters"}

// legacyKeys were replaced by category_metadata.
var legacyKeys = []string{"section_metadata", "custom_sections"}

var filterKeys = []string{"include_tags", "include_origins", "include_sections", "include_packages"}

// validate reports fields by their YAML key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CategoryMetadata is the display information for one category id.
type CategoryMetadata struct {
	ID          string `yaml:"id" json:"id" validate:"required"`
	Label       string `yaml:"label" json:"label" validate:"required"`
	Icon        string `yaml:"icon,omitempty" json:"icon,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Config is a decoded store configuration document.
type Config struct {
	ID               string             `yaml:"id" json:"id" validate:"required"`
	Name             string             `yaml:"name" json:"name" validate:"required"`
	Description      string             `yaml:"description" json:"description"`
	Filters          Filters            `yaml:"filters" json:"filters"`
	CategoryMetadata []CategoryMetadata `yaml:"category_metadata,omitempty" json:"category_metadata,omitempty" validate:"unique=ID,dive"`

	// Path is where the document was read from.
	Path string `yaml:"-" json:"-"`
	// HasCategoryMetadata distinguishes an absent category_metadata key from
	// an empty list.
	HasCategoryMetadata bool `yaml:"-" json:"-"`
}

// DeclaredCategoryIDs returns the set of category ids with metadata.
func (c *Config) DeclaredCategoryIDs() map[string]struct{} {
	set := make(map[string]struct{}, len(c.CategoryMetadata))
	for _, m := range c.CategoryMetadata {
		set[m.ID] = struct{}{}
	}
	return set
}

// Validate checks the decoded document and its filters.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return structError(c.Path, err)
	}
	if err := ValidateFilters(c.Filters); err != nil {
		return fmt.Errorf("%s: filters: %w", c.Path, err)
	}
	return nil
}

// Load reads and validates the store document at p.
func Load(fs billy.Filesystem, p string) (*Config, error) {
	data, err := fsutil.ReadFile(fs, p)
	if err != nil {
		return nil, err
	}
	return Parse(data, p)
}

// Parse decodes and validates store document content read from p. The raw
// mapping is checked first so that legacy keys and wrongly-typed fields are
// reported by name rather than as decode failures.
func Parse(data []byte, p string) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p, err)
	}
	if raw == nil {
		return nil, &FieldError{Path: p, Field: "id", Message: "document is empty"}
	}

	if err := checkRaw(raw, p); err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", p, err)
	}
	cfg.Path = p
	_, cfg.HasCategoryMetadata = raw["category_metadata"]

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// checkRaw enforces the document shape on the undecoded mapping.
func checkRaw(raw map[string]any, p string) error {
	for _, key := range legacyKeys {
		if _, ok := raw[key]; ok {
			return &DeprecatedFieldError{Path: p, Field: key, Replacement: "category_metadata"}
		}
	}

	for _, key := range requiredKeys {
		if _, ok := raw[key]; !ok {
			return &FieldError{Path: p, Field: key, Message: "is required"}
		}
	}
	for _, key := range []string{"id", "name", "description"} {
		if _, ok := raw[key].(string); !ok {
			return &FieldError{Path: p, Field: key, Message: "must be a string"}
		}
	}

	if err := checkFilters(raw["filters"], p); err != nil {
		return err
	}

	if meta, ok := raw["category_metadata"]; ok {
		return checkCategoryMetadata(meta, p)
	}
	return nil
}

func checkFilters(v any, p string) error {
	filters, ok := v.(map[string]any)
	if !ok {
		return &FieldError{Path: p, Field: "filters", Message: "must be a mapping"}
	}
	for _, key := range filterKeys {
		set, present := filters[key]
		if !present || set == nil {
			continue
		}
		items, ok := set.([]any)
		if !ok {
			return &FieldError{Path: p, Field: "filters." + key, Message: "must be a list"}
		}
		for i, item := range items {
			if _, ok := item.(string); !ok {
				return &FieldError{Path: p, Field: fmt.Sprintf("filters.%s[%d]", key, i), Message: "must be a string"}
			}
		}
	}
	return nil
}

func checkCategoryMetadata(v any, p string) error {
	items, ok := v.([]any)
	if !ok {
		return &FieldError{Path: p, Field: "category_metadata", Message: "must be a list"}
	}

	for i, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			return &MetadataError{Path: p, Index: i, Field: "id", Message: "entry must be a mapping"}
		}
		for _, key := range []string{"id", "label"} {
			s, ok := entry[key].(string)
			if !ok {
				if _, present := entry[key]; !present {
					return &MetadataError{Path: p, Index: i, Field: key, Message: "is required"}
				}
				return &MetadataError{Path: p, Index: i, Field: key, Message: "must be a string"}
			}
			if s == "" {
				return &MetadataError{Path: p, Index: i, Field: key, Message: "must not be empty"}
			}
		}
		for _, key := range []string{"icon", "description"} {
			val, present := entry[key]
			if !present || val == nil {
				continue
			}
			if _, ok := val.(string); !ok {
				return &MetadataError{Path: p, Index: i, Field: key, Message: "must be a string when present"}
			}
		}
	}
	return nil
}

// structError converts validator failures into this package's error types.
func structError(p string, err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("%s: %w", p, err)
	}

	fieldErr := validationErrors[0]
	if fieldErr.Tag() == "unique" {
		return &FieldError{Path: p, Field: "category_metadata", Message: "category ids must be unique: " + duplicateHint(fieldErr.Value())}
	}
	return &FieldError{Path: p, Field: fieldErr.Field(), Message: formatValidationError(fieldErr)}
}

func duplicateHint(v any) string {
	items, ok := v.([]CategoryMetadata)
	if !ok {
		return "duplicate id"
	}
	seen := make(map[string]bool)
	var dups []string
	for _, item := range items {
		if seen[item.ID] {
			dups = append(dups, item.ID)
		}
		seen[item.ID] = true
	}
	sort.Strings(dups)
	return fmt.Sprintf("duplicate id(s) %v", dups)
}

// formatValidationError formats a validation error for a specific field.
func formatValidationError(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	default:
		return fmt.Sprintf("failed validation: %s", fieldErr.Tag())
	}
}
