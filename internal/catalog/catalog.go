// Package catalog loads the per-application metadata documents that make up
// the store catalog. Each application lives in <apps>/<app-id>/metadata.yaml;
// only the version and the tag list are interpreted here.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/ariel-frischer/debcatalog/internal/version"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"gopkg.in/yaml.v3"
)

// MetadataFile is the per-application metadata file name.
const MetadataFile = "metadata.yaml"

// CategoryPrefix namespaces category tags.
const CategoryPrefix = "category::"

// ErrNoApps is returned when the apps directory holds no metadata.
var ErrNoApps = errors.New("no application metadata found")

// Entry is one application as seen by the consistency checks.
type Entry struct {
	AppID   string
	Path    string
	Version version.Version
	Tags    []string
}

// Categories returns the category ids declared by the entry's tags.
func (e Entry) Categories() []string {
	return ExtractCategories(e.Tags)
}

// document is the subset of metadata.yaml read by this package.
type document struct {
	Version any      `yaml:"version"`
	Tags    []string `yaml:"tags"`
}

// FieldError reports a metadata field that is missing or malformed.
type FieldError struct {
	Path    string
	Field   string
	Message string
	Err     error
}

func (e *FieldError) Error() string {
	msg := fmt.Sprintf("%s: field '%s': %s", e.Path, e.Field, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// LoadEntries reads every <appsDir>/*/metadata.yaml, sorted by app id. The
// first malformed file aborts the load.
func LoadEntries(fs billy.Filesystem, appsDir string) ([]Entry, error) {
	matches, err := util.Glob(fs, filepath.Join(appsDir, "*", MetadataFile))
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", appsDir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%s: %w", appsDir, ErrNoApps)
	}
	sort.Strings(matches)

	entries := make([]Entry, 0, len(matches))
	for _, p := range matches {
		entry, err := LoadEntry(fs, p)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// LoadEntry reads a single metadata file. The app id is the name of the
// directory containing it.
func LoadEntry(fs billy.Filesystem, p string) (Entry, error) {
	data, err := fsutil.ReadFile(fs, p)
	if err != nil {
		return Entry{}, err
	}
	return ParseEntry(data, p)
}

// ParseEntry decodes metadata.yaml content read from p.
func ParseEntry(data []byte, p string) (Entry, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Entry{}, fmt.Errorf("parsing %s: %w", p, err)
	}

	entry := Entry{
		AppID: filepath.Base(filepath.Dir(p)),
		Path:  p,
		Tags:  doc.Tags,
	}

	raw, ok := doc.Version.(string)
	if doc.Version == nil || (ok && raw == "") {
		return Entry{}, &FieldError{Path: p, Field: "version", Message: "is required"}
	}
	if !ok {
		// yaml decodes unquoted 1.0 style values as numbers.
		return Entry{}, &FieldError{Path: p, Field: "version", Message: fmt.Sprintf("must be a string, got %v", doc.Version)}
	}

	v, err := version.Parse(raw)
	if err != nil {
		return Entry{}, &FieldError{Path: p, Field: "version", Message: "invalid format", Err: err}
	}
	entry.Version = v
	return entry, nil
}

// ExtractCategories strips the category:: namespace from tags, ignoring
// tags in other namespaces and empty ids.
func ExtractCategories(tags []string) []string {
	var ids []string
	for _, tag := range tags {
		id, ok := strings.CutPrefix(tag, CategoryPrefix)
		if !ok || id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// CategoryUnion returns the set of category ids used by any entry.
func CategoryUnion(entries []Entry) map[string]struct{} {
	set := make(map[string]struct{})
	for _, e := range entries {
		for _, id := range e.Categories() {
			set[id] = struct{}{}
		}
	}
	return set
}
