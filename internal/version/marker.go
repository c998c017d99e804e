package version

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/go-git/go-billy/v5"
)

// MarkerPattern is the only content accepted in the repository VERSION file.
const MarkerPattern = `^\d+\.\d+\.\d+$`

var markerRe = regexp.MustCompile(MarkerPattern)

// ParseMarker validates the content of a VERSION file: exactly one line
// holding MAJOR.MINOR.PATCH, optionally terminated by a single newline.
func ParseMarker(content string) (Version, error) {
	line := strings.TrimSuffix(content, "\n")
	if strings.Contains(line, "\n") {
		return Version{}, &FormatError{Input: content, Reason: "version marker must be a single line"}
	}
	if !markerRe.MatchString(line) {
		return Version{}, &FormatError{Input: line, Pattern: MarkerPattern}
	}
	return Parse(line)
}

// ReadMarker reads and validates the VERSION file at path.
func ReadMarker(fs billy.Filesystem, path string) (Version, error) {
	data, err := fsutil.ReadFile(fs, path)
	if err != nil {
		return Version{}, err
	}
	v, err := ParseMarker(string(data))
	if err != nil {
		return Version{}, fmt.Errorf("%s: %w", path, err)
	}
	return v, nil
}

// WriteMarker atomically replaces the VERSION file with v. Only plain
// releases can be recorded.
func WriteMarker(fs billy.Filesystem, path string, v Version) error {
	if v.IsDateBased() || v.IsPrerelease() || v.HasRevision() {
		return fmt.Errorf("writing %s: %q is not a plain MAJOR.MINOR.PATCH release: %w", path, v, ErrUnsupportedOperation)
	}
	return fsutil.WriteFileAtomic(fs, path, []byte(v.String()+"\n"))
}
