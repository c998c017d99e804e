package validation

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/go-git/go-billy/v5"
	"gopkg.in/ini.v1"
)

// ErrBumpversion marks a bump2version config that would fight the release flow.
var ErrBumpversion = errors.New("invalid bumpversion config")

const (
	bumpversionSection     = "bumpversion"
	bumpversionFileSection = "bumpversion:file:"
)

// CheckBumpversion checks that the bump2version config at p rewrites the
// version marker file and never creates git tags.
func CheckBumpversion(fs billy.Filesystem, p, markerFile string) error {
	data, err := fsutil.ReadFile(fs, p)
	if err != nil {
		return err
	}
	return ParseBumpversion(data, p, markerFile)
}

// ParseBumpversion applies the CheckBumpversion rules to config content.
func ParseBumpversion(data []byte, p, markerFile string) error {
	cfg, err := ini.Load(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", p, err)
	}

	section := bumpversionFileSection + markerFile
	if !cfg.HasSection(section) {
		return fmt.Errorf("%s: missing [%s] section: %w", p, section, ErrBumpversion)
	}

	main, err := cfg.GetSection(bumpversionSection)
	if err != nil || !main.HasKey("tag") {
		return fmt.Errorf("%s: [%s] must set tag = False: %w", p, bumpversionSection, ErrBumpversion)
	}
	tag, err := main.Key("tag").Bool()
	if err != nil {
		return fmt.Errorf("%s: tag: %v: %w", p, err, ErrBumpversion)
	}
	if tag {
		return fmt.Errorf("%s: tag must be False, tags are created by CI: %w", p, ErrBumpversion)
	}
	return nil
}
