// Package health checks that a catalog repository has the files and the
// maintainer identity a release needs, returning structured reports used by
// the 'debcatalog doctor' command.
package health

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/debcatalog/internal/config"
	"github.com/ariel-frischer/debcatalog/internal/fsutil"
	"github.com/ariel-frischer/debcatalog/internal/git"
	"github.com/go-git/go-billy/v5"
)

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options selects the repository to check.
type Options struct {
	FS     billy.Filesystem
	Root   string
	Layout config.Layout
	// Maintainer resolves the identity written into changelog trailers.
	Maintainer func() (git.Identity, error)
}

// RunHealthChecks runs all health checks and returns a report.
func RunHealthChecks(opts Options) *HealthReport {
	report := &HealthReport{Passed: true}

	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed {
			report.Passed = false
		}
	}

	add(CheckGitRepository(opts.Root))
	add(CheckFile(opts.FS, "Changelog", opts.Layout.ChangelogPath))
	add(CheckVersionMarker(opts.FS, opts.Layout.VersionFile))
	add(CheckFile(opts.FS, "Store document", opts.Layout.StoreFile))
	add(CheckDir(opts.FS, "Apps directory", opts.Layout.AppsDir))
	if opts.Maintainer != nil {
		add(CheckMaintainer(opts.Maintainer))
	}
	return report
}

// CheckGitRepository checks that root is inside a git work tree. Releases
// are expected to be committed, so a catalog outside git is flagged.
func CheckGitRepository(root string) CheckResult {
	if !git.IsGitRepository(root) {
		return CheckResult{Name: "Git repository", Passed: false, Message: root + " is not inside a git repository"}
	}
	return CheckResult{Name: "Git repository", Passed: true, Message: "found"}
}

// CheckFile checks that a required regular file exists.
func CheckFile(fs billy.Filesystem, name, path string) CheckResult {
	info, err := fs.Stat(path)
	switch {
	case err != nil:
		return CheckResult{Name: name, Passed: false, Message: path + " not found"}
	case info.IsDir():
		return CheckResult{Name: name, Passed: false, Message: path + " is a directory"}
	default:
		return CheckResult{Name: name, Passed: true, Message: path}
	}
}

// CheckDir checks that a required directory exists.
func CheckDir(fs billy.Filesystem, name, path string) CheckResult {
	info, err := fs.Stat(path)
	if err != nil || !info.IsDir() {
		return CheckResult{Name: name, Passed: false, Message: path + " not found"}
	}
	entries, err := fs.ReadDir(path)
	if err != nil {
		return CheckResult{Name: name, Passed: false, Message: fmt.Sprintf("reading %s: %v", path, err)}
	}
	return CheckResult{Name: name, Passed: true, Message: fmt.Sprintf("%s (%d entries)", path, len(entries))}
}

// CheckVersionMarker passes when the marker is absent, since releases fall
// back to the changelog head, but fails when it exists and cannot be read.
func CheckVersionMarker(fs billy.Filesystem, path string) CheckResult {
	exists, err := fsutil.Exists(fs, path)
	if err != nil {
		return CheckResult{Name: "Version marker", Passed: false, Message: err.Error()}
	}
	if !exists {
		return CheckResult{Name: "Version marker", Passed: true, Message: path + " not found, releases use the changelog head"}
	}
	return CheckFile(fs, "Version marker", path)
}

// CheckMaintainer checks that a changelog trailer identity is available.
func CheckMaintainer(resolve func() (git.Identity, error)) CheckResult {
	id, err := resolve()
	if err != nil || !id.Complete() {
		return CheckResult{
			Name:    "Maintainer",
			Passed:  false,
			Message: "not configured (set maintainer in .debcatalog.yml or git user.name/user.email)",
		}
	}
	return CheckResult{Name: "Maintainer", Passed: true, Message: id.String()}
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var sb strings.Builder
	for _, check := range report.Checks {
		if check.Passed {
			fmt.Fprintf(&sb, "✓ %s: %s\n", check.Name, check.Message)
		} else {
			fmt.Fprintf(&sb, "✗ %s: %s\n", check.Name, check.Message)
		}
	}
	return sb.String()
}
