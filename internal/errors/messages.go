package errors

import "fmt"

// Common error messages for the debcatalog CLI.
// These templates ensure consistent, actionable error messages.

// InvalidVersion creates an error for a version argument that does not parse.
func InvalidVersion(err error) *CLIError {
	return WrapWithMessage(err, Argument,
		"invalid version",
		"Use MAJOR.MINOR.PATCH[~PRERELEASE][-REVISION] (e.g., 2.19.0~beta.4-1)",
		"Or a date-based version YYYYMMDD-REVISION (e.g., 20240520-1)",
	)
}

// InvalidReleaseAction creates an error for an unknown release action.
func InvalidReleaseAction(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("unknown release action: %s", provided),
		"debcatalog release <patch|minor|major|repackage>",
		"Use repackage to rebuild the same upstream version with a new revision",
	)
}

// UnsupportedBump creates an error for a bump of a date-based version.
func UnsupportedBump(err error) *CLIError {
	return WrapWithMessage(err, Argument,
		"cannot bump this version",
		"Date-based versions (YYYYMMDD-N) are not bumped; set the new date in the app metadata",
		"Use 'debcatalog release repackage' to publish a new revision instead",
	)
}

// MissingVersionFile creates an error for a missing or unreadable version marker.
func MissingVersionFile(path string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("cannot read version marker %s", path),
		fmt.Sprintf("Create %s holding a single MAJOR.MINOR.PATCH line", path),
		"Or set version_file in .debcatalog.yml",
	)
}

// NoReleaseBase creates an error when neither changelog nor marker gives a version.
func NoReleaseBase(changelogPath, versionFile string, err error) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		fmt.Sprintf("nothing to release from: %s is empty and %s is missing", changelogPath, versionFile),
		fmt.Sprintf("Create %s with the initial version, e.g. 0.1.0", versionFile),
		"Then run: debcatalog release repackage",
	)
}

// MalformedChangelog creates an error for a changelog head that does not parse.
func MalformedChangelog(path string, err error) *CLIError {
	return WrapWithMessage(err, Validation,
		fmt.Sprintf("%s has a malformed head entry", path),
		"The first line must look like: package (1.2.3-1) stable; urgency=medium",
		"Fix the head entry by hand; older entries are never rewritten",
	)
}

// LeaseHeld creates an error when another release holds the changelog.
func LeaseHeld(lockPath string, err error) *CLIError {
	return WrapWithMessage(err, Runtime,
		"another release is in progress",
		"Wait for the other release to finish and retry",
		fmt.Sprintf("If no release is running, remove the stale lock: rm %s", lockPath),
	)
}

// ConfigLoadFailed creates an error for an unreadable or invalid configuration.
func ConfigLoadFailed(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"failed to load configuration",
		"Check .debcatalog.yml and ~/.config/debcatalog/config.yml",
		"Run 'debcatalog config show' to see the effective values",
	)
}

// MissingMaintainer creates an error when no maintainer identity is available.
func MissingMaintainer() *CLIError {
	return NewConfigError(
		"no maintainer name and email for the changelog trailer",
		"Set maintainer.name and maintainer.email in .debcatalog.yml",
		"Or configure git: git config user.name / git config user.email",
		"Or export DEBCATALOG_MAINTAINER_NAME and DEBCATALOG_MAINTAINER_EMAIL",
	)
}

// ValidationFailed creates an error summarizing a failed validation run.
func ValidationFailed(errorCount, warningCount int) *CLIError {
	return NewValidationError(
		fmt.Sprintf("validation failed with %d error(s) and %d warning(s)", errorCount, warningCount),
		"Fix the errors listed above and run 'debcatalog validate' again",
	)
}
