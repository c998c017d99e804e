// Package validation runs the batch consistency checks over a catalog
// repository and collects their outcome in two channels: errors, which fail
// the run, and warnings, which are reported but never fail it.
package validation

import (
	"errors"
	"fmt"
)

// Finding is one result of a check.
type Finding struct {
	// Check names the check that produced the finding (e.g. "changelog").
	Check string
	// Source is the file the finding is about, if any.
	Source string
	Err    error
}

func (f Finding) String() string {
	if f.Source != "" {
		return fmt.Sprintf("[%s] %s: %v", f.Check, f.Source, f.Err)
	}
	return fmt.Sprintf("[%s] %v", f.Check, f.Err)
}

// Report collects findings without aborting on soft conditions.
type Report struct {
	Errors   []Finding
	Warnings []Finding
	// Passed lists checks that ran to completion without an error.
	Passed []string
	// Skipped lists checks that did not run because an input was absent.
	Skipped []string
}

// AddError records a hard failure. A nil err is ignored.
func (r *Report) AddError(check, source string, err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, Finding{Check: check, Source: source, Err: err})
}

// AddWarning records a soft finding. A nil err is ignored.
func (r *Report) AddWarning(check, source string, err error) {
	if err == nil {
		return
	}
	r.Warnings = append(r.Warnings, Finding{Check: check, Source: source, Err: err})
}

// Pass records that a check completed without error.
func (r *Report) Pass(check string) {
	r.Passed = append(r.Passed, check)
}

// Skip records that a check did not run.
func (r *Report) Skip(check string) {
	r.Skipped = append(r.Skipped, check)
}

// HasErrors reports whether any hard failure was recorded.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings reports whether any soft finding was recorded.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Merge appends all findings of other.
func (r *Report) Merge(other *Report) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
	r.Passed = append(r.Passed, other.Passed...)
	r.Skipped = append(r.Skipped, other.Skipped...)
}

// Err joins every recorded error, or returns nil.
func (r *Report) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, f := range r.Errors {
		errs[i] = errors.New(f.String())
		if f.Err != nil {
			errs[i] = fmt.Errorf("%s: %w", findingPrefix(f), f.Err)
		}
	}
	return errors.Join(errs...)
}

func findingPrefix(f Finding) string {
	if f.Source != "" {
		return fmt.Sprintf("[%s] %s", f.Check, f.Source)
	}
	return fmt.Sprintf("[%s]", f.Check)
}
