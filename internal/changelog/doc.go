// Package changelog manages Debian-style package changelogs.
//
// Only the newest record (the head) is ever parsed; everything after it is
// kept as opaque text and carried through byte-for-byte when a new record is
// prepended. A changelog is either Empty (no records yet) or NonEmpty, and
// the only transition is PrependEntry.
//
// The record format is:
//
//	package-name (1.2.3-1) stable; urgency=medium
//
//	  * First change
//	  * Second change
//
//	 -- Maintainer Name <maint@example.com>  Mon, 02 Jan 2006 15:04:05 -0700
package changelog
