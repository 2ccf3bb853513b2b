package operation

import (
	"github.com/walteh/ensurelines/pkg/file"
	"github.com/walteh/ensurelines/pkg/insert"
	"github.com/walteh/ensurelines/pkg/log"
	"gitlab.com/tozd/go/errors"
)

// ErrPendingChanges is returned by Check when at least one file would change
var ErrPendingChanges = errors.Base("changes pending")

// 🎯 Target is one file and every rule that applies to it, in declaration order
type Target struct {
	Path  string
	Rules []insert.Rule
}

// 📊 Outcome is what happened to a file
type Outcome int

const (
	OutcomeUnchanged      Outcome = iota // Anchor found, every line already present
	OutcomeInserted                      // At least one line was added
	OutcomeAnchorNotFound                // No rule's anchor matched
	OutcomeFailed                        // The file could not be read or written
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeInserted:
		return "inserted"
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeAnchorNotFound:
		return "anchor not found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 FileResult is the result of processing one target
type FileResult struct {
	Path           string
	Outcome        Outcome
	Added          []string // Inserted lines, in processing order
	MissingAnchors []string // Anchors of rules that matched no line
	Backup         string   // Backup path, when backups are enabled
	Diff           string   // Unified diff of the change, dry runs only
	Err            error
}

// FileOperation converts the result for console logging
func (r FileResult) FileOperation(dryRun bool) log.FileOperation {
	return log.FileOperation{
		Path:           r.Path,
		Status:         r.Outcome.String(),
		Added:          len(r.Added),
		MissingAnchors: r.MissingAnchors,
		Diff:           r.Diff,
		DryRun:         dryRun,
		Err:            r.Err,
	}
}

// 🔧 Options contains configuration for the runner
type Options struct {
	// Files reads and writes target files
	Files *file.Manager
	// Logger receives one entry per processed file; optional
	Logger *log.Logger
	// DryRun computes changes and diffs without writing
	DryRun bool
	// Backup copies each file to path + ".bak" before rewriting it
	Backup bool
	// Async processes targets concurrently
	Async bool
	// Concurrency limits the number of files processed at once in async mode
	Concurrency int
}
