package operation

import (
	"context"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/rs/zerolog"
	"github.com/walteh/ensurelines/pkg/file"
	"github.com/walteh/ensurelines/pkg/insert"
	"gitlab.com/tozd/go/errors"
)

// processTarget reads the file once, applies every rule in order, and writes
// it back once if anything was added. An unchanged file is never written.
func processTarget(ctx context.Context, files *file.Manager, t Target, dryRun, backup bool) FileResult {
	logger := zerolog.Ctx(ctx).With().Str("path", t.Path).Logger()
	res := FileResult{Path: t.Path}

	if err := ctx.Err(); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = errors.Errorf("operation cancelled: %w", err)
		return res
	}

	content, err := files.ReadFile(ctx, t.Path)
	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	original := string(content)
	lines := insert.SplitLines(original)
	anchored := false

	for _, rule := range t.Rules {
		applied, err := insert.Apply(lines, rule)
		if errors.Is(err, insert.ErrAnchorNotFound) {
			logger.Debug().Str("anchor", rule.Anchor).Msg("anchor not found")
			res.MissingAnchors = append(res.MissingAnchors, rule.Anchor)
			continue
		}
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Err = errors.Errorf("applying rule %q: %w", rule.Anchor, err)
			return res
		}

		anchored = true
		lines = applied.Lines
		res.Added = append(res.Added, applied.Added...)
	}

	switch {
	case len(res.Added) > 0:
		res.Outcome = OutcomeInserted
	case anchored:
		res.Outcome = OutcomeUnchanged
		return res
	default:
		res.Outcome = OutcomeAnchorNotFound
		return res
	}

	updated := insert.JoinLines(lines)

	if dryRun {
		diff, err := unifiedDiff(t.Path, original, updated)
		if err != nil {
			logger.Warn().Err(err).Msg("rendering diff")
		}
		res.Diff = diff
		return res
	}

	if backup {
		res.Backup, err = files.BackupFile(ctx, t.Path)
		if err != nil {
			res.Outcome = OutcomeFailed
			res.Err = err
			return res
		}
	}

	if err := files.WriteFileAtomic(ctx, t.Path, []byte(updated)); err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		return res
	}

	logger.Debug().Int("added", len(res.Added)).Msg("inserted lines")
	return res
}

func unifiedDiff(path, before, after string) (string, error) {
	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: path,
		ToFile:   path,
		Context:  3,
	})
}
