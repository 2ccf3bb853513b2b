package operation

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/walteh/ensurelines/pkg/config"
	"github.com/walteh/ensurelines/pkg/file"
	"gitlab.com/tozd/go/errors"
)

// Expand resolves every rule's file patterns against the manager's base
// directory and groups the rules by file, so each file is read and written
// once per run.
//
// Paths are returned relative to the base directory unless the pattern was
// absolute. Literal paths are kept even if they do not exist; globs that match
// nothing are logged and skipped. A pattern naming an existing file is taken
// literally, so paths like pages/[slug].tsx are not read as character classes.
func Expand(ctx context.Context, files *file.Manager, rules []config.Rule) ([]Target, error) {
	logger := zerolog.Ctx(ctx)
	baseDir := files.BaseDir()

	var targets []Target
	index := make(map[string]int)

	add := func(path string, rule config.Rule) {
		key := filepath.Clean(path)
		if !filepath.IsAbs(key) {
			key = filepath.Join(baseDir, key)
		}
		i, ok := index[key]
		if !ok {
			i = len(targets)
			index[key] = i
			targets = append(targets, Target{Path: filepath.Clean(path)})
		}
		targets[i].Rules = append(targets[i].Rules, rule.InsertRule())
	}

	for _, rule := range rules {
		for _, pattern := range rule.Files {
			if rule.Literal || !hasMeta(pattern) {
				add(pattern, rule)
				continue
			}

			exists, err := files.Exists(ctx, pattern)
			if err != nil {
				return nil, errors.Errorf("expanding %q: %w", pattern, err)
			}
			if exists {
				add(pattern, rule)
				continue
			}

			full := pattern
			if !filepath.IsAbs(pattern) {
				full = filepath.Join(baseDir, pattern)
			}

			matches, err := doublestar.FilepathGlob(full, doublestar.WithFilesOnly())
			if err != nil {
				return nil, errors.Errorf("expanding %q: %w", pattern, err)
			}
			if len(matches) == 0 {
				logger.Warn().Str("pattern", pattern).Msg("pattern matched no files")
				continue
			}

			for _, match := range matches {
				path := match
				if !filepath.IsAbs(pattern) {
					rel, err := filepath.Rel(baseDir, match)
					if err != nil {
						return nil, errors.Errorf("relativizing %q: %w", match, err)
					}
					path = rel
				}
				add(path, rule)
			}
		}
	}

	logger.Debug().Int("targets", len(targets)).Msg("expanded rules")

	return targets, nil
}

func hasMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
