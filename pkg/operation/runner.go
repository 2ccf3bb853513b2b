// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/ensurelines/pkg/config"
	"github.com/walteh/ensurelines/pkg/file"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🏃 Runner applies targets to files
type Runner struct {
	opts Options
}

// 🏗️ NewRunner creates a new runner
func NewRunner(opts Options) *Runner {
	if opts.Files == nil {
		opts.Files = file.NewManager(".")
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = config.DefaultConcurrency
	}
	return &Runner{opts: opts}
}

// 🏃 Run processes every target and writes the files that changed.
// The error is non-nil only if some file failed; results are always returned
// in target order.
func (r *Runner) Run(ctx context.Context, targets []Target) ([]FileResult, error) {
	results := r.run(ctx, targets, r.opts.DryRun)
	return results, failures(results)
}

// 🔍 Check is a dry run that returns ErrPendingChanges if any file would change
func (r *Runner) Check(ctx context.Context, targets []Target) ([]FileResult, error) {
	results := r.run(ctx, targets, true)
	if err := failures(results); err != nil {
		return results, err
	}
	for _, res := range results {
		if res.Outcome == OutcomeInserted {
			return results, errors.WithStack(ErrPendingChanges)
		}
	}
	return results, nil
}

func (r *Runner) run(ctx context.Context, targets []Target, dryRun bool) []FileResult {
	if r.opts.Async {
		return r.runAsync(ctx, targets, dryRun)
	}
	return r.runSync(ctx, targets, dryRun)
}

// 🔄 runSync processes targets one after another
func (r *Runner) runSync(ctx context.Context, targets []Target, dryRun bool) []FileResult {
	results := make([]FileResult, len(targets))
	for i, t := range targets {
		results[i] = r.process(ctx, t, dryRun)
	}
	return results
}

// ⚡ runAsync processes targets concurrently. Targets never share a path, so
// no two workers write the same file.
func (r *Runner) runAsync(ctx context.Context, targets []Target, dryRun bool) []FileResult {
	results := make([]FileResult, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Concurrency)

	for i, t := range targets {
		g.Go(func() error {
			results[i] = r.process(gctx, t, dryRun)
			return nil
		})
	}

	// process never returns an error; failures are carried in results
	_ = g.Wait()

	return results
}

func (r *Runner) process(ctx context.Context, t Target, dryRun bool) FileResult {
	res := processTarget(ctx, r.opts.Files, t, dryRun, r.opts.Backup)

	logger := zerolog.Ctx(ctx)
	logger.Debug().
		Str("path", res.Path).
		Stringer("outcome", res.Outcome).
		Int("added", len(res.Added)).
		Msg("processed file")

	if r.opts.Logger != nil {
		r.opts.Logger.LogFileOperation(ctx, res.FileOperation(dryRun))
	}
	return res
}

func failures(results []FileResult) error {
	var errs []error
	for _, res := range results {
		if res.Outcome == OutcomeFailed {
			errs = append(errs, res.Err)
		}
	}
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
