package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/ensurelines/pkg/log"
	"gitlab.com/tozd/go/errors"
)

const applyLong = `Apply inserts each missing line directly after the first line containing the anchor.
It will:
1. Find the first line containing the anchor, ignoring case
2. Skip every line already present somewhere below the anchor
3. Insert the rest right after the anchor (the last listed ends up nearest)
4. Rewrite the file atomically, or leave it untouched if nothing changed

A missing anchor is reported but is not an error.`

// NewApplyCmd creates a new apply command
func NewApplyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Insert missing lines after an anchor line",
		Long:  applyLong,
		Example: `  ensurelines apply -f src/types.ts -a "interface Profile {" -l "  bio?: string;" -l "  website?: string;"
  ensurelines apply -c rules.yaml --dry-run`,
	}
	AttachApply(cmd)
	return cmd
}

// AttachApply adds the apply flags and action to cmd, so the root command can
// run apply by default
func AttachApply(cmd *cobra.Command) {
	flags := &inputFlags{}
	flags.register(cmd)

	var dryRun bool
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the changes as a diff without writing")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := log.FromContext(ctx)

		r, err := flags.prepare(ctx, cmd)
		if err != nil {
			return err
		}

		if len(r.targets) == 0 {
			logger.Warningf("no files matched %s", r.cfg)
			return nil
		}

		if len(r.targets) > 1 {
			logger.Header(fmt.Sprintf("ensuring lines in %d files", len(r.targets)))
		}

		results, err := r.runner(dryRun, logger).Run(ctx, r.targets)

		if dryRun {
			logger.Infof("dry run, %d file(s) left untouched", len(results))
		}

		if len(results) > 1 {
			if serr := logger.Summary(); serr != nil {
				return errors.Errorf("rendering summary: %w", serr)
			}
		}

		if err != nil {
			return errors.Errorf("applying rules: %w", err)
		}

		return nil
	}
}
