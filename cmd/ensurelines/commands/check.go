package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/walteh/ensurelines/pkg/log"
	"github.com/walteh/ensurelines/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// NewCheckCmd creates a new check command
func NewCheckCmd() *cobra.Command {
	flags := &inputFlags{}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Report files that are missing lines",
		Long: `Check runs the same rules as apply without writing anything.
It prints a diff for every file that would change and fails if any would.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := log.FromContext(ctx)

			r, err := flags.prepare(ctx, cmd)
			if err != nil {
				return err
			}

			if len(r.targets) > 1 {
				logger.Header(fmt.Sprintf("checking %d files", len(r.targets)))
			}

			results, err := r.runner(true, logger).Check(ctx, r.targets)

			if len(results) > 1 {
				if serr := logger.Summary(); serr != nil {
					return errors.Errorf("rendering summary: %w", serr)
				}
			}

			switch {
			case errors.Is(err, operation.ErrPendingChanges):
				return err
			case err != nil:
				return errors.Errorf("checking files: %w", err)
			}

			logger.Successf("no changes pending in %d file(s)", len(results))
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}
