package commands

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/ensurelines/pkg/config"
	"github.com/walteh/ensurelines/pkg/file"
	"github.com/walteh/ensurelines/pkg/log"
	"github.com/walteh/ensurelines/pkg/operation"
	"gitlab.com/tozd/go/errors"
)

// inputFlags are the flags shared by apply and check
type inputFlags struct {
	configFile  string
	file        string
	anchor      string
	lines       []string
	backup      bool
	async       bool
	concurrency int
}

// register adds the input flags to cmd
func (f *inputFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.configFile, "config", "c", "", "rules file (.yaml, .yml, .json or .hcl)")
	flags.StringVarP(&f.file, "file", "f", "", "file to edit")
	flags.StringVarP(&f.anchor, "anchor", "a", "", "case-insensitive text of the line to insert after")
	flags.StringArrayVarP(&f.lines, "line", "l", nil, "line to insert if missing (repeatable, order is kept)")
	flags.BoolVar(&f.backup, "backup", false, "copy each file to <file>.bak before rewriting it")
	flags.BoolVar(&f.async, "async", false, "process files concurrently")
	flags.IntVar(&f.concurrency, "concurrency", config.DefaultConcurrency, "number of files processed at once with --async")

	cmd.MarkFlagsMutuallyExclusive("config", "file")
	cmd.MarkFlagsMutuallyExclusive("config", "anchor")
	cmd.MarkFlagsMutuallyExclusive("config", "line")
}

// load builds the config from either the rules file or the inline flags.
// Flags given explicitly override the file's settings.
func (f *inputFlags) load(ctx context.Context, cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)

	if f.configFile != "" {
		cfg, err = config.Load(ctx, f.configFile)
		if err != nil {
			return nil, errors.Errorf("loading config: %w", err)
		}
	} else {
		cfg, err = config.FromFlags(f.file, f.anchor, f.lines)
		if err != nil {
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("backup") {
		cfg.Backup = f.backup
	}
	if flags.Changed("async") {
		cfg.Async = f.async
	}
	if flags.Changed("concurrency") {
		if f.concurrency <= 0 {
			return nil, errors.Errorf("concurrency must be positive")
		}
		cfg.Concurrency = f.concurrency
	}

	zerolog.Ctx(ctx).Debug().Str("config", cfg.String()).Msg("loaded rules")

	return cfg, nil
}

// run is a loaded config with its resolved targets
type run struct {
	cfg     *config.Config
	files   *file.Manager
	targets []operation.Target
}

// prepare loads the config and resolves its targets
func (f *inputFlags) prepare(ctx context.Context, cmd *cobra.Command) (*run, error) {
	cfg, err := f.load(ctx, cmd)
	if err != nil {
		return nil, err
	}

	files := file.NewManager(cfg.Dir())

	targets, err := operation.Expand(ctx, files, cfg.Rules)
	if err != nil {
		return nil, errors.Errorf("expanding files: %w", err)
	}

	return &run{cfg: cfg, files: files, targets: targets}, nil
}

func (r *run) runner(dryRun bool, logger *log.Logger) *operation.Runner {
	cfg := r.cfg
	return operation.NewRunner(operation.Options{
		Files:       r.files,
		Logger:      logger,
		DryRun:      dryRun,
		Backup:      cfg.Backup,
		Async:       cfg.Async,
		Concurrency: cfg.Concurrency,
	})
}
