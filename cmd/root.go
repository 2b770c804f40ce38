package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobseq/config"
	"github.com/kilianp07/jobseq/infra/logger"
)

type options struct {
	cfgPath string
}

// NewRootCmd builds the jobseq command tree. Without a subcommand it runs the
// built-in self-test.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "jobseq",
		Short:         "Job sequencing with deadlines",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelftest(cmd, opts, &selftestOptions{})
		},
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "", "configuration file (yaml or json)")
	root.AddCommand(newScheduleCmd(opts), newSelftestCmd(opts), newServeCmd(opts))
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	root := NewRootCmd()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "error:", err)
		return err
	}
	return nil
}

func (o *options) load() (*config.Config, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, component string, out io.Writer) logger.Logger {
	return logger.NewZerologLoggerWithOptions(component, logger.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Out:    out,
	})
}
