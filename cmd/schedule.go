package cmd

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobseq/app"
	"github.com/kilianp07/jobseq/core/sequencing"
	"github.com/kilianp07/jobseq/pkg/export"
)

type scheduleOptions struct {
	file     string
	strategy string
	output   string
}

func newScheduleCmd(opts *options) *cobra.Command {
	so := &scheduleOptions{}
	c := &cobra.Command{
		Use:   "schedule",
		Short: "Sequence the jobs of a yaml, json or csv file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSchedule(cmd, opts, so)
		},
	}
	c.Flags().StringVarP(&so.file, "file", "f", "", "jobs file")
	c.Flags().StringVarP(&so.strategy, "strategy", "s", "", "strategy (default from config)")
	c.Flags().StringVarP(&so.output, "output", "o", "text", "output format: text, json or csv")
	_ = c.MarkFlagRequired("file")
	return c
}

func runSchedule(cmd *cobra.Command, opts *options, so *scheduleOptions) error {
	if !slices.Contains(export.Formats, so.output) {
		return fmt.Errorf("unsupported output format %q", so.output)
	}
	if so.file == "" {
		return errors.New("a jobs file is required")
	}
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	jobs, err := sequencing.LoadJobs(so.file)
	if err != nil {
		return fmt.Errorf("load jobs: %w", err)
	}
	svc, err := app.New(cfg, newLogger(cfg, "schedule", cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Schedule(cmd.Context(), so.strategy, jobs)
	if err != nil {
		return err
	}
	return export.Write(cmd.OutOrStdout(), so.output, res.Plan)
}
