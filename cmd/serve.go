package cmd

import (
	"github.com/spf13/cobra"

	"github.com/kilianp07/jobseq/app"
)

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the scheduling API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTP.Addr = addr
			}
			log := newLogger(cfg, "serve", cmd.ErrOrStderr())
			svc, err := app.New(cfg, log)
			if err != nil {
				return err
			}
			defer func() {
				if err := svc.Close(); err != nil {
					log.Errorf("service close: %v", err)
				}
			}()
			return svc.Run(cmd.Context())
		},
	}
	c.Flags().StringVar(&addr, "addr", "", "listen address (overrides http.addr)")
	return c
}
