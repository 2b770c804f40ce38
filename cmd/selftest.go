package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobseq/core/sequencing"
	"github.com/kilianp07/jobseq/qa/scenarios"
)

// PassedMessage is printed when every scenario matches.
const PassedMessage = "All tests have successfully passed!"

type selftestOptions struct {
	strategy string
	files    []string
}

func newSelftestCmd(opts *options) *cobra.Command {
	st := &selftestOptions{strategy: sequencing.StrategyBoundary}
	c := &cobra.Command{
		Use:   "selftest",
		Short: "Check the reference scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSelftest(cmd, opts, st)
		},
	}
	c.Flags().StringVarP(&st.strategy, "strategy", "s", st.strategy, "strategy to check")
	c.Flags().StringSliceVarP(&st.files, "file", "f", nil, "additional scenario files")
	return c
}

// runSelftest checks the scenarios bound to st.strategy. The configured
// default strategy does not change what is checked; the configuration is
// still loaded so that an invalid file fails the run.
func runSelftest(cmd *cobra.Command, opts *options, st *selftestOptions) error {
	cfg, err := opts.load()
	if err != nil {
		return err
	}
	strategy := st.strategy
	if strategy == "" {
		strategy = sequencing.StrategyBoundary
	}
	var seq sequencing.Sequencer
	if strategy == cfg.Sequencing.Strategy {
		seq, err = cfg.Sequencing.Build()
	} else {
		seq, err = sequencing.NewSequencer(strategy, nil)
	}
	if err != nil {
		return err
	}

	scs, err := scenarios.Builtin()
	if err != nil {
		return err
	}
	for _, f := range st.files {
		sc, err := scenarios.Load(f)
		if err != nil {
			return err
		}
		scs = append(scs, sc)
	}
	checked, err := scenarios.Run(seq, scs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", PassedMessage)
	fmt.Fprintf(cmd.ErrOrStderr(), "%d scenarios checked with %s\n", checked, seq.Name())
	return nil
}
