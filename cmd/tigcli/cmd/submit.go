package cmd

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/the-innovation-game/benchmarker/benchmark"
)

func newSubmitProofsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "submit-proofs <result-file | benchmark-id>",
		Short: "Submit the proofs of a saved benchmark result",
		Long: `Submit the proofs of a benchmark result saved by the runner. The argument is
either the path of the result file or a benchmark id, which is looked up in
the results directory.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			if _, err := os.Stat(path); err != nil {
				path = benchmark.ResultPath(a.cfg.ResultsDir, args[0])
			}

			res, err := benchmark.LoadResult(path)
			if err != nil {
				return err
			}
			client, err := a.client()
			if err != nil {
				return err
			}

			a.logger.Info("cli: submitting proofs",
				zap.String("benchmark_id", res.BenchmarkID),
				zap.Int("proofs", len(res.Proofs)),
			)
			if _, err := client.SubmitProofs(cmd.Context(), res.BenchmarkID, res.Proofs); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "submitted %d proofs for benchmark %s\n", len(res.Proofs), res.BenchmarkID)
			return nil
		},
	}
}

func newPrintConfigCmd(a *app) *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "print-config",
		Short: "Print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cfg.APIKey != "" {
				cfg.APIKey = "********"
			}
			spew.Fdump(cmd.OutOrStdout(), cfg)

			if validate {
				if err := a.cfg.Validate(); err != nil {
					return fmt.Errorf("invalid configuration: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "check the settings needed to run benchmarks, including nonces and workers")
	return cmd
}
