package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newEarningsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "earnings",
		Short: "Show the earnings of the player owning the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetEarnings(cmd.Context())
			if err != nil {
				return err
			}

			data := make([][]string, 0, len(resp.Earnings))
			for _, e := range resp.Earnings {
				data = append(data, []string{e.BlockID, e.ChallengeID, e.AlgorithmID, formatFloat(e.Amount)})
			}
			report(cmd.OutOrStdout(), []string{"block", "challenge", "algorithm", "amount"}, data)
			fmt.Fprintf(cmd.OutOrStdout(), "total: %s\n", formatFloat(resp.Total))
			return nil
		},
	}
}

func newBenchmarksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "benchmarks",
		Short: "List the recent benchmarks of the player owning the API key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetRecentBenchmarks(cmd.Context())
			if err != nil {
				return err
			}

			data := make([][]string, 0, len(resp.Benchmarks))
			for _, b := range resp.Benchmarks {
				data = append(data, []string{
					b.BenchmarkID,
					b.BlockID,
					b.ChallengeID,
					b.AlgorithmID,
					formatDifficulty(b.Difficulty),
					strconv.Itoa(len(b.Nonces)),
					b.Status,
				})
			}
			report(cmd.OutOrStdout(), []string{"benchmark", "block", "challenge", "algorithm", "difficulty", "nonces", "status"}, data)
			return nil
		},
	}
}

func newBlockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "block",
		Short: "Show the latest block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			block, err := client.GetLatestBlock(cmd.Context())
			if err != nil {
				return err
			}

			report(cmd.OutOrStdout(), []string{"height", "block", "prev block", "datetime"}, [][]string{{
				strconv.FormatUint(block.Height, 10),
				block.BlockID,
				block.PrevBlockID,
				block.Datetime,
			}})
			return nil
		},
	}
}

func newAlgorithmsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms <challenge-id>",
		Short: "List the algorithms of a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			resp, err := client.GetAlgorithms(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data := make([][]string, 0, len(resp.Algorithms))
			for _, alg := range resp.Algorithms {
				data = append(data, []string{alg.AlgorithmID, alg.Name, alg.PlayerID, strconv.FormatBool(alg.Banned)})
			}
			report(cmd.OutOrStdout(), []string{"algorithm", "name", "player", "banned"}, data)
			return nil
		},
	}
}

func newFrontiersCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "frontiers <challenge-id>",
		Short: "Show the difficulty frontier of a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := a.client()
			if err != nil {
				return err
			}
			fr, err := client.GetFrontiers(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			header := []string{"x", "y"}
			if len(fr.DifficultyParameters) == 2 {
				header = fr.DifficultyParameters
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "min difficulty: %v\n", fr.MinDifficulty)
			data := make([][]string, 0, len(fr.Frontier))
			for _, p := range fr.Frontier {
				data = append(data, []string{strconv.FormatInt(p.X, 10), strconv.FormatInt(p.Y, 10)})
			}
			report(w, header, data)
			return nil
		},
	}
}
