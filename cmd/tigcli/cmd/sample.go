package cmd

import (
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/the-innovation-game/benchmarker/benchmark"
	"github.com/the-innovation-game/benchmarker/seed"
	"github.com/the-innovation-game/benchmarker/shared"
)

func newSampleCmd(a *app) *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "sample <challenge-id>",
		Short: "Draw random difficulties from the frontier of a challenge",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count <= 0 {
				return errors.New("`count` must be greater than 0")
			}
			client, err := a.client()
			if err != nil {
				return err
			}
			fr, err := client.GetFrontiers(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			data := make([][]string, 0, count)
			for i := 0; i < count; i++ {
				d, err := benchmark.SampleDifficulty(fr, nil)
				if err != nil {
					return err
				}
				row := make([]string, 0, len(fr.DifficultyParameters))
				for _, param := range fr.DifficultyParameters {
					row = append(row, strconv.FormatInt(d[param], 10))
				}
				data = append(data, row)
			}
			report(cmd.OutOrStdout(), fr.DifficultyParameters, data)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 1, "number of difficulties to draw")
	return cmd
}

func newSeedCmd(a *app) *cobra.Command {
	var (
		blockID     string
		prevBlockID string
		algorithmID string
		challengeID string
		difficulty  map[string]int64
		nonce       uint64
		count       uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Derive the seeds of benchmark instances",
		Long: `Derive the random seeds of the instances of a benchmark, one per nonce,
exactly as the benchmarker and the verifier do. The nonce range defaults to
the configured start-nonce and nonces.`,
		Example: "  tigcli seed --player-id p1 --block b1 --prev-block b0 --algorithm a1 --challenge c1 --difficulty x=5,y=3 --nonce 42",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.requirePlayer(); err != nil {
				return err
			}
			// Without flags the configured nonce range of a benchmark is used.
			if !cmd.Flags().Changed("nonce") {
				nonce = a.cfg.StartNonce
			}
			if !cmd.Flags().Changed("count") {
				count = a.cfg.NumNonces
			}
			if count == 0 {
				return errors.New("`count` must be greater than 0")
			}

			d := shared.Difficulty(difficulty)
			data := make([][]string, 0, count)
			for n := nonce; n-nonce < count; n++ {
				s := seed.Calc(a.cfg.PlayerID, blockID, prevBlockID, algorithmID, challengeID, d, n)
				data = append(data, []string{strconv.FormatUint(n, 10), strconv.FormatUint(uint64(s), 10)})
			}
			report(cmd.OutOrStdout(), []string{"nonce", "seed"}, data)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&blockID, "block", "", "block id")
	flags.StringVar(&prevBlockID, "prev-block", "", "previous block id")
	flags.StringVar(&algorithmID, "algorithm", "", "algorithm id")
	flags.StringVar(&challengeID, "challenge", "", "challenge id")
	flags.StringToInt64Var(&difficulty, "difficulty", nil, "difficulty, e.g. x=5,y=3")
	flags.Uint64Var(&nonce, "nonce", 0, "first nonce, defaults to start-nonce")
	flags.Uint64Var(&count, "count", 0, "number of consecutive nonces, defaults to nonces")
	for _, name := range []string{"block", "prev-block", "algorithm", "challenge"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}
