package main

import (
	"errors"
	"fmt"

	"prize_pool/internal/probability"

	"github.com/spf13/cobra"
)

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "select",
		Short:   "Pick the winning index for a probability vector and seed",
		Example: `  poolctl select --probs 9040,809,101,50 --seed 9848`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, _ := cmd.Flags().GetString("probs")
			if raw == "" {
				return errors.New("--probs is required")
			}
			probs, err := parseProbs(raw)
			if err != nil {
				return err
			}
			seed, _ := cmd.Flags().GetUint64("seed")

			idx, err := probability.Select(probs, seed)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), idx)
			return nil
		},
	}

	cmd.Flags().String("probs", "", "comma separated basis points")
	cmd.Flags().Uint64("seed", 0, "selection seed")
	return cmd
}
