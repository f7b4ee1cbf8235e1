package main

import (
	"fmt"
	"text/tabwriter"

	"prize_pool/internal/converter"
	"prize_pool/internal/probability"

	"github.com/spf13/cobra"
)

func newAllocateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Compute the probability vector for pool items",
		Example: `  poolctl allocate --price 100 --item iPhone=10 --item iPad=50 --item MacBook=200 --item AirPods=1000
  poolctl allocate -f pool.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in, err := readPoolInput(cmd)
			if err != nil {
				return err
			}
			params, err := engineParams(cmd)
			if err != nil {
				return err
			}

			alloc, err := probability.Allocate(in.items, in.ticketPrice, params)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "#\tNAME\tVALUE\tBP\tPERCENT")
			for i, item := range in.items {
				p := alloc.Probabilities[i]
				fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s%%\n", i, item.Name, item.Value, p, converter.FormatPercent(p))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(out, "house edge: %d bp, passes: %d, fallback: %t\n", alloc.HouseEdge, alloc.Passes, alloc.Fallback)
			return nil
		},
	}

	addPoolFlags(cmd)
	return cmd
}
