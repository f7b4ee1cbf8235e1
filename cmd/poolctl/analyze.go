package main

import (
	"fmt"
	"math"
	"text/tabwriter"

	"prize_pool/internal/probability"

	"github.com/spf13/cobra"
)

const (
	chanceSpins  = 10
	targetChance = 0.8
	maxSpins     = 1000
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Allocate and print expected spins and profitability per item",
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

			items := make([]probability.Item, len(in.items))
			for i, item := range in.items {
				items[i] = probability.Item{
					Name:        item.Name,
					Value:       item.Value,
					Probability: alloc.Probabilities[i],
					Available:   true,
				}
			}

			out := cmd.OutOrStdout()
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tVALUE\tBP\tSPINS\tCOST\tPROFIT\tRATIO\tIN 10\tTO 80%")
			for _, a := range probability.AnalyzePool(items, in.ticketPrice) {
				spinsFor80 := "-"
				if n, ok := probability.SpinsForChance(a.Probability, targetChance, maxSpins); ok {
					spinsFor80 = fmt.Sprint(n)
				}
				fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\t%s\t%s\t%.2f%%\t%s\n",
					a.ItemName, a.Value, a.Probability,
					formatFloat(a.ExpectedSpins), formatPtr(a.ExpectedCost), formatPtr(a.Profit), formatPtr(a.ProfitRatio),
					probability.ChanceWithin(a.Probability, chanceSpins)*100,
					spinsFor80,
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			rtp := probability.ExpectedPayout(items) / float64(in.ticketPrice) * 100
			fmt.Fprintf(out, "expected RTP: %.2f%%\n", rtp)
			return nil
		},
	}

	addPoolFlags(cmd)
	return cmd
}

func formatFloat(v float64) string {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return fmt.Sprintf("%.2f", v)
}

func formatPtr(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}
