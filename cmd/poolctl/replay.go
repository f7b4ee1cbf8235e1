package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"prize_pool/internal/audit"

	"github.com/spf13/cobra"
)

var errReplayMismatch = errors.New("replayed selection does not match the recorded result")

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Re-run selection for recorded spins and check the outcome",
		Long: "Opens the audit store and repeats selection for one ticket (--ticket) " +
			"or for every recorded spin of the pool. Exits with an error if any result differs.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, _ := cmd.Flags().GetString("audit-dir")
			if dir == "" {
				return errors.New("--audit-dir is required")
			}
			poolID, _ := cmd.Flags().GetInt64("pool")
			ticketID, _ := cmd.Flags().GetString("ticket")

			store, err := audit.Open(dir)
			if err != nil {
				return err
			}
			defer store.Close()

			var records []audit.Record
			if ticketID != "" {
				rec, err := store.Get(poolID, ticketID)
				if err != nil {
					return err
				}
				records = append(records, rec)
			} else {
				records, err = store.List(poolID)
				if err != nil {
					return err
				}
			}

			return printReplay(cmd, records)
		},
	}

	cmd.Flags().String("audit-dir", "", "Badger audit directory")
	cmd.Flags().Int64("pool", 0, "pool id")
	cmd.Flags().String("ticket", "", "ticket id, all spins of the pool if empty")
	return cmd
}

func printReplay(cmd *cobra.Command, records []audit.Record) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TICKET\tSEED\tRECORDED\tREPLAYED\tOK")

	mismatches := 0
	for _, rec := range records {
		idx, ok, err := audit.Replay(rec)
		if err != nil {
			return fmt.Errorf("ticket %s: %w", rec.TicketID, err)
		}
		if !ok {
			mismatches++
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%t\n", rec.TicketID, rec.Seed, rec.ItemIndex, idx, ok)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "replayed %d spins, %d mismatches\n", len(records), mismatches)
	if mismatches > 0 {
		return errReplayMismatch
	}
	return nil
}
