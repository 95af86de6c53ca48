package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/llehouerou/tideplay/internal/errmsg"
	"github.com/llehouerou/tideplay/internal/state"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently released sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := state.Open()
			if err != nil {
				return err
			}
			defer store.Close()
			return printHistory(cmd, store, limit)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries")
	return cmd
}

func printHistory(cmd *cobra.Command, store state.Interface, limit int) error {
	recs, err := store.History(limit)
	if err != nil {
		return errmsg.Wrap(errmsg.OpHistory, err)
	}
	if len(recs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no sessions yet")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSOURCE\tWINDOW\tPOSITION\tAUTOPLAY")
	for _, r := range recs {
		label := r.Label
		if label == "" {
			label = r.SourceKey
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%t\n",
			humanize.Time(r.UpdatedAt), label, r.State.WindowIndex+1, r.State.Position, r.State.Autoplay)
	}
	return w.Flush()
}
