package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/radekwlsk/go-tsp/gotsp/gotspservice/archive"
)

var runsOpts struct {
	archive string
	limit   int
	json    bool
}

var runsCmd = &cobra.Command{
	Use:   "runs [id]",
	Short: "List archived plans or show one of them",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRuns,
}

func init() {
	runsCmd.Flags().StringVar(&runsOpts.archive, "archive", archive.DefaultFileName, "SQLite archive file")
	runsCmd.Flags().IntVar(&runsOpts.limit, "limit", 20, "Number of plans to list, 0 lists all")
	runsCmd.Flags().BoolVar(&runsOpts.json, "json", false, "Print a single plan as JSON")
	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	store, err := archive.Open(runsOpts.archive)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 1 {
		plan, err := store.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printPlan(cmd, plan, runsOpts.json)
	}

	plans, err := store.List(cmd.Context(), runsOpts.limit)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tALGORITHM\tCITIES\tDISTANCE\tSTOP\tCREATED")
	for _, p := range plans {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2f\t%s\t%s\n",
			p.ID, p.Algorithm, p.Tour.Size(), p.Tour.TotalDistance(), p.StopReason,
			p.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}
