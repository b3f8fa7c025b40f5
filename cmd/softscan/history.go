package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/softscan/internal/report"
	"github.com/pdiddy/softscan/internal/store"
	"github.com/pdiddy/softscan/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List saved scan runs, or show one run's records",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().String("db", defaultDBPath, "history database file")
	historyCmd.Flags().Bool("no-color", false, "disable colored software names")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	s, err := store.Open(types.StoreConfig{DBPath: dbPath})
	if err != nil {
		return err
	}
	defer s.Close()

	if len(args) == 1 {
		var runID int64
		if _, err := fmt.Sscanf(args[0], "%d", &runID); err != nil {
			return fmt.Errorf("invalid run ID %q", args[0])
		}
		recs, err := s.Records(runID)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			return fmt.Errorf("run %d not found", runID)
		}
		noColor, _ := cmd.Flags().GetBool("no-color")
		report.WriteTable(os.Stdout, types.BatchResult{Records: recs}, !noColor)
		return nil
	}

	runs, err := s.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No saved runs.")
		return nil
	}

	tw := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tDATE\tARTICLES\tACCESSIBLE\tWITH SOFTWARE\tSECONDS")
	for _, r := range runs {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%.1f\n",
			r.ID, r.CreatedAt.Format("2006-01-02 15:04"),
			r.Total, r.Accessible, r.WithSoftware, r.TotalSeconds)
	}
	return tw.Flush()
}
