package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmthang/awaybot/internal/models"
	"github.com/nmthang/awaybot/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report [group-id]",
	Short: "Show a group's daily activity report",
	Long: `Show the activity ledger and per-member totals for a group and day.

Examples:
  awaybot report team-7
  awaybot report team-7 --date 2026-08-28
  awaybot report team-7 --csv team-7.csv`,
	Args: cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groupID := args[0]

		day := a.clock.Now().Format(models.DayFormat)
		if dateFlag, _ := cmd.Flags().GetString("date"); dateFlag != "" {
			parsed, err := time.Parse("2006-01-02", dateFlag)
			if err != nil {
				fmt.Printf("Error: invalid date %q, expected YYYY-MM-DD\n", dateFlag)
				return
			}
			day = parsed.Format(models.DayFormat)
		}

		entries, err := a.ledger.Query(groupID, day)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		totals := report.AggregateByUser(entries)

		fmt.Print(report.RenderTable(groupID, day, entries, totals))

		if csvPath, _ := cmd.Flags().GetString("csv"); csvPath != "" {
			if err := report.WriteCSV(csvPath, entries, totals); err != nil {
				fmt.Printf("Error: %v\n", err)
				return
			}
			fmt.Printf("\n💾 Report written to %s\n", csvPath)
		}
	}),
}

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the activity catalog",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		fmt.Printf("%-18s %-24s %s\n", "KIND", "LABEL", "LIMIT")
		for _, k := range a.catalog.Kinds() {
			fmt.Printf("%-18s %-24s %d min\n", k.Name, k.Label, k.LimitMinutes)
		}
	}),
}

func init() {
	reportCmd.Flags().String("date", "", "Day to report on (YYYY-MM-DD, default today)")
	reportCmd.Flags().String("csv", "", "Also write the report as CSV to this path")
}
