package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nmthang/awaybot/internal/tracker"
)

var startCmd = &cobra.Command{
	Use:   "start [group-id] [user-id] [kind]",
	Short: "Start an away activity for a member",
	Long: `Start an away activity. The group must be registered and the member
must not already be away.

Examples:
  awaybot start team-7 u1001 smoke --name "Binh"
  awaybot start team-7 u1002 restroom-short`,
	Args: cobra.ExactArgs(3),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groupID, userID, kind := args[0], args[1], args[2]
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = userID
		}

		view, err := a.ctrl.StartActivity(groupID, userID, kind, name)
		if view == nil {
			printTrackerError(err)
			return
		}
		if err != nil {
			// started, but the durable write failed
			fmt.Printf("⚠️  %v\n", err)
		}

		fmt.Printf("⏱️  %s started: %s\n", view.DisplayName, view.Label)
		fmt.Printf("Allowed: %d min\n", view.LimitMinutes)
		fmt.Printf("Return by: %s\n", view.Deadline.Format("15:04:05"))
	}),
}

var backCmd = &cobra.Command{
	Use:   "back [user-id]",
	Short: "End a member's away activity",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		summary, err := a.ctrl.EndActivity(args[0])
		if summary == nil {
			printTrackerError(err)
			return
		}
		if err != nil {
			fmt.Printf("⚠️  %v\n", err)
		}

		e := summary.Entry
		if e.Violation {
			fmt.Printf("⚠️  Time limit exceeded!\n")
			fmt.Printf("Activity: %s\n", summary.Label)
			fmt.Printf("Allowed: %d min\n", e.LimitMinutes)
			fmt.Printf("Actual: %.1f min (%.1f over)\n", e.DurationMinutes, e.OverageMinutes)
		} else {
			fmt.Printf("✅ Done!\n")
			fmt.Printf("Activity: %s\n", summary.Label)
			fmt.Printf("Time: %.1f min\n", e.DurationMinutes)
		}
		fmt.Printf("\n📊 Today so far:\n")
		fmt.Printf("• Total away time: %.1f min\n", summary.Day.TotalMinutes)
		fmt.Printf("• Activities: %d\n", summary.Day.ActivityCount)
	}),
}

var statusCmd = &cobra.Command{
	Use:   "status [user-id]",
	Short: "Show a member's current activity",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		view := a.ctrl.QueryActive(args[0])
		if view == nil {
			fmt.Println("No activity in progress")
			return
		}

		fmt.Printf("⏱️  %s is away: %s\n", view.DisplayName, view.Label)
		fmt.Printf("Started at: %s\n", view.StartedAt.Format("15:04:05"))
		if view.Remaining >= 0 {
			fmt.Printf("Remaining: %s\n", formatCountdown(view.Remaining))
		} else {
			fmt.Printf("OVERDUE by %s\n", formatCountdown(-view.Remaining))
		}
	}),
}

func printTrackerError(err error) {
	if r, ok := tracker.AsRejection(err); ok {
		fmt.Printf("❌ %v\n", r)
		return
	}
	fmt.Printf("Error: %v\n", err)
}

// formatCountdown renders a duration as mm:ss.
func formatCountdown(d time.Duration) string {
	d = d.Round(time.Second)
	minutes := int(d.Minutes())
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

func init() {
	startCmd.Flags().String("name", "", "Display name for reports")
}
