package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmthang/awaybot/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch active sessions with live countdowns",
	Long: `Run the live countdown view. While watch is running, staged warnings
and forced timeouts fire for every active session, including sessions
restored from a previous run.`,
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		if err := tui.RunWatchTUI(a.ctrl); err != nil {
			fmt.Printf("Error: %v\n", err)
		}
	}),
}
