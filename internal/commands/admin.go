package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmthang/awaybot/internal/models"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage group admins",
}

var adminAddCmd = &cobra.Command{
	Use:   "add [group-id] [user-id]",
	Short: "Grant admin in a group",
	Long: `Grant admin (or, with --super, superadmin) in a group. With --by the
acting member must be a superadmin of the group.`,
	Args: cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groupID, userID := args[0], args[1]
		by, _ := cmd.Flags().GetString("by")
		if by != "" && !a.requireRole(by, groupID, models.RoleSuperAdmin) {
			return
		}

		super, _ := cmd.Flags().GetBool("super")
		var err error
		if super {
			err = a.groups.AddSuperAdmin(groupID, userID)
		} else {
			err = a.groups.AddAdmin(groupID, userID)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if super {
			fmt.Printf("✅ Added superadmin %s to %s\n", userID, groupID)
		} else {
			fmt.Printf("✅ Added admin %s to %s\n", userID, groupID)
		}
	}),
}

var adminRemoveCmd = &cobra.Command{
	Use:   "remove [group-id] [user-id]",
	Short: "Revoke admin in a group",
	Args:  cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groupID, userID := args[0], args[1]
		by, _ := cmd.Flags().GetString("by")
		if by != "" && !a.requireRole(by, groupID, models.RoleSuperAdmin) {
			return
		}

		super, _ := cmd.Flags().GetBool("super")
		var err error
		if super {
			err = a.groups.RemoveSuperAdmin(groupID, userID)
		} else {
			err = a.groups.RemoveAdmin(groupID, userID)
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Removed %s from the admin list of %s\n", userID, groupID)
	}),
}

var adminListCmd = &cobra.Command{
	Use:   "ls [group-id]",
	Short: "List a group's admins",
	Args:  cobra.ExactArgs(1),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		members, err := a.groups.Members(args[0])
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(members) == 0 {
			fmt.Println("No admins configured.")
			return
		}
		fmt.Println("👥 Admins:")
		for _, m := range members {
			badge := "👤 Admin"
			if m.Role == models.RoleSuperAdmin {
				badge = "👑 Superadmin"
			}
			fmt.Printf("- %s  %s\n", m.UserID, badge)
		}
	}),
}

func init() {
	adminCmd.AddCommand(adminAddCmd)
	adminCmd.AddCommand(adminRemoveCmd)
	adminCmd.AddCommand(adminListCmd)
	adminAddCmd.Flags().Bool("super", false, "Grant superadmin instead of admin")
	adminRemoveCmd.Flags().Bool("super", false, "Revoke superadmin instead of admin")
	adminAddCmd.Flags().String("by", "", "Acting member id (role-checked)")
	adminRemoveCmd.Flags().String("by", "", "Acting member id (role-checked)")
}
