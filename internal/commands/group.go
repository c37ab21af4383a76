package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmthang/awaybot/internal/models"
)

var groupCmd = &cobra.Command{
	Use:   "group",
	Short: "Manage group registration",
}

var groupRegisterCmd = &cobra.Command{
	Use:   "register [group-id] [name]",
	Short: "Register a group for activity tracking",
	Long: `Register a group so its members can start activities. The --by user
becomes the group's superadmin; without --by the local operator is trusted.`,
	Args: cobra.RangeArgs(1, 2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groupID := args[0]
		name := groupID
		if len(args) > 1 {
			name = args[1]
		}
		by, _ := cmd.Flags().GetString("by")
		if by != "" {
			if !a.requireRole(by, groupID, models.RoleSuperAdmin) {
				return
			}
		}

		group, err := a.groups.Register(groupID, name, by)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Group %s registered as %q\n", group.GroupID, group.Name)
		fmt.Printf("Reports go to: %s\n", group.ReportTarget)
	}),
}

var groupSetReportCmd = &cobra.Command{
	Use:   "setreport [group-id] [target]",
	Short: "Set where a group's daily reports are delivered",
	Args:  cobra.ExactArgs(2),
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groupID, target := args[0], args[1]
		by, _ := cmd.Flags().GetString("by")
		if by != "" {
			if !a.requireRole(by, groupID, models.RoleSuperAdmin) {
				return
			}
		}

		if err := a.groups.SetReportTarget(groupID, target); err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		fmt.Printf("✅ Reports for %s now go to %s\n", groupID, target)
	}),
}

var groupListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List registered groups",
	Run: withApp(func(a *app, cmd *cobra.Command, args []string) {
		groups, err := a.groups.Groups()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		if len(groups) == 0 {
			fmt.Println("No groups registered. Use 'awaybot group register <group-id>' first.")
			return
		}
		fmt.Printf("%-20s %-24s %s\n", "GROUP", "NAME", "REPORT TARGET")
		for _, g := range groups {
			fmt.Printf("%-20s %-24s %s\n", g.GroupID, g.Name, g.ReportTarget)
		}
	}),
}

// requireRole checks the acting user's role, printing the refusal itself.
func (a *app) requireRole(userID, groupID string, want models.Role) bool {
	role, err := a.groups.RoleOf(userID, groupID)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return false
	}
	switch want {
	case models.RoleSuperAdmin:
		if role != models.RoleSuperAdmin {
			fmt.Println("❌ Only a superadmin can do this.")
			return false
		}
	case models.RoleAdmin:
		if !role.IsAdmin() {
			fmt.Println("❌ Only an admin can do this.")
			return false
		}
	}
	return true
}

func init() {
	groupCmd.AddCommand(groupRegisterCmd)
	groupCmd.AddCommand(groupSetReportCmd)
	groupCmd.AddCommand(groupListCmd)
	groupRegisterCmd.Flags().String("by", "", "Acting member id (role-checked)")
	groupSetReportCmd.Flags().String("by", "", "Acting member id (role-checked)")
}
