package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nmthang/awaybot/internal/clock"
	"github.com/nmthang/awaybot/internal/config"
	"github.com/nmthang/awaybot/internal/db"
	"github.com/nmthang/awaybot/internal/models"
	"github.com/nmthang/awaybot/internal/tracker"

	"gorm.io/gorm"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "awaybot",
	Short: "Away-activity tracker for group members",
	Long: `awaybot tracks bounded-duration away activities (breaks, meals, smoke
breaks) for members of registered groups, warns as a member's time limit
approaches, and records every activity for daily reporting.`,
}

// app bundles the wired collaborators a command works against.
type app struct {
	cfg      *config.Config
	conn     *gorm.DB
	catalog  *models.Catalog
	clock    clock.Clock
	sessions *db.SessionService
	ledger   *db.LedgerService
	groups   *db.GroupService
	ctrl     *tracker.Controller
}

// newApp loads config, opens the state database, and restores the session
// controller. Corrupt state is quarantined inside OpenWithRecovery and the
// process continues with empty state.
func newApp() (*app, error) {
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return nil, err
		}
		configPath = p
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, fmt.Errorf("invalid activity catalog: %w", err)
	}

	clk, err := clock.NewZone(cfg.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.App.Timezone, err)
	}

	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	conn, err := db.OpenWithRecovery(dbPath)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		conn:     conn,
		catalog:  catalog,
		clock:    clk,
		sessions: db.NewSessionService(conn),
		ledger:   db.NewLedgerService(conn),
		groups:   db.NewGroupService(conn, cfg.App.InitialSuperadmin),
	}
	a.ctrl = tracker.NewController(clk, catalog, a.sessions, a.groups, a.notifier())
	if err := a.ctrl.Restore(); err != nil {
		a.close()
		return nil, fmt.Errorf("failed to restore session state: %w", err)
	}
	return a, nil
}

func (a *app) notifier() tracker.Notifier {
	return &tracker.RetryNotifier{
		Inner:    tracker.LogNotifier{},
		Attempts: a.cfg.App.NotifyAttempts,
	}
}

func (a *app) close() {
	a.ctrl.Shutdown()
	db.Close(a.conn)
}

// withApp wraps a command function so it runs against a wired app.
func withApp(fn func(a *app, cmd *cobra.Command, args []string)) func(*cobra.Command, []string) {
	return func(cmd *cobra.Command, args []string) {
		a, err := newApp()
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
		defer a.close()
		fn(a, cmd, args)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("awaybot %s (commit %s, built %s)\n", version, commit, date)
	},
}

// SetVersion sets the version information
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to awaybot.toml")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(backCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(groupCmd)
	rootCmd.AddCommand(adminCmd)
	rootCmd.AddCommand(versionCmd)
}
