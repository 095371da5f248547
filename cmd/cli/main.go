package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mhofmann-club/aufstellung/cmd/cli/commands"
	"github.com/mhofmann-club/aufstellung/internal/config"
	"github.com/mhofmann-club/aufstellung/pkg/identity"
	"github.com/mhofmann-club/aufstellung/pkg/postgres"
	"github.com/mhofmann-club/aufstellung/pkg/roster"
	"github.com/mhofmann-club/aufstellung/pkg/utils/logging"
)

var (
	env   string
	token string

	app      *commands.AppContext
	database *postgres.DB
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "aufstellung",
		Short: "Aufstellung CLI - Coordinate substitutes across club teams",
		Long: `A CLI tool for the club's substitute coordination workflow:
per-fixture availability, substitute requests, and cross-team
substitute assignments with approval.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app != nil && app.Logger != nil {
				app.Logger.Sync()
			}
			if database != nil {
				database.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "Actor token (defaults to AUFSTELLUNG_TOKEN)")

	rootCmd.AddCommand(commands.SetAvailabilityCmd(appRef()))
	rootCmd.AddCommand(commands.ListAvailabilityCmd(appRef()))
	rootCmd.AddCommand(commands.UpsertRequestCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteRequestCmd(appRef()))
	rootCmd.AddCommand(commands.ArchiveRequestCmd(appRef()))
	rootCmd.AddCommand(commands.ListRequestsCmd(appRef()))
	rootCmd.AddCommand(commands.ProposeAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.DecideAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.ArchiveAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.DeleteAssignmentCmd(appRef()))
	rootCmd.AddCommand(commands.ListAssignmentsCmd(appRef()))
	rootCmd.AddCommand(commands.MakeTokenCmd(appRef()))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// appRef returns the shared AppContext, created empty up front so command
// constructors can capture it before initApp fills it in.
func appRef() *commands.AppContext {
	if app == nil {
		app = &commands.AppContext{}
	}
	return app
}

// initApp sets up logger, config, database, and the acting user.
func initApp() error {
	a := appRef()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Cfg = cfg

	logger, err := logging.InitLogger(env)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.Logger = logger
	logger.Debug("Initializing app", zap.String("env", env))

	ctx := context.Background()
	database, err = postgres.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.RunMigrations(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	a.Store = database
	a.Rosters = roster.NewStore(database.Pool())

	if token == "" {
		token = os.Getenv("AUFSTELLUNG_TOKEN")
	}
	if token != "" {
		actor, err := identity.ParseActor(token, []byte(cfg.TokenSigningKey))
		if err != nil {
			return fmt.Errorf("failed to verify actor token: %w", err)
		}
		a.Actor = actor
		logger.Debug("Actor verified", zap.String("user_id", actor.UserID))
	}

	return nil
}
