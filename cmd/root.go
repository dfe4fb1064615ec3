package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"groupdss/config"
	"groupdss/database"
	"groupdss/events"
	"groupdss/metrics"
	"groupdss/repository"
	"groupdss/service"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds the dependencies shared by the subcommands
type app struct {
	cfg      *config.Config
	db       *database.DB
	eventBus *events.Bus
	recorder *metrics.Recorder
	service  service.DecisionService
	closers  []func()
}

// connect opens the database and wires the decision service
func (a *app) connect(ctx context.Context) error {
	log.Debug("Connecting to database...")
	db, err := database.NewConnection(ctx, a.cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	a.db = db
	a.closers = append(a.closers, db.Close)
	a.eventBus = events.NewBus()
	a.recorder = metrics.NewRecorder()
	a.service = service.NewDecisionService(repository.NewUnitOfWorkFactory(db, a.eventBus), a.recorder)
	return nil
}

// close releases everything connect opened, most recent first
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
	a.db = nil
}

// NewRootCmd builds the groupdss command tree
func NewRootCmd() *cobra.Command {
	return newRootCmd(&app{})
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "groupdss",
		Short:         "Group decision support: Weighted Product per judge, Borda across judges",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg
			return configureLogging(cfg.LogLevel, cfg.LogFormat)
		},
	}

	rootCmd.AddCommand(serveCmd(a))
	rootCmd.AddCommand(calculateCmd(a))
	rootCmd.AddCommand(completenessCmd(a))
	rootCmd.AddCommand(resultsCmd(a))
	rootCmd.AddCommand(scheduleCmd(a))
	rootCmd.AddCommand(migrateCmd(a))

	return rootCmd
}

// Execute runs the CLI until ctx is cancelled
func Execute(ctx context.Context) error {
	a := &app{}
	return execute(ctx, newRootCmd(a), a, os.Stderr)
}

// execute closes the app whether or not the command failed
func execute(ctx context.Context, rootCmd *cobra.Command, a *app, stderr io.Writer) error {
	defer a.close()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		printFailure(stderr, err)
		return err
	}
	return nil
}
