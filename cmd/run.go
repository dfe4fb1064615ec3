package cmd

import (
	"context"
	"fmt"
	"time"

	"groupdss/bot"
	"groupdss/database"
	"groupdss/infrastructure"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var skipMigrations bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Discord bot, the metrics endpoint and NATS forwarding",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !skipMigrations {
				if err := database.RunMigrationsWithURL(a.cfg.GetDatabaseURL()); err != nil {
					return err
				}
			}
			return run(cmd.Context(), a)
		},
	}

	cmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on start")
	return cmd
}

// run starts every long-running component and blocks until ctx is cancelled
func run(ctx context.Context, a *app) error {
	log.WithField("environment", a.cfg.Environment).Info("Starting groupdss...")

	if err := a.connect(ctx); err != nil {
		return err
	}
	log.Info("Database connection established")

	if a.cfg.NATSEnabled() {
		natsClient := infrastructure.NewNATSClient(a.cfg.NATSServers)
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		err := natsClient.Connect(connectCtx)
		cancel()
		if err != nil {
			return err
		}
		defer func() {
			if err := natsClient.Close(); err != nil {
				log.WithError(err).Error("Error closing NATS connection")
			}
		}()

		infrastructure.NewEventForwarder(natsClient, a.cfg.NATSSubjectPrefix).Register(a.eventBus)
		log.WithField("prefix", a.cfg.NATSSubjectPrefix).Info("Forwarding engine events to NATS")
	}

	metricsErr := make(chan error, 1)
	if a.cfg.MetricsAddr != "" {
		go func() {
			metricsErr <- a.recorder.Serve(ctx, a.cfg.MetricsAddr)
		}()
	}

	if a.cfg.DiscordToken != "" {
		discordBot, err := bot.New(bot.Config{
			Token:            a.cfg.DiscordToken,
			GuildID:          a.cfg.GuildID,
			ResultsChannelID: a.cfg.ResultsChannelID,
		}, a.service, a.eventBus)
		if err != nil {
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		defer func() {
			if err := discordBot.Close(); err != nil {
				log.WithError(err).Error("Error closing Discord bot")
			}
		}()
		log.Info("Discord bot initialized successfully")
	} else {
		log.Warn("DISCORD_TOKEN is not set, running without the Discord bot")
	}

	log.Info("groupdss is running")
	select {
	case <-ctx.Done():
	case err := <-metricsErr:
		if err != nil {
			return fmt.Errorf("metrics server failed: %w", err)
		}
		<-ctx.Done()
	}

	log.Info("Shutting down...")
	return nil
}
