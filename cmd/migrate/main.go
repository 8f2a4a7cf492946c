package main

import (
	"context"
	"os"

	"hotel/config"
	"hotel/di"
	"hotel/helper"
	"hotel/shared/logger"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "migrate",
		Short:        "Database migrations and seed data for the hotel booking API",
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.InitLogger()
			logger.SetLogLevel(config.Get())
		},
	}

	root.AddCommand(
		newMigrationCmd("up", "Apply all pending migrations", helper.Up),
		newMigrationCmd("down", "Roll back the last migration", helper.Down),
		newMigrationCmd("step-up", "Apply the next pending migration", helper.StepUp),
		newMigrationCmd("drop", "Roll back every migration", helper.Drop),
		newSeedCmd(),
	)

	return root
}

func newMigrationCmd(use, short string, run func(*config.Config) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return run(config.Get())
		},
	}
}

func newSeedCmd() *cobra.Command {
	var migrateFirst bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the room catalog with the default hotel and ensure the admin account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if migrateFirst {
				if err := helper.Up(config.Get()); err != nil {
					return err
				}
			}

			return di.InitializeSeeder().Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&migrateFirst, "migrate", false, "apply pending migrations before seeding")

	return cmd
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("migrate command failed")
		os.Exit(1)
	}
}
