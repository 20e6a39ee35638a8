package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"stayhub/config"
	"stayhub/helper"
	"stayhub/shared/logger"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the StayHub database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logger.Init(config.Get())
		},
	}

	rootCmd.AddCommand(
		migratorCmd("up", "Apply all pending migrations", func(m *helper.Migrator, _ []string) error {
			return m.Up()
		}),
		migratorCmd("down", "Roll back the most recent migration", func(m *helper.Migrator, _ []string) error {
			return m.Steps(-1)
		}),
		migratorCmd("step-up", "Apply the next pending migration", func(m *helper.Migrator, _ []string) error {
			return m.Steps(1)
		}),
		migratorCmd("drop", "Roll back every migration", func(m *helper.Migrator, _ []string) error {
			return m.Drop()
		}),
		migratorCmd("version", "Print the applied schema version", func(m *helper.Migrator, _ []string) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}

			fmt.Printf("version=%d dirty=%t\n", version, dirty)

			return nil
		}),
		forceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func migratorCmd(use, short string, run func(*helper.Migrator, []string) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			return withMigrator(func(m *helper.Migrator) error {
				if err := run(m, args); err != nil {
					return err
				}

				log.Info().Str("command", use).Msg("migration command finished")

				return nil
			})
		},
	}
}

func forceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "force VERSION",
		Short: "Mark VERSION as applied and clear the dirty flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			version, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}

			return withMigrator(func(m *helper.Migrator) error {
				return m.Force(version)
			})
		},
	}
}

func withMigrator(fn func(*helper.Migrator) error) error {
	migrator, err := helper.NewMigrator(config.Get())
	if err != nil {
		return err
	}
	defer migrator.Close()

	return fn(migrator)
}
