package main

import (
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/mementoapp/memento/internal/config"
	"github.com/mementoapp/memento/internal/db"
	"github.com/mementoapp/memento/internal/logger"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var driver, connection string

	rootCmd := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the Memento database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger.Init(true, "", "development")
		},
	}

	envDriver, envConnection := config.LoadDatabase()
	rootCmd.PersistentFlags().StringVar(&driver, "driver", envDriver, "database driver (sqlite or pgx)")
	rootCmd.PersistentFlags().StringVar(&connection, "dsn", envConnection, "database connection string")

	withDB := func(run func(database *sqlx.DB) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			database, err := db.Init(driver, connection)
			if err != nil {
				return err
			}
			defer database.Close()
			return run(database)
		}
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE: withDB(func(database *sqlx.DB) error {
				return db.RunMigrations(database.DB, driver)
			}),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			RunE: withDB(func(database *sqlx.DB) error {
				return db.MigrateDown(database.DB, driver)
			}),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the applied state of every migration",
			RunE: withDB(func(database *sqlx.DB) error {
				return db.Status(database.DB, driver)
			}),
		},
	)

	return rootCmd
}
