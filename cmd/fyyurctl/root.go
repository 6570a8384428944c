package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iliyamo/fyyur/internal/database"
	"github.com/iliyamo/fyyur/internal/repository"
)

type dbFlags struct {
	host     string
	port     string
	user     string
	password string
	name     string
	timeout  time.Duration
}

func (f *dbFlags) open() (*sql.DB, error) {
	return database.Open(f.user, f.password, f.host, f.port, f.name)
}

func newRootCommand() *cobra.Command {
	_ = godotenv.Load()
	flags := &dbFlags{}

	root := &cobra.Command{
		Use:           "fyyurctl",
		Short:         "Fyyur database maintenance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&flags.host, "host", getEnv("DB_HOST", "localhost"), "Database host")
	pf.StringVar(&flags.port, "port", getEnv("DB_PORT", "3306"), "Database port")
	pf.StringVar(&flags.user, "user", getEnv("DB_USER", "fyyur"), "Database user")
	pf.StringVar(&flags.password, "password", getEnv("DB_PASS", ""), "Database password")
	pf.StringVar(&flags.name, "db", getEnv("DB_NAME", "fyyur"), "Database name")
	pf.DurationVar(&flags.timeout, "timeout", time.Minute, "Overall time limit")

	root.AddCommand(newMigrateCommand(flags))
	root.AddCommand(newSeedCommand(flags))
	return root
}

func newMigrateCommand(flags *dbFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the venues, artists and shows tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := flags.open()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			log.Printf("Applied %d schema statements", len(database.Statements()))
			return nil
		},
	}
}

func newSeedCommand(flags *dbFlags) *cobra.Command {
	var truncate bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the sample venues, artists and shows",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := flags.open()
			if err != nil {
				return err
			}
			defer db.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), flags.timeout)
			defer cancel()
			if err := database.Migrate(ctx, db); err != nil {
				return err
			}
			if truncate {
				log.Println("Truncating tables...")
				if err := truncateTables(ctx, db); err != nil {
					return err
				}
			}
			n, err := seed(ctx, repository.NewVenueRepo(db), repository.NewArtistRepo(db), repository.NewShowRepo(db))
			if err != nil {
				return fmt.Errorf("seeding failed after %d rows: %w", n, err)
			}
			log.Printf("Seeding complete: %d rows", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&truncate, "truncate", false, "Delete existing rows before seeding")
	return cmd
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func truncateTables(ctx context.Context, db *sql.DB) error {
	for _, t := range []string{"shows", "artists", "venues"} {
		if _, err := db.ExecContext(ctx, "DELETE FROM "+t); err != nil {
			return fmt.Errorf("delete %s: %w", t, err)
		}
	}
	return nil
}
