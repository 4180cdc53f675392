// bankctl is the back-office command line: schema migrations and CSV
// exports against a live database.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/digibank/backend/internal/config"
	"github.com/digibank/backend/internal/db"
	"github.com/digibank/backend/internal/export"
	"github.com/digibank/backend/internal/models"
	"github.com/digibank/backend/internal/repository/postgres"
)

func main() {
	root := &cobra.Command{
		Use:           "bankctl",
		Short:         "digibank back-office tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var dbURL string
	root.PersistentFlags().StringVar(&dbURL, "db-url", "", "database URL (defaults to DATABASE_URL)")

	root.AddCommand(migrateCmd(&dbURL), exportCmd(&dbURL))

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func connect(ctx context.Context, dbURL string) (postgres.Repositories, func(), error) {
	if dbURL == "" {
		dbURL = config.Load().DatabaseURL
	}
	pool, err := db.NewPool(ctx, dbURL)
	if err != nil {
		return postgres.Repositories{}, nil, fmt.Errorf("connect: %w", err)
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}

func migrateCmd(dbURL *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			url := *dbURL
			if url == "" {
				url = config.Load().DatabaseURL
			}
			pool, err := db.NewPool(ctx, url)
			if err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			defer pool.Close()
			if err := db.RunMigrations(ctx, pool); err != nil {
				return err
			}
			fmt.Println("migrations applied")
			return nil
		},
	}
}

func exportCmd(dbURL *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "export data as CSV",
	}

	var out, status string
	transfers := &cobra.Command{
		Use:   "transfers",
		Short: "export transfer requests",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repos, closePool, err := connect(ctx, *dbURL)
			if err != nil {
				return err
			}
			defer closePool()

			list, err := repos.Transfers.List(ctx, models.RequestStatus(status))
			if err != nil {
				return fmt.Errorf("load transfers: %w", err)
			}

			w := os.Stdout
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}
			if err := export.WriteTransfers(w, list); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "exported %d transfers\n", len(list))
			return nil
		},
	}
	transfers.Flags().StringVar(&out, "out", "-", "output file, - for stdout")
	transfers.Flags().StringVar(&status, "status", "", "filter by status (pending|approved|declined|reversed)")

	cmd.AddCommand(transfers)
	return cmd
}
