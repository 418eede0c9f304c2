package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/propertyos/rentledger/infra"
	"github.com/propertyos/rentledger/infra/initializer"
	infra_repository "github.com/propertyos/rentledger/infra/repository"
	"github.com/propertyos/rentledger/pkg/app"
	"github.com/propertyos/rentledger/pkg/config"
	"github.com/propertyos/rentledger/webapi"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rentledger",
		Short: "Rent ledger reconciliation engine",
	}

	rootCmd.AddCommand(
		serveCmd(),
		migrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".env")
			if err != nil {
				return fmt.Errorf("failed to load application configuration: %w", err)
			}
			deps, err := initializer.InitializeDependencies(cfg)
			if err != nil {
				return fmt.Errorf("failed to initialize dependencies: %w", err)
			}
			fiberApp := webapi.SetupApp(app.New(deps, cfg))
			addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
			return fiberApp.Listen(addr)
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(".env")
			if err != nil {
				return fmt.Errorf("failed to load application configuration: %w", err)
			}
			db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			for _, model := range infra_repository.Models() {
				if err := db.AutoMigrate(model); err != nil {
					color.Red("migration failed: %T: %v", model, err)
					return err
				}
				color.Green("migrated %T", model)
			}
			color.Cyan("schema up to date")
			return nil
		},
	}
}
