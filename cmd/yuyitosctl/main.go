// Package main provides yuyitosctl, the store administration CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/yuyitos-api/internal/app"
	"github.com/sangkips/yuyitos-api/internal/application/service"
	"github.com/sangkips/yuyitos-api/internal/config"
	"github.com/sangkips/yuyitos-api/internal/domain/entity"
	"github.com/sangkips/yuyitos-api/internal/infrastructure/database"
	"github.com/sangkips/yuyitos-api/pkg/utils"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var logLevel string

	cmd := &cobra.Command{
		Use:           "yuyitosctl",
		Short:         "Administration tool for the Almacen Yuyitos API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(migrateCmd(&logLevel), seedCmd(&logLevel), createUserCmd(&logLevel))
	return cmd
}

// connect loads the configuration and opens the database
func connect(logLevel string) (*config.Config, *gorm.DB, error) {
	cfg := config.Load()
	if logLevel != "" {
		cfg.App.LogLevel = logLevel
	}
	app.SetupLogger(&cfg.App, os.Stderr)

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

func newServices(db *gorm.DB, cfg *config.Config) *app.Services {
	jwt := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)
	return app.NewServices(db, cfg, jwt, app.Options{})
}

func migrateCmd(logLevel *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema and default roles",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect(*logLevel)
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			return database.SeedDefaultData(cmd.Context(), db, cfg.Admin)
		},
	}
}

func seedCmd(logLevel *string) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo suppliers, categories, customers and products",
		Long: `Loads a fixtures document through the application services so product
codes are generated exactly as the API does. Without --file the embedded
demo data set is used. Records that already exist are skipped.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			fixtures, err := loadFixtures(file)
			if err != nil {
				return err
			}

			cfg, db, err := connect(*logLevel)
			if err != nil {
				return err
			}
			if err := database.SeedDefaultData(cmd.Context(), db, cfg.Admin); err != nil {
				return err
			}

			report, err := app.SeedFixtures(cmd.Context(), newServices(db, cfg), fixtures)
			if err != nil {
				return err
			}
			log.Info().Int("created", report.Created).Int("skipped", report.Skipped).Msg("seed completed")
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Fixtures YAML file (defaults to the embedded demo data)")
	return cmd
}

func loadFixtures(file string) (*database.Fixtures, error) {
	if file == "" {
		return database.DemoFixtures()
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("read fixtures: %w", err)
	}
	return database.ParseFixtures(data)
}

func createUserCmd(logLevel *string) *cobra.Command {
	var input service.CreateUserInput

	cmd := &cobra.Command{
		Use:   "create-user",
		Short: "Create an administrator or seller account",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := connect(*logLevel)
			if err != nil {
				return err
			}

			user, err := newServices(db, cfg).User.CreateUser(cmd.Context(), &input)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) with role %s\n", user.Username, user.Email, input.Role)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Email, "email", "", "Login email")
	flags.StringVar(&input.Username, "username", "", "Login username")
	flags.StringVar(&input.Password, "password", "", "Password, at least 8 characters")
	flags.StringVar(&input.FirstName, "first-name", "", "First name")
	flags.StringVar(&input.LastName, "last-name", "", "Last name")
	flags.StringVar(&input.Role, "role", entity.RoleSeller, "Role: admin or seller")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	_ = cmd.MarkFlagRequired("first-name")
	return cmd
}
