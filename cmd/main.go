package main

import (
	"context"
	"fmt"
	"os"

	"catalogapi/internal/config"
	"catalogapi/internal/logger"
	"catalogapi/internal/repositories"
	"catalogapi/internal/services"
	"catalogapi/pkg/database"

	"github.com/urfave/cli/v3"
)

const version = "1.0.0"

func main() {
	app := &cli.Command{
		Name:    "catalogapi",
		Usage:   "product catalog API and admin backend",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "env-file",
				Usage: "dotenv file to load before reading the environment",
				Value: ".env",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run the HTTP API and background jobs",
				Action: serve,
			},
			{
				Name:  "create-admin",
				Usage: "create an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "username", Usage: "admin login name", Required: true},
					&cli.StringFlag{Name: "password", Usage: "admin password (min 8 characters)", Required: true},
				},
				Action: createAdmin,
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createAdmin(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("env-file"))
	if err != nil {
		return err
	}
	log := logger.New(cfg.LogLevel)
	defer log.Sync()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := database.EnsureSchema(ctx, pool); err != nil {
		return err
	}

	auth := services.NewAuthService(repositories.NewAdminRepo(pool), cfg.JWTSecret, cfg.JWTTTL)
	admin, err := auth.CreateAdmin(ctx, cmd.String("username"), cmd.String("password"))
	if err != nil {
		return err
	}
	log.Infow("admin created", "admin_id", admin.ID.String(), "username", admin.Username)
	return nil
}
