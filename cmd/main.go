package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/saeidalz13/battleship-rules/api"
	"github.com/saeidalz13/battleship-rules/db"
	"github.com/saeidalz13/battleship-rules/db/sqlc"
	mc "github.com/saeidalz13/battleship-rules/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

func main() {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
			log.Println("failed to load .env:", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := &cli.Command{
		Name:  "battleship",
		Usage: "fleet placement and shot resolution over websocket",
		Commands: []*cli.Command{
			serveCommand(),
			migrateCommand(),
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatalln(err)
	}
}

func databaseUrlFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "database-url",
		Usage:    "postgres url for the analytics counters",
		Sources:  cli.EnvVars("DATABASE_URL"),
		Required: required,
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the websocket server",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Value:   8000,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "stage",
				Value:   StageDev,
				Sources: cli.EnvVars("STAGE"),
			},
			databaseUrlFlag(false),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			stage := c.String("stage")
			if stage != StageDev && stage != StageProd {
				return fmt.Errorf("stage must be either dev or prod, got: %s", stage)
			}

			// Analytics are optional in dev
			var dbManager *sqlc.DbManager
			if psqlUrl := c.String("database-url"); psqlUrl != "" {
				psql := db.MustConnectToDb(psqlUrl)
				defer psql.Close()
				dbManager = sqlc.NewDbManager(sqlc.New(psql))
			} else if stage == StageProd {
				return fmt.Errorf("database-url is required in prod")
			}

			sessionManager := mc.NewBattleshipSessionManager()
			go sessionManager.CleanupPeriodically(ctx)

			mux := http.NewServeMux()
			mux.Handle("GET /battleship", api.NewRequestProcessor(sessionManager, dbManager))

			server := &http.Server{
				Addr:    fmt.Sprintf("0.0.0.0:%d", c.Int("port")),
				Handler: mux,
			}
			go func() {
				<-ctx.Done()
				_ = server.Close()
			}()

			log.Printf("Listening to port %d\n", c.Int("port"))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
}

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply the analytics migrations and exit",
		Flags: []cli.Flag{
			databaseUrlFlag(true),
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// connecting runs the migrations
			psql := db.MustConnectToDb(c.String("database-url"))
			return psql.Close()
		},
	}
}
