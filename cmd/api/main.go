package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"petstore-catalog/internal/bootstrap"
	"petstore-catalog/internal/platform/config"
	"petstore-catalog/internal/platform/logger"
	"petstore-catalog/internal/router"
)

const shutdownTimeout = 10 * time.Second

// @title        Petstore Catalog API
// @version      1.0
// @description  Pet catalog with natural-language search.
// @BasePath     /
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := command().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func command() *cli.Command {
	return &cli.Command{
		Name:  "petstore-api",
		Usage: "HTTP server for the pet catalog",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Usage:   "path to a YAML config file",
				Sources: cli.EnvVars("CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:  "addr",
				Usage: "listen address (overrides --port)",
			},
			&cli.StringFlag{
				Name:    "port",
				Usage:   "listen port, binds to :PORT",
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "debug|info|warn|error",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "text|json",
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.StringFlag{
				Name:    "app-name",
				Usage:   "app field on every log line",
				Sources: cli.EnvVars("APP_NAME"),
			},
			&cli.StringFlag{
				Name:    "store-driver",
				Usage:   "memory|postgres|dynamodb",
				Sources: cli.EnvVars("STORE_DRIVER"),
			},
			&cli.StringFlag{
				Name:    "db-dsn",
				Usage:   "postgres DSN (implies --store-driver postgres)",
				Sources: cli.EnvVars("DB_DSN"),
			},
			&cli.StringFlag{
				Name:    "dynamodb-table",
				Usage:   "DynamoDB table name",
				Sources: cli.EnvVars("DYNAMODB_TABLE"),
			},
			&cli.StringFlag{
				Name:    "aws-region",
				Usage:   "AWS region for DynamoDB and Bedrock",
				Sources: cli.EnvVars("AWS_REGION"),
			},
			&cli.StringFlag{
				Name:    "llm-provider",
				Usage:   "none|bedrock|gemini|anthropic",
				Sources: cli.EnvVars("LLM_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "llm-model",
				Usage:   "model id (provider default if empty)",
				Sources: cli.EnvVars("LLM_MODEL"),
			},
			&cli.StringFlag{
				Name:    "llm-api-key",
				Usage:   "API key for gemini or anthropic",
				Sources: cli.EnvVars("LLM_API_KEY"),
			},
			&cli.StringFlag{
				Name:    "llm-base-url",
				Usage:   "anthropic base URL",
				Sources: cli.EnvVars("LLM_BASE_URL"),
			},
			&cli.DurationFlag{
				Name:    "llm-timeout",
				Usage:   "per-call deadline for the LLM",
				Sources: cli.EnvVars("LLM_TIMEOUT"),
			},
			&cli.FloatFlag{
				Name:    "llm-rate-limit",
				Usage:   "LLM calls per second, 0 = unlimited",
				Sources: cli.EnvVars("LLM_RATE_LIMIT"),
			},
			&cli.IntFlag{
				Name:    "llm-rate-burst",
				Usage:   "LLM rate limiter burst",
				Sources: cli.EnvVars("LLM_RATE_BURST"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return serve(ctx, cfg)
		},
	}
}

// loadConfig: defaults < YAML < env/flags. Cada flag lee su variable de entorno
// vía Sources; un valor vacío no pisa lo que ya había.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	str := func(name string, dst *string) {
		if !cmd.IsSet(name) {
			return
		}
		if v := strings.TrimSpace(cmd.String(name)); v != "" {
			*dst = v
		}
	}

	var port string
	str("port", &port)
	if port != "" {
		cfg.Addr = ":" + port
	}
	str("addr", &cfg.Addr)
	str("log-level", &cfg.Log.Level)
	str("log-format", &cfg.Log.Format)
	str("app-name", &cfg.Log.App)

	str("store-driver", &cfg.Store.Driver)
	str("dynamodb-table", &cfg.Store.Table)
	str("aws-region", &cfg.Store.Region)
	str("aws-region", &cfg.LLM.Region)
	var dsn string
	str("db-dsn", &dsn)
	if dsn != "" {
		cfg.Store.DSN = dsn
		// DB_DSN solo ya implica postgres
		var driver string
		str("store-driver", &driver)
		if driver == "" {
			cfg.Store.Driver = config.StorePostgres
		}
	}

	str("llm-provider", &cfg.LLM.Provider)
	str("llm-model", &cfg.LLM.Model)
	str("llm-api-key", &cfg.LLM.APIKey)
	str("llm-base-url", &cfg.LLM.BaseURL)
	if d := cmd.Duration("llm-timeout"); cmd.IsSet("llm-timeout") && d != 0 {
		cfg.LLM.Timeout = d
	}
	if cmd.IsSet("llm-rate-limit") {
		cfg.LLM.RateLimit = cmd.Float("llm-rate-limit")
	}
	if n := cmd.Int("llm-rate-burst"); cmd.IsSet("llm-rate-burst") && n != 0 {
		cfg.LLM.RateBurst = n
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

func serve(ctx context.Context, cfg config.Config) error {
	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	d, cleanup, err := bootstrap.Build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router.NewRouter(router.Options{Dispatcher: d, Logger: log}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.LLM.Timeout + 10*time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting server", map[string]any{
			"addr":     cfg.Addr,
			"store":    cfg.Store.Driver,
			"provider": cfg.LLM.Provider,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped gracefully", nil)
	return nil
}
