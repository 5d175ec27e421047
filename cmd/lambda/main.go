package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-lambda-go/lambda"

	"petstore-catalog/internal/bootstrap"
	"petstore-catalog/internal/platform/config"
	"petstore-catalog/internal/platform/logger"
	"petstore-catalog/internal/router"
)

// Lambda detrás de API Gateway (proxy REST). Toda la config sale del entorno;
// por defecto DynamoDB (tabla PetStore) y Bedrock.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	cfg.Log.Format = string(logger.FormatJSON)
	cfg.Store.Driver = config.StoreDynamoDB
	cfg.LLM.Provider = config.ProviderBedrock

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Se arma una vez por contenedor y se reusa entre invocaciones.
	d, cleanup, err := bootstrap.Build(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	lambda.Start(router.NewLambdaHandler(d, log))
	return nil
}
