package bootstrap

import (
	"context"
	"fmt"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"petstore-catalog/internal/adapters/llm/provider"
	"petstore-catalog/internal/adapters/storage/dynamo"
	mem "petstore-catalog/internal/adapters/storage/memory"
	pg "petstore-catalog/internal/adapters/storage/postgres"
	"petstore-catalog/internal/domain/pets"
	"petstore-catalog/internal/platform/config"
	"petstore-catalog/internal/platform/logger"
)

// Build arma repo + proveedor LLM + service + dispatcher a partir de cfg.
// El cleanup devuelto es no-nil siempre y cierra lo que se haya abierto.
func Build(ctx context.Context, cfg config.Config, log logger.Logger) (*pets.Dispatcher, func(), error) {
	if log == nil {
		log = logger.Nop()
	}

	repo, cleanup, err := OpenRepository(ctx, cfg.Store, log)
	if err != nil {
		return nil, func() {}, err
	}

	caller, err := provider.New(ctx, cfg.LLM, log)
	if err != nil {
		cleanup()
		return nil, func() {}, err
	}

	svc := pets.NewService(repo, pets.NewInterpreter(caller, log), log)
	return pets.NewDispatcher(svc, log), cleanup, nil
}

// OpenRepository elige el store según cfg.Driver.
func OpenRepository(ctx context.Context, cfg config.Store, log logger.Logger) (pets.Repository, func(), error) {
	noop := func() {}
	if log == nil {
		log = logger.Nop()
	}

	switch driver := strings.ToLower(strings.TrimSpace(cfg.Driver)); driver {
	case "", config.StoreMemory:
		log.Info("pet store ready", map[string]any{"driver": config.StoreMemory})
		return mem.NewPetRepo(), noop, nil

	case config.StorePostgres:
		db, err := pg.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, noop, err
		}
		repo := pg.NewPetsRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, noop, err
		}
		log.Info("pet store ready", map[string]any{"driver": config.StorePostgres})
		return repo, func() { _ = db.Close() }, nil

	case config.StoreDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
		if err != nil {
			return nil, noop, fmt.Errorf("load aws config: %w", err)
		}
		table := cfg.Table
		if table == "" {
			table = dynamo.DefaultTable
		}
		log.Info("pet store ready", map[string]any{"driver": config.StoreDynamoDB, "table": table, "region": cfg.Region})
		return dynamo.NewPetsRepo(dynamodb.NewFromConfig(awsCfg), table), noop, nil

	default:
		return nil, noop, fmt.Errorf("%w: unknown store driver %q", config.ErrInvalidConfig, driver)
	}
}
