package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"petstore-catalog/internal/domain/pets"
)

const DefaultTable = "PetStore"

// API es el subconjunto de *dynamodb.Client que usa el repo (scan + put).
type API interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
}

var (
	_ API                    = (*dynamodb.Client)(nil)
	_ dynamodb.ScanAPIClient = API(nil)
)

type PetsRepo struct {
	api   API
	table string
}

var _ pets.Repository = (*PetsRepo)(nil)

func NewPetsRepo(api API, table string) *PetsRepo {
	if table == "" {
		table = DefaultTable
	}
	return &PetsRepo{api: api, table: table}
}

// Scan recorre todas las páginas (LastEvaluatedKey) y devuelve la tabla completa.
func (r *PetsRepo) Scan(ctx context.Context) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	err := r.scanPages(ctx, &dynamodb.ScanInput{TableName: aws.String(r.table)}, func(page *dynamodb.ScanOutput) error {
		var items []pets.Pet
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return fmt.Errorf("unmarshal pets: %w", err)
		}
		out = append(out, items...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

type idItem struct {
	ID int `dynamodbav:"id"`
}

// ScanIDs usa ProjectionExpression para traer solo id.
func (r *PetsRepo) ScanIDs(ctx context.Context) ([]int, error) {
	in := &dynamodb.ScanInput{
		TableName:                aws.String(r.table),
		ProjectionExpression:     aws.String("#id"),
		ExpressionAttributeNames: map[string]string{"#id": "id"},
	}

	ids := make([]int, 0)
	err := r.scanPages(ctx, in, func(page *dynamodb.ScanOutput) error {
		var items []idItem
		if err := attributevalue.UnmarshalListOfMaps(page.Items, &items); err != nil {
			return fmt.Errorf("unmarshal pet ids: %w", err)
		}
		for _, it := range items {
			ids = append(ids, it.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// Put escribe sin ConditionExpression: mismo id => overwrite.
func (r *PetsRepo) Put(ctx context.Context, p pets.Pet) error {
	item, err := attributevalue.MarshalMap(p)
	if err != nil {
		return fmt.Errorf("marshal pet: %w", err)
	}

	_, err = r.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.table),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("dynamodb put %s: %w", r.table, err)
	}
	return nil
}

// scanPages delega el seguimiento de LastEvaluatedKey en el paginador del SDK.
func (r *PetsRepo) scanPages(ctx context.Context, in *dynamodb.ScanInput, fn func(*dynamodb.ScanOutput) error) error {
	p := dynamodb.NewScanPaginator(r.api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("dynamodb scan %s: %w", r.table, err)
		}
		if err := fn(page); err != nil {
			return err
		}
	}
	return nil
}
