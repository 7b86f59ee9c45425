// Package bootstrap provisions the key-value tables on local emulator
// endpoints, where nothing else creates them.
package bootstrap

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog/log"
)

// EnsureTables creates the named tables if they do not exist. Both tables
// key on the movieId string attribute.
func EnsureTables(ctx context.Context, client *dynamodb.Client, tables ...string) error {
	for _, name := range tables {
		if err := ensureTable(ctx, client, name); err != nil {
			return err
		}
	}
	return nil
}

func ensureTable(ctx context.Context, client *dynamodb.Client, name string) error {
	_, err := client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: aws.String(name),
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("movieId"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("movieId"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var exists *types.ResourceInUseException
		if errors.As(err, &exists) {
			log.Debug().Str("table", name).Msg("table already exists")
			return nil
		}
		return err
	}
	log.Info().Str("table", name).Msg("table created")
	return nil
}
