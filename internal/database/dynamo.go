package database

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog"

	"github.com/siscolar/registro-backend/internal/config"
)

// NewDynamoClient creates a DynamoDB client and verifies the registry table
// is reachable. Credentials come from the default AWS chain; DYNAMO_ENDPOINT
// overrides the endpoint for local development.
func NewDynamoClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*dynamodb.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.DynamoEndpoint)
		}
	})

	if _, err := client.DescribeTable(ctx, &dynamodb.DescribeTableInput{
		TableName: aws.String(cfg.DynamoTable),
	}); err != nil {
		return nil, fmt.Errorf("describe table %s: %w", cfg.DynamoTable, err)
	}

	log.Info().
		Str("region", cfg.AWSRegion).
		Str("table", cfg.DynamoTable).
		Msg("DynamoDB connected")

	return client, nil
}
