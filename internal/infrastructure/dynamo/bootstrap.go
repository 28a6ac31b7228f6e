package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
)

// TableAPI is the subset of the DynamoDB client used to provision tables.
type TableAPI interface {
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	dynamodb.DescribeTableAPIClient
}

const tableReadyTimeout = 2 * time.Minute

// Bootstrap creates the todo table if it doesn't already exist and waits for it
// to become active. Safe to call on every startup.
func Bootstrap(ctx context.Context, client TableAPI, tableName string, log *zap.Logger) error {
	created, err := createTable(ctx, client, &dynamodb.CreateTableInput{
		TableName:   aws.String(tableName),
		BillingMode: types.BillingModePayPerRequest,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String(fieldID), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String(fieldID), KeyType: types.KeyTypeHash},
		},
	})
	if err != nil {
		return err
	}
	if !created {
		log.Debug("table already exists", zap.String("table", tableName))
		return nil
	}

	waiter := dynamodb.NewTableExistsWaiter(client)
	if err := waiter.Wait(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(tableName)}, tableReadyTimeout); err != nil {
		return fmt.Errorf("wait for table %s: %w", tableName, err)
	}
	log.Info("created table", zap.String("table", tableName))
	return nil
}

func createTable(ctx context.Context, client TableAPI, input *dynamodb.CreateTableInput) (bool, error) {
	_, err := client.CreateTable(ctx, input)
	if err == nil {
		return true, nil
	}
	// ResourceInUseException means the table already exists.
	var riue *types.ResourceInUseException
	if errors.As(err, &riue) {
		return false, nil
	}
	return false, fmt.Errorf("create table %s: %w", aws.ToString(input.TableName), err)
}
