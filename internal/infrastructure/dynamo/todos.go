package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-todo-nosql/internal/domain"
)

// API is the subset of the DynamoDB client the todo repository needs.
// *dynamodb.Client satisfies it.
type API interface {
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// todoItem is the stored shape of a todo. Created is epoch milliseconds.
type todoItem struct {
	ID          string `dynamodbav:"id"`
	Title       string `dynamodbav:"title"`
	Description string `dynamodbav:"description"`
	Created     int64  `dynamodbav:"created"`
}

// TodoRepo provides typed DynamoDB operations for the todo table.
// It holds no state besides the shared client, so one instance serves all requests.
type TodoRepo struct {
	client    API
	tableName string
}

func NewTodoRepo(client API, tableName string) *TodoRepo {
	return &TodoRepo{client: client, tableName: tableName}
}

// List scans at most listLimit items. Order is whatever the scan returns.
func (r *TodoRepo) List(ctx context.Context) ([]domain.Todo, error) {
	out, err := r.client.Scan(ctx, &dynamodb.ScanInput{
		TableName: aws.String(r.tableName),
		Limit:     aws.Int32(listLimit),
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "scan todos", Err: err}
	}
	return todosFromItems(out.Items)
}

// GetByID returns (nil, nil) when no todo has the given id.
func (r *TodoRepo) GetByID(ctx context.Context, todoID string) (*domain.Todo, error) {
	keyCond := expression.Key(fieldID).Equal(expression.Value(todoID))
	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, fmt.Errorf("build key condition: %w", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		Limit:                     aws.Int32(getLimit),
	})
	if err != nil {
		return nil, &domain.StoreError{Op: "query todo", Err: err}
	}

	switch len(out.Items) {
	case 0:
		return nil, nil
	case 1:
		t, err := todoFromItem(out.Items[0])
		if err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("todo %s: %w", todoID, domain.ErrDuplicateID)
	}
}

// Insert writes every attribute unconditionally; an existing todo with the same id is replaced.
func (r *TodoRepo) Insert(ctx context.Context, t *domain.Todo) error {
	item, err := attributevalue.MarshalMap(todoItem{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Created:     t.Created.UnixMilli(),
	})
	if err != nil {
		return fmt.Errorf("marshal todo: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	if err != nil {
		return &domain.StoreError{Op: "put todo", Err: err}
	}
	return nil
}

// Update sets title and description of an existing todo. It never creates a
// record: a missing id yields domain.ErrNotFound.
func (r *TodoRepo) Update(ctx context.Context, t *domain.Todo) error {
	upd := expression.
		Set(expression.Name(fieldTitle), expression.Value(t.Title)).
		Set(expression.Name(fieldDescription), expression.Value(t.Description))
	cond := expression.AttributeExists(expression.Name(fieldID))
	expr, err := expression.NewBuilder().WithUpdate(upd).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("build update expression: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(r.tableName),
		Key:                       strKey(fieldID, t.ID),
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return fmt.Errorf("todo %s: %w", t.ID, domain.ErrNotFound)
		}
		return &domain.StoreError{Op: "update todo", Err: err}
	}
	return nil
}

// Delete removes the todo. Deleting an unknown id is not an error.
func (r *TodoRepo) Delete(ctx context.Context, todoID string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey(fieldID, todoID),
	})
	if err != nil {
		return &domain.StoreError{Op: "delete todo", Err: err}
	}
	return nil
}

func todosFromItems(items []map[string]types.AttributeValue) ([]domain.Todo, error) {
	todos := make([]domain.Todo, 0, len(items))
	for _, item := range items {
		t, err := todoFromItem(item)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, nil
}

// todoFromItem rejects items with a missing attribute or one of the wrong type
// instead of silently zero-filling them.
func todoFromItem(item map[string]types.AttributeValue) (domain.Todo, error) {
	for _, name := range []string{fieldID, fieldTitle, fieldDescription} {
		if _, ok := item[name].(*types.AttributeValueMemberS); !ok {
			return domain.Todo{}, malformed(item, name, "string")
		}
	}
	if _, ok := item[fieldCreated].(*types.AttributeValueMemberN); !ok {
		return domain.Todo{}, malformed(item, fieldCreated, "number")
	}

	var ti todoItem
	if err := attributevalue.UnmarshalMap(item, &ti); err != nil {
		return domain.Todo{}, fmt.Errorf("%w: todo %s: %v", domain.ErrMalformedRecord, itemID(item), err)
	}
	return domain.Todo{
		ID:          ti.ID,
		Title:       ti.Title,
		Description: ti.Description,
		Created:     time.UnixMilli(ti.Created).UTC(),
	}, nil
}

func malformed(item map[string]types.AttributeValue, attr, want string) error {
	return fmt.Errorf("%w: todo %s: attribute %q missing or not a %s", domain.ErrMalformedRecord, itemID(item), attr, want)
}

func itemID(item map[string]types.AttributeValue) string {
	if s, ok := item[fieldID].(*types.AttributeValueMemberS); ok {
		return s.Value
	}
	return "<unknown>"
}
