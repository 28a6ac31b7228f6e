package app

import (
	"context"
	"fmt"

	"github.com/go-chi/chi/v5"
	"github.com/go-todo-nosql/internal/application/todo"
	"github.com/go-todo-nosql/internal/config"
	"github.com/go-todo-nosql/internal/infrastructure/awscfg"
	"github.com/go-todo-nosql/internal/infrastructure/dynamo"
	s3infra "github.com/go-todo-nosql/internal/infrastructure/s3"
	"github.com/go-todo-nosql/internal/infrastructure/sns"
	transporthttp "github.com/go-todo-nosql/internal/transport/http"
	"go.uber.org/zap"
)

// NewRouter wires the store clients, the todo service and the HTTP router.
// Everything built here is shared by all requests for the life of the process.
func NewRouter(ctx context.Context, cfg *config.Config, log *zap.Logger) (*chi.Mux, error) {
	awsCfg, err := awscfg.Load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	dynamoClient := dynamo.NewClient(awsCfg, cfg.AWSEndpointURL)
	if cfg.DynamoBootstrap {
		if err := dynamo.Bootstrap(ctx, dynamoClient, cfg.DynamoTable, log); err != nil {
			return nil, fmt.Errorf("bootstrap dynamo: %w", err)
		}
	}

	deps := todo.ServiceDeps{
		Repo:   dynamo.NewTodoRepo(dynamoClient, cfg.DynamoTable),
		Logger: log,
	}

	// SNS events (optional).
	if cfg.SNSTopicARN != "" {
		deps.Events = sns.NewEventPublisher(sns.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.SNSTopicARN)
	} else {
		log.Info("SNS_TOPIC_ARN not set, todo events disabled")
	}

	// S3 exports (optional).
	if cfg.S3ExportBucket != "" {
		deps.Exports = s3infra.NewStore(s3infra.NewClient(awsCfg, cfg.AWSEndpointURL), cfg.S3ExportBucket)
	} else {
		log.Info("S3_EXPORT_BUCKET not set, exports disabled")
	}

	return transporthttp.NewRouter(cfg, &transporthttp.Deps{
		TodoService: todo.NewService(deps),
		Logger:      log,
	}), nil
}
