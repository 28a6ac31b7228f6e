package main

import (
	"context"
	"log"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/go-todo-nosql/internal/app"
	"github.com/go-todo-nosql/internal/config"
	"github.com/go-todo-nosql/internal/pkg/logger"
	lambdaadapter "github.com/go-todo-nosql/internal/transport/lambda"
	"go.uber.org/zap"
)

// main builds the router once per cold start; warm invocations reuse it.
func main() {
	start := time.Now()
	cfg := config.Load()

	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}

	router, err := app.NewRouter(context.Background(), cfg, zl)
	if err != nil {
		zl.Fatal("cold start failed", zap.Error(err))
	}

	h := lambdaadapter.NewHandler(router, zl)
	zl.Info("cold start completed", zap.Duration("duration", time.Since(start)))

	lambda.Start(h.Handle)
}
