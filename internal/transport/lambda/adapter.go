package lambda

import (
	"context"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const defaultStage = "$default"

// Handler serves API Gateway HTTP API events with the same router the
// standalone server uses.
type Handler struct {
	proxy *chiadapter.ChiLambdaV2
	log   *zap.Logger
}

func NewHandler(router *chi.Mux, log *zap.Logger) *Handler {
	return &Handler{proxy: chiadapter.NewV2(router), log: log}
}

// Handle is passed to lambda.Start.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	TrimStage(&req)

	resp, err := h.proxy.ProxyWithContextV2(ctx, req)
	if err != nil {
		h.log.Error("lambda proxy",
			zap.String("path", req.RawPath),
			zap.String("request_id", req.RequestContext.RequestID),
			zap.Error(err),
		)
		return resp, err
	}

	if resp.Headers == nil {
		resp.Headers = make(map[string]string)
	}
	if req.RequestContext.RequestID != "" {
		resp.Headers["X-Request-ID"] = req.RequestContext.RequestID
	}
	return resp, nil
}

// TrimStage removes a leading "/<stage>" segment that API Gateway keeps in the
// path for named stages, so routes match the same paths as the standalone server.
func TrimStage(req *events.APIGatewayV2HTTPRequest) {
	stage := req.RequestContext.Stage
	if stage == "" || stage == defaultStage {
		return
	}
	prefix := "/" + stage
	req.RawPath = trimPathPrefix(req.RawPath, prefix)
	req.RequestContext.HTTP.Path = trimPathPrefix(req.RequestContext.HTTP.Path, prefix)
}

func trimPathPrefix(path, prefix string) string {
	if path == prefix {
		return "/"
	}
	if strings.HasPrefix(path, prefix+"/") {
		return path[len(prefix):]
	}
	return path
}
