package router

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/aws/aws-lambda-go/events"

	"petstore-catalog/internal/domain/pets"
	"petstore-catalog/internal/platform/logger"
)

// LambdaHandler es la firma que acepta lambda.Start para eventos de API Gateway (proxy REST).
type LambdaHandler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// NewLambdaHandler usa la misma tabla que el router HTTP. Un error del dispatcher
// vuelve al runtime tal cual (la invocación falla).
func NewLambdaHandler(d *pets.Dispatcher, log logger.Logger) LambdaHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		ev, err := eventFromProxy(req)
		if err != nil {
			return events.APIGatewayProxyResponse{}, err
		}

		resp, err := d.Dispatch(ctx, ev)
		if err != nil {
			log.Error("unhandled invocation failure", map[string]any{
				"error":      err,
				"path":       ev.Path,
				"method":     ev.HTTPMethod,
				"request_id": req.RequestContext.RequestID,
			})
			return events.APIGatewayProxyResponse{}, err
		}

		return events.APIGatewayProxyResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	}
}

func eventFromProxy(req events.APIGatewayProxyRequest) (pets.Event, error) {
	ev := pets.Event{Path: req.Path, HTTPMethod: req.HTTPMethod}
	if req.Body == "" {
		return ev, nil
	}

	body := req.Body
	if req.IsBase64Encoded {
		raw, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return pets.Event{}, fmt.Errorf("decode base64 body: %w", err)
		}
		body = string(raw)
	}
	ev.Body = &body
	return ev, nil
}
