package pets

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
)

var ErrInvalidJSON = errors.New("invalid json")

// Event es el request con forma de API Gateway proxy: path, método y body opcional.
type Event struct {
	Path       string  `json:"path"`
	HTTPMethod string  `json:"httpMethod"`
	Body       *string `json:"body"`
}

// Response: Body siempre es texto JSON salvo en el preflight (vacío).
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body"`
}

const (
	allowOrigin  = "*"
	allowMethods = "GET,POST,OPTIONS"
	maxAge       = "86400"
)

// PreflightHeaders son exactamente los cuatro headers del OPTIONS.
func PreflightHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":  allowOrigin,
		"Access-Control-Allow-Methods": allowMethods,
		"Access-Control-Allow-Headers": "Content-Type,Authorization",
		"Access-Control-Max-Age":       maxAge,
	}
}

func jsonHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                "application/json",
		"Access-Control-Allow-Origin": allowOrigin,
	}
}

func createdHeaders() map[string]string {
	h := jsonHeaders()
	h["Access-Control-Allow-Methods"] = allowMethods
	h["Access-Control-Allow-Headers"] = "Content-Type"
	return h
}

func jsonResponse(status int, headers map[string]string, v any) (Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Response{}, err
	}
	return Response{StatusCode: status, Headers: headers, Body: string(b)}, nil
}

func errorResponse(status int, msg string) Response {
	b, _ := json.Marshal(map[string]string{"error": msg})
	return Response{StatusCode: status, Headers: jsonHeaders(), Body: string(b)}
}

// decodeBody: body nil o vacío => {}. Cualquier otra cosa tiene que ser un objeto JSON.
// Los números quedan como json.Number para no perder enteros grandes.
func decodeBody(body *string) (map[string]any, error) {
	if body == nil || strings.TrimSpace(*body) == "" {
		return map[string]any{}, nil
	}

	dec := json.NewDecoder(strings.NewReader(*body))
	dec.UseNumber()

	var out map[string]any
	if err := dec.Decode(&out); err != nil {
		return nil, ErrInvalidJSON
	}
	if out == nil {
		// "null"
		return nil, ErrInvalidJSON
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, ErrInvalidJSON
	}
	return out, nil
}
