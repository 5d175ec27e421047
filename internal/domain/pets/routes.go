package pets

import (
	"context"
	"fmt"
	"net/http"

	"petstore-catalog/internal/platform/logger"
)

// EventHandler atiende un Event ya ruteado. Un error es una falla no manejada:
// el host decide cómo reportarla (500 en HTTP, error al runtime en Lambda).
type EventHandler func(ctx context.Context, ev Event) (Response, error)

const anyPath = "*"

type route struct {
	method string
	path   string
	handle EventHandler
}

// Dispatcher es la tabla estática (método, path) -> handler.
// Se evalúa en orden: OPTIONS primero, luego matches exactos, 404 al final.
type Dispatcher struct {
	routes []route
	log    logger.Logger
}

func NewDispatcher(svc *Service, log logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		routes: []route{
			{http.MethodOptions, anyPath, preflightHandler},
			{http.MethodPost, "/pets/query", queryHandler(svc)},
			{http.MethodGet, "/pets", listHandler(svc)},
			{http.MethodPost, "/pets", createHandler(svc)},
		},
		log: log,
	}
}

func (d *Dispatcher) Dispatch(ctx context.Context, ev Event) (Response, error) {
	d.log.Debug("event", map[string]any{"path": ev.Path, "method": ev.HTTPMethod})

	for _, rt := range d.routes {
		if rt.method != ev.HTTPMethod {
			continue
		}
		if rt.path != anyPath && rt.path != ev.Path {
			continue
		}
		return rt.handle(ctx, ev)
	}
	return notFoundHandler(ctx, ev)
}

func preflightHandler(_ context.Context, _ Event) (Response, error) {
	return Response{
		StatusCode: http.StatusOK,
		Headers:    PreflightHeaders(),
		Body:       "",
	}, nil
}

func notFoundHandler(_ context.Context, _ Event) (Response, error) {
	return errorResponse(http.StatusNotFound, "Not found"), nil
}

// queryHandler godoc
// @Summary      Natural-language pet search
// @Description  Interprets free text with an LLM tool call (keyword fallback) and returns up to 10 pets.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      queryRequest  true  "query text"
// @Success      200   {object}  QueryResult
// @Failure      400   {object}  errorBody
// @Router       /pets/query [post]
func queryHandler(svc *Service) EventHandler {
	return func(ctx context.Context, ev Event) (Response, error) {
		fields, err := decodeBody(ev.Body)
		if err != nil {
			return errorResponse(http.StatusBadRequest, err.Error()), nil
		}

		result, err := svc.Query(ctx, queryText(fields))
		if err != nil {
			return Response{}, err
		}
		return jsonResponse(http.StatusOK, jsonHeaders(), result)
	}
}

// listHandler godoc
// @Summary   List all pets
// @Tags      pets
// @Produce   json
// @Success   200  {array}  Pet
// @Router    /pets [get]
func listHandler(svc *Service) EventHandler {
	return func(ctx context.Context, _ Event) (Response, error) {
		items, err := svc.List(ctx)
		if err != nil {
			return Response{}, err
		}
		return jsonResponse(http.StatusOK, jsonHeaders(), items)
	}
}

// createHandler godoc
// @Summary      Create a pet
// @Description  Missing fields take defaults (Unknown, unknown, Mixed, 1, 100). id = max(id)+1.
// @Tags         pets
// @Accept       json
// @Produce      json
// @Param        body  body      createRequest  false  "pet fields"
// @Success      201   {object}  Pet
// @Failure      400   {object}  errorBody
// @Router       /pets [post]
func createHandler(svc *Service) EventHandler {
	return func(ctx context.Context, ev Event) (Response, error) {
		fields, err := decodeBody(ev.Body)
		if err != nil {
			return errorResponse(http.StatusBadRequest, err.Error()), nil
		}

		p, err := svc.Create(ctx, fields)
		if err != nil {
			// ErrNotInteger también termina acá: sin mensaje de validación para el cliente
			return Response{}, fmt.Errorf("create pet: %w", err)
		}
		return jsonResponse(http.StatusCreated, createdHeaders(), p)
	}
}

// queryText: "query" del body; ausente o null => "".
func queryText(fields map[string]any) string {
	return stringField(fields, "query", "")
}
