package pets

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"petstore-catalog/internal/platform/logger"
)

const maxBodyBytes = 1 << 20

// RegisterRoutes monta la tabla del Dispatcher sobre chi.
// El preflight lo corta antes el middleware de CORS; si llega acá también lo atiende la tabla.
func RegisterRoutes(r chi.Router, d *Dispatcher, log logger.Logger) {
	h := EventHTTPHandler(d, log)

	r.Post("/pets/query", h)
	r.Get("/pets", h)
	r.Post("/pets", h)

	r.NotFound(h)
	r.MethodNotAllowed(h)
}

// Tipos solo para la documentación swagger.
type queryRequest struct {
	Query string `json:"query" example:"cheap dogs under 100"`
}

type createRequest struct {
	Name  string `json:"name" example:"Rex"`
	Type  string `json:"type" example:"dog"`
	Breed string `json:"breed" example:"Beagle"`
	Age   int    `json:"age" example:"2"`
	Price int    `json:"price" example:"50"`
}

type errorBody struct {
	Error string `json:"error" example:"Not found"`
}

// EventHTTPHandler convierte *http.Request en Event, despacha y escribe la Response.
func EventHTTPHandler(d *Dispatcher, log logger.Logger) http.HandlerFunc {
	if log == nil {
		log = logger.Nop()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		ev := Event{Path: r.URL.Path, HTTPMethod: r.Method}

		raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeResponse(w, errorResponse(http.StatusRequestEntityTooLarge, "request body too large"))
				return
			}
			writeResponse(w, errorResponse(http.StatusBadRequest, "invalid body"))
			return
		}
		if len(raw) > 0 {
			s := string(raw)
			ev.Body = &s
		}

		resp, err := d.Dispatch(r.Context(), ev)
		if err != nil {
			log.Error("unhandled request failure", map[string]any{
				"error":      err,
				"path":       ev.Path,
				"method":     ev.HTTPMethod,
				"request_id": chimw.GetReqID(r.Context()),
			})
			writeResponse(w, errorResponse(http.StatusInternalServerError, "internal error"))
			return
		}

		writeResponse(w, resp)
	}
}

func writeResponse(w http.ResponseWriter, resp Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
