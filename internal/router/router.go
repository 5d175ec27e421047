package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "petstore-catalog/docs"
	mem "petstore-catalog/internal/adapters/storage/memory"
	"petstore-catalog/internal/domain/pets"
	"petstore-catalog/internal/middleware"
	"petstore-catalog/internal/platform/logger"
)

type Options struct {
	// Opcional: si es nil se arma un catálogo en memoria sin LLM (modo dev).
	Dispatcher *pets.Dispatcher

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	d := opts.Dispatcher
	if d == nil {
		svc := pets.NewService(mem.NewPetRepo(), nil, log)
		d = pets.NewDispatcher(svc, log)
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.AccessLog(log))
	r.Use(middleware.Metrics)
	// el preflight responde solo con los headers CORS: va antes del eco de request id
	r.Use(middleware.Preflight(pets.PreflightHeaders()))
	r.Use(middleware.RequestIDHeader)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	pets.RegisterRoutes(r, d, log)

	return r
}
