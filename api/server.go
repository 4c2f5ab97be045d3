package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"citracker/api/handlers"
	"citracker/api/routegroups"
	"citracker/config"
	"citracker/core/dataset"
	"citracker/core/metrics"
	"citracker/core/session"
	"citracker/core/utils"
)

// ServerDeps carries everything the HTTP layer needs. The fact table is
// loaded and canonicalized before the server starts and never changes.
type ServerDeps struct {
	Cfg      *config.AppConfig
	Table    dataset.Table
	Subtypes []dataset.SubtypeRow
	Sessions *session.Store
	Metrics  *metrics.Metrics
	Logger   *utils.Logger
}

type Server struct {
	cfg      *config.AppConfig
	table    dataset.Table
	subtypes []dataset.SubtypeRow
	sessions *session.Store
	metrics  *metrics.Metrics
	logger   *utils.Logger
	router   chi.Router
}

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		cfg:      deps.Cfg,
		table:    deps.Table,
		subtypes: deps.Subtypes,
		sessions: deps.Sessions,
		metrics:  deps.Metrics,
		logger:   deps.Logger,
	}
	s.router = s.newRouter()
	return s
}

func (s *Server) newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(s.recoverMiddleware)
	r.Use(s.metricsMiddleware)

	dashboard := handlers.NewDashboardHandler(s.cfg, s.table, s.subtypes, s.sessions, s.metrics, s.logger)

	r.Route("/api", func(apiRouter chi.Router) {
		routegroups.RegisterDashboard(apiRouter, dashboard)
	})

	r.MethodFunc("GET", "/healthz", s.health)
	r.Method("GET", "/metrics", promhttp.Handler())
	return r
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
