package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bb-analyst/EffortPlot/internal/dataset"
	"github.com/bb-analyst/EffortPlot/internal/domain/efforts"
	"github.com/bb-analyst/EffortPlot/internal/domain/filters"
	"github.com/bb-analyst/EffortPlot/internal/domain/rankings"
	"github.com/bb-analyst/EffortPlot/internal/metrics"
	"github.com/bb-analyst/EffortPlot/internal/projections"
)

type Dependencies struct {
	Cache          *dataset.Cache
	Recorder       *metrics.Recorder
	AllowedOrigins []string
}

type Server struct {
	cache      *dataset.Cache
	projection *projections.Service
	recorder   *metrics.Recorder
	origins    []string
}

func NewServer(deps Dependencies) *Server {
	return &Server{
		cache:      deps.Cache,
		projection: projections.NewService(deps.Cache),
		recorder:   deps.Recorder,
		origins:    deps.AllowedOrigins,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/options", s.handleOptions)
		r.Get("/games", s.handleGames)
		r.Get("/season", s.handleSeason)
		r.Get("/season/baseline", s.handleSeasonBaseline)
		r.Get("/leaderboards/total", s.handleTopByTotal)
		r.Get("/leaderboards/efficiency", s.handleTopByEfficiency)
		r.Get("/explore", s.handleExplore)
		r.Post("/admin/reload", s.handleReload)
		r.Get("/admin/metrics", s.handleRequestMetrics)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	opts := filters.DeriveOptions(snap.Records, selectionFromQuery(r))
	writeJSON(w, http.StatusOK, opts)
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	view, err := s.explore(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": view.Metrics,
		"games":   view.Games,
	})
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) {
	view, err := s.explore(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics": view.Metrics,
		"season":  view.Season,
	})
}

func (s *Server) handleSeasonBaseline(w http.ResponseWriter, r *http.Request) {
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	subset := filters.Apply(snap.Records, selectionFromQuery(r))
	writeJSON(w, http.StatusOK, map[string]any{
		"baseline": efforts.SeasonBaseline(subset),
	})
}

func (s *Server) handleTopByTotal(w http.ResponseWriter, r *http.Request) {
	view, err := s.explore(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics":     view.Metrics,
		"leaderboard": view.TopByTotal,
	})
}

func (s *Server) handleTopByEfficiency(w http.ResponseWriter, r *http.Request) {
	view, err := s.explore(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"metrics":        view.Metrics,
		"qualifyingMins": rankings.QualifyingMins,
		"leaderboard":    view.TopByEfficiency,
	})
}

func (s *Server) handleExplore(w http.ResponseWriter, r *http.Request) {
	view, err := s.explore(r)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if err := s.cache.Invalidate(r.Context()); err != nil {
		respondError(w, err)
		return
	}
	snap, err := s.cache.Snapshot(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"snapshotId":  snap.ID.String(),
		"fingerprint": snap.Fingerprint,
		"loadedAt":    snap.LoadedAt,
		"records":     len(snap.Records),
	})
}

func (s *Server) handleRequestMetrics(w http.ResponseWriter, _ *http.Request) {
	samples := []metrics.RequestSample{}
	if s.recorder != nil {
		samples = s.recorder.Recent()
	}
	writeJSON(w, http.StatusOK, map[string]any{"samples": samples})
}

func (s *Server) explore(r *http.Request) (*projections.View, error) {
	query, err := queryFromRequest(r)
	if err != nil {
		return nil, err
	}
	return s.projection.Explore(r.Context(), query)
}

func queryFromRequest(r *http.Request) (projections.Query, error) {
	query := projections.Query{
		Selection: selectionFromQuery(r),
		Search:    r.URL.Query().Get("search"),
	}
	if _, present := r.URL.Query()["metrics"]; present {
		set, err := efforts.NewMetricSet(listParam(r, "metrics"))
		if err != nil {
			return projections.Query{}, err
		}
		query.Metrics = set
	}
	return query, nil
}

func selectionFromQuery(r *http.Request) filters.Selection {
	return filters.Selection{
		Positions: listParam(r, "positions"),
		Teams:     listParam(r, "teams"),
		Players:   listParam(r, "players"),
	}
}

// listParam accepts both repeated params and comma-separated values.
func listParam(r *http.Request, name string) []string {
	out := make([]string, 0)
	for _, raw := range r.URL.Query()[name] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func respondError(w http.ResponseWriter, err error) {
	var validation *efforts.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusUnprocessableEntity, validation.Msg, true)
		return
	}
	var load *dataset.LoadError
	if errors.As(err, &load) {
		writeError(w, http.StatusInternalServerError, load.Error(), false)
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error(), false)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		latency := time.Since(start)
		if s.recorder != nil {
			s.recorder.Record(metrics.RequestSample{
				Path:      r.URL.Path,
				Method:    r.Method,
				Status:    ww.Status(),
				Latency:   latency,
				Timestamp: start.UTC(),
			})
		}
		log.Printf("%s %s status=%d duration=%s", r.Method, r.URL.Path, ww.Status(), latency)
	})
}
