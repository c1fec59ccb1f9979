package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/manager"
	"github.com/kasuboski/animez/pkg/media"
	"go.uber.org/zap"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

type GenericResponse struct {
	Error    string `json:"error,omitempty"`
	Response any    `json:"response"`
}

// Server houses all dependencies for the anime server to work such as loggers, clients, configurations, etc.
type Server struct {
	baseLogger *zap.SugaredLogger
	manager    manager.MediaManager
}

// New creates a new anime server
func New(logger *zap.SugaredLogger, manager manager.MediaManager) Server {
	return Server{
		baseLogger: logger,
		manager:    manager,
	}
}

func writeErrorResponse(w http.ResponseWriter, status int, err error) error {
	return writeResponse(w, status, GenericResponse{
		Error: err.Error(),
	})
}

func writeResponse(w http.ResponseWriter, status int, body any) error {
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	w.Header().Set("content-type", "application/json")
	if status != http.StatusOK {
		w.WriteHeader(status)
	}

	w.Write(b)
	return nil
}

// statusFor maps manager errors onto response codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, manager.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, manager.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, manager.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusBadGateway
	}
}

func (s Server) respond(w http.ResponseWriter, r *http.Request, result any, err error) {
	log := logger.FromCtx(r.Context())
	if err != nil {
		status := statusFor(err)
		if status == http.StatusBadGateway {
			log.Errorw("request failed", zap.Error(err))
		} else {
			log.Debugw("request rejected", zap.Int("status", status), zap.Error(err))
		}
		writeErrorResponse(w, status, err)
		return
	}

	if err := writeResponse(w, http.StatusOK, GenericResponse{Response: result}); err != nil {
		log.Errorw("failed to write response", zap.Error(err))
	}
}

// Router builds the routes of the server
func (s Server) Router() http.Handler {
	rtr := mux.NewRouter()
	rtr.Use(s.LogMiddleware())
	rtr.HandleFunc("/healthz", s.Healthz()).Methods(http.MethodGet)

	api := rtr.PathPrefix("/api").Subrouter()

	v1 := api.PathPrefix("/v1").Subrouter()

	v1.HandleFunc("/anime/search", s.SearchAnime()).Methods(http.MethodGet)
	v1.HandleFunc("/anime/advanced-search", s.AdvancedSearch()).Methods(http.MethodGet)
	v1.HandleFunc("/anime/trending", s.TrendingAnime()).Methods(http.MethodGet)
	v1.HandleFunc("/anime/popular", s.PopularAnime()).Methods(http.MethodGet)
	v1.HandleFunc("/anime/{id}", s.GetAnimeInfo()).Methods(http.MethodGet)
	v1.HandleFunc("/anime/{id}/episodes", s.ListEpisodes()).Methods(http.MethodGet)

	v1.HandleFunc("/episodes/{episodeId}/servers", s.ListEpisodeServers()).Methods(http.MethodGet)
	v1.HandleFunc("/episodes/{episodeId}/sources", s.GetEpisodeSources()).Methods(http.MethodGet)

	v1.HandleFunc("/recent", s.RecentEpisodes()).Methods(http.MethodGet)

	return handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
	)(rtr)
}

// Serve starts the http server and blocks until ctx is done
func (s Server) Serve(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.Router(),
	}

	errs := make(chan error, 1)
	go func() {
		s.baseLogger.Infow("serving...", zap.Int("port", port), zap.String("provider", s.manager.Provider().Name))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*3)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

// Healthz is an endpoint for liveness checks
func (s Server) Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response := GenericResponse{
			Response: "ok",
		}
		writeResponse(w, http.StatusOK, response)
	}
}

// SearchAnime searches anime metadata by title
func (s Server) SearchAnime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		result, err := s.manager.Search(r.Context(), r.URL.Query().Get("query"), params)
		s.respond(w, r, result, err)
	}
}

// AdvancedSearch searches anime metadata by any of query, format, sort, genres, id, year, status and season.
// sort and genres take repeated or comma separated values.
func (s Server) AdvancedSearch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		filter, err := ParseFilter(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		result, err := s.manager.AdvancedSearch(r.Context(), filter, params)
		s.respond(w, r, result, err)
	}
}

func (s Server) TrendingAnime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		result, err := s.manager.Trending(r.Context(), params)
		s.respond(w, r, result, err)
	}
}

func (s Server) PopularAnime() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		result, err := s.manager.Popular(r.Context(), params)
		s.respond(w, r, result, err)
	}
}

// GetAnimeInfo returns anime metadata with reconciled episodes. dub selects the dubbed track and filler marks filler episodes.
func (s Server) GetAnimeInfo() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qp := r.URL.Query()

		dub, err := parseBool(qp.Get("dub"))
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid dub parameter: %w", err))
			return
		}

		withFiller, err := parseBool(qp.Get("filler"))
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, fmt.Errorf("invalid filler parameter: %w", err))
			return
		}

		result, err := s.manager.FetchAnimeInfo(r.Context(), mux.Vars(r)["id"], media.TrackFromDub(dub), withFiller)
		s.respond(w, r, result, err)
	}
}

// ListEpisodes returns only the reconciled episodes of an anime. audio defaults to sub.
func (s Server) ListEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		audio := r.URL.Query().Get("audio")
		if audio == "" {
			audio = string(media.TrackSub)
		}

		result, err := s.manager.FetchEpisodes(r.Context(), mux.Vars(r)["id"], media.AudioTrack(audio))
		s.respond(w, r, result, err)
	}
}

func (s Server) ListEpisodeServers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.manager.FetchEpisodeServers(r.Context(), mux.Vars(r)["episodeId"])
		s.respond(w, r, result, err)
	}
}

func (s Server) GetEpisodeSources() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.manager.FetchEpisodeSources(r.Context(), mux.Vars(r)["episodeId"], r.URL.Query().Get("server"))
		s.respond(w, r, result, err)
	}
}

// RecentEpisodes lists recently released episodes for a provider
func (s Server) RecentEpisodes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := ParsePaginationParams(r)
		if err != nil {
			writeErrorResponse(w, http.StatusBadRequest, err)
			return
		}

		result, err := s.manager.RecentEpisodes(r.Context(), r.URL.Query().Get("provider"), params)
		s.respond(w, r, result, err)
	}
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}
