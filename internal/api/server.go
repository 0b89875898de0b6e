package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shelfline/backend/internal/analytics"
	"github.com/shelfline/backend/internal/config"
	"github.com/shelfline/backend/internal/library"
	"github.com/shelfline/backend/internal/review"
)

type Server struct {
	Config    *config.Config
	Library   *library.Library
	Analytics analytics.Store
	Logger    *logrus.Entry
	Router    *http.ServeMux

	started time.Time
}

func NewServer(cfg *config.Config, lib *library.Library, store analytics.Store, logger *logrus.Entry) *Server {
	s := &Server{
		Config:    cfg,
		Library:   lib,
		Analytics: store,
		Logger:    logger,
		Router:    http.NewServeMux(),
		started:   time.Now(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("/api/v1/search", s.handleSearch)
	s.Router.HandleFunc("/api/v1/reviews", s.handleReviews)
	s.Router.HandleFunc("/api/v1/reviews/", s.handleReview)
	s.Router.HandleFunc("/api/v1/tags", s.handleTags)
	s.Router.HandleFunc("/api/v1/shelves", s.handleShelves)
	s.Router.HandleFunc("/api/v1/popular", s.handlePopular)
	s.Router.HandleFunc("/api/v1/status", s.handleStatus)
	s.Router.HandleFunc("/api/v1/reload", s.handleReload)
}

func (s *Server) Start(addr string) error {
	s.Logger.Infof("Starting API Server on %s", addr)
	server := &http.Server{
		Addr:         addr,
		Handler:      s.Router,
		ReadTimeout:  s.Config.Server.ReadTimeout,
		WriteTimeout: s.Config.Server.WriteTimeout,
	}
	return server.ListenAndServe()
}

// Responses

type ErrorResponse struct {
	Error string `json:"error"`
}

type SearchResponse struct {
	Query   string             `json:"query"`
	Count   int                `json:"count"`
	Results []SearchResultView `json:"results"`
}

type SearchResultView struct {
	Slug      string   `json:"slug"`
	Title     string   `json:"title"`
	TitleHTML string   `json:"title_html"`
	Author    string   `json:"author"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	Score     float64  `json:"score"`
	Snippets  []string `json:"snippets"`
}

type ReviewListResponse struct {
	Count   int          `json:"count"`
	Reviews []ReviewView `json:"reviews"`
}

type ReviewView struct {
	Slug    string   `json:"slug"`
	Title   string   `json:"title"`
	Author  string   `json:"author"`
	Genre   string   `json:"genre"`
	Tags    []string `json:"tags"`
	Status  string   `json:"status"`
	Rating  int      `json:"rating"`
	Date    string   `json:"date,omitempty"`
	Excerpt string   `json:"excerpt"`
	HTML    string   `json:"html,omitempty"`
}

type TagsResponse struct {
	Tags []library.TagCount `json:"tags"`
}

type ShelvesResponse struct {
	Shelves map[string]int `json:"shelves"`
}

type PopularResponse struct {
	Queries []analytics.Entry `json:"queries"`
	Tags    []analytics.Entry `json:"tags"`
}

type StatusResponse struct {
	Reviews    int    `json:"reviews"`
	Uptime     string `json:"uptime"`
	LastReload string `json:"last_reload,omitempty"`
}

// Handlers

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query().Get("q")
	if strings.TrimSpace(query) == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}

	tag := r.URL.Query().Get("tag")
	status := r.URL.Query().Get("status")

	opts := library.SearchOptions{
		Limit:         s.Config.Search.DefaultLimit,
		Tag:           tag,
		Status:        status,
		SnippetLength: s.Config.Search.SnippetLength,
		MaxSnippets:   s.Config.Search.MaxSnippets,
		MarkerClass:   s.Config.Search.MarkerClass,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			opts.Limit = limit
		}
	}

	hits := s.Library.Search(query, opts)
	s.record(r, query, tag, status, len(hits))

	response := SearchResponse{
		Query:   query,
		Count:   len(hits),
		Results: make([]SearchResultView, len(hits)),
	}
	for i, hit := range hits {
		response.Results[i] = SearchResultView{
			Slug:      hit.Review.Slug,
			Title:     hit.Review.Title,
			TitleHTML: hit.TitleHTML,
			Author:    hit.Review.Author,
			Status:    hit.Review.Status,
			Tags:      hit.Review.Tags,
			Score:     hit.Score,
			Snippets:  hit.Snippets,
		}
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleReviews(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var reviews []*review.Review
	switch {
	case r.URL.Query().Get("tag") != "":
		reviews = s.Library.ByTag(r.URL.Query().Get("tag"))
	case r.URL.Query().Get("status") != "":
		reviews = s.Library.ByStatus(r.URL.Query().Get("status"))
	default:
		reviews = s.Library.All()
	}

	response := ReviewListResponse{
		Count:   len(reviews),
		Reviews: make([]ReviewView, len(reviews)),
	}
	for i, rev := range reviews {
		response.Reviews[i] = reviewView(rev, false)
	}

	jsonResponse(w, http.StatusOK, response)
}

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	slug := strings.TrimPrefix(r.URL.Path, "/api/v1/reviews/")
	if slug == "" || strings.Contains(slug, "/") {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "Review not found"})
		return
	}

	rev, ok := s.Library.Get(slug)
	if !ok {
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: "Review not found"})
		return
	}

	jsonResponse(w, http.StatusOK, reviewView(rev, true))
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonResponse(w, http.StatusOK, TagsResponse{Tags: s.Library.Tags()})
}

func (s *Server) handleShelves(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	jsonResponse(w, http.StatusOK, ShelvesResponse{Shelves: s.Library.Statuses()})
}

func (s *Server) handlePopular(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.Analytics == nil {
		jsonResponse(w, http.StatusOK, PopularResponse{})
		return
	}

	queries, err := s.Analytics.TopQueries(r.Context(), 10)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to load popular queries")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "Analytics unavailable"})
		return
	}
	tags, err := s.Analytics.TopFilters(r.Context(), analytics.FilterTag, 10)
	if err != nil {
		s.Logger.WithError(err).Error("Failed to load popular tags")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "Analytics unavailable"})
		return
	}

	jsonResponse(w, http.StatusOK, PopularResponse{Queries: queries, Tags: tags})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := StatusResponse{
		Reviews: s.Library.Len(),
		Uptime:  time.Since(s.started).String(),
	}
	if loaded := s.Library.LoadedAt(); !loaded.IsZero() {
		resp.LastReload = loaded.Format(time.RFC3339)
	}

	jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := s.Library.Reload(s.Config.Content.Dir); err != nil {
		s.Logger.WithError(err).Error("Failed to reload content")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}

	jsonResponse(w, http.StatusOK, map[string]interface{}{
		"status":  "reloaded",
		"reviews": s.Library.Len(),
	})
}

// record feeds the analytics store. Failures are logged, never surfaced: a
// broken counter must not break search.
func (s *Server) record(r *http.Request, query, tag, status string, results int) {
	if s.Analytics == nil {
		return
	}
	session := r.Header.Get("X-Session-ID")
	if session == "" {
		session = analytics.AnonymousSession
	}

	ctx := r.Context()
	if err := s.Analytics.RecordSearch(ctx, session, query, results); err != nil {
		s.Logger.WithError(err).Warn("Failed to record search")
	}
	if tag != "" {
		if err := s.Analytics.RecordFilter(ctx, session, analytics.FilterTag, tag); err != nil {
			s.Logger.WithError(err).Warn("Failed to record tag filter")
		}
	}
	if status != "" {
		if err := s.Analytics.RecordFilter(ctx, session, analytics.FilterStatus, status); err != nil {
			s.Logger.WithError(err).Warn("Failed to record status filter")
		}
	}
}

func reviewView(rev *review.Review, includeHTML bool) ReviewView {
	view := ReviewView{
		Slug:    rev.Slug,
		Title:   rev.Title,
		Author:  rev.Author,
		Genre:   rev.Genre,
		Tags:    rev.Tags,
		Status:  rev.Status,
		Rating:  rev.Rating,
		Excerpt: rev.Excerpt,
	}
	if !rev.Date.IsZero() {
		view.Date = rev.Date.Format("2006-01-02")
	}
	if includeHTML {
		view.HTML = rev.HTML
	}
	return view
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}
