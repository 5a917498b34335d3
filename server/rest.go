package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/emmanuelkyeremeh/trendradar/pkg/analysis"
	"github.com/emmanuelkyeremeh/trendradar/pkg/format"
)

// defaultArticleLimit matches what the dashboard loads per page.
const defaultArticleLimit = 200

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	count, err := s.db.CountArticles(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to count articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	status := map[string]interface{}{
		"status":   "ok",
		"version":  s.version,
		"articles": count,
		"time":     time.Now().UTC(),
	}
	renderJSON(w, r, http.StatusOK, status)
}

// articlesHandler returns stored articles, newest first. Articles without an
// image get a placeholder so the rendering layer never deals with blanks.
func (s *Server) articlesHandler(w http.ResponseWriter, r *http.Request) {
	limit := defaultArticleLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			renderError(w, r, fmt.Errorf("invalid limit"), http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	articles, err := s.db.GetArticles(r.Context(), limit)
	if err != nil {
		log.Printf("[ERROR] failed to get articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	for i := range articles {
		if articles[i].Image == "" {
			articles[i].Image = format.PlaceholderImage(articles[i].Source)
		}
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{"articles": articles})
}

// trendsHandler returns stored trends, synthesizing them from articles when
// the store has none.
func (s *Server) trendsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	trends, err := s.db.GetTrends(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to get trends: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	if len(trends) == 0 {
		articles, err := s.db.GetArticles(ctx, defaultArticleLimit)
		if err != nil {
			log.Printf("[ERROR] failed to get articles for trend synthesis: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		trends = analysis.ResolveTrends(trends, articles)
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{"trends": trends})
}

// insightsHandler returns stored insights, synthesizing them from articles
// when the store has none.
func (s *Server) insightsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	insights, err := s.db.GetInsights(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to get insights: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	if len(insights) == 0 {
		articles, err := s.db.GetArticles(ctx, defaultArticleLimit)
		if err != nil {
			log.Printf("[ERROR] failed to get articles for insight synthesis: %v", err)
			renderError(w, r, err, http.StatusInternalServerError)
			return
		}
		insights = analysis.ResolveInsights(insights, articles, time.Now())
	}

	renderJSON(w, r, http.StatusOK, map[string]interface{}{"insights": insights})
}

// analysisHandler returns the full compiled dashboard report.
func (s *Server) analysisHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	articles, err := s.db.GetArticles(ctx, defaultArticleLimit)
	if err != nil {
		log.Printf("[ERROR] failed to get articles: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	trends, err := s.db.GetTrends(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to get trends: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	insights, err := s.db.GetInsights(ctx)
	if err != nil {
		log.Printf("[ERROR] failed to get insights: %v", err)
		renderError(w, r, err, http.StatusInternalServerError)
		return
	}

	report := analysis.Compile(articles, trends, insights, time.Now())
	renderJSON(w, r, http.StatusOK, report)
}

// refreshHandler triggers a refresh cycle in the background.
func (s *Server) refreshHandler(w http.ResponseWriter, r *http.Request) {
	// background context so the cycle survives the request
	go s.scheduler.RefreshNow(context.Background())
	renderJSON(w, r, http.StatusAccepted, map[string]string{"status": "refresh started"})
}

// renderJSON sends JSON response
func renderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// renderError sends error response as JSON
func renderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	renderJSON(w, r, code, map[string]string{"error": errMsg})
}
