// Package scheduler drives the refresh cycle: it pulls articles from the
// upstream API and the configured RSS sources, refreshes precomputed trends
// and insights, and runs the optional enrichment workers.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
	"github.com/emmanuelkyeremeh/trendradar/pkg/feed"
)

// Database interface for scheduler operations
type Database interface {
	UpsertArticles(ctx context.Context, articles []domain.Article) (int, error)
	GetArticles(ctx context.Context, limit int) ([]domain.Article, error)
	GetArticlesWithoutContent(ctx context.Context, limit int) ([]domain.Article, error)
	UpdateArticleContent(ctx context.Context, url, content string) error
	PruneArticles(ctx context.Context, cutoff time.Time) (int64, error)
	ReplaceTrends(ctx context.Context, trends []domain.Trend) error
	ReplaceInsights(ctx context.Context, insights []domain.Insight) error
}

// UpstreamClient interface for the aggregation API
type UpstreamClient interface {
	Articles(ctx context.Context) ([]domain.Article, error)
	Trends(ctx context.Context) ([]domain.Trend, error)
	Insights(ctx context.Context) ([]domain.Insight, error)
}

// RSSFetcher interface for RSS/Atom sources
type RSSFetcher interface {
	Fetch(ctx context.Context, src feed.Source) ([]domain.Article, error)
}

// Extractor interface for content extraction
type Extractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// InsightGenerator interface for LLM insight generation
type InsightGenerator interface {
	Generate(ctx context.Context, articles []domain.Article) ([]domain.Insight, error)
}

// Config holds scheduler configuration
type Config struct {
	UpdateInterval  time.Duration
	ExtractInterval time.Duration
	Retention       time.Duration // 0 disables pruning
	MaxWorkers      int
}

// Scheduler manages periodic refresh cycles and enrichment workers.
type Scheduler struct {
	db        Database
	upstream  UpstreamClient // nil when no upstream is configured
	rss       RSSFetcher
	sources   []feed.Source
	extractor Extractor        // nil disables content extraction
	generator InsightGenerator // nil disables LLM insights

	updateInterval  time.Duration
	extractInterval time.Duration
	retention       time.Duration
	maxWorkers      int

	wg      sync.WaitGroup
	cancel  context.CancelFunc
	dbMutex sync.Mutex // serialize database writes
}

// NewScheduler creates a new scheduler instance.
func NewScheduler(database Database, upstream UpstreamClient, rss RSSFetcher, sources []feed.Source,
	extractor Extractor, generator InsightGenerator, cfg Config) *Scheduler {
	if cfg.UpdateInterval == 0 {
		cfg.UpdateInterval = 5 * time.Minute
	}
	if cfg.ExtractInterval == 0 {
		cfg.ExtractInterval = 5 * time.Minute
	}
	if cfg.MaxWorkers == 0 {
		cfg.MaxWorkers = 5
	}

	return &Scheduler{
		db:              database,
		upstream:        upstream,
		rss:             rss,
		sources:         sources,
		extractor:       extractor,
		generator:       generator,
		updateInterval:  cfg.UpdateInterval,
		extractInterval: cfg.ExtractInterval,
		retention:       cfg.Retention,
		maxWorkers:      cfg.MaxWorkers,
	}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.refreshWorker(ctx)

	if s.extractor != nil {
		s.wg.Add(1)
		go s.extractionWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with update interval %v, %d sources", s.updateInterval, len(s.sources))
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// RefreshNow triggers an immediate refresh cycle.
func (s *Scheduler) RefreshNow(ctx context.Context) {
	lgr.Printf("[INFO] triggered immediate refresh")
	s.refresh(ctx)
}

// refreshWorker runs refresh cycles on the configured interval.
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.updateInterval)
	defer ticker.Stop()

	// run immediately on start
	s.refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh runs one full cycle: articles, then trends and insights. Trend and
// insight fetches are independent, either may fail without affecting the other.
func (s *Scheduler) refresh(ctx context.Context) {
	s.refreshArticles(ctx)
	s.refreshTrends(ctx)
	s.refreshInsights(ctx)

	if s.retention > 0 {
		cutoff := time.Now().Add(-s.retention)
		s.dbMutex.Lock()
		deleted, err := s.db.PruneArticles(ctx, cutoff)
		s.dbMutex.Unlock()
		if err != nil {
			lgr.Printf("[ERROR] failed to prune articles: %v", err)
		} else if deleted > 0 {
			lgr.Printf("[INFO] pruned %d articles older than %v", deleted, s.retention)
		}
	}
}

// refreshArticles fetches articles from the upstream API and all RSS sources
// concurrently and stores whatever arrived.
func (s *Scheduler) refreshArticles(ctx context.Context) {
	var mu sync.Mutex
	var collected []domain.Article

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	if s.upstream != nil {
		g.Go(func() error {
			articles, err := s.upstream.Articles(gctx)
			if err != nil {
				lgr.Printf("[ERROR] failed to fetch upstream articles: %v", err)
				return nil // other sources still run
			}
			mu.Lock()
			collected = append(collected, articles...)
			mu.Unlock()
			lgr.Printf("[DEBUG] fetched %d articles from upstream", len(articles))
			return nil
		})
	}

	for _, src := range s.sources {
		g.Go(func() error {
			articles, err := s.rss.Fetch(gctx, src)
			if err != nil {
				lgr.Printf("[ERROR] failed to fetch source %s: %v", src.Name, err)
				return nil
			}
			mu.Lock()
			collected = append(collected, articles...)
			mu.Unlock()
			lgr.Printf("[DEBUG] fetched %d articles from %s", len(articles), src.Name)
			return nil
		})
	}

	_ = g.Wait() // fetch errors are logged, not propagated

	if len(collected) == 0 {
		lgr.Printf("[WARN] refresh produced no articles")
		return
	}

	s.dbMutex.Lock()
	inserted, err := s.db.UpsertArticles(ctx, collected)
	s.dbMutex.Unlock()
	if err != nil {
		lgr.Printf("[ERROR] failed to store articles: %v", err)
		return
	}

	lgr.Printf("[INFO] refresh stored %d new articles (%d fetched)", inserted, len(collected))
}

// refreshTrends replaces stored trends with the upstream set.
func (s *Scheduler) refreshTrends(ctx context.Context) {
	if s.upstream == nil {
		return
	}

	trends, err := s.upstream.Trends(ctx)
	if err != nil {
		lgr.Printf("[WARN] failed to fetch trends, keeping previous set: %v", err)
		return
	}

	s.dbMutex.Lock()
	err = s.db.ReplaceTrends(ctx, trends)
	s.dbMutex.Unlock()
	if err != nil {
		lgr.Printf("[ERROR] failed to store trends: %v", err)
		return
	}
	lgr.Printf("[INFO] refreshed %d trends", len(trends))
}

// refreshInsights replaces stored insights, preferring LLM generation over the
// upstream set when a generator is configured.
func (s *Scheduler) refreshInsights(ctx context.Context) {
	var insights []domain.Insight
	var err error

	switch {
	case s.generator != nil:
		var articles []domain.Article
		articles, err = s.db.GetArticles(ctx, 200)
		if err != nil {
			lgr.Printf("[ERROR] failed to load articles for insight generation: %v", err)
			return
		}
		insights, err = s.generator.Generate(ctx, articles)
		if err != nil {
			lgr.Printf("[WARN] insight generation failed, keeping previous set: %v", err)
			return
		}
	case s.upstream != nil:
		insights, err = s.upstream.Insights(ctx)
		if err != nil {
			lgr.Printf("[WARN] failed to fetch insights, keeping previous set: %v", err)
			return
		}
	default:
		return
	}

	s.dbMutex.Lock()
	err = s.db.ReplaceInsights(ctx, insights)
	s.dbMutex.Unlock()
	if err != nil {
		lgr.Printf("[ERROR] failed to store insights: %v", err)
		return
	}
	lgr.Printf("[INFO] refreshed %d insights", len(insights))
}

// extractionWorker periodically extracts content for stored articles.
func (s *Scheduler) extractionWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.extractInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.extractPendingContent(ctx)
		}
	}
}

// extractPendingContent extracts content for articles that need it.
func (s *Scheduler) extractPendingContent(ctx context.Context) {
	articles, err := s.db.GetArticlesWithoutContent(ctx, s.maxWorkers)
	if err != nil {
		lgr.Printf("[ERROR] failed to get articles for extraction: %v", err)
		return
	}
	if len(articles) == 0 {
		return
	}

	lgr.Printf("[INFO] extracting content for %d articles", len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxWorkers)

	for _, article := range articles {
		g.Go(func() error {
			text, err := s.extractor.Extract(gctx, article.URL)
			if err != nil {
				lgr.Printf("[WARN] failed to extract content from %s: %v", article.URL, err)
				return nil
			}

			s.dbMutex.Lock()
			err = s.db.UpdateArticleContent(gctx, article.URL, text)
			s.dbMutex.Unlock()
			if err != nil {
				lgr.Printf("[WARN] failed to store content: %v", err)
				return nil
			}

			lgr.Printf("[DEBUG] extracted %d characters from: %s", len(text), article.Title)
			return nil
		})
	}

	_ = g.Wait()
	lgr.Printf("[INFO] content extraction completed")
}
