package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

// articleRow is the database shape of a domain.Article. Published is NULL for
// articles whose upstream timestamp could not be parsed.
type articleRow struct {
	ID        int64        `db:"id"`
	GUID      string       `db:"guid"`
	Title     string       `db:"title"`
	URL       string       `db:"url"`
	Source    string       `db:"source"`
	Category  string       `db:"category"`
	Published sql.NullTime `db:"published"`
	Image     string       `db:"image"`
	Sentiment string       `db:"sentiment"`
	Content   string       `db:"content"`
	CreatedAt time.Time    `db:"created_at"`
}

func (r *articleRow) toDomain() domain.Article {
	a := domain.Article{
		Title:     r.Title,
		URL:       r.URL,
		Source:    r.Source,
		Category:  r.Category,
		Image:     r.Image,
		Sentiment: domain.Sentiment(r.Sentiment),
		Content:   r.Content,
	}
	if r.Published.Valid {
		a.Published = r.Published.Time
	}
	a.Normalize()
	return a
}

// articleGUID derives the deduplication key: the URL when present, otherwise
// source and title combined.
func articleGUID(a domain.Article) string {
	if a.URL != "" {
		return a.URL
	}
	return a.Source + "-" + a.Title
}

// UpsertArticles stores articles, skipping ones already present by GUID.
// Returns the number of newly inserted articles.
func (db *DB) UpsertArticles(ctx context.Context, articles []domain.Article) (int, error) {
	inserted := 0
	err := db.InTransaction(ctx, func(tx *sqlx.Tx) error {
		query := `
			INSERT INTO articles (guid, title, url, source, category, published, image, sentiment, content)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(guid) DO NOTHING
		`
		for _, a := range articles {
			var published interface{}
			if a.HasPublished() {
				published = a.Published.UTC()
			}
			res, err := tx.ExecContext(ctx, query, articleGUID(a), a.Title, a.URL, a.Source,
				a.Category, published, a.Image, string(a.Sentiment), a.Content)
			if err != nil {
				return fmt.Errorf("insert article: %w", err)
			}
			if n, err := res.RowsAffected(); err == nil && n > 0 {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetArticles retrieves up to limit articles, newest first. Articles without a
// parseable published time sort last.
func (db *DB) GetArticles(ctx context.Context, limit int) ([]domain.Article, error) {
	if limit <= 0 {
		limit = 200
	}
	var rows []articleRow
	query := `
		SELECT * FROM articles
		ORDER BY published DESC, created_at DESC
		LIMIT ?
	`
	if err := db.conn.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get articles: %w", err)
	}

	articles := make([]domain.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, rows[i].toDomain())
	}
	return articles, nil
}

// GetArticlesWithoutContent retrieves articles that still need content
// extraction, newest first.
func (db *DB) GetArticlesWithoutContent(ctx context.Context, limit int) ([]domain.Article, error) {
	var rows []articleRow
	query := `
		SELECT * FROM articles
		WHERE content = '' AND url != ''
		ORDER BY published DESC
		LIMIT ?
	`
	if err := db.conn.SelectContext(ctx, &rows, query, limit); err != nil {
		return nil, fmt.Errorf("get articles without content: %w", err)
	}

	articles := make([]domain.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, rows[i].toDomain())
	}
	return articles, nil
}

// UpdateArticleContent stores extracted content for the article with the given
// URL. Retries on transient lock errors since extraction workers write
// concurrently with refresh cycles.
func (db *DB) UpdateArticleContent(ctx context.Context, url, content string) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))

	return retrier.Do(ctx, func() error {
		_, err := db.conn.ExecContext(ctx, `UPDATE articles SET content = ? WHERE url = ?`, content, url)
		if err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("update article content: %w", err)}
		}
		return nil
	})
}

// CountArticles returns the number of stored articles.
func (db *DB) CountArticles(ctx context.Context) (int, error) {
	var count int
	if err := db.conn.GetContext(ctx, &count, `SELECT COUNT(*) FROM articles`); err != nil {
		return 0, fmt.Errorf("count articles: %w", err)
	}
	return count, nil
}

// PruneArticles deletes articles published before the cutoff. Articles with
// unknown published times are kept by their created_at instead.
func (db *DB) PruneArticles(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM articles
		WHERE (published IS NOT NULL AND published < ?)
		   OR (published IS NULL AND created_at < ?)
	`
	res, err := db.conn.ExecContext(ctx, query, cutoff.UTC(), cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("prune articles: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("get rows affected: %w", err)
	}
	return deleted, nil
}
