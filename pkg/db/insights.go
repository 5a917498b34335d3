package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

type insightRow struct {
	ID             int64     `db:"id"`
	Topic          string    `db:"topic"`
	Summary        string    `db:"summary"`
	Sentiment      string    `db:"sentiment"`
	ArticleCount   int       `db:"article_count"`
	ImpactScore    float64   `db:"impact_score"`
	TrendDirection string    `db:"trend_direction"`
	Keywords       string    `db:"keywords"`
	Position       int       `db:"position"`
	UpdatedAt      time.Time `db:"updated_at"`
}

func (r *insightRow) toDomain() (domain.Insight, error) {
	ins := domain.Insight{
		Topic:          r.Topic,
		Summary:        r.Summary,
		Sentiment:      domain.Sentiment(r.Sentiment),
		ArticleCount:   r.ArticleCount,
		ImpactScore:    r.ImpactScore,
		TrendDirection: domain.TrendDirection(r.TrendDirection),
	}
	if err := json.Unmarshal([]byte(r.Keywords), &ins.Keywords); err != nil {
		return domain.Insight{}, fmt.Errorf("unmarshal insight keywords: %w", err)
	}
	return ins, nil
}

// ReplaceInsights swaps the stored insight set for a fresh one, preserving the
// given order via the position column.
func (db *DB) ReplaceInsights(ctx context.Context, insights []domain.Insight) error {
	return db.InTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM insights`); err != nil {
			return fmt.Errorf("clear insights: %w", err)
		}

		query := `
			INSERT INTO insights (topic, summary, sentiment, article_count, impact_score, trend_direction, keywords, position)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`
		for i, ins := range insights {
			keywords, err := json.Marshal(ins.Keywords)
			if err != nil {
				return fmt.Errorf("marshal insight keywords: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, ins.Topic, ins.Summary, string(ins.Sentiment),
				ins.ArticleCount, ins.ImpactScore, string(ins.TrendDirection), string(keywords), i); err != nil {
				return fmt.Errorf("insert insight %q: %w", ins.Topic, err)
			}
		}
		return nil
	})
}

// GetInsights retrieves the stored insights in their original order.
func (db *DB) GetInsights(ctx context.Context) ([]domain.Insight, error) {
	var rows []insightRow
	if err := db.conn.SelectContext(ctx, &rows, `SELECT * FROM insights ORDER BY position`); err != nil {
		return nil, fmt.Errorf("get insights: %w", err)
	}

	insights := make([]domain.Insight, 0, len(rows))
	for i := range rows {
		ins, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		insights = append(insights, ins)
	}
	return insights, nil
}
