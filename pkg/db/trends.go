package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/emmanuelkyeremeh/trendradar/pkg/domain"
)

type trendRow struct {
	ID        int64     `db:"id"`
	Topic     string    `db:"topic"`
	Mentions  int       `db:"mentions"`
	Sentiment string    `db:"sentiment"`
	Keywords  string    `db:"keywords"`
	Articles  string    `db:"articles"`
	Position  int       `db:"position"`
	UpdatedAt time.Time `db:"updated_at"`
}

func (r *trendRow) toDomain() (domain.Trend, error) {
	t := domain.Trend{
		Topic:     r.Topic,
		Mentions:  r.Mentions,
		Sentiment: domain.Sentiment(r.Sentiment),
	}
	if err := json.Unmarshal([]byte(r.Keywords), &t.Keywords); err != nil {
		return domain.Trend{}, fmt.Errorf("unmarshal trend keywords: %w", err)
	}
	if err := json.Unmarshal([]byte(r.Articles), &t.Articles); err != nil {
		return domain.Trend{}, fmt.Errorf("unmarshal trend articles: %w", err)
	}
	return t, nil
}

// ReplaceTrends swaps the stored trend set for a fresh one, preserving the
// given order via the position column.
func (db *DB) ReplaceTrends(ctx context.Context, trends []domain.Trend) error {
	return db.InTransaction(ctx, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM trends`); err != nil {
			return fmt.Errorf("clear trends: %w", err)
		}

		query := `
			INSERT INTO trends (topic, mentions, sentiment, keywords, articles, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		for i, t := range trends {
			keywords, err := json.Marshal(t.Keywords)
			if err != nil {
				return fmt.Errorf("marshal trend keywords: %w", err)
			}
			articles, err := json.Marshal(t.Articles)
			if err != nil {
				return fmt.Errorf("marshal trend articles: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, t.Topic, t.Mentions, string(t.Sentiment),
				string(keywords), string(articles), i); err != nil {
				return fmt.Errorf("insert trend %q: %w", t.Topic, err)
			}
		}
		return nil
	})
}

// GetTrends retrieves the stored trends in their original order.
func (db *DB) GetTrends(ctx context.Context) ([]domain.Trend, error) {
	var rows []trendRow
	if err := db.conn.SelectContext(ctx, &rows, `SELECT * FROM trends ORDER BY position`); err != nil {
		return nil, fmt.Errorf("get trends: %w", err)
	}

	trends := make([]domain.Trend, 0, len(rows))
	for i := range rows {
		t, err := rows[i].toDomain()
		if err != nil {
			return nil, err
		}
		trends = append(trends, t)
	}
	return trends, nil
}
