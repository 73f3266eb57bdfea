package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/storage"
)

// defaultSources — встроенные ленты, которые сервис заводит на старте.
var defaultSources = []string{
	"https://www.vedomosti.ru/rss/news.xml",
	"https://tass.ru/rss/v2.xml",
	"https://rssexport.rbc.ru/rbcnews/news/30/full.rss",
	"https://www.theguardian.com/world/rss",
}

// ListRssSourcesRange возвращает rss-источники с id в [from, to] и статусом
// из statuses, упорядоченные по id ASC.
func (s *Storage) ListRssSourcesRange(ctx context.Context, from, to int64, statuses []string) ([]models.Source, error) {
	const op = "storage.postgres.ListRssSourcesRange"

	if to < from {
		from, to = to, from
	}
	if len(statuses) == 0 {
		statuses = []string{models.SourceStatusActive}
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, domain, last_updated_at
		FROM source
		WHERE kind = 'rss' AND status = ANY($1)
		  AND id BETWEEN $2 AND $3
		ORDER BY id ASC
		`, statuses, from, to)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Source
	for rows.Next() {
		var (
			src models.Source
			ts  *time.Time
		)
		if err := rows.Scan(&src.ID, &src.Domain, &ts); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		if ts != nil {
			src.LastUpdatedAt = ts.UTC()
		}
		out = append(out, src)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}

// BumpSourcesLastUpdatedRange проставляет last_updated_at = ts всему диапазону id.
func (s *Storage) BumpSourcesLastUpdatedRange(ctx context.Context, from, to int64, ts time.Time) error {
	const op = "storage.postgres.BumpSourcesLastUpdatedRange"

	if to < from {
		from, to = to, from
	}

	if _, err := s.db.Exec(ctx, `
		UPDATE source
		SET last_updated_at = $1
		WHERE id BETWEEN $2 AND $3
		`, ts.UTC(), from, to); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// SourceByID возвращает источник по id.
func (s *Storage) SourceByID(ctx context.Context, id int64) (*models.Source, error) {
	const op = "storage.postgres.SourceByID"

	var (
		src models.Source
		ts  *time.Time
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, domain, last_updated_at
		FROM source
		WHERE id = $1
		`, id).Scan(&src.ID, &src.Domain, &ts)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if ts != nil {
		src.LastUpdatedAt = ts.UTC()
	}

	return &src, nil
}

// UpdateSourceStatus меняет статус источника.
func (s *Storage) UpdateSourceStatus(ctx context.Context, id int64, status string) error {
	const op = "storage.postgres.UpdateSourceStatus"

	tag, err := s.db.Exec(ctx, `
		UPDATE source
		SET status = $1
		WHERE id = $2
		`, status, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

// SeedDefaultSources вставляет встроенные источники, не падая на повторах.
func (s *Storage) SeedDefaultSources(ctx context.Context) error {
	const op = "storage.postgres.SeedDefaultSources"

	for _, domain := range defaultSources {
		if _, err := s.db.Exec(ctx, `
			INSERT INTO source (kind, domain, status, is_default)
			VALUES ('rss', $1, 'active', true)
			ON CONFLICT (kind, domain) DO NOTHING
			`, domain); err != nil {
			return fmt.Errorf("%s: %s: %w", op, domain, err)
		}
	}

	return nil
}
