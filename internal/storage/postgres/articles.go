package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

// upsertArticleSQL — контракт серверной процедуры кластеризации.
// recency и min_score фиксированы протоколом: окно свежести кластера 1 час,
// минимальная похожесть 0.2.
const upsertArticleSQL = `
	SELECT
	    out_cluster_id,
	    out_article_id,
	    out_score,
	    out_matched,
	    out_created_new
	FROM upsert_article_with_cluster(
	    p_source_id    => $1,
	    p_url          => $2,
	    p_title        => $3,
	    p_image        => $4,
	    p_summary      => $5,
	    p_published_at => $6,
	    p_language     => $7,
	    p_recency      => '1 hour',
	    p_min_score    => 0.2
	)`

// InsertArticles прогоняет пачку строк через upsert_article_with_cluster
// в одной транзакции.
//
// Правила:
//   - пустой вход — пустой результат, транзакция не открывается;
//   - строка с нулевым published_at фатальна для пачки;
//   - ошибка любой строки или отсутствие результата — rollback, пустой результат.
func (s *Storage) InsertArticles(ctx context.Context, rows []models.Article) ([]models.ArticleInsertResult, error) {
	const op = "storage.postgres.InsertArticles"

	if len(rows) == 0 {
		return nil, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback(ctx)

	out := make([]models.ArticleInsertResult, 0, len(rows))
	for _, r := range rows {
		if r.PublishedAt.IsZero() {
			return nil, fmt.Errorf("%s: invalid published_at for url=%s", op, r.URL)
		}

		image := nullIfEmpty(r.ImageURL)
		summary := nullIfEmpty(r.Summary)
		lang := r.Language
		if lang == "" {
			lang = "auto"
		}

		var res models.ArticleInsertResult
		err := tx.QueryRow(ctx, upsertArticleSQL,
			r.SourceID, r.URL, r.Title, image, summary, r.PublishedAt.UTC(), lang,
		).Scan(&res.ClusterID, &res.ArticleID, &res.Score, &res.Matched, &res.CreatedNew)
		if err != nil {
			log.From(ctx).Warn("upsert_article_failed",
				slog.String("op", op),
				slog.String("url", r.URL),
				slog.String("err", err.Error()),
			)
			return nil, fmt.Errorf("%s: url=%s: %w", op, r.URL, err)
		}

		out = append(out, res)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("%s: commit: %w", op, err)
	}

	return out, nil
}

// GetClusterArticles возвращает выборку статей кластера для классификации.
func (s *Storage) GetClusterArticles(ctx context.Context, clusterID int64, limit int) ([]models.ClusterArticle, error) {
	const op = "storage.postgres.GetClusterArticles"

	if limit <= 0 {
		limit = 6
	}

	rows, err := s.db.Query(ctx, `
		SELECT title, COALESCE(summary, '')
		FROM article
		WHERE cluster_id = $1
		ORDER BY published_at DESC
		LIMIT $2
		`, clusterID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.ClusterArticle
	for rows.Next() {
		var a models.ClusterArticle
		if err := rows.Scan(&a.Title, &a.Summary); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}

// nullIfEmpty — пустая строка уходит в БД как NULL.
func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
