package postgres

import (
	"context"
	"fmt"

	"github.com/podolsknews/parser-service/internal/models"
)

// ListTopics возвращает все темы, упорядоченные по id.
func (s *Storage) ListTopics(ctx context.Context) ([]models.Topic, error) {
	const op = "storage.postgres.ListTopics"

	rows, err := s.db.Query(ctx, `SELECT id, title FROM topic ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var out []models.Topic
	for rows.Next() {
		var t models.Topic
		if err := rows.Scan(&t.ID, &t.Title); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows: %w", op, err)
	}

	return out, nil
}

// EnsureTopic возвращает id темы по title, создавая её при отсутствии.
// Титулы сравниваются с учётом регистра (уникальный индекс topic(title)).
func (s *Storage) EnsureTopic(ctx context.Context, title string) (int64, error) {
	const op = "storage.postgres.EnsureTopic"

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO topic (title)
		VALUES ($1)
		ON CONFLICT (title) DO UPDATE SET title = EXCLUDED.title
		RETURNING id
		`, title).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("%s: title=%s: %w", op, title, err)
	}

	return id, nil
}

// EnsureTopicTitleUniqueIndex создаёт уникальный индекс topic(title), если его нет.
// Вызывается один раз на старте; на нём держится ON CONFLICT в EnsureTopic.
func (s *Storage) EnsureTopicTitleUniqueIndex(ctx context.Context) error {
	const op = "storage.postgres.EnsureTopicTitleUniqueIndex"

	if _, err := s.db.Exec(ctx, `
		CREATE UNIQUE INDEX IF NOT EXISTS topic_title_uq ON topic (title)
		`); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// ClearClusterPrimary сбрасывает is_primary у всех тем кластера.
func (s *Storage) ClearClusterPrimary(ctx context.Context, clusterID int64) error {
	const op = "storage.postgres.ClearClusterPrimary"

	if _, err := s.db.Exec(ctx, `
		UPDATE clustertopic
		SET is_primary = false
		WHERE cluster_id = $1
		`, clusterID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UpsertClusterTopic вставляет/обновляет связку (cluster_id, topic_id).
func (s *Storage) UpsertClusterTopic(ctx context.Context, clusterID, topicID int64, score float64, primary bool) error {
	const op = "storage.postgres.UpsertClusterTopic"

	if _, err := s.db.Exec(ctx, `
		INSERT INTO clustertopic (cluster_id, topic_id, score, is_primary)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (cluster_id, topic_id) DO UPDATE
		SET score = EXCLUDED.score,
		    is_primary = EXCLUDED.is_primary
		`, clusterID, topicID, score, primary); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteClusterTopicsExcept удаляет связки кластера с темами вне keep.
func (s *Storage) DeleteClusterTopicsExcept(ctx context.Context, clusterID int64, keep []int64) error {
	const op = "storage.postgres.DeleteClusterTopicsExcept"

	if _, err := s.db.Exec(ctx, `
		DELETE FROM clustertopic
		WHERE cluster_id = $1 AND topic_id <> ALL($2)
		`, clusterID, keep); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
