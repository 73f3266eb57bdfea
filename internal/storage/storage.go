// storage определяет контракты доступа к БД для parser-сервиса.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/podolsknews/parser-service/internal/models"
)

// ErrNotFound — сущность отсутствует в хранилище.
var ErrNotFound = errors.New("not found")

// SourceStorage описывает операции над таблицей source.
type SourceStorage interface {
	// ListRssSourcesRange возвращает источники kind='rss' с id в [from, to]
	// и статусом из statuses, упорядоченные по id.
	ListRssSourcesRange(ctx context.Context, from, to int64, statuses []string) ([]models.Source, error)
	// BumpSourcesLastUpdatedRange проставляет last_updated_at = ts всем источникам с id в [from, to].
	BumpSourcesLastUpdatedRange(ctx context.Context, from, to int64, ts time.Time) error
	// SourceByID возвращает источник по id; если записи нет — ErrNotFound.
	SourceByID(ctx context.Context, id int64) (*models.Source, error)
	// UpdateSourceStatus меняет статус источника.
	UpdateSourceStatus(ctx context.Context, id int64, status string) error
	// SeedDefaultSources вставляет встроенные источники (ON CONFLICT DO NOTHING).
	SeedDefaultSources(ctx context.Context) error
}

// ArticleStorage описывает протокол вставки статей через upsert_article_with_cluster.
type ArticleStorage interface {
	// InsertArticles вызывает процедуру для каждой строки в одной транзакции.
	// Пустой вход — пустой результат без транзакции. Любая ошибка строки
	// или отсутствие результата — rollback и пустой результат с ошибкой.
	InsertArticles(ctx context.Context, rows []models.Article) ([]models.ArticleInsertResult, error)
	// GetClusterArticles возвращает title/summary статей кластера,
	// упорядоченных по published_at DESC, не более limit.
	GetClusterArticles(ctx context.Context, clusterID int64, limit int) ([]models.ClusterArticle, error)
}

// TopicStorage описывает операции над темами и связками кластер-тема.
type TopicStorage interface {
	// ListTopics возвращает все темы.
	ListTopics(ctx context.Context) ([]models.Topic, error)
	// EnsureTopic возвращает id темы по title, создавая её при отсутствии.
	EnsureTopic(ctx context.Context, title string) (int64, error)
	// EnsureTopicTitleUniqueIndex создаёт уникальный индекс topic(title), если его нет.
	EnsureTopicTitleUniqueIndex(ctx context.Context) error
	// ClearClusterPrimary сбрасывает is_primary у всех тем кластера.
	ClearClusterPrimary(ctx context.Context, clusterID int64) error
	// UpsertClusterTopic вставляет/обновляет связку (cluster_id, topic_id).
	UpsertClusterTopic(ctx context.Context, clusterID, topicID int64, score float64, primary bool) error
	// DeleteClusterTopicsExcept удаляет связки кластера с темами вне keep.
	// Используется режимом replace при полной перезаписи тем кластера.
	DeleteClusterTopicsExcept(ctx context.Context, clusterID int64, keep []int64) error
}

// Storage задаёт контракт доступа к хранилищу для parser-сервиса.
type Storage interface {
	SourceStorage
	ArticleStorage
	TopicStorage
	Close()
}
