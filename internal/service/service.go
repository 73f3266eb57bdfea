// service содержит бизнес-логику parser-сервиса: поллер лент,
// классификатор кластеров и операции реактора команд.
package service

import (
	"context"
	"errors"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/storage"
)

var (
	// ErrNotFound — сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrSourceNotFound — реактору пришёл id несуществующего источника.
	ErrSourceNotFound = errors.New("source_not_found")
	// ErrInvalidArgument — некорректные входные аргументы.
	ErrInvalidArgument = errors.New("invalid argument")
)

// FeedFetcher описывает загрузчик одной ленты.
//
// Требования к реализации:
//  1. PublishedAt возвращаемых строк — в UTC;
//  2. строки не новее source.last_updated_at должны быть отброшены;
//  3. порядок строк — порядок элементов в ленте;
//  4. реализация обязана уважать ctx (отмена/таймауты).
type FeedFetcher interface {
	FetchSource(ctx context.Context, src models.Source) ([]models.Article, error)
}

// Scorer описывает LLM-скорер меток тем.
//
// ScoreLabels обязан вернуть по записи на каждую входную метку с
// оценками, в сумме дающими 1. ClassifyCluster может вернуть пустой
// срез — тогда вызывающий уходит в эвристику по ключевым словам.
type Scorer interface {
	ScoreLabels(ctx context.Context, text string, labels []string, lang string) ([]models.ScoredLabel, error)
	ClassifyCluster(ctx context.Context, text string, allowed []string, topK int, minScore float64) ([]models.ScoredLabel, error)
}

// Ingestor — оркестратор конвейера: опрос источников, вставка статей
// через кластеризующую процедуру и классификация новых кластеров.
// Один экземпляр на воркер; экземпляры не разделяют состояние,
// кроме самой БД.
type Ingestor struct {
	storage storage.Storage
	fetcher FeedFetcher
	scorer  Scorer
	cfg     config.Config

	// Кэш меток тем, загружается на старте.
	topicLabels  []string
	topicKeyToID map[string]int64
}

// New создаёт новый экземпляр Ingestor.
func New(st storage.Storage, fetcher FeedFetcher, scorer Scorer, cfg config.Config) *Ingestor {
	return &Ingestor{
		storage:      st,
		fetcher:      fetcher,
		scorer:       scorer,
		cfg:          cfg,
		topicKeyToID: make(map[string]int64),
	}
}
