package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/pkg/log"
	"github.com/podolsknews/parser-service/internal/storage"
)

const (
	// batchSize — по сколько строк вставлять в БД за одну транзакцию.
	batchSize = 50

	// Диапазон id источников, который обходит поллер.
	sourceRangeFrom = 0
	sourceRangeTo   = 100000
)

// Init подготавливает оркестратор к работе: создаёт уникальный индекс
// по topic.title и загружает кэш меток тем. Вызывается и поллером,
// и реактором — у каждого воркера свой кэш.
func (s *Ingestor) Init(ctx context.Context) error {
	const op = "service.Init"

	if err := s.storage.EnsureTopicTitleUniqueIndex(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	topics, err := s.storage.ListTopics(ctx)
	if err != nil {
		return fmt.Errorf("%s: list topics: %w", op, err)
	}

	s.topicLabels = s.topicLabels[:0]
	s.topicKeyToID = make(map[string]int64, len(topics))
	for _, t := range topics {
		s.topicLabels = append(s.topicLabels, t.Title)
		s.topicKeyToID[normKey(t.Title)] = t.ID
	}

	if len(s.topicLabels) == 0 {
		log.From(ctx).Warn("topic_table_empty", slog.String("op", op))
	}

	return nil
}

// Start запускает периодический опрос источников с периодом lazy_time
// секунд. Первый тик выполняется сразу; тики не перекрываются —
// затянувшийся проход просто сдвигает следующий. Останавливается по ctx.
func (s *Ingestor) Start(ctx context.Context) error {
	const op = "service.Start"

	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.storage.SeedDefaultSources(ctx); err != nil {
		return fmt.Errorf("%s: seed sources: %w", op, err)
	}

	interval := time.Duration(s.cfg.LazyTime) * time.Second

	lg := log.From(ctx)
	lg.Info("poller_start",
		slog.String("op", op),
		slog.Duration("interval", interval),
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			lg.Info("poller_stop", slog.String("op", op))
			return nil
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

// tick — один проход поллера: выборка всех rss-источников диапазона,
//bump их last_updated_at и разбор каждого.
//
// Отметка поднимается до разбора: элементы, опубликованные во время
// прохода, попадут в следующий тик, а не потеряются между выборкой
// и завершением разбора.
func (s *Ingestor) tick(ctx context.Context) {
	const op = "service.tick"

	lg := log.From(ctx)
	lg.Debug("tick", slog.String("op", op))

	sources, err := s.storage.ListRssSourcesRange(ctx, sourceRangeFrom, sourceRangeTo, nil)
	if err != nil {
		lg.Error("list_sources_failed", slog.String("op", op), slog.String("error", err.Error()))
		return
	}

	if err := s.storage.BumpSourcesLastUpdatedRange(ctx, sourceRangeFrom, sourceRangeTo, time.Now().UTC()); err != nil {
		lg.Error("bump_sources_failed", slog.String("op", op), slog.String("error", err.Error()))
	}

	if len(sources) == 0 {
		lg.Info("no_rss_sources", slog.String("op", op))
		return
	}

	s.parseSources(ctx, sources)
}

// parseSources разбирает источники по одному; ошибка одного источника
// не прерывает проход.
func (s *Ingestor) parseSources(ctx context.Context, sources []models.Source) {
	const op = "service.parseSources"

	for _, src := range sources {
		if ctx.Err() != nil {
			return
		}
		if err := s.parseSource(ctx, src); err != nil {
			log.From(ctx).Warn("source_parse_failed",
				slog.String("op", op),
				slog.Int64("source_id", src.ID),
				slog.String("error", err.Error()),
			)
		}
	}
}

// parseSource загружает ленту источника, вставляет строки пачками по
// batchSize (каждая пачка — одна транзакция) и классифицирует новые
// кластеры каждой пачки. Кластеры, оставшиеся без тем после
// постатейной классификации, добираются кластерным классификатором.
func (s *Ingestor) parseSource(ctx context.Context, src models.Source) error {
	const op = "service.parseSource"

	ctx = log.With(ctx, slog.Int64("source_id", src.ID))

	rows, err := s.fetcher.FetchSource(ctx, src)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	var inserted int
	var bare []int64

	for start := 0; start < len(rows); start += batchSize {
		end := start + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		results, err := s.storage.InsertArticles(ctx, chunk)
		if err != nil {
			return fmt.Errorf("%s: insert batch: %w", op, err)
		}
		inserted += len(results)

		bare = append(bare, s.classifyBatch(ctx, results, chunk)...)
	}

	if len(bare) > 0 {
		s.AssignTopicsForClusters(ctx, bare)
	}

	log.From(ctx).Info("source_parsed",
		slog.String("op", op),
		slog.Int("items", len(rows)),
		slog.Int("inserted", inserted),
	)

	return nil
}

// ParseSourceByID выполняет внеплановый разбор одного источника —
// операция реактора команд. Для несуществующего id возвращает
// ErrSourceNotFound.
func (s *Ingestor) ParseSourceByID(ctx context.Context, id int64) error {
	const op = "service.ParseSourceByID"

	src, err := s.storage.SourceByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrSourceNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return s.parseSource(ctx, *src)
}

// SetSourceStatus меняет статус источника.
func (s *Ingestor) SetSourceStatus(ctx context.Context, id int64, status string) error {
	const op = "service.SetSourceStatus"

	if status == "" {
		return fmt.Errorf("%s: %w: empty status", op, ErrInvalidArgument)
	}

	if err := s.storage.UpdateSourceStatus(ctx, id, status); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
