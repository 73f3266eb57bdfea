package service

// Тесты оркестратора (internal/service/ingestor.go).
//
// Проверяем:
//  - загрузку кэша тем на Init;
//  - eager bump отметок источников на тике;
//  - нарезку строк на пачки по batchSize;
//  - маппинг ошибок storage -> service (ParseSourceByID/SetSourceStatus);
//  - happy-path каждого метода.
//
// Подготовка окружения:
//   # 1) Сгенерировать моки интерфейса хранилища:
//   mockgen -source=./internal/storage/storage.go -destination=./mocks/storage.go -package=mocks
//
//   # 2) Запустить тесты:
//   go test ./internal/service -v -race -count=1

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/storage"
	"github.com/podolsknews/parser-service/mocks"
)

// stubFetcher — минимальный FeedFetcher для тестов оркестратора.
type stubFetcher struct {
	rows []models.Article
	err  error
	got  []models.Source
}

func (f *stubFetcher) FetchSource(_ context.Context, src models.Source) ([]models.Article, error) {
	f.got = append(f.got, src)
	return f.rows, f.err
}

// stubScorer — управляемый Scorer; nil-колбэк означает,
// что вызов в тесте не ожидается.
type stubScorer struct {
	scoreFn    func(text string, labels []string, lang string) []models.ScoredLabel
	classifyFn func(text string) []models.ScoredLabel
}

func (s *stubScorer) ScoreLabels(_ context.Context, text string, labels []string, lang string) ([]models.ScoredLabel, error) {
	if s.scoreFn == nil {
		return nil, errors.New("unexpected ScoreLabels call")
	}
	return s.scoreFn(text, labels, lang), nil
}

func (s *stubScorer) ClassifyCluster(_ context.Context, text string, _ []string, _ int, _ float64) ([]models.ScoredLabel, error) {
	if s.classifyFn == nil {
		return nil, errors.New("unexpected ClassifyCluster call")
	}
	return s.classifyFn(text), nil
}

// newIngestorWithMocks — поднимает оркестратор с моками стораджа.
func newIngestorWithMocks(t *testing.T, fetcher FeedFetcher, scorer Scorer) (*Ingestor, *mocks.MockStorage, *gomock.Controller) {
	t.Helper()
	ctrl := gomock.NewController(t)
	st := mocks.NewMockStorage(ctrl)
	ing := New(st, fetcher, scorer, config.Config{LazyTime: 60})
	return ing, st, ctrl
}

// mkRows — n строк статей с уникальными URL.
func mkRows(n int, sourceID int64) []models.Article {
	rows := make([]models.Article, 0, n)
	for i := 0; i < n; i++ {
		rows = append(rows, models.Article{
			URL:         fmt.Sprintf("https://ex.org/%d", i),
			Title:       fmt.Sprintf("title %d", i),
			PublishedAt: time.Date(2025, 5, 1, 10, 0, i, 0, time.UTC),
			Language:    "english",
			SourceID:    sourceID,
		})
	}
	return rows
}

// noopResults — результаты вставки без новых кластеров.
func noopResults(n int) []models.ArticleInsertResult {
	out := make([]models.ArticleInsertResult, n)
	for i := range out {
		out[i] = models.ArticleInsertResult{ClusterID: int64(i + 1), ArticleID: int64(i + 1), Matched: true}
	}
	return out
}

// TestInit_LoadsTopicCache — кэш меток строится из topic с normKey-ключами.
func TestInit_LoadsTopicCache(t *testing.T) {
	t.Parallel()

	ing, st, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
	defer ctrl.Finish()

	st.EXPECT().EnsureTopicTitleUniqueIndex(gomock.Any()).Return(nil)
	st.EXPECT().ListTopics(gomock.Any()).Return([]models.Topic{
		{ID: 1, Title: "Politics"},
		{ID: 2, Title: "Tech"},
	}, nil)

	require.NoError(t, ing.Init(context.Background()))
	require.Equal(t, []string{"Politics", "Tech"}, ing.topicLabels)
	require.Equal(t, int64(1), ing.topicKeyToID["politics"])
	require.Equal(t, int64(2), ing.topicKeyToID["tech"])
}

// TestInit_IndexError — ошибка создания индекса фатальна для старта.
func TestInit_IndexError(t *testing.T) {
	t.Parallel()

	ing, st, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
	defer ctrl.Finish()

	st.EXPECT().EnsureTopicTitleUniqueIndex(gomock.Any()).Return(errors.New("boom"))

	require.Error(t, ing.Init(context.Background()))
}

// TestTick_NoSources — пустая выборка: bump всё равно выполняется,
// до парсинга дело не доходит.
func TestTick_NoSources(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	ing, st, ctrl := newIngestorWithMocks(t, fetcher, &stubScorer{})
	defer ctrl.Finish()

	st.EXPECT().ListRssSourcesRange(gomock.Any(), int64(0), int64(100000), nil).Return(nil, nil)
	st.EXPECT().BumpSourcesLastUpdatedRange(gomock.Any(), int64(0), int64(100000), gomock.Any()).Return(nil)

	ing.tick(context.Background())
	require.Empty(t, fetcher.got)
}

// TestTick_BumpBeforeParse — отметка поднимается до разбора источников.
func TestTick_BumpBeforeParse(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	ing, st, ctrl := newIngestorWithMocks(t, fetcher, &stubScorer{})
	defer ctrl.Finish()

	src := models.Source{ID: 10, Domain: "https://ex.org/rss"}

	gomock.InOrder(
		st.EXPECT().ListRssSourcesRange(gomock.Any(), int64(0), int64(100000), nil).
			Return([]models.Source{src}, nil),
		st.EXPECT().BumpSourcesLastUpdatedRange(gomock.Any(), int64(0), int64(100000), gomock.Any()).
			Return(nil),
	)

	ing.tick(context.Background())
	require.Equal(t, []models.Source{src}, fetcher.got)
}

// TestParseSource_Batching — 120 строк режутся на пачки 50/50/20,
// каждая пачка — отдельный вызов InsertArticles.
func TestParseSource_Batching(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{rows: mkRows(120, 10)}
	ing, st, ctrl := newIngestorWithMocks(t, fetcher, &stubScorer{})
	defer ctrl.Finish()

	var sizes []int
	st.EXPECT().InsertArticles(gomock.Any(), gomock.Any()).Times(3).
		DoAndReturn(func(_ context.Context, rows []models.Article) ([]models.ArticleInsertResult, error) {
			sizes = append(sizes, len(rows))
			return noopResults(len(rows)), nil
		})

	err := ing.parseSource(context.Background(), models.Source{ID: 10, Domain: "https://ex.org/rss"})
	require.NoError(t, err)
	require.Equal(t, []int{50, 50, 20}, sizes)
}

// TestParseSource_EmptyFeed — ноль новых элементов: ни одной записи в БД.
func TestParseSource_EmptyFeed(t *testing.T) {
	t.Parallel()

	ing, _, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
	defer ctrl.Finish()

	err := ing.parseSource(context.Background(), models.Source{ID: 10})
	require.NoError(t, err)
}

// TestParseSource_FetchError — ошибка загрузки ленты возвращается наверх.
func TestParseSource_FetchError(t *testing.T) {
	t.Parallel()

	ing, _, ctrl := newIngestorWithMocks(t, &stubFetcher{err: errors.New("timeout")}, &stubScorer{})
	defer ctrl.Finish()

	err := ing.parseSource(context.Background(), models.Source{ID: 10})
	require.Error(t, err)
}

// TestParseSource_InsertError — упавшая пачка прерывает разбор источника.
func TestParseSource_InsertError(t *testing.T) {
	t.Parallel()

	ing, st, ctrl := newIngestorWithMocks(t, &stubFetcher{rows: mkRows(3, 10)}, &stubScorer{})
	defer ctrl.Finish()

	st.EXPECT().InsertArticles(gomock.Any(), gomock.Any()).Return(nil, errors.New("tx failed"))

	err := ing.parseSource(context.Background(), models.Source{ID: 10})
	require.Error(t, err)
}

// TestParseSourceByID_NotFound — несуществующий id -> ErrSourceNotFound.
func TestParseSourceByID_NotFound(t *testing.T) {
	t.Parallel()

	ing, st, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
	defer ctrl.Finish()

	st.EXPECT().SourceByID(gomock.Any(), int64(404)).Return(nil, storage.ErrNotFound)

	err := ing.ParseSourceByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrSourceNotFound)
}

// TestParseSourceByID_OK — источник находится и разбирается.
func TestParseSourceByID_OK(t *testing.T) {
	t.Parallel()

	fetcher := &stubFetcher{}
	ing, st, ctrl := newIngestorWithMocks(t, fetcher, &stubScorer{})
	defer ctrl.Finish()

	src := &models.Source{ID: 10, Domain: "https://ex.org/rss"}
	st.EXPECT().SourceByID(gomock.Any(), int64(10)).Return(src, nil)

	require.NoError(t, ing.ParseSourceByID(context.Background(), 10))
	require.Equal(t, []models.Source{*src}, fetcher.got)
}

// TestSetSourceStatus — валидация и маппинг ошибок.
func TestSetSourceStatus(t *testing.T) {
	t.Parallel()

	t.Run("empty_status", func(t *testing.T) {
		t.Parallel()

		ing, _, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
		defer ctrl.Finish()

		err := ing.SetSourceStatus(context.Background(), 10, "")
		require.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("not_found", func(t *testing.T) {
		t.Parallel()

		ing, st, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
		defer ctrl.Finish()

		st.EXPECT().UpdateSourceStatus(gomock.Any(), int64(404), models.SourceStatusActive).
			Return(storage.ErrNotFound)

		err := ing.SetSourceStatus(context.Background(), 404, models.SourceStatusActive)
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ok", func(t *testing.T) {
		t.Parallel()

		ing, st, ctrl := newIngestorWithMocks(t, &stubFetcher{}, &stubScorer{})
		defer ctrl.Finish()

		st.EXPECT().UpdateSourceStatus(gomock.Any(), int64(10), models.SourceStatusError).Return(nil)

		require.NoError(t, ing.SetSourceStatus(context.Background(), 10, models.SourceStatusError))
	})
}
