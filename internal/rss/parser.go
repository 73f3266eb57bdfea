// rss — загрузка и нормализация RSS/Atom-лент.
// Реализует service.FeedFetcher поверх gofeed.
package rss

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/mmcdole/gofeed"

	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

const (
	// fetchTimeout — таймаут HTTP-загрузки одной ленты.
	fetchTimeout = 7 * time.Second
	// userAgent — представление сервиса издателям.
	userAgent = "PodolskNews/1.0"
)

// Допустимое окно годов публикации; всё вне окна считается мусором
// и заменяется текущим UTC-временем.
const (
	minYear = 1990
	maxYear = 2100
)

// Parser загружает и нормализует ленты. Один экземпляр разделяется
// всеми источниками одного воркера.
type Parser struct {
	fp *gofeed.Parser
}

// New создаёт парсер с фиксированным таймаутом и user-agent.
func New() *Parser {
	fp := gofeed.NewParser()
	fp.UserAgent = userAgent
	fp.Client = &http.Client{Timeout: fetchTimeout}

	return &Parser{fp: fp}
}

// FetchSource загружает ленту источника и возвращает канонические строки
// в порядке следования в ленте.
//
// Правила:
//   - язык определяется по заголовку ленты (см. DetectLanguage);
//   - published_at разрешается лесенкой ResolvePublishedAt;
//   - элементы с published_at <= source.last_updated_at пропускаются,
//     когда отметка источника валидна (не нулевая).
func (p *Parser) FetchSource(ctx context.Context, src models.Source) ([]models.Article, error) {
	const op = "rss.FetchSource"

	feed, err := p.fp.ParseURLWithContext(src.Domain, ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: url=%s: %w", op, src.Domain, err)
	}

	lang := DetectLanguage(feed.Title)
	now := time.Now().UTC()

	var out []models.Article
	for _, item := range feed.Items {
		if item == nil {
			continue
		}

		publishedAt := ResolvePublishedAt(item.Published, now)
		if !src.LastUpdatedAt.IsZero() && !publishedAt.After(src.LastUpdatedAt) {
			continue
		}

		imageURL, imageType := pickEnclosure(item)

		out = append(out, models.Article{
			URL:         strings.TrimSpace(item.Link),
			ImageURL:    imageURL,
			ImageType:   imageType,
			Title:       strings.TrimSpace(item.Title),
			Summary:     strings.TrimSpace(item.Description),
			GUID:        item.GUID,
			PublishedAt: publishedAt,
			Language:    lang,
			SourceID:    src.ID,
		})
	}

	log.From(ctx).Debug("feed_fetched",
		slog.String("op", op),
		slog.Int64("source_id", src.ID),
		slog.Int("items", len(feed.Items)),
		slog.Int("fresh", len(out)),
	)

	return out, nil
}

// DetectLanguage определяет язык по первой букве заголовка ленты.
//
// Маркёры:
//   - кириллица а..я / ё -> russian;
//   - ä ö ü ß            -> german;
//   - ñ á é í ó ú        -> spanish;
//   - латиница a..z      -> english;
//   - иначе              -> russian.
func DetectLanguage(title string) string {
	for _, r := range title {
		if !unicode.IsLetter(r) {
			continue
		}

		switch c := unicode.ToLower(r); {
		case (c >= 0x0430 && c <= 0x044F) || c == 0x0451:
			return "russian"
		case c == 0x00E4 || c == 0x00F6 || c == 0x00FC || c == 0x00DF:
			return "german"
		case c == 0x00F1 || c == 0x00E1 || c == 0x00E9 ||
			c == 0x00ED || c == 0x00F3 || c == 0x00FA:
			return "spanish"
		case c >= 'a' && c <= 'z':
			return "english"
		}
		// Буква вне маркёров — идём к следующей.
	}

	return "russian"
}

// Текстовые форматы pubDate в порядке приоритета: RFC-2822, ISO-8601,
// ISO-8601 с миллисекундами (RFC3339 принимает дробные секунды).
var pubDateLayouts = []string{
	time.RFC1123Z,                   // Mon, 02 Jan 2006 15:04:05 -0700
	time.RFC1123,                    // Mon, 02 Jan 2006 15:04:05 MST
	"Mon, 02 Jan 06 15:04:05 -0700", // RFC-2822 с двузначным годом
	"Mon, 02 Jan 06 15:04:05 MST",
	time.RFC822Z, // 02 Jan 06 15:04 -0700
	time.RFC822,  // 02 Jan 06 15:04 MST
	time.RFC3339, // 2006-01-02T15:04:05Z07:00
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ResolvePublishedAt разрешает дату публикации элемента.
//
// Лесенка:
//  1. текстовая дата по pubDateLayouts, год в [1990, 2100] -> в UTC;
//  2. числовой timestamp, единицы по величине
//     (>=1e18 нс, >=1e14 мкс, >=1e12 мс, иначе с), год в окне -> UTC;
//  3. иначе — now.
func ResolvePublishedAt(raw string, now time.Time) time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now
	}

	for _, layout := range pubDateLayouts {
		dt, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		if okYear(dt) {
			return dt.UTC()
		}
	}

	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil && ts > 0 {
		dt := timestampToUTC(ts)
		if okYear(dt) {
			return dt
		}
	}

	return now
}

// timestampToUTC интерпретирует единицы числового timestamp по его величине.
func timestampToUTC(v int64) time.Time {
	switch {
	case v >= 1_000_000_000_000_000_000: // наносекунды
		return time.UnixMilli(v / 1_000_000).UTC()
	case v >= 100_000_000_000_000: // микросекунды
		return time.UnixMilli(v / 1_000).UTC()
	case v >= 1_000_000_000_000: // миллисекунды
		return time.UnixMilli(v).UTC()
	default: // секунды
		return time.Unix(v, 0).UTC()
	}
}

func okYear(dt time.Time) bool {
	y := dt.UTC().Year()
	return y >= minYear && y <= maxYear
}

// pickEnclosure выбирает первое вложение с непустым URL.
func pickEnclosure(item *gofeed.Item) (url, mediaType string) {
	for _, enc := range item.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		return enc.URL, enc.Type
	}
	return "", ""
}
