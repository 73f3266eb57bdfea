package rss

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/podolsknews/parser-service/internal/models"
)

// mkRSS — собирает минимальный RSS 2.0 документ.
func mkRSS(title string, items ...string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>` + title + `</title>
    ` + strings.Join(items, "\n") + `
  </channel>
</rss>`
}

// mkItem — утилита шаблона <item>.
func mkItem(title, link, pubDate, desc string) string {
	var b strings.Builder
	b.WriteString("<item>\n")
	b.WriteString(fmt.Sprintf("<title>%s</title>\n", title))
	b.WriteString(fmt.Sprintf("<link>%s</link>\n", link))
	if pubDate != "" {
		b.WriteString(fmt.Sprintf("<pubDate>%s</pubDate>\n", pubDate))
	}
	if desc != "" {
		b.WriteString(fmt.Sprintf("<description>%s</description>\n", desc))
	}
	b.WriteString("</item>")
	return b.String()
}

// serveFeed — httptest-сервер, отдающий заданный XML.
func serveFeed(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

// TestDetectLanguage — маркёры языков по первой букве заголовка.
func TestDetectLanguage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		want  string
	}{
		{"cyrillic", "Ведомости — новости", "russian"},
		{"cyrillic_yo", "ёлки и огни", "russian"},
		{"german_umlaut", "Überraschung des Tages", "german"},
		{"german_eszett", "ße-test", "german"},
		{"spanish_enye", "Ñoticias de hoy", "spanish"},
		{"spanish_accent", "Última hora", "spanish"},
		{"english", "The Guardian World", "english"},
		{"digits_then_latin", "24 hours news", "english"},
		{"empty", "", "russian"},
		{"no_letters", "!!! 123 ???", "russian"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, DetectLanguage(tc.title))
		})
	}
}

// TestResolvePublishedAt_TextFormats — все три текстовых формата дают один момент.
func TestResolvePublishedAt_TextFormats(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2024, 1, 1, 12, 34, 56, 0, time.UTC)

	inputs := []string{
		"Mon, 01 Jan 2024 12:34:56 +0000",
		"2024-01-01T12:34:56Z",
		"2024-01-01T12:34:56.789Z",
	}
	for _, in := range inputs {
		got := ResolvePublishedAt(in, now)
		require.Equal(t, want, got.Truncate(time.Second), "input=%q", in)
		require.Equal(t, time.UTC, got.Location())
	}
}

// TestResolvePublishedAt_NumericMagnitude — секунды/мс/мкс дают один момент.
func TestResolvePublishedAt_NumericMagnitude(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	want := time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC)

	for _, in := range []string{
		"1700000000",          // секунды
		"1700000000000",       // миллисекунды
		"1700000000000000",    // микросекунды
		"1700000000000000000", // наносекунды
	} {
		require.Equal(t, want, ResolvePublishedAt(in, now), "input=%q", in)
	}
}

// TestResolvePublishedAt_Fallbacks — мусор и годы вне окна дают now.
func TestResolvePublishedAt_Fallbacks(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not-a-date"},
		{"year_too_old", "Mon, 01 Jan 1900 12:00:00 +0000"},
		{"year_too_far", "2200-01-01T00:00:00Z"},
		{"zero_ts", "0"},
		{"negative_ts", "-1700000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, now, ResolvePublishedAt(tc.raw, now))
		})
	}
}

// TestResolvePublishedAt_OffsetConvertedToUTC — смещение приводится к UTC.
func TestResolvePublishedAt_OffsetConvertedToUTC(t *testing.T) {
	t.Parallel()

	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	got := ResolvePublishedAt("Mon, 01 Jan 2024 15:34:56 +0300", now)
	require.Equal(t, time.Date(2024, 1, 1, 12, 34, 56, 0, time.UTC), got)
}

// TestFetchSource_CanonicalRows — маппинг полей ленты в канонические строки.
func TestFetchSource_CanonicalRows(t *testing.T) {
	t.Parallel()

	body := mkRSS("Городские новости",
		mkItem("Первая", "https://ex.org/1", "Mon, 01 Jan 2024 12:00:00 +0000", "тизер один"),
		mkItem("Вторая", "https://ex.org/2", "Mon, 01 Jan 2024 13:00:00 +0000", ""),
	)
	srv := serveFeed(t, body)

	p := New()
	rows, err := p.FetchSource(context.Background(), models.Source{ID: 7, Domain: srv.URL})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	require.Equal(t, "https://ex.org/1", rows[0].URL)
	require.Equal(t, "Первая", rows[0].Title)
	require.Equal(t, "тизер один", rows[0].Summary)
	require.Equal(t, "russian", rows[0].Language)
	require.EqualValues(t, 7, rows[0].SourceID)
	require.Equal(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), rows[0].PublishedAt)
	require.Equal(t, time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC), rows[1].PublishedAt)
}

// TestFetchSource_SkipsStaleItems — элементы не новее last_updated_at пропускаются.
func TestFetchSource_SkipsStaleItems(t *testing.T) {
	t.Parallel()

	body := mkRSS("news",
		mkItem("old", "https://ex.org/old", "Thu, 01 May 2025 10:00:00 +0000", ""),
		mkItem("same", "https://ex.org/same", "Thu, 01 May 2025 11:00:00 +0000", ""),
		mkItem("fresh", "https://ex.org/fresh", "Thu, 01 May 2025 13:00:00 +0000", ""),
	)
	srv := serveFeed(t, body)

	src := models.Source{
		ID:            10,
		Domain:        srv.URL,
		LastUpdatedAt: time.Date(2025, 5, 1, 11, 0, 0, 0, time.UTC),
	}

	p := New()
	rows, err := p.FetchSource(context.Background(), src)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "https://ex.org/fresh", rows[0].URL)
}

// TestFetchSource_ZeroLastUpdated — без отметки источника берутся все элементы.
func TestFetchSource_ZeroLastUpdated(t *testing.T) {
	t.Parallel()

	body := mkRSS("news",
		mkItem("a", "https://ex.org/a", "Thu, 01 May 2025 10:00:00 +0000", ""),
		mkItem("b", "https://ex.org/b", "Thu, 01 May 2025 11:00:00 +0000", ""),
		mkItem("c", "https://ex.org/c", "Thu, 01 May 2025 12:00:00 +0000", ""),
	)
	srv := serveFeed(t, body)

	p := New()
	rows, err := p.FetchSource(context.Background(), models.Source{ID: 10, Domain: srv.URL})
	require.NoError(t, err)
	require.Len(t, rows, 3)
}

// TestFetchSource_MalformedPubDate — пустой pubDate разрешается в «сейчас» и не отбрасывается.
func TestFetchSource_MalformedPubDate(t *testing.T) {
	t.Parallel()

	body := mkRSS("news", mkItem("no-date", "https://ex.org/nd", "", ""))
	srv := serveFeed(t, body)

	before := time.Now().UTC()
	p := New()
	rows, err := p.FetchSource(context.Background(), models.Source{ID: 1, Domain: srv.URL})
	after := time.Now().UTC()

	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.False(t, rows[0].PublishedAt.Before(before.Truncate(time.Second)))
	require.False(t, rows[0].PublishedAt.After(after.Add(time.Second)))
}

// TestFetchSource_HTTPError — ошибка HTTP возвращается наверх.
func TestFetchSource_HTTPError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	p := New()
	_, err := p.FetchSource(context.Background(), models.Source{ID: 1, Domain: srv.URL})
	require.Error(t, err)
}

// TestFetchSource_UserAgent — сервис представляется как PodolskNews/1.0.
func TestFetchSource_UserAgent(t *testing.T) {
	t.Parallel()

	gotUA := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA <- r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(mkRSS("news")))
	}))
	t.Cleanup(srv.Close)

	p := New()
	_, err := p.FetchSource(context.Background(), models.Source{ID: 1, Domain: srv.URL})
	require.NoError(t, err)
	require.Equal(t, "PodolskNews/1.0", <-gotUA)
}
