// models содержит доменные сущности parser-сервиса.
// Эти типы используются слоями бизнес-логики, хранилища и транспорта.
package models

import "time"

// Статусы источника в таблице source.
const (
	SourceStatusActive     = "active"
	SourceStatusValidating = "validating"
	SourceStatusVerified   = "verified"
	SourceStatusError      = "error"
	SourceStatusInactive   = "inactive"
)

// SourceKindRSS — единственный поддерживаемый вид источника.
const SourceKindRSS = "rss"

// Source — RSS-источник из таблицы source.
//
// Создаётся извне; сервис меняет только status и last_updated_at.
type Source struct {
	// ID — идентификатор источника.
	ID int64
	// Domain — URL ленты.
	Domain string
	// LastUpdatedAt — отметка последнего опроса.
	// Нулевое значение — источник ещё ни разу не опрашивался.
	LastUpdatedAt time.Time
}

// Article — каноническая строка статьи, собранная из элемента ленты.
//
// Особенности:
//   - URL уникален на уровне БД (дедупликация в upsert_article_with_cluster);
//   - PublishedAt — всегда в UTC, год в диапазоне [1990, 2100].
type Article struct {
	// URL - ссылка на статью (item.link).
	URL string
	// ImageURL - ссылка на обложку (enclosure url).
	ImageURL string
	// ImageType - MIME-тип обложки (enclosure type).
	ImageType string
	// Title - заголовок статьи.
	Title string
	// Summary - тизер статьи (item.description).
	Summary string
	// GUID - идентификатор элемента в ленте.
	GUID string
	// PublishedAt - время публикации (UTC).
	PublishedAt time.Time
	// Language - язык ленты (russian/german/spanish/english).
	Language string
	// Fingerprint - контентный отпечаток (пока не заполняется).
	Fingerprint string
	// SourceID - идентификатор источника.
	SourceID int64
}

// ArticleInsertResult — результат upsert_article_with_cluster для одной строки.
type ArticleInsertResult struct {
	// ClusterID — кластер, в который попала статья.
	ClusterID int64
	// ArticleID — идентификатор статьи (новой или существующей по url).
	ArticleID int64
	// Score — серверная оценка похожести на выбранный кластер.
	Score float64
	// Matched — найден существующий кластер в окне recency.
	Matched bool
	// CreatedNew — создан новый кластер; только такие кластеры классифицируются.
	CreatedNew bool
}

// Topic — метка классификации с глобально уникальным title.
type Topic struct {
	ID    int64
	Title string
}

// TopicScore — оценка темы для кластера перед записью в clustertopic.
type TopicScore struct {
	// TopicID — идентификатор темы.
	TopicID int64
	// Score — вес темы, 0..1.
	Score float64
	// Primary — главная тема кластера (не более одной на кластер).
	Primary bool
}

// ScoredLabel — пара «метка-оценка», которую возвращает LLM-скорер.
type ScoredLabel struct {
	Label string
	Score float64
}

// ClusterArticle — выборка title/summary статьи кластера для классификации.
type ClusterArticle struct {
	Title   string
	Summary string
}
