package service

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strings"

	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

// Политика сохранения тем кластера.
const (
	// topicsPerCluster — не более стольких тем на кластер.
	topicsPerCluster = 3
	// topicMinScore — порог, ниже которого темы после первой отсекаются.
	topicMinScore = 0.15
	// clusterSampleLimit — сколько статей кластера идёт в сводный текст.
	clusterSampleLimit = 6
	// clusterSummaryLimit — предел длины тизера в сводном тексте (в рунах).
	clusterSummaryLimit = 600
)

// normKey нормализует метку темы для сопоставления вывода модели
// с кэшем тем: нижний регистр, без пробелов, подчёркиваний и дефисов.
func normKey(s string) string {
	t := strings.ToLower(strings.TrimSpace(s))
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, "_", "")
	t = strings.ReplaceAll(t, "-", "")
	return t
}

// classifyBatch классифицирует новые кластеры одной пачки вставки.
// Для каждой строки с createdNew скорится текст «title. summary» по
// кэшу меток и сохраняется топ-3. Возвращает id новых кластеров,
// оставшихся без тем, — их добирает кластерный классификатор.
func (s *Ingestor) classifyBatch(ctx context.Context, results []models.ArticleInsertResult, rows []models.Article) []int64 {
	const op = "service.classifyBatch"

	var bare []int64

	n := len(results)
	if len(rows) < n {
		n = len(rows)
	}

	for i := 0; i < n; i++ {
		r := results[i]
		if !r.CreatedNew {
			continue
		}

		if len(s.topicLabels) == 0 {
			bare = append(bare, r.ClusterID)
			continue
		}

		row := rows[i]
		title := strings.TrimSpace(row.Title)
		summary := strings.TrimSpace(row.Summary)
		if title == "" && summary == "" {
			continue
		}
		text := strings.TrimSpace(title + ". " + summary)
		if text == "" {
			text = title
		}

		scored, err := s.scorer.ScoreLabels(ctx, text, s.topicLabels, row.Language)
		if err != nil || len(scored) == 0 {
			bare = append(bare, r.ClusterID)
			continue
		}

		// Топ-3 в порядке убывания оценки; метки вне кэша пропускаются.
		var toSave []models.TopicScore
		for _, sl := range scored {
			if len(toSave) >= topicsPerCluster {
				break
			}
			tid, found := s.topicKeyToID[normKey(sl.Label)]
			if !found || tid <= 0 {
				continue
			}
			toSave = append(toSave, models.TopicScore{
				TopicID: tid,
				Score:   sl.Score,
				Primary: len(toSave) == 0,
			})
		}

		if len(toSave) == 0 {
			bare = append(bare, r.ClusterID)
			continue
		}

		if err := s.upsertClusterTopics(ctx, r.ClusterID, toSave, topicsPerCluster, topicMinScore, false); err != nil {
			log.From(ctx).Warn("cluster_topics_upsert_failed",
				slog.String("op", op),
				slog.Int64("cluster_id", r.ClusterID),
				slog.String("error", err.Error()),
			)
		}
	}

	return bare
}

// upsertClusterTopics сохраняет темы кластера по единой политике:
//   - записи сортируются по убыванию оценки;
//   - сохраняется не более max; после первой запись с оценкой ниже
//     minScore обрывает набор;
//   - если порог не прошёл никто, остаётся одна верхняя запись
//     (отрицательная оценка клампится нулём);
//   - оценки нормализуются к сумме 1, первая запись — primary;
//   - при replace связки с темами вне нового набора удаляются.
//
// is_primary прежних тем кластера сбрасывается перед записью:
// в кластере не бывает двух главных тем.
func (s *Ingestor) upsertClusterTopics(ctx context.Context, clusterID int64, entries []models.TopicScore, max int, minScore float64, replace bool) error {
	const op = "service.upsertClusterTopics"

	if len(entries) == 0 {
		return nil
	}
	if max <= 0 {
		max = topicsPerCluster
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })

	retained := entries[:1]
	for _, e := range entries[1:] {
		if len(retained) >= max || e.Score < minScore {
			break
		}
		retained = append(retained, e)
	}

	sum := 0.0
	for i := range retained {
		if retained[i].Score < 0 {
			retained[i].Score = 0
		}
		sum += retained[i].Score
	}
	for i := range retained {
		if sum > 0 {
			retained[i].Score /= sum
		} else {
			retained[i].Score = 1.0 / float64(len(retained))
		}
		retained[i].Primary = i == 0
	}

	if err := s.storage.ClearClusterPrimary(ctx, clusterID); err != nil {
		return fmt.Errorf("%s: clear primary: %w", op, err)
	}

	if replace {
		keep := make([]int64, 0, len(retained))
		for _, e := range retained {
			keep = append(keep, e.TopicID)
		}
		if err := s.storage.DeleteClusterTopicsExcept(ctx, clusterID, keep); err != nil {
			return fmt.Errorf("%s: delete stale: %w", op, err)
		}
	}

	for _, e := range retained {
		if err := s.storage.UpsertClusterTopic(ctx, clusterID, e.TopicID, e.Score, e.Primary); err != nil {
			return fmt.Errorf("%s: upsert topic %d: %w", op, e.TopicID, err)
		}
	}

	return nil
}

// AssignTopicsForClusters классифицирует кластеры по их сводному тексту
// против встроенной таксономии. Путь для кластеров, которым постатейная
// классификация тем не дала: сначала кластерный промпт, при пустом
// ответе — эвристика по ключевым словам. Темы создаются на лету
// через EnsureTopic.
func (s *Ingestor) AssignTopicsForClusters(ctx context.Context, clusterIDs []int64) {
	const op = "service.AssignTopicsForClusters"

	lg := log.From(ctx)

	for _, cid := range clusterIDs {
		if ctx.Err() != nil {
			return
		}

		text, err := s.buildClusterText(ctx, cid, clusterSampleLimit)
		if err != nil {
			lg.Warn("cluster_text_failed",
				slog.String("op", op),
				slog.Int64("cluster_id", cid),
				slog.String("error", err.Error()),
			)
			continue
		}
		if text == "" {
			continue
		}

		scores, err := s.scorer.ClassifyCluster(ctx, text, defaultTaxonomy, topicsPerCluster, topicMinScore)
		if err != nil {
			lg.Warn("cluster_classify_failed",
				slog.String("op", op),
				slog.Int64("cluster_id", cid),
				slog.String("error", err.Error()),
			)
			scores = nil
		}

		if len(scores) == 0 {
			scores = s.heuristicClusterTopics(ctx, cid)
		}
		if len(scores) == 0 {
			continue
		}

		if err := s.storage.ClearClusterPrimary(ctx, cid); err != nil {
			lg.Warn("clear_primary_failed",
				slog.String("op", op),
				slog.Int64("cluster_id", cid),
				slog.String("error", err.Error()),
			)
			continue
		}

		rank := 0
		for _, sl := range scores {
			canon := canonicalizeTopic(sl.Label)
			if canon == "" {
				continue
			}

			tid, err := s.storage.EnsureTopic(ctx, canon)
			if err != nil || tid <= 0 {
				continue
			}

			if err := s.storage.UpsertClusterTopic(ctx, cid, tid, sl.Score, rank == 0); err != nil {
				lg.Warn("cluster_topic_upsert_failed",
					slog.String("op", op),
					slog.Int64("cluster_id", cid),
					slog.Int64("topic_id", tid),
					slog.String("error", err.Error()),
				)
				continue
			}
			rank++
		}
	}
}

// buildClusterText собирает сводный текст кластера из заголовков
// и усечённых тизеров его свежих статей.
func (s *Ingestor) buildClusterText(ctx context.Context, clusterID int64, limit int) (string, error) {
	arts, err := s.storage.GetClusterArticles(ctx, clusterID, limit)
	if err != nil {
		return "", err
	}
	if len(arts) == 0 {
		return "", nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cluster #%d sample:\n", clusterID)
	for i, a := range arts {
		fmt.Fprintf(&b, "%d) %s\n", i+1, a.Title)
		if a.Summary != "" {
			b.WriteString("   ")
			b.WriteString(truncateRunes(a.Summary, clusterSummaryLimit))
			b.WriteString("\n")
		}
	}
	return b.String(), nil
}

// heuristicClusterTopics — бэкап-оценщик: склеивает тексты статей
// кластера и считает попадания ключевых слов.
func (s *Ingestor) heuristicClusterTopics(ctx context.Context, clusterID int64) []models.ScoredLabel {
	arts, err := s.storage.GetClusterArticles(ctx, clusterID, clusterSampleLimit)
	if err != nil || len(arts) == 0 {
		return nil
	}

	var b strings.Builder
	for _, a := range arts {
		if a.Title != "" {
			b.WriteString(a.Title)
			b.WriteString(" ")
		}
		if a.Summary != "" {
			b.WriteString(a.Summary)
			b.WriteString(" ")
		}
	}

	return heuristicTopicsFromText(b.String())
}

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// toLowerSpaces приводит текст к нижнему регистру и заменяет всё,
// кроме букв и цифр, одиночными пробелами.
func toLowerSpaces(s string) string {
	return strings.TrimSpace(nonWordRe.ReplaceAllString(strings.ToLower(s), " "))
}

// heuristicTopicsFromText считает вхождения ключевых слов каждой темы
// и возвращает до трёх тем с оценками hits/maxHits по убыванию.
func heuristicTopicsFromText(text string) []models.ScoredLabel {
	t := toLowerSpaces(text)

	hits := make(map[string]int)
	maxHit := 0
	for topic, kws := range topicKeywords {
		cnt := 0
		for _, kw := range kws {
			if strings.Contains(t, kw) {
				cnt++
			}
		}
		if cnt > 0 {
			hits[topic] = cnt
			if cnt > maxHit {
				maxHit = cnt
			}
		}
	}
	if maxHit == 0 {
		return nil
	}

	out := make([]models.ScoredLabel, 0, len(hits))
	for topic, cnt := range hits {
		out = append(out, models.ScoredLabel{Label: topic, Score: float64(cnt) / float64(maxHit)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Label < out[j].Label
	})
	if len(out) > topicsPerCluster {
		out = out[:topicsPerCluster]
	}
	return out
}

// truncateRunes обрезает строку до n рун.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// defaultTaxonomy — встроенный список тем кластерного классификатора.
var defaultTaxonomy = []string{
	"Politics", "Business", "Tech", "Science", "Health", "Sports",
	"Entertainment", "Culture", "Education", "Travel", "Cars",
	"Finance", "Crime", "War",
}

// canonicalizeTopic приводит метку (RU/DE/ES/EN синонимы) к канонической
// теме таксономии; пустая строка — метка не распознана.
func canonicalizeTopic(in string) string {
	return topicSynonyms[strings.ToLower(strings.TrimSpace(in))]
}

var topicSynonyms = map[string]string{
	// EN -> EN
	"politics": "Politics", "business": "Business", "tech": "Tech",
	"technology": "Tech", "science": "Science", "health": "Health",
	"sports": "Sports", "sport": "Sports", "entertainment": "Entertainment",
	"culture": "Culture", "education": "Education", "travel": "Travel",
	"cars": "Cars", "auto": "Cars", "finance": "Finance",
	"crime": "Crime", "war": "War",

	// RU -> EN
	"политика": "Politics", "бизнес": "Business", "экономика": "Business",
	"технологии": "Tech", "техника": "Tech", "наука": "Science",
	"здоровье": "Health", "спорт": "Sports", "развлечения": "Entertainment",
	"культура": "Culture", "образование": "Education", "путешествия": "Travel",
	"туризм": "Travel", "авто": "Cars", "машины": "Cars",
	"финансы": "Finance", "криминал": "Crime", "преступления": "Crime",
	"война": "War", "конфликт": "War", "фронт": "War",

	// DE -> EN
	"politik": "Politics", "wirtschaft": "Business", "technik": "Tech",
	"wissenschaft": "Science", "gesundheit": "Health",
	"unterhaltung": "Entertainment", "kultur": "Culture", "bildung": "Education",
	"reisen": "Travel", "autos": "Cars", "finanzen": "Finance",
	"kriminalität": "Crime", "krieg": "War",

	// ES -> EN
	"política": "Politics", "negocios": "Business", "empresa": "Business",
	"tecnología": "Tech", "ciencia": "Science", "salud": "Health",
	"deportes": "Sports", "entretenimiento": "Entertainment", "cultura": "Culture",
	"educación": "Education", "viajes": "Travel", "coches": "Cars",
	"finanzas": "Finance", "crimen": "Crime", "delito": "Crime", "guerra": "War",
}

// topicKeywords — ключевые слова тем (RU/EN/DE/ES) для эвристики.
var topicKeywords = map[string][]string{
	"Politics": {"политик", "дума", "парламент", "выбор", "санкц", "президент",
		"ministry", "parliament", "election", "sanction", "president",
		"bundestag", "regierung", "wahl"},
	"Business": {"бизнес", "компания", "рынок", "банк", "сделка", "инвести",
		"company", "market", "bank", "deal", "merger", "ipo",
		"unternehmen", "markt", "firma", "fusion"},
	"Tech": {"технол", "софт", "стартап", "искусств", "алгоритм", "крипто",
		"tech", "software", "startup", "algorithm", "crypto",
		"technik", "ki"},
	"Science": {"ученые", "исслед", "наука", "эксперимент", "космос",
		"scientist", "research", "study", "experiment", "space",
		"wissenschaft", "forschung"},
	"Health": {"здоров", "врач", "медици", "вакцин", "болезн",
		"health", "doctor", "medical", "vaccine", "disease",
		"gesundheit", "arzt", "medizin"},
	"Sports": {"спорт", "матч", "турнир", "лига", "гол", "футбол", "хоккей",
		"sport", "match", "tournament", "league", "goal", "football", "soccer",
		"spiel", "liga", "tor"},
	"Entertainment": {"кино", "фильм", "сериал", "шоу", "певец", "актёр", "звезда",
		"movie", "film", "series", "show", "singer", "actor", "celebrity",
		"unterhaltung", "serie"},
	"Culture": {"культура", "театр", "музей", "книг", "литерат", "выставк",
		"culture", "theatre", "museum", "book", "literature", "exhibit",
		"kultur", "theater"},
	"Education": {"образован", "университет", "школ", "студент", "экзамен",
		"education", "university", "school", "student", "exam",
		"bildung", "schule", "universität"},
	"Travel": {"туризм", "путешеств", "виза", "аэропорт", "рейс", "отель",
		"travel", "tourism", "visa", "airport", "flight", "hotel",
		"reise", "flug"},
	"Cars": {"авто", "машин", "электромоб", "tesla", "двигател", "дтп",
		"car", "vehicle", "engine", "accident",
		"fahrzeug", "ev"},
	"Finance": {"финанс", "акция", "облигац", "ставка", "курс", "рубл", "доллар",
		"finance", "stock", "bond", "rate", "usd", "eur",
		"finanz", "aktie", "anleihe", "zins"},
	"Crime": {"криминал", "убий", "краж", "арест", "полици", "суд",
		"crime", "murder", "theft", "arrest", "police", "court",
		"kriminalität", "mord", "diebstahl", "verhaftung"},
	"War": {"война", "фронт", "армия", "удар", "ракет", "боестолк", "конфликт",
		"war", "front", "army", "strike", "missile", "conflict",
		"krieg", "armee", "konflikt"},
}
