package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

// maxPromptText — предел длины текста новости в промпте (в рунах).
const maxPromptText = 2000

// ScoreLabels оценивает релевантность каждой метки тексту новости.
//
// Контракт: возвращается ровно по одной записи на каждую входную метку,
// оценки неотрицательны и в сумме дают 1, порядок — по убыванию оценки.
// Ошибка возможна только при пустом списке меток; сбои генерации и
// непарсибельный вывод гасятся лесенкой восстановления:
//  1. строгий JSON-объект {label: score} — клампим в [0,1], чужие ключи
//     обнуляем, нормализуем;
//  2. одиночная метка текстом — точное совпадение без регистра, затем
//     подстрока («Tech.» считается меткой Tech с оценкой 1.0);
//  3. равномерное распределение по всем меткам.
func (c *Client) ScoreLabels(ctx context.Context, text string, labels []string, lang string) ([]models.ScoredLabel, error) {
	const op = "llm.ScoreLabels"

	if len(labels) == 0 {
		return nil, fmt.Errorf("%s: empty labels", op)
	}

	list, err := json.Marshal(labels)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal labels: %w", op, err)
	}

	prompt := "Ты — классификатор тем. Дано: список тем (JSON-массив строк) и текст новости.\n" +
		"Верни ТОЛЬКО один JSON-объект без пояснений и префиксов, строго вида:\n" +
		"{\"<label>\": <score>, ...}\n" +
		"Требования: ключи ДОЛЖНЫ в точности совпадать со списком ниже; значения — числа 0..1; " +
		"сумма ≈ 1; не добавляй новых ключей и не пропускай существующие.\n" +
		"labels = " + string(list) + "\n" +
		"text:\n" + truncateRunes(text, maxPromptText)

	raw, err := c.generate(ctx, prompt, c.maxTokens, true)
	if err != nil {
		// Недоступный рантайм не должен останавливать конвейер:
		// пустой вывод уйдёт в равномерный фолбэк.
		log.From(ctx).Warn("llm_generate_failed", slog.String("op", op), slog.String("error", err.Error()))
		raw = ""
	}
	log.From(ctx).Debug("llm_raw", slog.String("op", op), slog.String("raw", truncateRunes(raw, 300)))

	scores := make(map[string]float64, len(labels))
	for _, l := range labels {
		scores[l] = 0
	}

	ok := applyJSONScores(raw, labels, scores)
	if !ok {
		ok = applySingleLabel(raw, labels, scores)
	}
	if !ok {
		u := 1.0 / float64(len(labels))
		for _, l := range labels {
			scores[l] = u
		}
	}

	out := make([]models.ScoredLabel, 0, len(labels))
	for _, l := range labels {
		out = append(out, models.ScoredLabel{Label: l, Score: scores[l]})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })

	return out, nil
}

// applyJSONScores — первая ступень лесенки: строгий JSON-объект.
func applyJSONScores(raw string, labels []string, scores map[string]float64) bool {
	var obj map[string]float64
	if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &obj); err != nil {
		return false
	}

	sum := 0.0
	for _, l := range labels {
		v, found := obj[l]
		if !found || math.IsNaN(v) {
			continue
		}
		v = clamp01(v)
		scores[l] = v
		sum += v
	}
	if sum <= 0 {
		return false
	}

	for _, l := range labels {
		scores[l] /= sum
	}
	return true
}

// applySingleLabel — вторая ступень: модель ответила одной меткой текстом.
func applySingleLabel(raw string, labels []string, scores map[string]float64) bool {
	trimmed := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	if trimmed == "" {
		return false
	}

	picked := ""
	for _, l := range labels {
		if strings.EqualFold(l, trimmed) {
			picked = l
			break
		}
	}
	if picked == "" {
		lower := strings.ToLower(trimmed)
		for _, l := range labels {
			if strings.Contains(lower, strings.ToLower(l)) {
				picked = l
				break
			}
		}
	}
	if picked == "" {
		return false
	}

	for _, l := range labels {
		scores[l] = 0
	}
	scores[picked] = 1.0
	return true
}

// clusterReply — ожидаемая форма ответа кластерного промпта.
type clusterReply struct {
	Topics []struct {
		Title string  `json:"title"`
		Score float64 `json:"score"`
	} `json:"topics"`
}

// ClassifyCluster классифицирует сводный текст кластера по списку
// допустимых тем. Промпт ожидает объект
// {"topics":[{"title":"<label>","score":<0..1>}, ...]} с 1..3 темами;
// перед разбором ответ обрезается до наибольшей подстроки {...}.
// Возвращает до topK тем с оценкой >= minScore по убыванию оценки;
// пустой срез означает, что модель не дала пригодного ответа.
func (c *Client) ClassifyCluster(ctx context.Context, text string, allowed []string, topK int, minScore float64) ([]models.ScoredLabel, error) {
	const op = "llm.ClassifyCluster"

	if len(allowed) == 0 {
		return nil, fmt.Errorf("%s: empty allowed list", op)
	}
	if topK <= 0 {
		topK = 3
	}

	list, err := json.Marshal(allowed)
	if err != nil {
		return nil, fmt.Errorf("%s: marshal allowed: %w", op, err)
	}

	prompt := "You are a news topic classifier. Choose 1 to 3 topics for the text " +
		"strictly from the allowed list.\n" +
		"Reply ONLY with one JSON object of the exact form:\n" +
		"{\"topics\":[{\"title\":\"<label>\",\"score\":<0..1>}]}\n" +
		"allowed = " + string(list) + "\n" +
		"text:\n" + truncateRunes(text, maxPromptText)

	raw, err := c.generate(ctx, prompt, 256, false)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.From(ctx).Debug("llm_raw", slog.String("op", op), slog.String("raw", truncateRunes(raw, 300)))

	var reply clusterReply
	if err := json.Unmarshal([]byte(clipBraces(raw)), &reply); err != nil {
		log.From(ctx).Warn("cluster_reply_unparseable", slog.String("op", op))
		return nil, nil
	}

	byLower := make(map[string]string, len(allowed))
	for _, l := range allowed {
		byLower[strings.ToLower(l)] = l
	}

	best := make(map[string]float64)
	for _, t := range reply.Topics {
		canon, found := byLower[strings.ToLower(strings.TrimSpace(t.Title))]
		if !found {
			continue
		}
		if s := clamp01(t.Score); s > best[canon] {
			best[canon] = s
		}
	}

	out := make([]models.ScoredLabel, 0, len(best))
	for l, s := range best {
		if s >= minScore {
			out = append(out, models.ScoredLabel{Label: l, Score: s})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > topK {
		out = out[:topK]
	}

	return out, nil
}

// clipBraces вырезает наибольшую подстроку {...}.
func clipBraces(s string) string {
	i := strings.Index(s, "{")
	j := strings.LastIndex(s, "}")
	if i < 0 || j <= i {
		return s
	}
	return s[i : j+1]
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// truncateRunes обрезает строку до n рун.
func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
