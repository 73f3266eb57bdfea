package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/models"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

// SourceParser — операции оркестратора, которые дёргает реактор.
type SourceParser interface {
	ParseSourceByID(ctx context.Context, id int64) error
	SetSourceStatus(ctx context.Context, id int64, status string) error
}

// statusPublisher — издатель результатов; сужен до одного метода
// ради подмены в тестах.
type statusPublisher interface {
	Publish(ctx context.Context, v any) error
}

// fetchCommand — входная команда канала rss_news_fetch_requests.
// Отсутствующие поля остаются -1, как и непарсибельные.
type fetchCommand struct {
	SourceID int64 `json:"source_id"`
	UserID   int64 `json:"user_id"`
}

// statusEvent — исходящее событие канала news_fetch_results.
type statusEvent struct {
	SourceID int64  `json:"source_id"`
	UserID   int64  `json:"user_id"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// Reactor принимает команды «обнови источник сейчас», выполняет
// внеплановый разбор через оркестратор и публикует итоговый статус.
type Reactor struct {
	parser SourceParser
	pub    statusPublisher
	sub    *Subscriber
	closer func() error
}

// NewReactor собирает реактор: издатель соединяется сразу (fail-fast),
// подписчик создаётся на входной канал конфигурации.
func NewReactor(ctx context.Context, cfg config.BusConfig, parser SourceParser) (*Reactor, error) {
	const op = "bus.NewReactor"

	pub, err := NewPublisher(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	r := &Reactor{parser: parser, pub: pub, closer: pub.Close}

	sub, err := NewSubscriber(cfg, []string{cfg.InChannel}, r.handleMessage)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	r.sub = sub

	return r, nil
}

// Run блокирует до отмены ctx.
func (r *Reactor) Run(ctx context.Context) error {
	defer func() {
		if r.closer != nil {
			_ = r.closer()
		}
	}()
	return r.sub.Run(ctx)
}

// handleMessage обрабатывает одну команду.
//
// Ошибочные сообщения не роняют цикл: не-JSON публикуется как
// bad_payload с идентификаторами -1, невалидные поля — как
// bad_payload_fields с тем, что удалось извлечь.
func (r *Reactor) handleMessage(ctx context.Context, channel string, payload []byte) {
	const op = "bus.handleMessage"

	// Каждой команде — свой request_id: статусы и ошибки одной команды
	// связываются в логах между обработчиком и издателем.
	lg := log.From(ctx).With(slog.String("request_id", uuid.NewString()))
	ctx = log.Into(ctx, lg)
	lg.Info("command_received", slog.String("op", op), slog.String("channel", channel))

	cmd := fetchCommand{SourceID: -1, UserID: -1}
	if err := json.Unmarshal(payload, &cmd); err != nil {
		lg.Warn("bad_payload", slog.String("op", op), slog.String("error", err.Error()))
		r.publishStatus(ctx, -1, -1, models.SourceStatusError, "bad_payload")
		return
	}

	if cmd.SourceID <= 0 || cmd.UserID <= 0 {
		lg.Warn("bad_payload_fields",
			slog.String("op", op),
			slog.Int64("source_id", cmd.SourceID),
			slog.Int64("user_id", cmd.UserID),
		)
		r.publishStatus(ctx, cmd.SourceID, cmd.UserID, models.SourceStatusError, "bad_payload_fields")
		return
	}

	if err := r.parser.ParseSourceByID(ctx, cmd.SourceID); err != nil {
		if serr := r.parser.SetSourceStatus(ctx, cmd.SourceID, models.SourceStatusError); serr != nil {
			lg.Warn("set_status_failed", slog.String("op", op), slog.String("error", serr.Error()))
		}
		r.publishStatus(ctx, cmd.SourceID, cmd.UserID, models.SourceStatusError, err.Error())
		return
	}

	if err := r.parser.SetSourceStatus(ctx, cmd.SourceID, models.SourceStatusActive); err != nil {
		lg.Warn("set_status_failed", slog.String("op", op), slog.String("error", err.Error()))
	}
	r.publishStatus(ctx, cmd.SourceID, cmd.UserID, models.SourceStatusActive, "")
}

// publishStatus публикует итог обработки команды.
func (r *Reactor) publishStatus(ctx context.Context, sourceID, userID int64, status, errText string) {
	const op = "bus.publishStatus"

	ev := statusEvent{
		SourceID: sourceID,
		UserID:   userID,
		Status:   status,
		Error:    errText,
	}
	if err := r.pub.Publish(ctx, ev); err != nil {
		log.From(ctx).Warn("publish_failed", slog.String("op", op), slog.String("error", err.Error()))
	}
}
