// bus — интеграция parser-сервиса с Redis Pub/Sub: подписчик канала
// команд и издатель результатов.
package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/podolsknews/parser-service/internal/config"
)

// Publisher публикует JSON-события в выходной канал шины.
type Publisher struct {
	rdb     *redis.Client
	channel string
}

// NewPublisher создаёт издателя по конфигурации шины.
// Соединение проверяется сразу (fail-fast на старте).
func NewPublisher(ctx context.Context, cfg config.BusConfig) (*Publisher, error) {
	const op = "bus.NewPublisher"

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}
	if opt.TLSConfig != nil {
		return nil, fmt.Errorf("%s: rediss: tls is not supported", op)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: ping: %w", op, err)
	}

	return &Publisher{rdb: rdb, channel: cfg.OutChannel}, nil
}

// Publish сериализует значение в JSON и публикует его в выходной канал.
func (p *Publisher) Publish(ctx context.Context, v any) error {
	const op = "bus.Publish"

	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%s: marshal: %w", op, err)
	}

	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Close закрывает клиент Redis.
func (p *Publisher) Close() error {
	return p.rdb.Close()
}
