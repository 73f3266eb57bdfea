package bus

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

const (
	// receiveTimeout — таймаут одного Receive; даёт циклу шанс
	// увидеть отмену ctx и применить отложенные (un)subscribe.
	receiveTimeout = 2 * time.Second
	// stopPollInterval — шаг сна бэкоффа между попытками переподключения.
	stopPollInterval = 100 * time.Millisecond
)

// Handler обрабатывает одно сообщение канала.
type Handler func(ctx context.Context, channel string, payload []byte)

// Subscriber — IO-цикл подписки на каналы шины с автопереподключением.
// Потеря соединения не фатальна: цикл пересоздаёт подписку после
// случайной равномерной паузы в [ReconnectMinMs, ReconnectMaxMs] мс.
type Subscriber struct {
	opt      *redis.Options
	cfg      config.BusConfig
	channels []string
	handler  Handler

	// Отложенные (un)subscribe; применяются циклом между Receive.
	mu             sync.Mutex
	pendingSubs    []string
	pendingUnsubs  []string

	rng *rand.Rand
}

// NewSubscriber создаёт подписчика на заданные каналы.
// URL шины разбирается сразу: битый адрес — ошибка конфигурации,
// переподключения её не лечат.
func NewSubscriber(cfg config.BusConfig, channels []string, handler Handler) (*Subscriber, error) {
	const op = "bus.NewSubscriber"

	opt, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%s: parse url: %w", op, err)
	}
	if opt.TLSConfig != nil {
		return nil, fmt.Errorf("%s: rediss: tls is not supported", op)
	}
	if len(channels) == 0 {
		return nil, fmt.Errorf("%s: no channels", op)
	}
	if handler == nil {
		return nil, fmt.Errorf("%s: nil handler", op)
	}

	return &Subscriber{
		opt:      opt,
		cfg:      cfg,
		channels: append([]string(nil), channels...),
		handler:  handler,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// Subscribe ставит канал в очередь на подписку.
func (s *Subscriber) Subscribe(channel string) {
	s.mu.Lock()
	s.pendingSubs = append(s.pendingSubs, channel)
	s.mu.Unlock()
}

// Unsubscribe ставит канал в очередь на отписку.
func (s *Subscriber) Unsubscribe(channel string) {
	s.mu.Lock()
	s.pendingUnsubs = append(s.pendingUnsubs, channel)
	s.mu.Unlock()
}

// Run блокирует до отмены ctx: подключается, подписывается и
// раздаёт сообщения handler. Любая ошибка соединения ведёт к
// переподключению после паузы.
func (s *Subscriber) Run(ctx context.Context) error {
	const op = "bus.Run"

	lg := log.From(ctx)

	for ctx.Err() == nil {
		if err := s.consumeOnce(ctx); err != nil && ctx.Err() == nil {
			lg.Warn("subscriber_disconnected",
				slog.String("op", op),
				slog.String("error", err.Error()),
			)
			s.sleepBackoff(ctx)
		}
	}

	lg.Info("subscriber_stop", slog.String("op", op))
	return nil
}

// consumeOnce — одна сессия: соединение, подписка, цикл приёма.
func (s *Subscriber) consumeOnce(ctx context.Context) error {
	const op = "bus.consumeOnce"

	client := redis.NewClient(s.opt)
	defer func() { _ = client.Close() }()

	ps := client.Subscribe(ctx, s.channels...)
	defer func() { _ = ps.Close() }()

	// Подтверждение подписки.
	if _, err := ps.Receive(ctx); err != nil {
		return fmt.Errorf("%s: subscribe: %w", op, err)
	}

	log.From(ctx).Info("subscriber_connected",
		slog.String("op", op),
		slog.Any("channels", s.channels),
	)

	for ctx.Err() == nil {
		s.flushPending(ctx, ps)

		msg, err := ps.ReceiveTimeout(ctx, receiveTimeout)
		if err != nil {
			if isTimeout(err) {
				continue
			}
			return fmt.Errorf("%s: receive: %w", op, err)
		}

		if m, ok := msg.(*redis.Message); ok {
			s.handler(ctx, m.Channel, []byte(m.Payload))
		}
	}

	return nil
}

// flushPending применяет накопленные (un)subscribe.
func (s *Subscriber) flushPending(ctx context.Context, ps *redis.PubSub) {
	const op = "bus.flushPending"

	s.mu.Lock()
	subs := s.pendingSubs
	unsubs := s.pendingUnsubs
	s.pendingSubs = nil
	s.pendingUnsubs = nil
	s.mu.Unlock()

	lg := log.From(ctx)
	for _, ch := range subs {
		if err := ps.Subscribe(ctx, ch); err != nil {
			lg.Warn("subscribe_failed",
				slog.String("op", op),
				slog.String("channel", ch),
				slog.String("error", err.Error()),
			)
		}
	}
	for _, ch := range unsubs {
		if err := ps.Unsubscribe(ctx, ch); err != nil {
			lg.Warn("unsubscribe_failed",
				slog.String("op", op),
				slog.String("channel", ch),
				slog.String("error", err.Error()),
			)
		}
	}
}

// sleepBackoff спит случайное равномерное время из настроенного окна,
// проверяя отмену ctx каждые stopPollInterval.
func (s *Subscriber) sleepBackoff(ctx context.Context) {
	total := s.nextBackoff()
	for slept := time.Duration(0); slept < total && ctx.Err() == nil; slept += stopPollInterval {
		step := stopPollInterval
		if rest := total - slept; rest < step {
			step = rest
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(step):
		}
	}
}

// nextBackoff — случайная пауза в [ReconnectMinMs, ReconnectMaxMs] мс.
func (s *Subscriber) nextBackoff() time.Duration {
	min := s.cfg.ReconnectMinMs
	max := s.cfg.ReconnectMaxMs
	if min < 10 {
		min = 10
	}
	if max < min {
		max = min
	}

	s.mu.Lock()
	ms := min + s.rng.Intn(max-min+1)
	s.mu.Unlock()

	return time.Duration(ms) * time.Millisecond
}

// isTimeout отличает штатный таймаут Receive от потери соединения.
func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
