package bus

// Интеграционные тесты шины (internal/transport/bus):
// — поднимают реальный Redis через testcontainers-go (образ redis:7-alpine);
// — проверяют:
//    доставку сообщения подписчику через Pub/Sub;
//    полный круг реактора: команда во входном канале -> событие в выходном.

// Запуск локально:
//   GO_TEST_INTEGRATION=1 go test ./internal/transport/bus -v -race -count=1

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/models"
)

// startRedis — поднимает Redis и возвращает конфигурацию шины.
// Если переменная окружения GO_TEST_INTEGRATION не установлена — тест пропускается.
func startRedis(t *testing.T) config.BusConfig {
	t.Helper()
	if os.Getenv("GO_TEST_INTEGRATION") == "" {
		t.Skip("integration tests are disabled (set GO_TEST_INTEGRATION=1)")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(60 * time.Second),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{ContainerRequest: req, Started: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, _ := c.Host(ctx)
	port, _ := c.MappedPort(ctx, "6379/tcp")

	return config.BusConfig{
		URL:            fmt.Sprintf("redis://%s:%s/0", host, port.Port()),
		InChannel:      "rss_news_fetch_requests",
		OutChannel:     "news_fetch_results",
		ReconnectMinMs: 200,
		ReconnectMaxMs: 2000,
	}
}

func TestIntegration_Subscriber_DeliversMessages(t *testing.T) {
	cfg := startRedis(t)

	got := make(chan string, 1)
	sub, err := NewSubscriber(cfg, []string{cfg.InChannel}, func(_ context.Context, _ string, payload []byte) {
		got <- string(payload)
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = sub.Run(ctx)
		close(done)
	}()

	opt, err := redis.ParseURL(cfg.URL)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer func() { _ = rdb.Close() }()

	// Подписка асинхронная: публикуем с ретраями, пока подписчик
	// не подтвердится на сервере.
	require.Eventually(t, func() bool {
		n, err := rdb.Publish(context.Background(), cfg.InChannel, "ping").Result()
		return err == nil && n > 0
	}, 10*time.Second, 100*time.Millisecond)

	select {
	case payload := <-got:
		require.Equal(t, "ping", payload)
	case <-time.After(10 * time.Second):
		t.Fatal("message was not delivered")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("subscriber did not stop")
	}
}

func TestIntegration_Reactor_RoundTrip(t *testing.T) {
	cfg := startRedis(t)

	parser := &stubSourceParser{}
	r, err := NewReactor(context.Background(), cfg, parser)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan struct{})
	go func() {
		_ = r.Run(ctx)
		close(done)
	}()

	opt, err := redis.ParseURL(cfg.URL)
	require.NoError(t, err)
	rdb := redis.NewClient(opt)
	defer func() { _ = rdb.Close() }()

	out := rdb.Subscribe(context.Background(), cfg.OutChannel)
	defer func() { _ = out.Close() }()
	_, err = out.Receive(context.Background())
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		n, err := rdb.Publish(context.Background(), cfg.InChannel, `{"source_id": 5, "user_id": 7}`).Result()
		return err == nil && n > 0
	}, 10*time.Second, 100*time.Millisecond)

	msg, err := out.ReceiveMessage(context.Background())
	require.NoError(t, err)

	var ev statusEvent
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &ev))
	require.EqualValues(t, 5, ev.SourceID)
	require.EqualValues(t, 7, ev.UserID)
	require.Equal(t, models.SourceStatusActive, ev.Status)
	require.Equal(t, []int64{5}, parser.parsedIDs())

	cancel()
	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("reactor did not stop")
	}
}
