// llm — клиент локального llama-рантайма (Ollama-совместимый
// эндпоинт /api/generate) и скорер меток тем поверх него.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/podolsknews/parser-service/internal/config"
	"github.com/podolsknews/parser-service/internal/pkg/log"
)

// requestTimeout — таймаут одной генерации; локальная модель на CPU
// может отвечать десятки секунд.
const requestTimeout = 120 * time.Second

// generateRequest — тело запроса /api/generate.
type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64  `json:"temperature"`
	NumPredict  int      `json:"num_predict"`
	Stop        []string `json:"stop,omitempty"`
}

// generateResponse — ответ /api/generate при stream=false.
type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Client — обёртка над HTTP-рантаймом модели. Генерация строго
// последовательная: контекст модели однопоточный, поэтому все
// вызовы сериализуются мьютексом.
type Client struct {
	serverURL string
	model     string
	maxTokens int

	mu    sync.Mutex
	httpc *http.Client
}

// NewClient создаёт клиента по конфигурации рантайма.
func NewClient(cfg config.LLMConfig) *Client {
	return &Client{
		serverURL: cfg.ServerURL,
		model:     cfg.ModelPath,
		maxTokens: cfg.MaxTokens,
		httpc:     &http.Client{Timeout: requestTimeout},
	}
}

// Close освобождает соединения рантайма.
func (c *Client) Close() {
	c.httpc.CloseIdleConnections()
}

// chatTemplate оборачивает пользовательский промпт в chat-шаблон Qwen
// со строгой system-инструкцией «только один JSON-объект».
func chatTemplate(userPrompt string) string {
	return "<|im_start|>system\n" +
		"You are a strict JSON generator. Reply ONLY with one JSON object.\n" +
		"<|im_end|>\n" +
		"<|im_start|>user\n" + userPrompt + "\n<|im_end|>\n" +
		"<|im_start|>assistant\n"
}

// generate выполняет одну жадную генерацию (temperature 0) с потолком
// numPredict токенов и возвращает сырой текст ответа. При stopAtBrace
// вывод обрезается по первой закрывающей скобке — для промптов с
// плоским JSON-объектом этого достаточно и дешевле полной генерации.
func (c *Client) generate(ctx context.Context, userPrompt string, numPredict int, stopAtBrace bool) (string, error) {
	const op = "llm.generate"

	c.mu.Lock()
	defer c.mu.Unlock()

	if numPredict <= 0 || numPredict > c.maxTokens {
		numPredict = c.maxTokens
	}

	reqBody := generateRequest{
		Model:  c.model,
		Prompt: chatTemplate(userPrompt),
		Stream: false,
		Options: generateOptions{
			Temperature: 0,
			NumPredict:  numPredict,
		},
	}
	if stopAtBrace {
		reqBody.Options.Stop = []string{"}"}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("%s: marshal: %w", op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.serverURL, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%s: new request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%s: read body: %w", op, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: status %d: %s", op, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var gr generateResponse
	if err := json.Unmarshal(body, &gr); err != nil {
		return "", fmt.Errorf("%s: unmarshal: %w", op, err)
	}

	out := gr.Response
	if stopAtBrace {
		// Стоп-последовательность рантайм не включает в ответ;
		// добираем скобку, чтобы объект остался валидным JSON.
		if i := strings.Index(out, "}"); i >= 0 {
			out = out[:i+1]
		} else if strings.Contains(out, "{") {
			out += "}"
		}
	}

	if strings.TrimSpace(out) == "" {
		log.From(ctx).Warn("empty_generation", slog.String("op", op))
	}

	return out, nil
}
