// config предоставляет структуру конфигурации parser-сервиса
// и функции загрузки из JSON/ENV с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

// pgEnvVars — перечень переменных окружения драйвера postgres,
// которые сбрасываются перед чтением конфига, чтобы libpq-совместимые
// настройки окружения не перекрывали значения из файла.
var pgEnvVars = []string{
	"PGHOST", "PGPORT", "PGDATABASE", "PGUSER", "PGPASSWORD", "PGSERVICE",
}

// Config — корневая конфигурация сервиса.
// Приоритет источников:
//  1. явный путь, переданный в MustLoad/Load;
//  2. переменная окружения CONFIG_PATH;
//  3. файл ./res/config.json из рабочей директории;
//  4. переменные окружения.
//
// Пароль БД дополнительно перекрывается POSTGRES_PASSWORD, если задан.
type Config struct {
	Env string `json:"env" env:"ENV" env-default:"local"`

	// LazyTime — период тика поллера, секунды.
	LazyTime int64 `json:"lazy_time" env:"LAZY_TIME" env-default:"60"`

	// DBConfig встроен без тега: ключи db_* лежат в res/config.json плоско.
	DBConfig

	Bus BusConfig `json:"bus"`
	LLM LLMConfig `json:"llm"`
}

// DBConfig — настройки подключения к базе данных.
type DBConfig struct {
	Address  string `json:"db_address"  env:"DB_ADDRESS"  env-default:"127.0.0.1"`
	Port     int    `json:"db_port"     env:"DB_PORT"     env-default:"5432"`
	Name     string `json:"db_name"     env:"DB_NAME"`
	User     string `json:"db_user"     env:"DB_USER"`
	Password string `json:"db_password" env:"DB_PASSWORD"`
}

// BusConfig — настройки шины команд (Redis pub/sub).
type BusConfig struct {
	URL        string `json:"redis_url"   env:"REDIS_URL"         env-default:"redis://redis:6379/0"`
	InChannel  string `json:"in_channel"  env:"RSS_IN_CHANNEL"    env-default:"rss_news_fetch_requests"`
	OutChannel string `json:"out_channel" env:"REDIS_OUT_CHANNEL" env-default:"news_fetch_results"`

	// Границы случайной задержки переподключения, миллисекунды.
	ReconnectMinMs int `json:"reconnect_min_ms" env:"BUS_RECONNECT_MIN_MS" env-default:"500"`
	ReconnectMaxMs int `json:"reconnect_max_ms" env:"BUS_RECONNECT_MAX_MS" env-default:"5000"`
}

// LLMConfig — настройки локального LLM-рантайма.
type LLMConfig struct {
	// ServerURL — endpoint генерации локального llama-сервера.
	ServerURL string `json:"server_url" env:"LLM_SERVER_URL" env-default:"http://127.0.0.1:11434/api/generate"`
	// ModelPath — имя/путь модели; LLM_MODEL_PATH имеет приоритет над файлом.
	ModelPath string `json:"model_path" env:"LLM_MODEL_PATH" env-default:"res/qwen2.5-0.5b-instruct-q4_k_m.gguf"`
	// MaxTokens — жёсткий потолок генерации для одиночной классификации.
	MaxTokens int `json:"max_tokens" env:"LLM_MAX_TOKENS" env-default:"512"`
}

// URL возвращает postgres-URL подключения в формате pgx.
// Имя соединения (application_name) задаётся вызывающей стороной.
func (d DBConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?connect_timeout=5",
		d.User, d.Password,
		net.JoinHostPort(d.Address, strconv.Itoa(d.Port)),
		d.Name,
	)
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./res/config.json; 4) ENV.
//
// Перед чтением сбрасываются PG*-переменные окружения, после чтения
// применяется POSTGRES_PASSWORD.
func Load(path string) (*Config, error) {
	for _, v := range pgEnvVars {
		os.Unsetenv(v)
	}

	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file does not exist: %s", p)
		}
		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		return &cfg, nil
	}

	finish := func(c *Config) (*Config, error) {
		if pw := os.Getenv("POSTGRES_PASSWORD"); pw != "" {
			c.DBConfig.Password = pw
		}
		if err := c.validate(); err != nil {
			return nil, err
		}
		return c, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}
		return finish(c)
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}
		return finish(c)
	}

	// 3) ./res/config.json.
	if _, err := os.Stat("res/config.json"); err == nil {
		if err := cleanenv.ReadConfig("res/config.json", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read res/config.json: %w", err)
		}
		return finish(&cfg)
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide -config, CONFIG_PATH, res/config.json or env vars: %w", err)
	}
	return finish(&cfg)
}

// validate — базовая валидация значений.
func (c *Config) validate() error {
	if c.LazyTime <= 0 {
		return fmt.Errorf("lazy_time must be > 0")
	}
	if c.DBConfig.Name == "" {
		return fmt.Errorf("db_name is required")
	}
	if c.DBConfig.User == "" {
		return fmt.Errorf("db_user is required")
	}
	if c.Bus.URL == "" {
		return fmt.Errorf("redis url is required")
	}
	if c.Bus.ReconnectMinMs <= 0 || c.Bus.ReconnectMaxMs < c.Bus.ReconnectMinMs {
		return fmt.Errorf("bus reconnect delay range is invalid")
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm max_tokens must be > 0")
	}
	return nil
}
