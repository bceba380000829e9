package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderDeepSeek = "deepseek"
	ProviderGemini   = "gemini"

	SessionBackendMemory   = "memory"
	SessionBackendPostgres = "postgres"
	SessionBackendRedis    = "redis"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken string

	GeneratorProvider string
	GeneratorAPIKey   string
	GeneratorModel    string
	GeneratorBaseURL  string
	GenerationTimeout time.Duration

	// Zero means the feature is disabled.
	TargetChatID   int64
	ReminderChatID int64

	ReminderCronSpecs []string

	WebhookURL string // Push mode when set, long polling otherwise
	Port       int

	SessionBackend string
	DatabaseURL    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	LogLevel    string
	Environment string
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is not set")
	}

	cfg.GeneratorProvider = strings.ToLower(firstEnv("GENERATOR_PROVIDER"))
	if cfg.GeneratorProvider == "" {
		cfg.GeneratorProvider = ProviderDeepSeek
	}
	switch cfg.GeneratorProvider {
	case ProviderDeepSeek:
		cfg.GeneratorModel = "deepseek-chat"
		cfg.GeneratorBaseURL = "https://api.deepseek.com/v1"
	case ProviderGemini:
		cfg.GeneratorModel = "gemini-2.0-flash"
	default:
		return nil, fmt.Errorf("unsupported GENERATOR_PROVIDER %q", cfg.GeneratorProvider)
	}

	cfg.GeneratorAPIKey = firstEnv("GENERATOR_API_KEY", "DEEPSEEK_API_KEY")
	if cfg.GeneratorAPIKey == "" {
		return nil, fmt.Errorf("GENERATOR_API_KEY (or DEEPSEEK_API_KEY) is not set")
	}
	if v := os.Getenv("GENERATOR_MODEL"); v != "" {
		cfg.GeneratorModel = v
	}
	if v := os.Getenv("GENERATOR_BASE_URL"); v != "" {
		cfg.GeneratorBaseURL = strings.TrimRight(v, "/")
	}

	cfg.GenerationTimeout = 15 * time.Second
	if v := os.Getenv("GENERATION_TIMEOUT"); v != "" {
		cfg.GenerationTimeout, err = time.ParseDuration(v)
		if err != nil || cfg.GenerationTimeout <= 0 {
			return nil, fmt.Errorf("invalid GENERATION_TIMEOUT %q", v)
		}
	}

	cfg.TargetChatID, err = optionalChatID("TARGET_CHAT_ID")
	if err != nil {
		return nil, err
	}
	cfg.ReminderChatID, err = optionalChatID("REMINDER_CHAT_ID")
	if err != nil {
		return nil, err
	}

	cfg.ReminderCronSpecs = []string{"0 10 * * *", "0 16 * * *"} // 10:00 and 16:00 UTC
	if v := os.Getenv("REMINDER_CRON_SPECS"); v != "" {
		cfg.ReminderCronSpecs = nil
		for _, spec := range strings.Split(v, ",") {
			if spec = strings.TrimSpace(spec); spec != "" {
				cfg.ReminderCronSpecs = append(cfg.ReminderCronSpecs, spec)
			}
		}
	}

	cfg.WebhookURL = strings.TrimRight(firstEnv("WEBHOOK_URL", "RAILWAY_STATIC_URL"), "/")

	cfg.Port = 8000
	if v := os.Getenv("PORT"); v != "" {
		cfg.Port, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
	}

	cfg.SessionBackend = strings.ToLower(os.Getenv("SESSION_BACKEND"))
	if cfg.SessionBackend == "" {
		cfg.SessionBackend = SessionBackendMemory
	}
	switch cfg.SessionBackend {
	case SessionBackendMemory:
	case SessionBackendPostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is not set (required by SESSION_BACKEND=postgres)")
		}
	case SessionBackendRedis:
		cfg.RedisAddr = os.Getenv("REDIS_ADDR")
		if cfg.RedisAddr == "" {
			cfg.RedisAddr = "localhost:6379"
		}
		cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
		if v := os.Getenv("REDIS_DB"); v != "" {
			cfg.RedisDB, err = strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
			}
		}
	default:
		return nil, fmt.Errorf("unsupported SESSION_BACKEND %q", cfg.SessionBackend)
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

// QuizEnabled reports whether a destination for chosen sentences is configured.
func (c *AppConfig) QuizEnabled() bool { return c.TargetChatID != 0 }

// RemindersEnabled reports whether a reminder destination is configured.
func (c *AppConfig) RemindersEnabled() bool { return c.ReminderChatID != 0 }

// PushMode reports whether updates arrive through the webhook endpoint.
func (c *AppConfig) PushMode() bool { return c.WebhookURL != "" }

func optionalChatID(name string) (int64, error) {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s (chat ids must be integers, e.g. -1001234567890): %w", name, err)
	}
	return id, nil
}

func firstEnv(names ...string) string {
	for _, n := range names {
		if v := os.Getenv(n); v != "" {
			return v
		}
	}
	return ""
}
