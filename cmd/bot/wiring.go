package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"grammar_reminder_bot/internal/app"
	"grammar_reminder_bot/internal/domain/grammar"
	"grammar_reminder_bot/internal/domain/session"
	"grammar_reminder_bot/internal/infra/config"
	idb "grammar_reminder_bot/internal/infra/database"
	"grammar_reminder_bot/internal/infra/llm"
	"grammar_reminder_bot/internal/infra/logger"
	"grammar_reminder_bot/internal/infra/memory"
	"grammar_reminder_bot/internal/infra/metrics"
	iredis "grammar_reminder_bot/internal/infra/redis"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// bootstrap loads configuration and sets up the process-wide logger and metrics.
func bootstrap() (*config.AppConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("could not load application configuration: %w", err)
	}
	logger.Init(cfg)
	metrics.MustRegister()
	logger.Log.Infof("Configuration loaded. LogLevel: %s, Environment: %s, Provider: %s", cfg.LogLevel, cfg.Environment, cfg.GeneratorProvider)
	return cfg, nil
}

func newCompleter(ctx context.Context, cfg *config.AppConfig) (app.TextCompleter, error) {
	switch cfg.GeneratorProvider {
	case config.ProviderGemini:
		return llm.NewGeminiCompleter(ctx, cfg.GeneratorAPIKey, cfg.GeneratorBaseURL, cfg.GeneratorModel)
	default:
		return llm.NewOpenAICompleter(cfg.GeneratorProvider, cfg.GeneratorAPIKey, cfg.GeneratorBaseURL, cfg.GeneratorModel)
	}
}

func newGenerator(ctx context.Context, cfg *config.AppConfig, catalog *grammar.Catalog) (*app.SentenceGenerator, error) {
	completer, err := newCompleter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("could not create %s completer: %w", cfg.GeneratorProvider, err)
	}
	return app.NewSentenceGenerator(completer, catalog.Fallbacks(), cfg.GenerationTimeout, logger.Component("generator"))
}

// newSessionRepository returns the configured store and a func releasing its connection.
func newSessionRepository(ctx context.Context, cfg *config.AppConfig) (session.Repository, func(), error) {
	log := logger.Component("sessions")

	switch cfg.SessionBackend {
	case config.SessionBackendPostgres:
		db, err := idb.NewPostgresConnection(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to database: %w", err)
		}
		repo := idb.NewPostgresSessionRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("could not prepare session schema: %w", err)
		}
		log.Info("Postgres session store initialized")
		return repo, func() { _ = db.Close() }, nil

	case config.SessionBackendRedis:
		client, err := iredis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("could not connect to redis: %w", err)
		}
		log.WithField("addr", cfg.RedisAddr).Info("Redis session store initialized")
		return iredis.NewSessionRepository(client), func() { _ = client.Close() }, nil

	default:
		log.Info("In-memory session store initialized")
		return memory.NewSessionRepository(), func() {}, nil
	}
}

func newBot(cfg *config.AppConfig, poller telebot.Poller) (*telebot.Bot, error) {
	log := logger.Component("telebot")
	return telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: poller,
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := log.WithError(err)
			if c != nil && c.Sender() != nil && c.Chat() != nil {
				entry = entry.WithFields(logrus.Fields{
					"text":      c.Text(),
					"sender_id": c.Sender().ID,
					"chat_id":   c.Chat().ID,
				})
			}
			entry.Error("Handler error")
		},
	})
}

// webhookEndpoint appends the webhook path to the public base URL, adding
// https:// when the base is a bare host name.
func webhookEndpoint(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "https://" + base
	}
	return base + "/webhook"
}

const (
	longPollTimeout = 10 * time.Second
	updateQueueSize = 100
	shutdownTimeout = 10 * time.Second
)
