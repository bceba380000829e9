package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"grammar_reminder_bot/internal/app"
	"grammar_reminder_bot/internal/domain/grammar"
	"grammar_reminder_bot/internal/domain/reminder"
	"grammar_reminder_bot/internal/infra/config"
	"grammar_reminder_bot/internal/infra/httpserver"
	"grammar_reminder_bot/internal/infra/logger"
	"grammar_reminder_bot/internal/infra/scheduler"
	"grammar_reminder_bot/internal/infra/telegram"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/telebot.v3"
	"gopkg.in/telebot.v3/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot, the reminder scheduler and the HTTP endpoint",
	Long: `Runs the bot until SIGINT or SIGTERM. With WEBHOOK_URL (or RAILWAY_STATIC_URL)
set, updates arrive on POST /webhook; otherwise the bot long-polls Telegram.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := bootstrap()
	if err != nil {
		return err
	}
	mainLogger := logger.Component("main")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	grammarCatalog, err := grammar.LoadDefault()
	if err != nil {
		return fmt.Errorf("could not load grammar catalog: %w", err)
	}
	reminderCatalog, err := reminder.LoadDefault()
	if err != nil {
		return fmt.Errorf("could not load reminder catalog: %w", err)
	}
	mainLogger.Infof("Catalogs loaded: %d grammar patterns, %d reminders", grammarCatalog.Len(), len(reminderCatalog.Entries()))

	generator, err := newGenerator(ctx, cfg, grammarCatalog)
	if err != nil {
		return err
	}

	sessions, closeSessions, err := newSessionRepository(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	var queue *telegram.UpdateQueue
	var poller telebot.Poller = &telebot.LongPoller{Timeout: longPollTimeout}
	if cfg.PushMode() {
		queue = telegram.NewUpdateQueue(updateQueueSize)
		poller = queue
	}

	bot, err := newBot(cfg, poller)
	if err != nil {
		return fmt.Errorf("could not create Telegram bot: %w", err)
	}
	bot.Use(middleware.Recover())

	// One client for the interactive handlers and the scheduler.
	client := telegram.NewTelebotAdapter(bot)

	quizService := app.NewQuizService(grammarCatalog, generator, sessions, client, cfg.TargetChatID, logger.Component("quiz"))
	reminderService := app.NewReminderService(reminderCatalog, client, cfg.ReminderChatID, logger.Component("reminder"))
	if !quizService.Enabled() {
		mainLogger.Warn("TARGET_CHAT_ID not set, /quiz will report the missing target")
	}
	if !reminderService.Enabled() {
		mainLogger.Warn("REMINDER_CHAT_ID not set, scheduled reminders will be skipped")
	}

	telegram.RegisterBotCommands(ctx, bot, quizService, logger.Component("commands"))
	telegram.RegisterQuizResponseHandlers(ctx, bot, quizService, logger.Component("callbacks"))
	mainLogger.Info("Bot handlers registered")

	reminderScheduler := scheduler.NewReminderScheduler(reminderService, logger.Component("scheduler"), cfg.ReminderCronSpecs)
	if err := reminderScheduler.Start(); err != nil {
		return err
	}

	var sink httpserver.UpdateSink
	if queue != nil {
		sink = queue
	}
	srv := httpserver.NewServer(fmt.Sprintf(":%d", cfg.Port), sink, logger.Component("http"))

	if err := configureUpdateSource(bot, cfg); err != nil {
		reminderScheduler.Stop()
		return err
	}

	mainLogger.Info("Application setup complete. Bot, scheduler and HTTP server are starting...")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		bot.Start()
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		mainLogger.Info("Shutting down application...")
		reminderScheduler.Stop()
		bot.Stop()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	mainLogger.Info("Application shut down gracefully")
	return nil
}

// configureUpdateSource registers the webhook in push mode and clears any
// stale one in pull mode, since Telegram refuses getUpdates while a webhook is set.
func configureUpdateSource(bot *telebot.Bot, cfg *config.AppConfig) error {
	log := logger.Component("main")
	if !cfg.PushMode() {
		if err := bot.RemoveWebhook(); err != nil {
			return fmt.Errorf("could not remove webhook: %w", err)
		}
		log.Info("Long polling for updates")
		return nil
	}

	url := webhookEndpoint(cfg.WebhookURL)
	if err := bot.SetWebhook(&telebot.Webhook{Endpoint: &telebot.WebhookEndpoint{PublicURL: url}}); err != nil {
		return fmt.Errorf("could not set webhook: %w", err)
	}
	log.WithField("url", url).Info("Webhook set")
	return nil
}
