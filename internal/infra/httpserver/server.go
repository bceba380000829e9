package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"grammar_reminder_bot/internal/infra/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	HomeText = "✅ Grammar + Reminder Bot is running!"

	maxUpdateBytes = 1 << 20
)

// UpdateSink accepts inbound updates for the bot's handler loop.
type UpdateSink interface {
	Enqueue(u telebot.Update) error
}

type Server struct {
	server *http.Server
	sink   UpdateSink
	logger *logrus.Entry
}

// NewServer builds the HTTP surface. A nil sink leaves /webhook unmounted,
// which is the case in pull mode.
func NewServer(addr string, sink UpdateSink, logger *logrus.Entry) *Server {
	s := &Server{sink: sink, logger: logger}
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHome)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	if s.sink != nil {
		r.Post("/webhook", s.handleWebhook)
	}
	return r
}

func (s *Server) handleHome(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, HomeText)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	var u telebot.Update
	if err := json.NewDecoder(io.LimitReader(r.Body, maxUpdateBytes)).Decode(&u); err != nil {
		metrics.IncWebhookUpdate("malformed")
		s.logger.WithError(err).Warn("Rejected malformed webhook payload")
		writeJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": "malformed update"})
		return
	}

	if err := s.sink.Enqueue(u); err != nil {
		metrics.IncWebhookUpdate("rejected")
		s.logger.WithError(err).WithField("update_id", u.ID).Error("Could not queue webhook update")
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	metrics.IncWebhookUpdate("accepted")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// Start blocks serving until Shutdown is called.
func (s *Server) Start() error {
	s.logger.WithField("addr", s.server.Addr).Info("HTTP server listening")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
