// Package bot dispatches inbound Telegram updates to the Transmission
// gateway. One update is handled to completion at a time; the gateway is only
// ever touched from the update loop goroutine.
package bot

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"

	"transmissionbot/internal/domain"
	"transmissionbot/internal/metrics"
)

// Gateway is the daemon surface the handlers need.
type Gateway interface {
	All(ctx context.Context) ([]domain.Torrent, error)
	Active(ctx context.Context) ([]domain.Torrent, error)
	Add(ctx context.Context, raw []byte) (domain.Torrent, error)
	PauseAll(ctx context.Context) (int, error)
	ResumeAll(ctx context.Context) (int, error)
}

// API is the slice of the Telegram bot client the dispatcher uses.
// *tgbotapi.BotAPI satisfies it.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetFileDirectURL(fileID string) (string, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Config struct {
	// OperatorID is the only Telegram user allowed to drive the bot.
	OperatorID int64

	Logger *slog.Logger

	// Flood limiter for inbound updates; defaults are generous.
	RateLimitRPS   float64
	RateLimitBurst int

	// HTTPClient downloads torrent attachments. Defaults to a client with the
	// otel transport and no timeout (Telegram file downloads can be slow).
	HTTPClient *http.Client

	// StartupDelay is how long Run waits before sending the readiness notice.
	StartupDelay time.Duration
}

type Bot struct {
	api          API
	gw           Gateway
	operatorID   int64
	logger       *slog.Logger
	limiter      *rate.Limiter
	httpClient   *http.Client
	startupDelay time.Duration
}

func New(api API, gw Gateway, cfg Config) *Bot {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	rps := cfg.RateLimitRPS
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.RateLimitBurst
	if burst <= 0 {
		burst = 10
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	}
	delay := cfg.StartupDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}
	return &Bot{
		api:          api,
		gw:           gw,
		operatorID:   cfg.OperatorID,
		logger:       logger,
		limiter:      rate.NewLimiter(rate.Limit(rps), burst),
		httpClient:   httpClient,
		startupDelay: delay,
	}
}

// Run enters the long-poll update loop and blocks until ctx is canceled or
// the update channel closes. The startup notice goes out from its own
// goroutine so a slow or failing send cannot hold up the loop.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := b.api.GetUpdatesChan(u)

	go b.sendStartupNotice(ctx)

	b.logger.Info("update loop started", slog.Int64("operatorId", b.operatorID))
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if !b.limiter.Allow() {
				metrics.UpdatesDroppedTotal.Inc()
				b.logger.Warn("update dropped by flood limiter")
				continue
			}
			b.dispatch(ctx, update)
		}
	}
}

// dispatch routes one update. A panicking handler is recovered here so a bad
// request can never take the loop down.
func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic recovered in handler",
				slog.Any("error", r),
				slog.String("stack", string(debug.Stack())),
			)
		}
	}()

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	switch {
	case msg.IsCommand():
		b.handleCommand(ctx, msg)
	case msg.Document != nil && isTorrentFile(msg.Document.FileName):
		b.handleTorrentFile(ctx, msg)
	}
}

func (b *Bot) sendStartupNotice(ctx context.Context) {
	select {
	case <-ctx.Done():
		return
	case <-time.After(b.startupDelay):
	}
	m := tgbotapi.NewMessage(b.operatorID, msgStartup)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(m); err != nil {
		b.logger.Error("startup notice failed", slog.String("error", err.Error()))
		return
	}
	b.logger.Info("startup notice sent", slog.Int64("chatId", b.operatorID))
}

// reply sends plain text; send failures are logged, never propagated.
func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("send reply failed",
			slog.Int64("chatId", chatID),
			slog.String("error", err.Error()),
		)
	}
}

// replyMarkdown sends text in Telegram's legacy Markdown mode.
func (b *Bot) replyMarkdown(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(m); err != nil {
		b.logger.Error("send reply failed",
			slog.Int64("chatId", chatID),
			slog.String("error", err.Error()),
		)
	}
}
