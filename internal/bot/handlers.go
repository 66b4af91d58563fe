package bot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/anacrolix/torrent/metainfo"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"transmissionbot/internal/domain"
	"transmissionbot/internal/format"
	"transmissionbot/internal/metrics"
)

// checkAccess is the whole authorization model: one static operator identity.
// Unauthorized senders get the refusal reply and nothing else runs for them.
func (b *Bot) checkAccess(msg *tgbotapi.Message) bool {
	if msg.From.ID == b.operatorID {
		return true
	}
	metrics.AccessDeniedTotal.Inc()
	b.logger.Warn("access denied",
		slog.Int64("userId", msg.From.ID),
		slog.String("userName", msg.From.UserName),
	)
	b.reply(msg.Chat.ID, msgAccessDenied)
	return false
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	command := msg.Command()
	switch command {
	case "start":
		b.handleStart(msg)
	case "help":
		b.handleHelp(msg)
	case "all":
		b.handleAll(ctx, msg)
	case "active":
		b.handleActive(ctx, msg)
	case "pause":
		b.handlePause(ctx, msg)
	case "resume":
		b.handleResume(ctx, msg)
	default:
		// Unknown commands are ignored, as is anything that is not a command.
	}
}

func (b *Bot) handleStart(msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	b.replyMarkdown(msg.Chat.ID, msgWelcome)
	metrics.CommandsTotal.WithLabelValues("start", "ok").Inc()
}

func (b *Bot) handleHelp(msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	b.replyMarkdown(msg.Chat.ID, msgHelp)
	metrics.CommandsTotal.WithLabelValues("help", "ok").Inc()
}

func (b *Bot) handleAll(ctx context.Context, msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	torrents, err := b.gw.All(ctx)
	if err != nil {
		b.failCommand(msg.Chat.ID, "all", "list torrents failed", err)
		return
	}
	if len(torrents) == 0 {
		b.reply(msg.Chat.ID, msgNoDownloads)
		metrics.CommandsTotal.WithLabelValues("all", "ok").Inc()
		return
	}
	header := fmt.Sprintf("📋 **Все загрузки (%d):**\n\n", len(torrents))
	b.sendTorrentList(msg.Chat.ID, header, torrents)
	metrics.CommandsTotal.WithLabelValues("all", "ok").Inc()
}

func (b *Bot) handleActive(ctx context.Context, msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	torrents, err := b.gw.Active(ctx)
	if err != nil {
		b.failCommand(msg.Chat.ID, "active", "list active torrents failed", err)
		return
	}
	if len(torrents) == 0 {
		b.reply(msg.Chat.ID, msgNoActiveDownloads)
		metrics.CommandsTotal.WithLabelValues("active", "ok").Inc()
		return
	}
	header := fmt.Sprintf("⚡ **Активные загрузки (%d):**\n\n", len(torrents))
	b.sendTorrentList(msg.Chat.ID, header, torrents)
	metrics.CommandsTotal.WithLabelValues("active", "ok").Inc()
}

func (b *Bot) handlePause(ctx context.Context, msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	count, err := b.gw.PauseAll(ctx)
	if err != nil {
		b.failCommand(msg.Chat.ID, "pause", "pause all failed", err)
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("⏸ Остановлено загрузок: %d", count))
	metrics.CommandsTotal.WithLabelValues("pause", "ok").Inc()
}

func (b *Bot) handleResume(ctx context.Context, msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	count, err := b.gw.ResumeAll(ctx)
	if err != nil {
		b.failCommand(msg.Chat.ID, "resume", "resume all failed", err)
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("▶️ Продолжено загрузок: %d", count))
	metrics.CommandsTotal.WithLabelValues("resume", "ok").Inc()
}

func (b *Bot) handleTorrentFile(ctx context.Context, msg *tgbotapi.Message) {
	if !b.checkAccess(msg) {
		return
	}
	raw, err := b.downloadDocument(ctx, msg.Document)
	if err != nil {
		b.logger.Error("attachment download failed",
			slog.String("fileName", msg.Document.FileName),
			slog.String("error", err.Error()),
		)
		metrics.CommandsTotal.WithLabelValues("add", "error").Inc()
		b.reply(msg.Chat.ID, "❌ Ошибка при добавлении торрента: "+err.Error())
		return
	}

	// Best-effort metainfo peek for the log line. A parse failure is not a
	// rejection: whether the metadata is valid is the daemon's call.
	if mi, err := metainfo.Load(bytes.NewReader(raw)); err == nil {
		if info, err := mi.UnmarshalInfo(); err == nil {
			b.logger.Info("torrent file received",
				slog.String("name", info.Name),
				slog.String("infoHash", mi.HashInfoBytes().HexString()),
				slog.Int("size", len(raw)),
			)
		}
	}

	t, err := b.gw.Add(ctx, raw)
	if err != nil {
		b.logger.Error("add torrent failed",
			slog.String("fileName", msg.Document.FileName),
			slog.String("error", err.Error()),
		)
		metrics.CommandsTotal.WithLabelValues("add", "error").Inc()
		b.reply(msg.Chat.ID, "❌ Ошибка при добавлении торрента: "+err.Error())
		return
	}
	b.reply(msg.Chat.ID, fmt.Sprintf("✅ Торрент добавлен!\n\n📦 %s\nСтатус: Загрузка начата", t.Name))
	metrics.CommandsTotal.WithLabelValues("add", "ok").Inc()
}

// downloadDocument reads the attachment fully into memory via the bot API
// file URL. No streaming and no size cap, matching the transport's own limits.
func (b *Bot) downloadDocument(ctx context.Context, doc *tgbotapi.Document) ([]byte, error) {
	fileURL, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download returned %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (b *Bot) sendTorrentList(chatID int64, header string, torrents []domain.Torrent) {
	blocks := make([]string, 0, len(torrents))
	for i, t := range torrents {
		blocks = append(blocks, fmt.Sprintf("%d. %s\n", i+1, format.Item(t)))
	}
	for _, page := range paginate(header, blocks) {
		b.replyMarkdown(chatID, page)
	}
}

// failCommand logs a gateway failure and reports the generic error reply.
func (b *Bot) failCommand(chatID int64, command, logMsg string, err error) {
	b.logger.Error(logMsg, slog.String("error", err.Error()))
	metrics.CommandsTotal.WithLabelValues(command, "error").Inc()
	b.reply(chatID, "❌ Ошибка: "+err.Error())
}

func isTorrentFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".torrent")
}
