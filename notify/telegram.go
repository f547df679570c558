package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Dosada05/tournament-results/models"
)

// Telegram allows roughly 30 messages a minute per chat.
const telegramSendInterval = 2 * time.Second

const queueSize = 16

var ErrNotifierStopped = errors.New("notifier is stopped")

// MessageSender is the subset of *tgbotapi.BotAPI the notifier needs.
type MessageSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts standings summaries to a chat. Messages are queued
// and sent by a single background goroutine.
type TelegramNotifier struct {
	bot      MessageSender
	chatID   int64
	interval time.Duration
	logger   *slog.Logger

	queue    chan string
	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
	lastSend time.Time
}

// NewTelegramBot authorizes the bot token against the Telegram API.
func NewTelegramBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	bot.Debug = false
	return bot, nil
}

func NewTelegramNotifier(bot MessageSender, chatID int64, logger *slog.Logger) *TelegramNotifier {
	if logger == nil {
		logger = slog.Default()
	}
	n := &TelegramNotifier{
		bot:      bot,
		chatID:   chatID,
		interval: telegramSendInterval,
		logger:   logger,
		queue:    make(chan string, queueSize),
		done:     make(chan struct{}),
	}
	n.wg.Add(1)
	go n.messageSender()
	return n
}

// NotifyStandings queues a summary of the standings. It never waits: when the
// queue is full the summary is logged and dropped.
func (n *TelegramNotifier) NotifyStandings(ctx context.Context, standings []models.Standing, reportURL string) error {
	text := FormatStandings(standings, reportURL)
	select {
	case <-n.done:
		return ErrNotifierStopped
	default:
	}
	select {
	case n.queue <- text:
	default:
		n.logger.WarnContext(ctx, "telegram queue full, standings message dropped",
			slog.Int64("chat_id", n.chatID), slog.Int("queue_size", cap(n.queue)))
	}
	return nil
}

// Stop flushes queued messages and waits for the sender to exit.
func (n *TelegramNotifier) Stop() {
	n.stopOnce.Do(func() {
		close(n.done)
	})
	n.wg.Wait()
}

func (n *TelegramNotifier) messageSender() {
	defer n.wg.Done()
	for {
		select {
		case text := <-n.queue:
			n.send(text)
		case <-n.done:
			for {
				select {
				case text := <-n.queue:
					n.send(text)
				default:
					return
				}
			}
		}
	}
}

func (n *TelegramNotifier) send(text string) {
	if wait := n.interval - time.Since(n.lastSend); wait > 0 && !n.lastSend.IsZero() {
		time.Sleep(wait)
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram message", slog.Int64("chat_id", n.chatID), slog.Any("error", err))
		return
	}
	n.lastSend = time.Now()
	n.logger.Info("telegram message sent", slog.Int64("chat_id", n.chatID), slog.Int("length", len(text)))
}

// FormatStandings renders the standings as a short Markdown message.
func FormatStandings(standings []models.Standing, reportURL string) string {
	var b strings.Builder
	b.WriteString("*Standings updated*\n")
	if len(standings) == 0 {
		b.WriteString("_no teams yet_\n")
	}
	for _, s := range standings {
		fmt.Fprintf(&b, "%d. %s: %d\n", s.Rank, escapeMarkdown(s.Team), s.Points)
	}
	if reportURL != "" {
		fmt.Fprintf(&b, "\n[Full report](%s)", reportURL)
	}
	return b.String()
}

func escapeMarkdown(text string) string {
	r := strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")
	return r.Replace(text)
}
