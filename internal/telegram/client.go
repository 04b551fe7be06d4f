// Package telegram presents the report flow as a Telegram bot.
package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/braincast-labs/braincast/internal/logger"
	"github.com/braincast-labs/braincast/internal/models"
	"github.com/braincast-labs/braincast/internal/report"
)

// Reporter is the orchestrator surface the bot drives.
type Reporter interface {
	Run(ctx context.Context) error
	Reset()
	Current() report.Session
}

// Client handles Telegram commands and report notifications.
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
	reporter       Reporter
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration, reporter Reporter) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
		reporter:       reporter,
	}, nil
}

// ListenForCommands starts a goroutine that polls for Telegram updates and
// handles bot commands. It returns immediately; the goroutine stops when
// ctx is cancelled.
func (c *Client) ListenForCommands(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := c.bot.GetUpdatesChan(u)

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.bot.StopReceivingUpdates()
				return
			case update, ok := <-updates:
				if !ok {
					return
				}
				if update.Message != nil && update.Message.IsCommand() {
					c.handleCommand(ctx, update.Message)
				}
			}
		}
	}()
}

func (c *Client) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "ping":
		c.reply(msg.Chat.ID, "Pong")
	case "start":
		c.handleStart(ctx, msg.Chat.ID)
	case "new":
		c.reporter.Reset()
		c.reply(msg.Chat.ID, "Back on the landing screen. Send /start for a new report.")
	}
}

// handleStart is the landing-screen action: it announces the loading phase,
// runs one report generation, and sends the result.
func (c *Client) handleStart(ctx context.Context, chatID int64) {
	c.reply(chatID, "🧠 Reading the market...")

	if err := c.reporter.Run(ctx); err != nil {
		c.reply(chatID, "A report is already on screen or being generated. Send /new first.")
		return
	}
	if err := c.SendReport(c.reporter.Current()); err != nil {
		logger.Error("Failed to send report: %v", err)
	}
}

func (c *Client) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	c.bot.Send(msg) //nolint:errcheck
}

// SendReport sends the rendered report screen for the given session.
func (c *Client) SendReport(s report.Session) error {
	return c.sendMarkdownV2(formatReport(s))
}

// sendMarkdownV2 sends a MarkdownV2 message with linear-backoff retry.
func (c *Client) sendMarkdownV2(text string) error {
	msg := tgbotapi.NewMessage(c.chatID, text)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		if _, err := c.bot.Send(msg); err == nil {
			return nil
		} else {
			lastErr = err
		}
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}
	return fmt.Errorf("failed after %d retries: %w", c.maxRetries, lastErr)
}

// formatReport formats a report session into a Telegram MarkdownV2 message.
func formatReport(s report.Session) string {
	if s.Snapshot == nil || s.Report == nil {
		return escapeMarkdownV2("No report yet. Send /start to generate one.")
	}

	directionEmoji := "📈"
	switch s.Report.Direction {
	case models.Short:
		directionEmoji = "📉"
	case models.None:
		directionEmoji = "⏸️"
	}

	message := "🧠 *Braincast Scalp Report*\n\n"
	message += fmt.Sprintf("💰 BTC %s \\(%s 24h\\)\n",
		escapeMarkdownV2(fmt.Sprintf("$%d", s.Snapshot.Price)),
		escapeMarkdownV2(fmt.Sprintf("%+.2f%%", s.Snapshot.Change24h)),
	)
	message += fmt.Sprintf("%s *%s* %sx\n",
		directionEmoji,
		escapeMarkdownV2(string(s.Report.Direction)),
		escapeMarkdownV2(strconv.Itoa(s.Report.Leverage)),
	)
	message += fmt.Sprintf("🎯 Entry %s → Target %s\n",
		escapeMarkdownV2(fmt.Sprintf("%.0f", s.Report.EntryPrice)),
		escapeMarkdownV2(fmt.Sprintf("%.0f", s.Report.TargetPrice)),
	)
	message += fmt.Sprintf("🛑 Stop %s\n",
		escapeMarkdownV2(fmt.Sprintf("%.0f", s.Report.StopPrice)),
	)

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2.
func escapeMarkdownV2(text string) string {
	var b strings.Builder
	b.Grow(len(text) + len(text)/4) // pre-allocate with room for escapes
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			b.WriteByte('\\')
		}
		b.WriteRune(char)
	}
	return b.String()
}
