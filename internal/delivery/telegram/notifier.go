package telegram

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

// Sender is the part of the bot API the notifier uses.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// NewBot connects to the Telegram Bot API.
func NewBot(token string) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot: %w", err)
	}
	return bot, nil
}

// Notifier forwards game notifications to a single configured chat.
type Notifier struct {
	bot    Sender
	chatID int64
	logger *zap.Logger
}

// NewNotifier creates a new Notifier.
func NewNotifier(bot Sender, chatID int64, logger *zap.Logger) *Notifier {
	return &Notifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
	}
}

// Notify sends the message. Failures are logged and otherwise ignored.
func (n *Notifier) Notify(ctx context.Context, message string, severity entities.Severity) {
	if ctx.Err() != nil {
		return
	}

	msg := newHTMLMessage(n.chatID, formatNotification(message, severity))
	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("failed to send telegram message",
			zap.Int64("chat_id", n.chatID),
			zap.Error(err),
		)
	}
}
