package telegram

import (
	"fmt"
	"html"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aliskhannn/logic-master/internal/domain/entities"
)

var severityIcons = map[entities.Severity]string{
	entities.SeverityInfo:    "ℹ️",
	entities.SeveritySuccess: "🏆",
	entities.SeverityWarning: "⚠️",
	entities.SeverityError:   "❌",
}

func formatNotification(message string, severity entities.Severity) string {
	icon, ok := severityIcons[severity]
	if !ok {
		icon = severityIcons[entities.SeverityInfo]
	}
	return fmt.Sprintf("%s <b>Logic Master</b>\n%s", icon, html.EscapeString(message))
}

func newHTMLMessage(chatID int64, text string) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	return msg
}
