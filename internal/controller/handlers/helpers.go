package handlers

import (
	"strings"

	"github.com/go-telegram/bot/models"
)

// commandArg текст после команды: "/appointments 426" -> "426"
func commandArg(text string) string {
	_, arg, _ := strings.Cut(strings.TrimSpace(text), " ")
	return strings.TrimSpace(arg)
}

// sender чат и пользователь сообщения
func sender(msg *models.Message) (chatID, userID int64) {
	chatID = msg.Chat.ID
	userID = chatID
	if msg.From != nil {
		userID = msg.From.ID
	}
	return chatID, userID
}
