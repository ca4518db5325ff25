package services

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/planner"
)

// TelegramNotifier pushes the morning agenda to a single chat. A nil notifier
// is valid and does nothing, so wiring stays unconditional.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(botToken string, chatID int64) (*TelegramNotifier, error) {
	if botToken == "" || chatID == 0 {
		return nil, nil
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("telegram auth failed: %w", err)
	}
	log.Printf("[tg] authorized as %s", bot.Self.UserName)
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (t *TelegramNotifier) SendAgenda(today models.Date, tasks []models.Task) error {
	if t == nil || t.bot == nil {
		return nil
	}

	pct := planner.CompletionPercentage(tasks, today)
	agenda := planner.Agenda(tasks, today)

	var b strings.Builder
	fmt.Fprintf(&b, "<b>%s</b> — %d%% completed\n", today, pct)
	if len(agenda) == 0 {
		b.WriteString("Nothing planned for today.")
	}
	for _, task := range agenda {
		mark := "•"
		if task.Completed() {
			mark = "✔"
		}
		fmt.Fprintf(&b, "%s [%s] %s\n", mark, task.Level, task.Title)
	}

	msg := tgbotapi.NewMessage(t.chatID, b.String())
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := t.bot.Send(msg); err != nil {
		log.Printf("[tg][send][err] %v", err)
		return fmt.Errorf("telegram sendMessage failed: %w", err)
	}
	log.Printf("[tg][send][ok] chatID=%d tasks=%d", t.chatID, len(agenda))
	return nil
}
