package controller

import (
	"context"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/handlers"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

type BotController struct {
	bot             *bot.Bot
	handlers        *handlers.Handlers
	callbackHandler *callbacks.Handler
	logger          *zap.Logger
}

func NewBotController(botInstance *bot.Bot, base *common.Handler, logger *zap.Logger) *BotController {
	return &BotController{
		bot:             botInstance,
		handlers:        handlers.NewHandlers(base),
		callbackHandler: callbacks.NewHandler(base),
		logger:          logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды без аргументов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newappointment", bot.MatchTypeExact, c.handlers.HandleNewAppointment)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/newpatient", bot.MatchTypeExact, c.handlers.HandleNewPatient)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/transcript", bot.MatchTypeExact, c.handlers.HandleTranscript)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analysis", bot.MatchTypeExact, c.handlers.HandleAnalysis)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Команды с необязательным аргументом: "/week 10.06.2024"
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/appointments", bot.MatchTypePrefix, c.handlers.HandleAppointments)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/day", bot.MatchTypePrefix, c.handlers.HandleDay)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/patients", bot.MatchTypePrefix, c.handlers.HandlePatients)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/export", bot.MatchTypePrefix, c.handlers.HandleExport)

	// Голосовые сообщения для транскрипции
	c.bot.RegisterHandlerMatchFunc(handlers.IsVoice, c.handlers.HandleVoice)

	// Обработчик текстовых сообщений (для диалогов с состояниями)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.callbackHandler.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Главное меню"},
		{Command: "week", Description: "📅 Неделя приёмов"},
		{Command: "appointments", Description: "📋 Все приёмы"},
		{Command: "day", Description: "🗓 Приёмы дня"},
		{Command: "newappointment", Description: "➕ Новый приём"},
		{Command: "patients", Description: "👥 Пациенты"},
		{Command: "newpatient", Description: "👤 Новый пациент"},
		{Command: "transcript", Description: "✏️ Ввести транскрипцию"},
		{Command: "analysis", Description: "🎙 Анализ сеанса"},
		{Command: "export", Description: "📄 Экспорт приёмов"},
		{Command: "cancel", Description: "🚫 Отменить действие"},
		{Command: "help", Description: "❓ Справка"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает long polling и блокируется до отмены ctx
func (c *BotController) Start(ctx context.Context) {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
}
