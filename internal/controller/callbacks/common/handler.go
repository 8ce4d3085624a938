package common

import (
	"context"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Metrics счётчики уровня бота
type Metrics interface {
	ObserveUpdate(kind string)
	ObserveRender(seconds float64)
}

type nopMetrics struct{}

func (nopMetrics) ObserveUpdate(string)  {}
func (nopMetrics) ObserveRender(float64) {}

// Handler общие зависимости команд и callback'ов
type Handler struct {
	Appointments *service.AppointmentService
	Patients     *service.PatientService
	Analysis     *service.AnalysisService
	StateManager *state.Manager
	Metrics      Metrics
	Logger       *zap.Logger
}

func NewHandler(
	appointments *service.AppointmentService,
	patients *service.PatientService,
	analysis *service.AnalysisService,
	stateManager *state.Manager,
	metrics Metrics,
	logger *zap.Logger,
) *Handler {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Handler{
		Appointments: appointments,
		Patients:     patients,
		Analysis:     analysis,
		StateManager: stateManager,
		Metrics:      metrics,
		Logger:       logger,
	}
}

// SendMessage отправляет сообщение и логирует если не удалось
func (h *Handler) SendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string, kb *models.InlineKeyboardMarkup) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	}
	if kb != nil {
		params.ReplyMarkup = kb
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.Logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// SendError отправляет пользователю текст ошибки err
func (h *Handler) SendError(ctx context.Context, b *bot.Bot, chatID int64, err error) {
	if _, ok := service.AsValidation(err); !ok && !IsUserError(err) {
		h.Logger.Error("Request failed", zap.Int64("chat_id", chatID), zap.Error(err))
	}
	h.SendMessage(ctx, b, chatID, ErrorMessage(err), nil)
}
