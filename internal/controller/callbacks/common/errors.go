package common

import (
	"context"
	"errors"

	"github.com/Freeeeeet/psy_practice_bot/internal/generation"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
)

var (
	ErrNoMessage     = errors.New("no message in callback")
	ErrInvalidFormat = errors.New("invalid callback format")
	ErrDialogExpired = errors.New("dialog data lost")
)

// IsUserError ошибки, которые не нужно логировать как сбой
func IsUserError(err error) bool {
	return errors.Is(err, service.ErrPatientNotFound) ||
		errors.Is(err, service.ErrAppointmentNotFound) ||
		errors.Is(err, service.ErrNoTranscription) ||
		errors.Is(err, generation.ErrInProgress) ||
		errors.Is(err, generation.ErrEmptyInput) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, ErrInvalidFormat) ||
		errors.Is(err, ErrDialogExpired)
}

// ErrorMessage возвращает пользовательское сообщение для ошибки
func ErrorMessage(err error) string {
	if verr, ok := service.AsValidation(err); ok {
		return "⚠️ " + verr.Message
	}

	switch {
	case errors.Is(err, service.ErrPatientNotFound):
		return "❌ Пациент не найден"
	case errors.Is(err, service.ErrAppointmentNotFound):
		return "❌ Приём не найден"
	case errors.Is(err, service.ErrNoTranscription), errors.Is(err, generation.ErrEmptyInput):
		return "❌ Нет транскрипции. Отправьте голосовое сообщение или вставьте текст: /transcript"
	case errors.Is(err, service.ErrCodeSpaceExhausted):
		return "❌ Не удалось выделить код пациента. Попробуйте ещё раз."
	case errors.Is(err, generation.ErrInProgress):
		return "⏳ Генерация уже выполняется, дождитесь результата"
	case errors.Is(err, context.Canceled):
		return "🚫 Генерация отменена"
	case errors.Is(err, ErrNoMessage):
		return "❌ Ошибка обработки сообщения"
	case errors.Is(err, ErrInvalidFormat):
		return "❌ Неверный формат данных"
	case errors.Is(err, ErrDialogExpired):
		return "❌ Данные диалога потеряны. Начните заново."
	default:
		return "❌ Произошла ошибка. Попробуйте позже."
	}
}
