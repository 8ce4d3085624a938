package telegramtest

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/generation"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/memory"
	"github.com/Freeeeeet/psy_practice_bot/internal/scratch"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Идентификаторы чата и пользователя в тестовых апдейтах
const (
	ChatID int64 = 1
	UserID int64 = 7
)

// Env обработчики поверх памяти и поддельного Bot API.
// Часы зафиксированы на среде 12.06.2024 08:00 UTC.
type Env struct {
	Server       *Server
	Bot          *bot.Bot
	Handler      *common.Handler
	Appointments *memory.AppointmentRepository
	Patients     *memory.PatientRepository
	Scratch      *scratch.MemoryStore
	Now          time.Time
}

func NewEnv(t *testing.T) *Env {
	t.Helper()

	srv, b := New(t)
	logger := zap.NewNop()
	now := time.Date(2024, 6, 12, 8, 0, 0, 0, time.UTC)

	appointments := memory.NewAppointmentRepository()
	patients := memory.NewPatientRepository()
	store := scratch.NewMemoryStore()
	require.NoError(t, service.SeedFixtures(context.Background(), patients, appointments, now, logger))

	runner := generation.NewRunner(generation.NewSimulatedGenerator(0), nil, logger)
	t.Cleanup(runner.Shutdown)

	h := common.NewHandler(
		service.NewAppointmentService(appointments, patients, time.UTC, nil, logger).WithClock(func() time.Time { return now }),
		service.NewPatientService(patients, nil, logger),
		service.NewAnalysisService(runner, store, logger),
		state.NewManager(),
		nil,
		logger,
	)

	return &Env{
		Server:       srv,
		Bot:          b,
		Handler:      h,
		Appointments: appointments,
		Patients:     patients,
		Scratch:      store,
		Now:          now,
	}
}

// Patient пациент из демонстрационных данных по коду
func (e *Env) Patient(t *testing.T, code string) *model.Patient {
	t.Helper()
	p, err := e.Patients.GetByCode(context.Background(), code)
	require.NoError(t, err)
	require.NotNil(t, p, code)
	return p
}

// Text апдейт с текстовым сообщением от UserID
func Text(text string) *models.Update {
	return &models.Update{Message: &models.Message{
		ID:   1,
		Chat: models.Chat{ID: ChatID, Type: models.ChatTypePrivate},
		From: &models.User{ID: UserID},
		Text: text,
	}}
}

// Callback апдейт с нажатием кнопки под сообщением 42
func Callback(data string) *models.Update {
	return &models.Update{CallbackQuery: &models.CallbackQuery{
		ID:   "cb-1",
		From: models.User{ID: UserID},
		Message: models.MaybeInaccessibleMessage{
			Type: models.MaybeInaccessibleMessageTypeMessage,
			Message: &models.Message{
				ID:   42,
				Chat: models.Chat{ID: ChatID, Type: models.ChatTypePrivate},
			},
		},
		Data: data,
	}}
}
