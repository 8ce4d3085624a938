package handlers

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/state"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/telegramtest"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/scratch"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandlers(t *testing.T) (*Handlers, *telegramtest.Env) {
	t.Helper()
	env := telegramtest.NewEnv(t)
	return NewHandlers(env.Handler), env
}

func TestHandleStart(t *testing.T) {
	h, env := newHandlers(t)
	h.StateManager.Start(telegramtest.UserID, state.StatePatientSearch)

	h.HandleStart(context.Background(), env.Bot, telegramtest.Text("/start"))

	msgs := env.Server.CallsOf("sendMessage")
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0].Fields["text"], "Добро пожаловать")
	assert.Contains(t, msgs[1].Fields["text"], "Главное меню")
	assert.Equal(t, state.StateNone, h.StateManager.GetState(telegramtest.UserID))
}

func TestHandleWeek_SendsImage(t *testing.T) {
	h, env := newHandlers(t)

	h.HandleWeek(context.Background(), env.Bot, telegramtest.Text("/week"))

	photos := env.Server.CallsOf("sendPhoto")
	require.Len(t, photos, 1)
	assert.Equal(t, "week.png", photos[0].Files["photo"])
	assert.Contains(t, photos[0].Fields["caption"], "10 - 16 июня 2024")
	assert.Contains(t, photos[0].Fields["reply_markup"], "week:2024-06-17")
	assert.Contains(t, photos[0].Fields["reply_markup"], "week:2024-06-03")
}

func TestHandleWeek_BadDate(t *testing.T) {
	h, env := newHandlers(t)

	h.HandleWeek(context.Background(), env.Bot, telegramtest.Text("/week 2024-06-10"))

	assert.Empty(t, env.Server.CallsOf("sendPhoto"))
	assert.Contains(t, env.Server.LastText(), "⚠️")
}

func TestHandleAppointments_Search(t *testing.T) {
	h, env := newHandlers(t)

	h.HandleAppointments(context.Background(), env.Bot, telegramtest.Text("/appointments 426"))

	text := env.Server.LastText()
	assert.Contains(t, text, "426247")
	assert.NotContains(t, text, "782523")
}

func TestAppointmentDialog(t *testing.T) {
	h, env := newHandlers(t)
	ctx := context.Background()
	patient := env.Patient(t, "934721")

	h.HandleNewAppointment(ctx, env.Bot, telegramtest.Text("/newappointment"))
	require.Equal(t, state.StateNewAppointmentPatient, h.StateManager.GetState(telegramtest.UserID))

	// Текст на шаге выбора пациента не продвигает диалог
	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("934721"))
	assert.Equal(t, state.StateNewAppointmentPatient, h.StateManager.GetState(telegramtest.UserID))

	h.AcceptAppointmentPatient(ctx, env.Bot, telegramtest.ChatID, telegramtest.UserID, patient.ID)
	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("14.06.2024"))

	// Неверное время оставляет шаг на месте
	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("25:00"))
	assert.Equal(t, state.StateNewAppointmentTime, h.StateManager.GetState(telegramtest.UserID))
	assert.Contains(t, env.Server.LastText(), "⚠️")

	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("17:30"))
	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("."))
	require.Equal(t, state.StateNewAppointmentNotes, h.StateManager.GetState(telegramtest.UserID))

	env.Server.Reset()
	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("Bilan"))

	assert.Equal(t, state.StateNone, h.StateManager.GetState(telegramtest.UserID))
	assert.Len(t, env.Server.CallsOf("sendPhoto"), 1)

	list, err := env.Appointments.List(ctx)
	require.NoError(t, err)
	var created *model.Appointment
	for _, a := range list {
		if a.PatientID == patient.ID && a.Notes == "Bilan" {
			created = a
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, time.Date(2024, 6, 14, 17, 30, 0, 0, time.UTC), created.Date)
	assert.Equal(t, model.AppointmentDefaultDuration, created.Duration)
	assert.Equal(t, "934721", created.PatientCode)
}

func TestPatientDialog(t *testing.T) {
	h, env := newHandlers(t)
	ctx := context.Background()

	h.HandleNewPatient(ctx, env.Bot, telegramtest.Text("/newpatient"))
	for _, text := range []string{"Claire", "Petit", "abc", "39", "f"} {
		h.HandleTextMessage(ctx, env.Bot, telegramtest.Text(text))
	}
	require.Equal(t, state.StateNewPatientNotes, h.StateManager.GetState(telegramtest.UserID))
	h.HandleTextMessage(ctx, env.Bot, telegramtest.Text("Première consultation"))

	list, err := env.Patients.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)

	var created *model.Patient
	for _, p := range list {
		if p.LastName == "Petit" {
			created = p
		}
	}
	require.NotNil(t, created)
	assert.Equal(t, 39, created.Age)
	assert.Equal(t, model.GenderFemale, created.Gender)
	assert.Len(t, created.Code, 6)
	assert.Contains(t, env.Server.LastText(), created.Code)
}

func TestHandleTextMessage_IgnoresCommands(t *testing.T) {
	h, env := newHandlers(t)

	h.HandleTextMessage(context.Background(), env.Bot, telegramtest.Text("/unknown"))

	assert.Empty(t, env.Server.Calls())
}

func TestHandleTextMessage_NoDialog(t *testing.T) {
	h, env := newHandlers(t)

	h.HandleTextMessage(context.Background(), env.Bot, telegramtest.Text("bonjour"))

	assert.Contains(t, env.Server.LastText(), "Не понимаю")
}

func TestHandleCancel(t *testing.T) {
	h, env := newHandlers(t)
	ctx := context.Background()

	h.HandleCancel(ctx, env.Bot, telegramtest.Text("/cancel"))
	assert.Contains(t, env.Server.LastText(), "Нечего отменять")

	h.StateManager.Start(telegramtest.UserID, state.StateNewPatientAge)
	h.HandleCancel(ctx, env.Bot, telegramtest.Text("/cancel"))
	assert.Contains(t, env.Server.LastText(), "Действие отменено")
	assert.Equal(t, state.StateNone, h.StateManager.GetState(telegramtest.UserID))
}

func TestHandleVoice_StoresTranscription(t *testing.T) {
	h, env := newHandlers(t)
	ctx := context.Background()

	update := telegramtest.Text("")
	update.Message.Voice = &models.Voice{FileID: "voice-1", Duration: 12}
	require.True(t, IsVoice(update))

	h.HandleVoice(ctx, env.Bot, update)
	assert.Contains(t, env.Server.CallsOf("sendMessage")[0].Fields["text"], "Транскрибирую")

	assert.Eventually(t, func() bool {
		text, ok, err := env.Scratch.Get(ctx, telegramtest.UserID, scratch.KeyTranscription)
		return err == nil && ok && text != ""
	}, 2*time.Second, 10*time.Millisecond)

	assert.Eventually(t, func() bool {
		for _, c := range env.Server.CallsOf("sendMessage") {
			if strings.Contains(c.Fields["text"], "Транскрипция готова") {
				return true
			}
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)
}

func TestIsVoice(t *testing.T) {
	assert.False(t, IsVoice(&models.Update{}))
	assert.False(t, IsVoice(telegramtest.Text("hello")))

	audio := telegramtest.Text("")
	audio.Message.Audio = &models.Audio{FileID: "a-1"}
	assert.True(t, IsVoice(audio))
}

func TestCommandArg(t *testing.T) {
	assert.Equal(t, "426", commandArg("/appointments 426"))
	assert.Equal(t, "Jean Dupont", commandArg("/patients  Jean Dupont "))
	assert.Equal(t, "", commandArg("/week"))
}

func TestUpdateKind(t *testing.T) {
	assert.Equal(t, "command", UpdateKind(telegramtest.Text("/start")))
	assert.Equal(t, "text", UpdateKind(telegramtest.Text("bonjour")))
	assert.Equal(t, "callback", UpdateKind(telegramtest.Callback("noop")))
	assert.Equal(t, "other", UpdateKind(&models.Update{}))
}
