package common

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/psy_practice_bot/internal/export"
	"github.com/Freeeeeet/psy_practice_bot/internal/generation"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// notifyTimeout ограничивает отправку результата, пришедшего уже после ответа на апдейт
const notifyTimeout = 30 * time.Second

// NotifyGeneration возвращает callback, который доставляет результат генерации в чат
func (h *Handler) NotifyGeneration(b *bot.Bot, chatID int64) func(generation.Outcome) {
	return func(out generation.Outcome) {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()

		h.Logger.Info("Generation finished",
			zap.Int64("chat_id", chatID),
			zap.String("kind", string(out.Request.Kind)),
			zap.Bool("ok", out.Err == nil))

		if out.Err != nil {
			h.SendError(ctx, b, chatID, out.Err)
			return
		}
		h.deliver(ctx, b, chatID, out)
	}
}

func (h *Handler) deliver(ctx context.Context, b *bot.Bot, chatID int64, out generation.Outcome) {
	res := out.Result
	switch res.Kind {
	case generation.KindTranscription:
		text := "✅ Транскрипция готова\n\n" + formatting.Truncate(res.Text, 1000)
		h.SendMessage(ctx, b, chatID, text, keyboard.AnalysisMenu(out.Request.PatientID, true, false))

	case generation.KindRelationshipMap:
		h.SendMessage(ctx, b, chatID, formatting.FormatRelationships(res.Relationships), nil)
		h.SendDocument(ctx, b, chatID, export.Relationships(res.Relationships), "📄 Карта отношений")

	case generation.KindBackgroundSummary:
		h.SendMessage(ctx, b, chatID, formatting.FormatBackground(res.Background), nil)
		h.SendDocument(ctx, b, chatID, export.Background(res.Background), "📄 Биографическая справка")

	case generation.KindSessionSummary:
		h.SendMessage(ctx, b, chatID, formatting.Truncate("📝 Резюме сеанса\n\n"+res.Text, formatting.MessageLimit), nil)

	case generation.KindStory:
		if res.Story == nil {
			return
		}
		h.SendMessage(ctx, b, chatID, formatting.FormatStoryPreview(res.Story), nil)
		h.SendDocument(ctx, b, chatID, export.Story(res.Story), "📄 "+res.Story.Title)

	case generation.KindGenogram:
		if res.Genogram == nil {
			return
		}
		h.SendMessage(ctx, b, chatID,
			fmt.Sprintf("🧬 Генограмма v%d готова\n%s", res.Genogram.Version, res.Genogram.DocumentURL), nil)

	case generation.KindTherapyLeads:
		text := "✅ Направления обновлены\n\n" + strings.Join(res.Leads, "\n")
		h.SendMessage(ctx, b, chatID, formatting.Truncate(text, formatting.MessageLimit),
			keyboard.NewBuilder().Row(keyboard.Button("💡 Направления", keyboard.LeadsPrefix+out.Request.PatientID)).Build())

	case generation.KindPatientHistory:
		if res.History == nil {
			return
		}
		h.SendMessage(ctx, b, chatID, formatting.FormatHistory(res.History), nil)
		h.SendDocument(ctx, b, chatID, export.Background(&res.History.Summary), "📄 "+res.History.Title)

	default:
		h.Logger.Warn("Unknown generation result", zap.String("kind", string(res.Kind)))
	}
}
