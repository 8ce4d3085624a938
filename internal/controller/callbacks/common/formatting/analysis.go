package formatting

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// MessageLimit максимальная длина текста сообщения Telegram
const MessageLimit = 4096

// Truncate обрезает текст по рунам и добавляет многоточие
func Truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-1]) + "…"
}

// FormatAnalysisScreen состояние анализа для выбранного пациента
func FormatAnalysisScreen(patientCode, transcription string) string {
	var b strings.Builder
	b.WriteString("🎙 Анализ сеанса\n\n")
	if patientCode != "" {
		fmt.Fprintf(&b, "👤 Пациент: %s\n\n", patientCode)
	}
	if transcription == "" {
		b.WriteString("Транскрипции нет. Отправьте голосовое сообщение или вставьте текст.")
		return b.String()
	}
	b.WriteString("📄 Транскрипция:\n")
	b.WriteString(Truncate(transcription, 1000))
	return b.String()
}

func FormatRelationships(rels []model.Relationship) string {
	var b strings.Builder
	b.WriteString("🕸 Карта отношений\n")
	for _, r := range rels {
		fmt.Fprintf(&b, "\n• %s (%s)\n  %s", r.Name, r.Relation, r.Description)
		if len(r.Connections) > 0 {
			fmt.Fprintf(&b, "\n  ↔ %s", strings.Join(r.Connections, ", "))
		}
	}
	return Truncate(b.String(), MessageLimit)
}

func FormatBackground(summary *model.BackgroundSummary) string {
	if summary == nil {
		return "📚 Биографическая справка пуста"
	}
	var b strings.Builder
	b.WriteString("📚 Биографическая справка\n\n")
	b.WriteString(summary.Summary)
	for _, s := range summary.Sections {
		fmt.Fprintf(&b, "\n\n▪️ %s\n%s", s.Title, s.Content)
	}
	return Truncate(b.String(), MessageLimit)
}

// FormatStoryPreview первая страница сказки
func FormatStoryPreview(story *model.Story) string {
	text := fmt.Sprintf("📖 %s\n%d стр.", story.Title, len(story.Pages))
	if len(story.Pages) > 0 {
		text += "\n\n" + story.Pages[0]
	}
	return Truncate(text, MessageLimit)
}

// FormatHistory справка пациента с датой создания
func FormatHistory(h *model.PatientHistory) string {
	return Truncate(fmt.Sprintf("📜 %s · %s\n\n", h.Title, FormatDateTime(h.CreatedAt))+FormatBackground(&h.Summary), MessageLimit)
}
