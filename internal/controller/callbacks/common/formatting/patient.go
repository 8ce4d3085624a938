package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// FormatPatientCard карточка пациента
func FormatPatientCard(p *model.Patient, appointments int) string {
	text := fmt.Sprintf(
		"👤 %s\n\n"+
			"🔢 Код: %s\n"+
			"🎂 Возраст: %d %s\n"+
			"⚧ Пол: %s\n"+
			"📅 Приёмов: %d\n"+
			"🕒 Изменена: %s",
		p.FullName(),
		p.Code,
		p.Age, PluralizeYears(p.Age),
		GenderLabel(p.Gender),
		appointments,
		FormatDateTime(p.UpdatedAt),
	)
	if p.Notes != "" {
		text += "\n\n📝 " + p.Notes
	}
	return text
}

func FormatPatientsHeader(count int, term string) string {
	if count == 0 {
		if term != "" {
			return fmt.Sprintf("🔍 По запросу «%s» никого не найдено.", term)
		}
		return "👥 Пациентов пока нет.\n\nДобавьте первого: /newpatient"
	}
	header := fmt.Sprintf("👥 %d %s", count, PluralizePatients(count))
	if term != "" {
		header += fmt.Sprintf(" по запросу «%s»", term)
	}
	return header
}

// FormatStoriesHeader заголовок списка сказок
func FormatStoriesHeader(p *model.Patient, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📖 Сказки для %s (%s)\n", p.FullName(), p.Code)
	if count == 0 {
		b.WriteString("\nСказок пока нет.")
	} else {
		fmt.Fprintf(&b, "%d %s", count, PluralizeStories(count))
	}
	return b.String()
}

// FormatGenograms версии генограммы пациента
func FormatGenograms(p *model.Patient, versions []model.Genogram) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🧬 Генограмма %s (%s)\n", p.FullName(), p.Code)
	if len(versions) == 0 {
		b.WriteString("\nВерсий пока нет.")
		return b.String()
	}
	for _, g := range versions {
		fmt.Fprintf(&b, "\nv%d · %s · %s", g.Version, FormatDate(g.CreatedAt), g.DocumentURL)
		if g.Notes != "" {
			b.WriteString("\n    " + g.Notes)
		}
	}
	return b.String()
}

// FormatLeads направления работы; пустой список - подсказка
func FormatLeads(p *model.Patient, leads []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💡 Направления работы с %s (%s)\n", p.FullName(), p.Code)
	if len(leads) == 0 {
		b.WriteString("\nНаправлений пока нет.")
		return b.String()
	}
	for i, l := range leads {
		fmt.Fprintf(&b, "\n%d. %s", i+1, l)
	}
	return Truncate(b.String(), MessageLimit)
}

func FormatHistoriesHeader(p *model.Patient, count int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📜 Справки %s (%s)\n", p.FullName(), p.Code)
	if count == 0 {
		b.WriteString("\nСправок пока нет.")
	} else {
		fmt.Fprintf(&b, "%d %s", count, PluralizeHistories(count))
	}
	return b.String()
}
