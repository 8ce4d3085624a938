package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
)

// Document текстовый файл для отправки пользователю
type Document struct {
	Filename string
	Content  []byte
}

const (
	RelationshipsFilename = "relations-patient.txt"
	BackgroundFilename    = "historique-patient.txt"
	TranscriptionFilename = "transcription.txt"
	AppointmentsFilename  = "rendez-vous.txt"
	PatientsFilename      = "patients.txt"
)

var whitespace = regexp.MustCompile(`\s+`)

// Relationships карта отношений: блок "Метка: значение" на каждую связь
func Relationships(rels []model.Relationship) Document {
	var b strings.Builder
	for _, r := range rels {
		fmt.Fprintf(&b, "Nom: %s\nRelation: %s\nDescription: %s\nConnections: %s\n\n",
			r.Name, r.Relation, r.Description, strings.Join(r.Connections, ", "))
	}
	return Document{Filename: RelationshipsFilename, Content: []byte(b.String())}
}

// Background биографическая справка с разделами
func Background(summary *model.BackgroundSummary) Document {
	var b strings.Builder
	if summary != nil {
		fmt.Fprintf(&b, "RÉSUMÉ BIOGRAPHIQUE\n\n%s\n\n", summary.Summary)
		if len(summary.Sections) > 0 {
			b.WriteString("SECTIONS DÉTAILLÉES\n\n")
			for _, s := range summary.Sections {
				fmt.Fprintf(&b, "%s\n%s\n\n", s.Title, s.Content)
			}
		}
	}
	return Document{Filename: BackgroundFilename, Content: []byte(b.String())}
}

// Story страницы сказки через пустую строку, имя файла из названия
func Story(story *model.Story) Document {
	return Document{
		Filename: StoryFilename(story.Title),
		Content:  []byte(strings.Join(story.Pages, "\n\n")),
	}
}

// StoryFilename заменяет пробельные последовательности в названии на "_"
func StoryFilename(title string) string {
	name := whitespace.ReplaceAllString(strings.TrimSpace(title), "_")
	if name == "" {
		name = "conte"
	}
	return name + ".txt"
}

func Transcription(text string) Document {
	return Document{Filename: TranscriptionFilename, Content: []byte(text)}
}

// Appointments список приёмов в переданном порядке, время в зоне loc
func Appointments(list []*model.Appointment, loc *time.Location) Document {
	var b strings.Builder
	for _, apt := range list {
		fmt.Fprintf(&b, "Code: %s\nDate: %s\nDurée: %d min\nStatut: %s\n",
			calendar.DisplayCode(apt.PatientCode), apt.Date.In(loc).Format("02.01.2006 15:04"), apt.Duration, apt.Status)
		if apt.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", apt.Notes)
		}
		b.WriteString("\n")
	}
	return Document{Filename: AppointmentsFilename, Content: []byte(b.String())}
}

func Patients(list []*model.Patient) Document {
	var b strings.Builder
	for _, p := range list {
		fmt.Fprintf(&b, "Code: %s\nNom: %s\nÂge: %d\nGenre: %s\n", p.Code, p.FullName(), p.Age, p.Gender)
		if p.Notes != "" {
			fmt.Fprintf(&b, "Notes: %s\n", p.Notes)
		}
		b.WriteString("\n")
	}
	return Document{Filename: PatientsFilename, Content: []byte(b.String())}
}
