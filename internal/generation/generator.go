package generation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/google/uuid"
)

// Kind тип генерируемого материала
type Kind string

const (
	KindTranscription     Kind = "transcription"
	KindRelationshipMap   Kind = "relationship_map"
	KindBackgroundSummary Kind = "background_summary"
	KindStory             Kind = "story"
	KindSessionSummary    Kind = "session_summary"
	KindGenogram          Kind = "genogram"
	KindTherapyLeads      Kind = "therapy_leads"
	KindPatientHistory    Kind = "patient_history"
)

var (
	ErrUnknownKind = errors.New("unknown generation kind")
	ErrEmptyInput  = errors.New("nothing to analyze")
)

// Request входные данные задачи генерации
type Request struct {
	Owner     int64 // чат, которому принадлежит задача
	Kind      Kind
	PatientID string
	Input     string // транскрипция или идентификатор голосового сообщения
	Title     string // название сказки
	Version   int    // предварительный номер версии генограммы
}

// Result результат генерации; заполнено только поле своего типа
type Result struct {
	Kind          Kind
	Text          string
	Relationships []model.Relationship
	Background    *model.BackgroundSummary
	Story         *model.Story
	Genogram      *model.Genogram
	Leads         []string
	History       *model.PatientHistory
}

// Generator внешний сервис генерации
type Generator interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// SimulatedGenerator выдаёт заготовленные результаты после фиксированной задержки
type SimulatedGenerator struct {
	delay time.Duration
	now   func() time.Time
}

func NewSimulatedGenerator(delay time.Duration) *SimulatedGenerator {
	return &SimulatedGenerator{delay: delay, now: time.Now}
}

func (g *SimulatedGenerator) Generate(ctx context.Context, req Request) (Result, error) {
	if err := validate(req); err != nil {
		return Result{}, err
	}

	timer := time.NewTimer(g.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-timer.C:
	}

	res := Result{Kind: req.Kind}
	switch req.Kind {
	case KindTranscription:
		res.Text = sampleTranscription
	case KindRelationshipMap:
		res.Relationships = sampleRelationships()
	case KindBackgroundSummary:
		res.Background = sampleBackground()
	case KindSessionSummary:
		res.Text = sampleSessionSummary
	case KindStory:
		res.Story = &model.Story{
			ID:        uuid.NewString(),
			PatientID: req.PatientID,
			Title:     req.Title,
			Pages:     append([]string(nil), sampleStoryPages...),
			CreatedAt: g.now(),
		}
	case KindGenogram:
		res.Genogram = &model.Genogram{
			Version:     req.Version,
			DocumentURL: GenogramURL(req.Version),
			Notes:       "Génogramme généré automatiquement",
			CreatedAt:   g.now(),
		}
	case KindTherapyLeads:
		res.Leads = append([]string(nil), sampleLeads...)
	case KindPatientHistory:
		res.History = &model.PatientHistory{
			ID:        uuid.NewString(),
			PatientID: req.PatientID,
			Title:     "Historique patient",
			Summary:   *sampleBackground(),
			CreatedAt: g.now(),
		}
	}
	return res, nil
}

// GenogramURL адрес документа версии генограммы
func GenogramURL(version int) string {
	return fmt.Sprintf("/genogram-v%d.pdf", version)
}

func validate(req Request) error {
	switch req.Kind {
	case KindRelationshipMap, KindBackgroundSummary:
		if req.Input == "" {
			return ErrEmptyInput
		}
	case KindStory:
		if req.Title == "" {
			return fmt.Errorf("story title: %w", ErrEmptyInput)
		}
	case KindGenogram:
		if req.Version < 1 {
			return fmt.Errorf("genogram version %d: %w", req.Version, ErrEmptyInput)
		}
	case KindTherapyLeads, KindPatientHistory:
		if req.PatientID == "" {
			return fmt.Errorf("%s without patient: %w", req.Kind, ErrEmptyInput)
		}
	case KindTranscription, KindSessionSummary:
	default:
		return fmt.Errorf("%q: %w", req.Kind, ErrUnknownKind)
	}
	return nil
}
