package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/generation"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/scratch"
	"go.uber.org/zap"
)

const scratchTimeout = 5 * time.Second

// AnalysisService транскрипции, анализ, сказки и генограммы поверх фоновых генераций
type AnalysisService struct {
	runner  *generation.Runner
	scratch scratch.Store
	logger  *zap.Logger

	mu        sync.RWMutex
	stories   map[string][]*model.Story
	genograms map[string][]model.Genogram
	leads     map[string][]string
	histories map[string][]*model.PatientHistory
}

func NewAnalysisService(runner *generation.Runner, store scratch.Store, logger *zap.Logger) *AnalysisService {
	return &AnalysisService{
		runner:    runner,
		scratch:   store,
		logger:    logger,
		stories:   make(map[string][]*model.Story),
		genograms: make(map[string][]model.Genogram),
		leads:     make(map[string][]string),
		histories: make(map[string][]*model.PatientHistory),
	}
}

// Transcribe запускает транскрипцию голосового сообщения.
// Результат сохраняется в черновик чата перед вызовом done.
func (s *AnalysisService) Transcribe(ctx context.Context, owner int64, voiceRef string, done func(generation.Outcome)) error {
	req := generation.Request{Owner: owner, Kind: generation.KindTranscription, Input: voiceRef}
	return s.runner.Start(context.WithoutCancel(ctx), req, func(out generation.Outcome) {
		if out.Err == nil {
			if err := s.storeScratch(owner, scratch.KeyTranscription, out.Result.Text); err != nil {
				out.Err = err
			}
		}
		done(out)
	})
}

// SaveTranscription сохраняет вставленный или отредактированный текст
func (s *AnalysisService) SaveTranscription(ctx context.Context, owner int64, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return invalid("transcription", "Текст транскрипции пуст")
	}
	if err := s.scratch.Set(ctx, owner, scratch.KeyTranscription, text); err != nil {
		return fmt.Errorf("save transcription: %w", err)
	}
	return nil
}

// Transcription текущий черновик транскрипции чата
func (s *AnalysisService) Transcription(ctx context.Context, owner int64) (string, error) {
	text, ok, err := s.scratch.Get(ctx, owner, scratch.KeyTranscription)
	if err != nil {
		return "", fmt.Errorf("load transcription: %w", err)
	}
	if !ok || strings.TrimSpace(text) == "" {
		return "", ErrNoTranscription
	}
	return text, nil
}

// ClearTranscription удаляет черновик
func (s *AnalysisService) ClearTranscription(ctx context.Context, owner int64) error {
	if err := s.scratch.Delete(ctx, owner, scratch.KeyTranscription); err != nil {
		return fmt.Errorf("clear transcription: %w", err)
	}
	return nil
}

// BindPatient запоминает пациента, к которому относится анализ
func (s *AnalysisService) BindPatient(ctx context.Context, owner int64, p *model.Patient) error {
	if err := s.scratch.Set(ctx, owner, scratch.KeyPatientID, p.ID); err != nil {
		return fmt.Errorf("bind patient: %w", err)
	}
	if err := s.scratch.Set(ctx, owner, scratch.KeyPatientCode, p.Code); err != nil {
		return fmt.Errorf("bind patient: %w", err)
	}
	return nil
}

// BoundPatient код и id пациента из черновика; пустые строки, если не выбран
func (s *AnalysisService) BoundPatient(ctx context.Context, owner int64) (id, code string, err error) {
	id, _, err = s.scratch.Get(ctx, owner, scratch.KeyPatientID)
	if err != nil {
		return "", "", fmt.Errorf("load bound patient: %w", err)
	}
	code, _, err = s.scratch.Get(ctx, owner, scratch.KeyPatientCode)
	if err != nil {
		return "", "", fmt.Errorf("load bound patient: %w", err)
	}
	return id, code, nil
}

// Analyze запускает карту отношений и биографическую справку по транскрипции.
// done вызывается отдельно для каждого результата.
func (s *AnalysisService) Analyze(ctx context.Context, owner int64, done func(generation.Outcome)) error {
	text, err := s.Transcription(ctx, owner)
	if err != nil {
		return err
	}

	base := context.WithoutCancel(ctx)
	relErr := s.runner.Start(base, generation.Request{Owner: owner, Kind: generation.KindRelationshipMap, Input: text}, done)
	bgErr := s.runner.Start(base, generation.Request{Owner: owner, Kind: generation.KindBackgroundSummary, Input: text}, done)

	// Обе задачи уже идут: повторный запуск
	if relErr != nil && bgErr != nil {
		return relErr
	}
	return nil
}

// SessionSummary генерирует резюме сеанса по транскрипции
func (s *AnalysisService) SessionSummary(ctx context.Context, owner int64, done func(generation.Outcome)) error {
	text, err := s.Transcription(ctx, owner)
	if err != nil {
		return err
	}
	req := generation.Request{Owner: owner, Kind: generation.KindSessionSummary, Input: text}
	return s.runner.Start(context.WithoutCancel(ctx), req, done)
}

// GenerateStory генерирует терапевтическую сказку и добавляет её пациенту
func (s *AnalysisService) GenerateStory(ctx context.Context, owner int64, patientID, title string, done func(generation.Outcome)) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return invalid("title", "Название сказки обязательно")
	}
	req := generation.Request{Owner: owner, Kind: generation.KindStory, PatientID: patientID, Title: title}
	return s.runner.Start(context.WithoutCancel(ctx), req, func(out generation.Outcome) {
		if out.Err == nil && out.Result.Story != nil {
			s.mu.Lock()
			s.stories[patientID] = append(s.stories[patientID], out.Result.Story)
			s.mu.Unlock()
		}
		done(out)
	})
}

// Stories сказки пациента в порядке создания
func (s *AnalysisService) Stories(patientID string) []*model.Story {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.Story(nil), s.stories[patientID]...)
}

// Story ищет сказку пациента по id
func (s *AnalysisService) Story(patientID, storyID string) (*model.Story, bool) {
	for _, st := range s.Stories(patientID) {
		if st.ID == storyID {
			return st, true
		}
	}
	return nil, false
}

// FindStory ищет сказку по id среди всех пациентов
func (s *AnalysisService) FindStory(storyID string) (*model.Story, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range s.stories {
		for _, st := range list {
			if st.ID == storyID {
				return st, true
			}
		}
	}
	return nil, false
}

// GenerateGenogram запрашивает новую версию документа генограммы
func (s *AnalysisService) GenerateGenogram(ctx context.Context, owner int64, patientID string, done func(generation.Outcome)) error {
	s.mu.RLock()
	version := len(s.genograms[patientID]) + 1
	s.mu.RUnlock()

	req := generation.Request{Owner: owner, Kind: generation.KindGenogram, PatientID: patientID, Version: version}
	return s.runner.Start(context.WithoutCancel(ctx), req, func(out generation.Outcome) {
		if out.Err == nil && out.Result.Genogram != nil {
			g := *out.Result.Genogram

			// Окончательный номер выдаётся при сохранении, под той же блокировкой
			s.mu.Lock()
			g.Version = len(s.genograms[patientID]) + 1
			g.DocumentURL = generation.GenogramURL(g.Version)
			s.genograms[patientID] = append(s.genograms[patientID], g)
			s.mu.Unlock()

			out.Result.Genogram = &g
		}
		done(out)
	})
}

// Genograms версии генограммы пациента
func (s *AnalysisService) Genograms(patientID string) []model.Genogram {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Genogram(nil), s.genograms[patientID]...)
}

// GenerateLeads заново подбирает направления работы с пациентом; прежний список заменяется
func (s *AnalysisService) GenerateLeads(ctx context.Context, owner int64, patientID string, done func(generation.Outcome)) error {
	req := generation.Request{Owner: owner, Kind: generation.KindTherapyLeads, PatientID: patientID}
	return s.runner.Start(context.WithoutCancel(ctx), req, func(out generation.Outcome) {
		if out.Err == nil {
			s.mu.Lock()
			s.leads[patientID] = append([]string(nil), out.Result.Leads...)
			s.mu.Unlock()
		}
		done(out)
	})
}

// Leads текущие направления работы с пациентом
func (s *AnalysisService) Leads(patientID string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.leads[patientID]...)
}

// GenerateHistory создаёт новую биографическую справку пациента; прежние сохраняются
func (s *AnalysisService) GenerateHistory(ctx context.Context, owner int64, patientID string, done func(generation.Outcome)) error {
	req := generation.Request{Owner: owner, Kind: generation.KindPatientHistory, PatientID: patientID}
	return s.runner.Start(context.WithoutCancel(ctx), req, func(out generation.Outcome) {
		if out.Err == nil && out.Result.History != nil {
			s.mu.Lock()
			s.histories[patientID] = append(s.histories[patientID], out.Result.History)
			s.mu.Unlock()
		}
		done(out)
	})
}

// Histories справки пациента в порядке создания
func (s *AnalysisService) Histories(patientID string) []*model.PatientHistory {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*model.PatientHistory(nil), s.histories[patientID]...)
}

// FindHistory ищет справку по id среди всех пациентов
func (s *AnalysisService) FindHistory(historyID string) (*model.PatientHistory, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, list := range s.histories {
		for _, h := range list {
			if h.ID == historyID {
				return h, true
			}
		}
	}
	return nil, false
}

// Busy выполняется ли генерация данного типа
func (s *AnalysisService) Busy(owner int64, kind generation.Kind) bool {
	return s.runner.Running(owner, kind)
}

// Cancel отменяет все генерации чата; результаты не будут доставлены
func (s *AnalysisService) Cancel(owner int64) int {
	n := s.runner.Cancel(owner)
	if n > 0 {
		s.logger.Info("Generations cancelled", zap.Int64("owner", owner), zap.Int("count", n))
	}
	return n
}

func (s *AnalysisService) storeScratch(owner int64, key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), scratchTimeout)
	defer cancel()
	if err := s.scratch.Set(ctx, owner, key, value); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}

// IsBusy проверяет ошибку повторного запуска
func IsBusy(err error) bool {
	return errors.Is(err, generation.ErrInProgress)
}
