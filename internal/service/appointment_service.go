package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository"
	"go.uber.org/zap"
)

// AppointmentForm данные диалога создания приёма
type AppointmentForm struct {
	PatientID string
	Date      string // ДД.ММ.ГГГГ
	Time      string // ЧЧ:ММ
	Duration  int
	Notes     string
}

// WeekView недельная сетка с количеством приёмов по дням
type WeekView struct {
	Grid   calendar.Grid
	Counts [calendar.DaysInWeek]int
	Today  int
}

type AppointmentService struct {
	appointments AppointmentStore
	patients     PatientStore
	loc          *time.Location
	now          func() time.Time
	metrics      Observer
	logger       *zap.Logger
}

func NewAppointmentService(
	appointments AppointmentStore,
	patients PatientStore,
	loc *time.Location,
	metrics Observer,
	logger *zap.Logger,
) *AppointmentService {
	if loc == nil {
		loc = time.Local
	}
	return &AppointmentService{
		appointments: appointments,
		patients:     patients,
		loc:          loc,
		now:          time.Now,
		metrics:      observerOrNop(metrics),
		logger:       logger,
	}
}

// WithClock подменяет текущее время
func (s *AppointmentService) WithClock(now func() time.Time) *AppointmentService {
	s.now = now
	return s
}

// Location часовой пояс отображения
func (s *AppointmentService) Location() *time.Location {
	return s.loc
}

// Now текущее время в часовом поясе практики
func (s *AppointmentService) Now() time.Time {
	return s.now().In(s.loc)
}

// DefaultStart время по умолчанию для новой записи: сейчас, округлённое вверх до 15 минут
func (s *AppointmentService) DefaultStart() time.Time {
	return RoundUpToQuarter(s.Now())
}

// Create проверяет форму и создаёт приём. Пересечения с другими приёмами допускаются.
func (s *AppointmentService) Create(ctx context.Context, form AppointmentForm) (*model.Appointment, error) {
	if strings.TrimSpace(form.PatientID) == "" {
		return nil, invalid("patient", "Выберите пациента")
	}
	day, err := ParseDate(form.Date, s.loc)
	if err != nil {
		return nil, err
	}
	hour, minute, err := ParseTime(form.Time)
	if err != nil {
		return nil, err
	}
	if err := ValidateDuration(form.Duration); err != nil {
		return nil, err
	}

	patient, err := s.patients.GetByID(ctx, form.PatientID)
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, s.loc)
	apt, err := s.appointments.Add(ctx, model.AppointmentCreate{
		PatientID:   patient.ID,
		PatientCode: patient.Code,
		Date:        start,
		Duration:    form.Duration,
		Notes:       strings.TrimSpace(form.Notes),
	})
	s.metrics.ObserveAppointment("add", err)
	if err != nil {
		return nil, fmt.Errorf("add appointment: %w", err)
	}

	s.logger.Info("Appointment created",
		zap.String("appointment_id", apt.ID),
		zap.String("patient_code", apt.PatientCode),
		zap.Time("date", apt.Date),
		zap.Int("duration", apt.Duration),
	)

	return apt, nil
}

// Close закрывает приём; false означает, что закрывать нечего
func (s *AppointmentService) Close(ctx context.Context, id string) (bool, error) {
	closed, err := s.appointments.Close(ctx, id)
	s.metrics.ObserveAppointment("close", err)
	if err != nil {
		return false, fmt.Errorf("close appointment: %w", err)
	}

	if closed {
		s.logger.Info("Appointment closed", zap.String("appointment_id", id))
	} else {
		s.logger.Debug("Nothing to close", zap.String("appointment_id", id))
	}
	return closed, nil
}

func (s *AppointmentService) Get(ctx context.Context, id string) (*model.Appointment, error) {
	apt, err := s.appointments.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get appointment: %w", err)
	}
	if apt == nil {
		return nil, ErrAppointmentNotFound
	}
	return apt, nil
}

// All все приёмы в порядке добавления
func (s *AppointmentService) All(ctx context.Context) ([]*model.Appointment, error) {
	list, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return list, nil
}

// Search ищет по подстроке кода и сортирует по дате
func (s *AppointmentService) Search(ctx context.Context, term string) ([]*model.Appointment, error) {
	list, err := s.appointments.SearchByCode(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search appointments: %w", err)
	}
	return repository.SortChronological(list), nil
}

// Day приёмы одного календарного дня по дате
func (s *AppointmentService) Day(ctx context.Context, day time.Time) ([]*model.Appointment, error) {
	start, end := repository.DayRange(day.In(s.loc))
	list, err := s.appointments.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("list day appointments: %w", err)
	}
	return repository.SortChronological(list), nil
}

// Pending незакрытые приёмы по дате
func (s *AppointmentService) Pending(ctx context.Context) ([]*model.Appointment, error) {
	list, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return repository.SortChronological(repository.FilterPending(list)), nil
}

// ByPatient приёмы пациента по дате
func (s *AppointmentService) ByPatient(ctx context.Context, patientID string) ([]*model.Appointment, error) {
	list, err := s.appointments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	result := make([]*model.Appointment, 0)
	for _, apt := range list {
		if apt.PatientID == patientID {
			result = append(result, apt)
		}
	}
	return repository.SortChronological(result), nil
}

// Week строит сетку недели, содержащей anchor
func (s *AppointmentService) Week(ctx context.Context, anchor time.Time) (*WeekView, error) {
	week := calendar.WeekOf(anchor.In(s.loc))
	// End - начало воскресенья, диапазон полуоткрытый
	list, err := s.appointments.ListByDateRange(ctx, week.Start, week.End.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("list week appointments: %w", err)
	}

	view := &WeekView{Grid: calendar.BuildGrid(week.Start, list)}
	for _, p := range view.Grid.Placements {
		view.Counts[p.DayIndex]++
	}
	view.Today = view.Grid.TodayIndex(s.Now())
	return view, nil
}
