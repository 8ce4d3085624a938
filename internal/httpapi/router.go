package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/calendar"
	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/render"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const (
	queryDateLayout = "2006-01-02"
	maxWeekShift    = 520
)

// WeekSource чтение расписания для HTTP
type WeekSource interface {
	Week(ctx context.Context, anchor time.Time) (*service.WeekView, error)
	Search(ctx context.Context, term string) ([]*model.Appointment, error)
	Now() time.Time
	Location() *time.Location
}

// RenderObserver время отрисовки картинки недели
type RenderObserver interface {
	ObserveRender(seconds float64)
}

type Config struct {
	Appointments WeekSource
	Metrics      http.Handler
	Renders      RenderObserver
	Health       func(ctx context.Context) error
	Logger       *zap.Logger
}

type handler struct {
	cfg Config
}

// New собирает read-only HTTP API
func New(cfg Config) http.Handler {
	h := &handler{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}

	r.Get("/healthz", h.health)
	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}
	r.Route("/api", func(r chi.Router) {
		r.Get("/week", h.week)
		r.Get("/week.png", h.weekImage)
		r.Get("/appointments", h.appointments)
	})
	return r
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	if h.cfg.Health != nil {
		if err := h.cfg.Health(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type placementDTO struct {
	AppointmentID    string `json:"appointment_id"`
	PatientCode      string `json:"patient_code"`
	Status           string `json:"status"`
	Start            string `json:"start"`
	DayIndex         int    `json:"day_index"`
	TopOffsetMinutes int    `json:"top_offset_minutes"`
	HeightMinutes    int    `json:"height_minutes"`
	Visible          bool   `json:"visible"`
	Color            string `json:"color"`
}

type weekDTO struct {
	Start      string         `json:"start"`
	Days       []string       `json:"days"`
	Today      int            `json:"today"`
	Counts     []int          `json:"counts"`
	BandStart  int            `json:"band_start_hour"`
	BandEnd    int            `json:"band_end_hour"`
	Placements []placementDTO `json:"placements"`
}

func (h *handler) week(w http.ResponseWriter, r *http.Request) {
	anchor, ok := h.anchor(w, r)
	if !ok {
		return
	}

	view, err := h.cfg.Appointments.Week(r.Context(), anchor)
	if err != nil {
		h.fail(w, "build week", err)
		return
	}

	loc := h.cfg.Appointments.Location()
	dto := weekDTO{
		Start:      view.Grid.Week.Start.Format(queryDateLayout),
		Today:      view.Today,
		Counts:     view.Counts[:],
		BandStart:  calendar.BandStartHour,
		BandEnd:    calendar.BandEndHour,
		Placements: make([]placementDTO, 0, len(view.Grid.Placements)),
	}
	for _, d := range view.Grid.Week.Days {
		dto.Days = append(dto.Days, d.Format(queryDateLayout))
	}
	for _, p := range view.Grid.Placements {
		code := calendar.DisplayCode(p.Appointment.PatientCode)
		dto.Placements = append(dto.Placements, placementDTO{
			AppointmentID:    p.Appointment.ID,
			PatientCode:      code,
			Status:           string(p.Appointment.Status),
			Start:            p.Appointment.Date.In(loc).Format(time.RFC3339),
			DayIndex:         p.DayIndex,
			TopOffsetMinutes: p.TopOffsetMinutes,
			HeightMinutes:    p.HeightMinutes,
			Visible:          p.Visible(),
			Color:            calendar.ColorFor(code).Name,
		})
	}
	writeJSON(w, http.StatusOK, dto)
}

func (h *handler) weekImage(w http.ResponseWriter, r *http.Request) {
	anchor, ok := h.anchor(w, r)
	if !ok {
		return
	}

	view, err := h.cfg.Appointments.Week(r.Context(), anchor)
	if err != nil {
		h.fail(w, "build week", err)
		return
	}

	started := time.Now()
	img, err := render.WeekImage(view.Grid, h.cfg.Appointments.Now())
	if err != nil {
		h.fail(w, "render week", err)
		return
	}
	if h.cfg.Renders != nil {
		h.cfg.Renders.ObserveRender(time.Since(started).Seconds())
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

func (h *handler) appointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.cfg.Appointments.Search(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		h.fail(w, "search appointments", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": list})
}

// anchor дата из ?date=ГГГГ-ММ-ДД (по умолчанию сегодня),
// сдвинутая на ?weeks=N недель вперёд или назад
func (h *handler) anchor(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	start := h.cfg.Appointments.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		d, err := time.ParseInLocation(queryDateLayout, raw, h.cfg.Appointments.Location())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date must be YYYY-MM-DD"})
			return time.Time{}, false
		}
		start = d
	}

	weeks := 0
	if raw := r.URL.Query().Get("weeks"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < -maxWeekShift || n > maxWeekShift {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weeks must be an integer within ±520"})
			return time.Time{}, false
		}
		weeks = n
	}

	nav := calendar.NewNavigator(start)
	for ; weeks > 0; weeks-- {
		nav.Next()
	}
	for ; weeks < 0; weeks++ {
		nav.Prev()
	}
	return nav.Anchor(), true
}

func (h *handler) fail(w http.ResponseWriter, op string, err error) {
	if h.cfg.Logger != nil {
		h.cfg.Logger.Error("HTTP request failed", zap.String("op", op), zap.Error(err))
	}
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": op + " failed"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(started)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
