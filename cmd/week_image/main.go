package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"github.com/Freeeeeet/psy_practice_bot/internal/render"
	"github.com/Freeeeeet/psy_practice_bot/internal/repository/memory"
	"github.com/Freeeeeet/psy_practice_bot/internal/service"
	"go.uber.org/zap"
)

// Рисует неделю с демонстрационными приёмами в PNG без Telegram
func main() {
	out := flag.String("o", "week.png", "файл для картинки")
	date := flag.String("date", "", "дата внутри недели, ДД.ММ.ГГГГ (по умолчанию сегодня)")
	flag.Parse()

	ctx := context.Background()
	logger := zap.NewNop()
	now := time.Now()

	patients := memory.NewPatientRepository()
	appointments := memory.NewAppointmentRepository()
	if err := service.SeedFixtures(ctx, patients, appointments, now, logger); err != nil {
		fmt.Printf("Ошибка тестовых данных: %v\n", err)
		os.Exit(1)
	}

	// Пересечение и приём до начала сетки
	if p, _ := patients.GetByCode(ctx, "782523"); p != nil {
		early := time.Date(now.Year(), now.Month(), now.Day(), 7, 0, 0, 0, now.Location())
		for _, start := range []time.Time{now.Add(3*time.Hour + 20*time.Minute), early} {
			appointments.Add(ctx, model.AppointmentCreate{
				PatientID:   p.ID,
				PatientCode: p.Code,
				Date:        start.Truncate(time.Minute),
				Duration:    60,
			})
		}
	}

	svc := service.NewAppointmentService(appointments, patients, now.Location(), nil, logger)

	anchor := now
	if *date != "" {
		parsed, err := service.ParseDate(*date, now.Location())
		if err != nil {
			fmt.Printf("Неверная дата: %v\n", err)
			os.Exit(1)
		}
		anchor = parsed
	}

	view, err := svc.Week(ctx, anchor)
	if err != nil {
		fmt.Printf("Ошибка построения недели: %v\n", err)
		os.Exit(1)
	}

	imageData, err := render.WeekImage(view.Grid, now)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s\n", *out)
	fmt.Printf("📅 Период: %s - %s\n", view.Grid.Week.Start.Format("02.01.2006"), view.Grid.Week.End.Format("02.01.2006"))
	fmt.Printf("📊 Приёмов: %d\n", len(view.Grid.Placements))
}
