package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/psy_practice_bot/internal/model"
	"go.uber.org/zap"
)

type fixturePatient struct {
	code string
	data model.PatientCreate
}

var fixturePatients = []fixturePatient{
	{"426247", model.PatientCreate{FirstName: "Jean", LastName: "Dupont", Age: 45, Gender: model.GenderMale, Notes: "Anxiété chronique, suivi depuis 3 ans"}},
	{"782523", model.PatientCreate{FirstName: "Marie", LastName: "Laurent", Age: 32, Gender: model.GenderFemale, Notes: "Dépression post-partum"}},
	{"934721", model.PatientCreate{FirstName: "Thomas", LastName: "Martin", Age: 28, Gender: model.GenderMale}},
}

// SeedFixtures заполняет пустое хранилище демонстрационными данными.
// Приёмы отсчитываются от now.
func SeedFixtures(ctx context.Context, patients PatientStore, appointments AppointmentStore, now time.Time, logger *zap.Logger) error {
	existing, err := patients.List(ctx)
	if err != nil {
		return fmt.Errorf("list patients: %w", err)
	}
	if len(existing) > 0 {
		logger.Debug("Fixtures skipped, store is not empty")
		return nil
	}

	byCode := make(map[string]*model.Patient, len(fixturePatients))
	for _, fp := range fixturePatients {
		p, err := patients.Create(ctx, fp.code, fp.data)
		if err != nil {
			return fmt.Errorf("seed patient %s: %w", fp.code, err)
		}
		byCode[fp.code] = p
	}

	seeds := []struct {
		code     string
		date     time.Time
		duration int
		notes    string
	}{
		{"426247", now.Add(3 * time.Hour), 45, "Suivi régulier"},
		{"782523", now.AddDate(0, 0, 1), 60, "Premier rendez-vous"},
		{"934721", now.AddDate(0, 0, 2), 30, ""},
		{"426247", now.AddDate(0, 0, 7), 45, "Suivi bi-mensuel"},
	}
	for _, sd := range seeds {
		p := byCode[sd.code]
		_, err := appointments.Add(ctx, model.AppointmentCreate{
			PatientID:   p.ID,
			PatientCode: p.Code,
			Date:        sd.date.Truncate(time.Minute),
			Duration:    sd.duration,
			Notes:       sd.notes,
		})
		if err != nil {
			return fmt.Errorf("seed appointment %s: %w", sd.code, err)
		}
	}

	logger.Info("Fixtures seeded",
		zap.Int("patients", len(fixturePatients)),
		zap.Int("appointments", len(seeds)),
	)
	return nil
}
