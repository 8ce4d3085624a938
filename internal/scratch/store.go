package scratch

import (
	"context"
	"time"
)

// Ключи черновика чата
const (
	KeyTranscription = "transcription"
	KeyPatientID     = "patient_id"
	KeyPatientCode   = "patient_code"
)

// DefaultTTL срок жизни черновика в Redis
const DefaultTTL = 24 * time.Hour

// Store строковое хранилище черновиков по чатам.
// Get возвращает ok=false, если ключа нет.
type Store interface {
	Set(ctx context.Context, owner int64, key, value string) error
	Get(ctx context.Context, owner int64, key string) (value string, ok bool, err error)
	Delete(ctx context.Context, owner int64, key string) error
}
