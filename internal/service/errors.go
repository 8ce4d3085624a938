package service

import (
	"errors"
	"fmt"
)

var (
	ErrPatientNotFound     = errors.New("patient not found")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrNoTranscription     = errors.New("no transcription to analyze")
	ErrCodeSpaceExhausted  = errors.New("could not allocate patient code")
)

// ValidationError ошибка заполнения формы; диалог остаётся на том же шаге
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// AsValidation извлекает ValidationError из цепочки ошибок
func AsValidation(err error) (*ValidationError, bool) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
