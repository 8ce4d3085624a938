package model

import "time"

// Relationship одна связь на карте отношений пациента
type Relationship struct {
	Name        string   `json:"name"`
	Relation    string   `json:"relation"`
	Description string   `json:"description"`
	Connections []string `json:"connections"`
}

// BackgroundSection раздел биографической справки
type BackgroundSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// BackgroundSummary биографическая справка по транскрипции
type BackgroundSummary struct {
	Summary  string              `json:"summary"`
	Sections []BackgroundSection `json:"sections"`
}

// PatientHistory сохранённая биографическая справка пациента
type PatientHistory struct {
	ID        string            `json:"id"`
	PatientID string            `json:"patient_id"`
	Title     string            `json:"title"`
	Summary   BackgroundSummary `json:"summary"`
	CreatedAt time.Time         `json:"created_at"`
}

// Story терапевтическая сказка
type Story struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patient_id"`
	Title     string    `json:"title"`
	Pages     []string  `json:"pages"`
	CreatedAt time.Time `json:"created_at"`
}

// Genogram внешний документ генограммы; внутри процесса не вычисляется
type Genogram struct {
	Version     int       `json:"version"`
	DocumentURL string    `json:"document_url"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
