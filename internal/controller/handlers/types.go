package handlers

import (
	"github.com/Freeeeeet/psy_practice_bot/internal/controller/callbacks/common"
)

// Handlers обработчики команд и текстовых сообщений
type Handlers struct {
	*common.Handler
}

func NewHandlers(base *common.Handler) *Handlers {
	return &Handlers{Handler: base}
}
