package state

import (
	"maps"
	"sync"
)

// Manager хранит диалоги пользователей в памяти
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState текущий шаг пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState переводит диалог на шаг. StateNone завершает диалог вместе с данными.
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if state == StateNone {
		delete(sm.states, telegramID)
		return
	}

	sm.entry(telegramID).State = state
}

// Start начинает новый диалог, отбрасывая данные предыдущего
func (sm *Manager) Start(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[telegramID] = &UserData{
		State: state,
		Data:  make(map[string]string),
	}
}

// Advance сохраняет значение шага и переходит к следующему
func (sm *Manager) Advance(telegramID int64, key, value string, next UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	entry := sm.entry(telegramID)
	entry.Data[key] = value
	entry.State = next
}

func (sm *Manager) GetData(telegramID int64, key string) (string, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return "", false
}

func (sm *Manager) SetData(telegramID int64, key, value string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.entry(telegramID).Data[key] = value
}

// ClearState завершает диалог
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// GetAllData копия данных диалога
func (sm *Manager) GetAllData(telegramID int64) map[string]string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return maps.Clone(userData.Data)
	}
	return nil
}

// entry вызывается под sm.mu
func (sm *Manager) entry(telegramID int64) *UserData {
	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{State: StateNone, Data: make(map[string]string)}
		sm.states[telegramID] = userData
	}
	return userData
}
