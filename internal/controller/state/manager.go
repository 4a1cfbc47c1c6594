package state

import (
	"sync"
)

// UserState этап диалога с пользователем
type UserState string

const (
	StateNone         UserState = "" // нет активного диалога
	StateAwaitingName UserState = "awaiting_name"
)

// Ключи временных данных
const (
	// DataPendingPlaceID салон из deep link, к которому пользователь
	// вернётся после завершения регистрации
	DataPendingPlaceID = "pending_place_id"
)

// UserData состояние и временные данные одного пользователя
type UserData struct {
	State UserState
	Data  map[string]interface{}
}

// Manager управляет состояниями пользователей в памяти
type Manager struct {
	mu     sync.RWMutex
	states map[int64]*UserData // telegramID -> UserData
}

// NewManager создаёт новый менеджер состояний
func NewManager() *Manager {
	return &Manager{
		states: make(map[int64]*UserData),
	}
}

// GetState получает текущее состояние пользователя
func (sm *Manager) GetState(telegramID int64) UserState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.State
	}
	return StateNone
}

// SetState устанавливает состояние пользователя
func (sm *Manager) SetState(telegramID int64, state UserState) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.State = state
}

// GetData получает временные данные пользователя
func (sm *Manager) GetData(telegramID int64, key string) (interface{}, bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		value, ok := userData.Data[key]
		return value, ok
	}
	return nil, false
}

// SetData устанавливает временные данные пользователя
func (sm *Manager) SetData(telegramID int64, key string, value interface{}) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		userData = &UserData{Data: make(map[string]interface{})}
		sm.states[telegramID] = userData
	}
	userData.Data[key] = value
}

// ClearData удаляет временные данные по ключу
func (sm *Manager) ClearData(telegramID int64, key string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if userData, exists := sm.states[telegramID]; exists {
		delete(userData.Data, key)
	}
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}
