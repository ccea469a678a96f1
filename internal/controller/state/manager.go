package state

import (
	"sync"

	"github.com/Freeeeeet/room_booking/internal/model"
)

// Manager управляет состояниями пользователей
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

// StartBooking начинает диалог бронирования с пустой формой
func (sm *Manager) StartBooking(telegramID int64) Step {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	first := BookingSteps[0]
	sm.states[telegramID] = &UserData{State: first.State}
	return first
}

// Advance записывает значение текущего шага и переводит на следующий.
// done == true, когда заполнен последний шаг; состояние при этом не очищается.
func (sm *Manager) Advance(telegramID int64, value string) (next Step, done bool, ok bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	userData, exists := sm.states[telegramID]
	if !exists {
		return Step{}, false, false
	}

	idx := stepIndex(userData.State)
	if idx < 0 {
		return Step{}, false, false
	}

	userData.Form.Set(BookingSteps[idx].Field, value)
	if idx == len(BookingSteps)-1 {
		return Step{}, true, true
	}

	next = BookingSteps[idx+1]
	userData.State = next.State
	return next, false, true
}

// Form возвращает копию заполняемой формы
func (sm *Manager) Form(telegramID int64) model.Candidate {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if userData, exists := sm.states[telegramID]; exists {
		return userData.Form
	}
	return model.Candidate{}
}

// ClearState очищает состояние и данные пользователя
func (sm *Manager) ClearState(telegramID int64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	delete(sm.states, telegramID)
}

// CurrentStep возвращает шаг диалога для состояния пользователя
func (sm *Manager) CurrentStep(telegramID int64) (Step, int, bool) {
	idx := stepIndex(sm.GetState(telegramID))
	if idx < 0 {
		return Step{}, 0, false
	}
	return BookingSteps[idx], idx, true
}

func stepIndex(s UserState) int {
	for i, step := range BookingSteps {
		if step.State == s {
			return i
		}
	}
	return -1
}
