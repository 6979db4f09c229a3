// internal/core/domain/schedule/state.go
package schedule

import (
	"context"
	"sync"
)

// Store зеркало флага активности (память или redis)
type Store interface {
	SaveActive(ctx context.Context, active bool) error
	LoadActive(ctx context.Context) (active bool, found bool, err error)
}

// State флаг активности автоматического сканирования.
// По умолчанию активен; после рестарта всегда возвращается к значению по умолчанию.
type State struct {
	mu     sync.RWMutex
	active bool
	store  Store
}

// NewState создает состояние (active=true). store может быть nil.
func NewState(store Store) *State {
	return &State{active: true, store: store}
}

// Active возвращает текущий флаг
func (s *State) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// SetActive меняет флаг и пишет его в зеркало.
// changed=true если значение действительно изменилось.
// Ошибка зеркала не откатывает значение в памяти.
func (s *State) SetActive(ctx context.Context, active bool) (changed bool, err error) {
	s.mu.Lock()
	changed = s.active != active
	s.active = active
	store := s.store
	s.mu.Unlock()

	if store != nil {
		err = store.SaveActive(ctx, active)
	}
	return changed, err
}

// Sync записывает текущее значение в зеркало (используется при старте)
func (s *State) Sync(ctx context.Context) error {
	s.mu.RLock()
	active, store := s.active, s.store
	s.mu.RUnlock()

	if store == nil {
		return nil
	}
	return store.SaveActive(ctx, active)
}

// MemoryStore хранилище в памяти процесса
type MemoryStore struct {
	mu     sync.Mutex
	active bool
	found  bool
}

// NewMemoryStore создает пустое хранилище
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// SaveActive сохраняет флаг
func (m *MemoryStore) SaveActive(_ context.Context, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.active = active
	m.found = true
	return nil
}

// LoadActive читает флаг
func (m *MemoryStore) LoadActive(_ context.Context) (bool, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active, m.found, nil
}
