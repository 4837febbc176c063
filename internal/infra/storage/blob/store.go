package blob

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrNotFound ключ отсутствует
	ErrNotFound = errors.New("blob.store: key not found")

	// ErrExecQuery ошибка выполнения запроса к SQLite
	ErrExecQuery = errors.New("blob.store: failed to execute query")
)

// Store хранилище именованных бинарных значений
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Memory хранилище в памяти (тесты и запуск без файла)
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory создает пустое хранилище в памяти
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

func (m *Memory) Close() error {
	return nil
}
