package store

import (
	"slices"
	"sync"
)

// Memory 인메모리 저장소. 저장/적재 시 복사한다
type Memory struct {
	mu       sync.RWMutex
	datasets map[string][]int
}

// NewMemory 빈 인메모리 저장소
func NewMemory() *Memory {
	return &Memory{datasets: make(map[string][]int)}
}

func (m *Memory) Save(name string, data []int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.datasets[name] = slices.Clone(data)
	return nil
}

func (m *Memory) Load(name string) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.datasets[name]
	if !ok {
		return nil, ErrNotFound
	}
	return slices.Clone(data), nil
}

func (m *Memory) Close() error {
	return nil
}
