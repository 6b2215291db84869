package sdk

import (
	"encoding/json"
	"os"
	"sync"
)

// MockState keeps everything in memory. When a filename is set, every write also dumps the
// whole map as JSON so a local run can be inspected afterwards.
type MockState struct {
	mu       sync.RWMutex
	db       map[string]string
	filename string
}

func NewMockState() *MockState {
	return &MockState{db: make(map[string]string)}
}

// NewFileMockState is NewMockState plus a JSON snapshot at filename after each write.
func NewFileMockState(filename string) *MockState {
	m := NewMockState()
	m.filename = filename
	return m
}

func (m *MockState) Get(key string) (*string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	val, ok := m.db[key]
	if !ok {
		return nil, nil
	}
	return &val, nil
}

func (m *MockState) Write(b *Batch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b.Replay(func(key string, value *string) {
		if value == nil {
			delete(m.db, key)
			return
		}
		m.db[key] = *value
	})
	if m.filename == "" {
		return nil
	}
	return m.saveToFile()
}

// Len is handy in tests to make sure a rejected call left nothing behind.
func (m *MockState) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.db)
}

// Snapshot copies the current map.
func (m *MockState) Snapshot() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]string, len(m.db))
	for k, v := range m.db {
		out[k] = v
	}
	return out
}

// saveToFile writes the full map to a JSON file
func (m *MockState) saveToFile() error {
	data, err := json.MarshalIndent(m.db, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.filename, data, 0644)
}

// LoadFromFile loads the map from a JSON file
func (m *MockState) LoadFromFile() error {
	data, err := os.ReadFile(m.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // file doesn't exist yet
		}
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return json.Unmarshal(data, &m.db)
}
