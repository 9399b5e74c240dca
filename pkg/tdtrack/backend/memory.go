package backend

import (
	"maps"
	"sync"
	"time"

	"github.com/google/uuid"
)

// StoredRecord is a record held by MemoryClient.
type StoredRecord struct {
	Receipt Receipt
	Record  Record
}

// MemoryClient keeps submitted records in memory, per table.
// It is safe for concurrent use. Data is lost when the process exits.
type MemoryClient struct {
	database string

	mu      sync.RWMutex
	records map[string][]StoredRecord // table -> records in submission order
	failure error
	closed  bool
}

// NewMemoryClient creates an empty in-memory client for database.
func NewMemoryClient(database string) *MemoryClient {
	return &MemoryClient{
		database: database,
		records:  make(map[string][]StoredRecord),
	}
}

// FailWith makes every following submission report err.
// Passing nil restores normal operation.
func (m *MemoryClient) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failure = err
}

// AddRecord implements Client.
func (m *MemoryClient) AddRecord(table string, record Record, onSuccess func(Receipt), onError func(error)) {
	m.store(MethodAddRecord, table, record, onSuccess, onError)
}

// TrackEvent implements Client. The implicit fields are td_version and td_time.
func (m *MemoryClient) TrackEvent(table string, record Record, onSuccess func(Receipt), onError func(error)) {
	m.store(MethodTrackEvent, table, withImplicitFields(record, ""), onSuccess, onError)
}

func (m *MemoryClient) store(method Method, table string, record Record, onSuccess func(Receipt), onError func(error)) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		go onError(ErrClientClosed)
		return
	}
	if m.failure != nil {
		err := m.failure
		m.mu.Unlock()
		go onError(err)
		return
	}

	receipt := Receipt{
		ID:        uuid.New().String(),
		Database:  m.database,
		Table:     table,
		Method:    method,
		Timestamp: time.Now().UTC(),
	}
	m.records[table] = append(m.records[table], StoredRecord{
		Receipt: receipt,
		Record:  maps.Clone(record),
	})
	m.mu.Unlock()

	go onSuccess(receipt)
}

// Records returns the records stored in table, oldest first.
func (m *MemoryClient) Records(table string) []StoredRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]StoredRecord, len(m.records[table]))
	copy(out, m.records[table])
	return out
}

// Count returns the number of records stored across all tables.
func (m *MemoryClient) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, recs := range m.records {
		n += len(recs)
	}
	return n
}

// Close discards all records. Further submissions fail with ErrClientClosed.
func (m *MemoryClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	m.records = nil
	return nil
}
