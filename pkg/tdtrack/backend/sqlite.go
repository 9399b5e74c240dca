package backend

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteClient persists records to SQLite, one row per record.
// It is suitable for local development and offline capture.
type SQLiteClient struct {
	db       *sql.DB
	database string
	clientID string

	mu     sync.RWMutex
	closed bool
}

// NewSQLiteClient opens (or creates) the record store at path for database.
// The path should be a file path (e.g., "./records.db") or ":memory:" for testing.
func NewSQLiteClient(path, database string) (*SQLiteClient, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A :memory: database exists per connection.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			id TEXT PRIMARY KEY,
			db_name TEXT NOT NULL,
			table_name TEXT NOT NULL,
			method TEXT NOT NULL,
			record TEXT NOT NULL CHECK (json_valid(record)),
			created_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}

	if _, err := db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_records_table
		ON records(db_name, table_name)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("create index: %w", err)
	}

	return &SQLiteClient{
		db:       db,
		database: database,
		clientID: uuid.New().String(),
	}, nil
}

// ClientID returns the identifier sent as td_client_id by TrackEvent.
func (s *SQLiteClient) ClientID() string {
	return s.clientID
}

// AddRecord implements Client.
func (s *SQLiteClient) AddRecord(table string, record Record, onSuccess func(Receipt), onError func(error)) {
	go s.deliver(MethodAddRecord, table, record, onSuccess, onError)
}

// TrackEvent implements Client.
// The implicit fields are td_version, td_time and td_client_id.
func (s *SQLiteClient) TrackEvent(table string, record Record, onSuccess func(Receipt), onError func(error)) {
	go s.deliver(MethodTrackEvent, table, withImplicitFields(record, s.clientID), onSuccess, onError)
}

func (s *SQLiteClient) deliver(method Method, table string, record Record, onSuccess func(Receipt), onError func(error)) {
	receipt, err := s.insert(method, table, record)
	if err != nil {
		onError(err)
		return
	}
	onSuccess(receipt)
}

func (s *SQLiteClient) insert(method Method, table string, record Record) (Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return Receipt{}, ErrClientClosed
	}

	data, err := json.Marshal(record)
	if err != nil {
		return Receipt{}, fmt.Errorf("marshal record: %w", err)
	}

	receipt := Receipt{
		ID:        uuid.New().String(),
		Database:  s.database,
		Table:     table,
		Method:    method,
		Timestamp: time.Now().UTC(),
	}
	_, err = s.db.Exec(`
		INSERT INTO records (id, db_name, table_name, method, record, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, receipt.ID, receipt.Database, receipt.Table, string(receipt.Method), string(data),
		receipt.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return Receipt{}, fmt.Errorf("insert record: %w", err)
	}
	return receipt, nil
}

// Records returns the records stored in table, oldest first.
func (s *SQLiteClient) Records(table string) ([]StoredRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClientClosed
	}

	rows, err := s.db.Query(`
		SELECT id, method, record, created_at
		FROM records
		WHERE db_name = ? AND table_name = ?
		ORDER BY rowid
	`, s.database, table)
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	defer rows.Close()

	var out []StoredRecord
	for rows.Next() {
		var (
			rec       StoredRecord
			method    string
			data      string
			timestamp string
		)
		if err := rows.Scan(&rec.Receipt.ID, &method, &data, &timestamp); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if err := json.Unmarshal([]byte(data), &rec.Record); err != nil {
			return nil, fmt.Errorf("decode record %s: %w", rec.Receipt.ID, err)
		}
		rec.Receipt.Database = s.database
		rec.Receipt.Table = table
		rec.Receipt.Method = Method(method)
		rec.Receipt.Timestamp, _ = time.Parse(time.RFC3339Nano, timestamp)
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Close releases the database. Calling Close more than once is safe.
func (s *SQLiteClient) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
