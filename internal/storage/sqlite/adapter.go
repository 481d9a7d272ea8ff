package sqlite

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"sms-ingest/internal/common/errors"
	"sms-ingest/internal/storage"
)

type Adapter struct {
	db     *sql.DB
	config *Config
}

func NewAdapter(config *Config) (*Adapter, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid SQLite config: %w", err)
	}

	// The busy timeout lets concurrent webhook requests queue on the
	// single SQLite writer instead of failing with SQLITE_BUSY.
	db, err := sql.Open("sqlite3", config.DatabasePath+"?_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	adapter := &Adapter{
		db:     db,
		config: config,
	}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return adapter, nil
}

func (a *Adapter) Connect(config storage.StorageConfig) error {
	sqliteConfig, ok := config.(*Config)
	if !ok {
		return fmt.Errorf("invalid config type for SQLite storage")
	}

	newAdapter, err := NewAdapter(sqliteConfig)
	if err != nil {
		return err
	}

	// Close existing connection
	if a.db != nil {
		a.db.Close()
	}

	a.db = newAdapter.db
	a.config = newAdapter.config

	return nil
}

func (a *Adapter) Close() error {
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func (a *Adapter) Health() error {
	return a.db.Ping()
}

// migrate creates the backing schema if absent. Idempotent, runs on every
// process start.
func (a *Adapter) migrate() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			message_id TEXT PRIMARY KEY,
			from_msisdn TEXT NOT NULL,
			to_msisdn TEXT NOT NULL,
			ts TEXT NOT NULL,
			text TEXT,
			created_at TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_messages_ts ON messages(ts, message_id)`,
		`CREATE INDEX IF NOT EXISTS idx_messages_from ON messages(from_msisdn)`,
	}

	for _, query := range queries {
		if _, err := a.db.Exec(query); err != nil {
			return fmt.Errorf("failed to execute migration query: %w", err)
		}
	}

	return nil
}

// InsertMessage persists msg, returning true when the row was created and
// false when a row with the same message_id already existed. INSERT OR
// IGNORE leaves duplicate resolution to the primary key constraint, so
// concurrent inserts of the same id never race in application code.
func (a *Adapter) InsertMessage(msg *storage.Message) (bool, error) {
	createdAt := msg.ReceivedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	result, err := a.db.Exec(
		`INSERT OR IGNORE INTO messages (message_id, from_msisdn, to_msisdn, ts, text, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		msg.MessageID, msg.Sender, msg.To, msg.Timestamp, msg.Text,
		createdAt.Format(time.RFC3339),
	)
	if err != nil {
		return false, errors.StorageError("failed to insert message", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.StorageError("failed to read insert result", err)
	}

	return rows == 1, nil
}

func (a *Adapter) ListMessages(filters storage.MessageFilters, limit, offset int) ([]*storage.Message, int, error) {
	where := "1=1"
	args := []interface{}{}

	if filters.Sender != "" {
		where += " AND from_msisdn = ?"
		args = append(args, filters.Sender)
	}
	if filters.Since != "" {
		where += " AND ts >= ?"
		args = append(args, filters.Since)
	}
	if filters.TextContains != "" {
		where += " AND text LIKE ?"
		args = append(args, "%"+filters.TextContains+"%")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM messages WHERE " + where
	if err := a.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, errors.StorageError("failed to count messages", err)
	}

	dataQuery := `SELECT message_id, from_msisdn, to_msisdn, ts, text
		FROM messages
		WHERE ` + where + `
		ORDER BY ts ASC, message_id ASC
		LIMIT ? OFFSET ?`
	rows, err := a.db.Query(dataQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, errors.StorageError("failed to list messages", err)
	}
	defer rows.Close()

	messages := make([]*storage.Message, 0)
	for rows.Next() {
		var msg storage.Message
		var text sql.NullString
		if err := rows.Scan(&msg.MessageID, &msg.Sender, &msg.To, &msg.Timestamp, &text); err != nil {
			return nil, 0, errors.StorageError("failed to scan message row", err)
		}
		msg.Text = text.String
		messages = append(messages, &msg)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.StorageError("failed to iterate message rows", err)
	}

	return messages, total, nil
}

func (a *Adapter) GetStats() (*storage.Stats, error) {
	stats := &storage.Stats{}

	var firstTS, lastTS sql.NullString
	err := a.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT from_msisdn), MIN(ts), MAX(ts) FROM messages`,
	).Scan(&stats.TotalMessages, &stats.SendersCount, &firstTS, &lastTS)
	if err != nil {
		return nil, errors.StorageError("failed to compute message stats", err)
	}

	if firstTS.Valid {
		stats.FirstTimestamp = &firstTS.String
	}
	if lastTS.Valid {
		stats.LastTimestamp = &lastTS.String
	}

	rows, err := a.db.Query(
		`SELECT from_msisdn, COUNT(*) AS count
		 FROM messages
		 GROUP BY from_msisdn
		 ORDER BY count DESC
		 LIMIT 10`,
	)
	if err != nil {
		return nil, errors.StorageError("failed to compute sender stats", err)
	}
	defer rows.Close()

	stats.PerSender = make([]storage.SenderCount, 0, 10)
	for rows.Next() {
		var sc storage.SenderCount
		if err := rows.Scan(&sc.Sender, &sc.Count); err != nil {
			return nil, errors.StorageError("failed to scan sender stats row", err)
		}
		stats.PerSender = append(stats.PerSender, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.StorageError("failed to iterate sender stats rows", err)
	}

	return stats, nil
}
