// Package storage defines the persistence contract for ingested messages
// and the registry through which backend adapters are selected.
package storage

import (
	"time"
)

// Message is the sole persisted entity. All fields besides ReceivedAt come
// from the webhook payload and are immutable once stored; rows are never
// updated or deleted.
type Message struct {
	MessageID  string    `json:"message_id"`
	Sender     string    `json:"from"`
	To         string    `json:"to"`
	Timestamp  string    `json:"ts"`
	Text       string    `json:"text"`
	ReceivedAt time.Time `json:"-"`
}

// MessageFilters narrows ListMessages results. Zero values mean "no filter".
type MessageFilters struct {
	Sender       string // exact match on the sender number
	Since        string // inclusive lower bound on the message timestamp
	TextContains string // substring match on the message text
}

// SenderCount is one entry of the per-sender message counts in Stats.
type SenderCount struct {
	Sender string `json:"from"`
	Count  int64  `json:"count"`
}

// Stats holds aggregate statistics over all stored messages. FirstTS and
// LastTS are nil when the store is empty.
type Stats struct {
	TotalMessages  int64         `json:"total_messages"`
	SendersCount   int64         `json:"senders_count"`
	PerSender      []SenderCount `json:"messages_per_sender"`
	FirstTimestamp *string       `json:"first_message_ts"`
	LastTimestamp  *string       `json:"last_message_ts"`
}

// Storage is the persistence interface backed by SQLite or PostgreSQL.
type Storage interface {
	// Connection management
	Connect(config StorageConfig) error
	Close() error
	Health() error

	// InsertMessage persists a message idempotently. It returns true when
	// this call created the row and false when a row with the same
	// message_id already existed; the existing row is left untouched.
	// Duplicate detection relies on the engine's uniqueness constraint, so
	// concurrent inserts of the same message_id resolve deterministically:
	// exactly one caller sees true. Any other failure is a storage error.
	InsertMessage(msg *Message) (bool, error)

	// ListMessages returns messages matching filters ordered by timestamp
	// ascending with message_id as tiebreaker, plus the total matching
	// count before limit/offset are applied.
	ListMessages(filters MessageFilters, limit, offset int) ([]*Message, int, error)

	// GetStats computes aggregate statistics over all stored messages.
	GetStats() (*Stats, error)
}

// StorageConfig is the backend-specific connection configuration.
type StorageConfig interface {
	Validate() error
	GetType() string
	GetConnectionString() string
}

// StorageFactory creates a Storage from its backend config.
type StorageFactory interface {
	Create(config StorageConfig) (Storage, error)
	GetType() string
}
