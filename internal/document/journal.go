package document

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.etcd.io/bbolt"
)

const journalBucket = "extractions"

// Outcome is how an extraction request ended
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeInvalidRequest   Outcome = "invalid_request"
	OutcomeExtractionFailed Outcome = "extraction_failed"
	OutcomeServerError      Outcome = "server_error"
)

// JournalEntry is the journal line for one request. It never carries extracted values.
type JournalEntry struct {
	ID           string       `json:"id"`
	DocumentType DocumentType `json:"document_type"`
	Filename     string       `json:"filename"`
	Outcome      Outcome      `json:"outcome"`
	Cause        string       `json:"cause,omitempty"`
	DurationMS   int64        `json:"duration_ms"`
	CreatedAt    time.Time    `json:"created_at"`
}

// Journal records extraction requests
type Journal interface {
	// Record appends an entry, assigning its ID when empty
	Record(entry *JournalEntry) error

	// List returns up to limit entries, newest first
	List(limit int) ([]*JournalEntry, error)

	// Close closes the journal
	Close() error
}

// BoltJournal implements the Journal interface using BoltDB
type BoltJournal struct {
	db *bbolt.DB
}

// NewBoltJournal opens (or creates) the journal file
func NewBoltJournal(path string) (*BoltJournal, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("opening boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(journalBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating bucket: %w", err)
	}

	return &BoltJournal{db: db}, nil
}

// Record appends an entry. UUIDv7 keys keep the bucket in time order.
func (b *BoltJournal) Record(entry *JournalEntry) error {
	if entry.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("generating entry id: %w", err)
		}
		entry.ID = id.String()
	}

	return b.db.Update(func(tx *bbolt.Tx) error {
		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("marshaling entry: %w", err)
		}
		return tx.Bucket([]byte(journalBucket)).Put([]byte(entry.ID), data)
	})
}

// List returns up to limit entries, newest first
func (b *BoltJournal) List(limit int) ([]*JournalEntry, error) {
	entries := make([]*JournalEntry, 0)
	if limit <= 0 {
		return entries, nil
	}

	err := b.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(journalBucket)).Cursor()
		for k, v := c.Last(); k != nil && len(entries) < limit; k, v = c.Prev() {
			var entry JournalEntry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("unmarshaling entry %s: %w", k, err)
			}
			entries = append(entries, &entry)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// Close closes the database
func (b *BoltJournal) Close() error {
	return b.db.Close()
}

// nopJournal is used when no journal is configured
type nopJournal struct{}

func (nopJournal) Record(*JournalEntry) error { return nil }

func (nopJournal) List(int) ([]*JournalEntry, error) { return []*JournalEntry{}, nil }

func (nopJournal) Close() error { return nil }
