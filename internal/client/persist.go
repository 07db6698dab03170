package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"codolio/internal/domain/models"
)

// snapshotKey is the single slot the tree snapshot lives under. The name is
// shared with the web client's persisted store.
const snapshotKey = "codolio-questions-storage"

// SnapshotStore persists the cached topic tree between runs.
type SnapshotStore interface {
	// Load returns the stored tree and whether a snapshot existed.
	Load() ([]models.TreeTopic, bool, error)
	// Save replaces the stored tree.
	Save(topics []models.TreeTopic) error
	Close() error
}

// BadgerSnapshotStore keeps the snapshot in an embedded badger database
// under one key.
type BadgerSnapshotStore struct {
	db *badger.DB
}

// NewBadgerSnapshotStore opens (or creates) a snapshot database at path.
func NewBadgerSnapshotStore(path string) (*BadgerSnapshotStore, error) {
	if err := os.MkdirAll(path, 0o750); err != nil {
		return nil, fmt.Errorf("create snapshot directory %s: %w", path, err)
	}

	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot database: %w", err)
	}

	return &BadgerSnapshotStore{db: db}, nil
}

// NewInMemorySnapshotStore opens a snapshot store that is lost on close.
func NewInMemorySnapshotStore() (*BadgerSnapshotStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory snapshot database: %w", err)
	}
	return &BadgerSnapshotStore{db: db}, nil
}

func (s *BadgerSnapshotStore) Load() ([]models.TreeTopic, bool, error) {
	var payload []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(snapshotKey))
		if err != nil {
			return err
		}
		payload, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load snapshot: %w", err)
	}

	var topics []models.TreeTopic
	if err := json.Unmarshal(payload, &topics); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return topics, true, nil
}

func (s *BadgerSnapshotStore) Save(topics []models.TreeTopic) error {
	payload, err := json.Marshal(topics)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(snapshotKey), payload)
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *BadgerSnapshotStore) Close() error {
	return s.db.Close()
}
