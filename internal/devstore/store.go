// Package devstore keeps a persistent registry of HID devices this tool has
// seen, so enumeration and hotplug monitoring can tell new devices from
// returning ones.
package devstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger"
	"go.uber.org/zap"
)

const keyPrefix = "device:"

// Record describes one device observation.
type Record struct {
	Address   string    `json:"address"`
	Name      string    `json:"name"`
	Bus       uint32    `json:"bus"`
	Vendor    uint16    `json:"vendor"`
	Product   uint16    `json:"product"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
}

type Store struct {
	log *zap.Logger
	db  *badger.DB
	now func() time.Time
}

// Open opens (or creates) the registry database in dir.
func Open(dir string, log *zap.Logger, now func() time.Time) (*Store, error) {
	options := badger.DefaultOptions(dir)
	options.Logger = badgerLogger{l: log.Named("badger")}
	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("failed to open device registry: %w", err)
	}
	return &Store{log: log, db: db, now: now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Touch records an observation of a device, preserving FirstSeen across
// repeat sightings.
func (s *Store) Touch(rec Record) error {
	return s.db.Update(func(txn *badger.Txn) error {
		key := []byte(keyPrefix + rec.Address)
		now := s.now()
		rec.FirstSeen = now
		rec.LastSeen = now
		if item, err := txn.Get(key); err == nil {
			var prev Record
			err := item.Value(func(val []byte) error {
				return json.Unmarshal(val, &prev)
			})
			if err == nil && !prev.FirstSeen.IsZero() {
				rec.FirstSeen = prev.FirstSeen
			}
		}
		val, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		return txn.Set(key, val)
	})
}

// Get returns the stored record for a device address.
func (s *Store) Get(address string) (Record, bool, error) {
	var rec Record
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + address))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &rec)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return Record{}, false, nil
	}
	if err != nil {
		return Record{}, false, err
	}
	return rec, true, nil
}

// List returns every stored record in key order.
func (s *Store) List() ([]Record, error) {
	var records []Record
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(keyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec Record
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			records = append(records, rec)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

type badgerLogger struct {
	l *zap.Logger
}

func (l badgerLogger) Errorf(msg string, args ...interface{}) {
	l.l.Error(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Warningf(msg string, args ...interface{}) {
	l.l.Warn(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Infof(msg string, args ...interface{}) {
	l.l.Debug(fmt.Sprintf(msg, args...))
}

func (l badgerLogger) Debugf(msg string, args ...interface{}) {
	l.l.Debug(fmt.Sprintf(msg, args...))
}
