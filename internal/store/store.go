package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/streamlist/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket and key names
var (
	bucketWatchlist = []byte("watchlist")

	keyItems  = "items"
	keyFilter = "filter"
)

const dbFileName = "streamlist.db"

// WatchlistStore implements domain.WatchlistStore using BoltDB.
type WatchlistStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory copy of raw values (promoted on access)
	cache map[string][]byte
}

// NewWatchlistStore opens (or creates) the store under dir.
// An empty dir gives a memory-only store that persists nothing.
func NewWatchlistStore(dir string) (*WatchlistStore, error) {
	if dir == "" {
		return &WatchlistStore{cache: make(map[string][]byte)}, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFileName)
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketWatchlist)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &WatchlistStore{db: db, cache: make(map[string][]byte)}, nil
}

// Path returns the database file path, or "" in memory-only mode
func (s *WatchlistStore) Path() string {
	if s.db == nil {
		return ""
	}
	return s.db.Path()
}

func (s *WatchlistStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Raw helpers ===

func (s *WatchlistStore) getRaw(key string) ([]byte, bool) {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return data, true
	}
	s.mu.RUnlock()

	if s.db == nil {
		return nil, false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatchlist)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return nil, false
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return data, true
}

func (s *WatchlistStore) setRaw(key string, data []byte) error {
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatchlist)
		return b.Put([]byte(key), data)
	})
}

func (s *WatchlistStore) delete(key string) error {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketWatchlist)
		if b == nil {
			return nil
		}
		return b.Delete([]byte(key))
	})
}

// === Items ===

// LoadItems returns the persisted list. Corrupt data reads as absent.
func (s *WatchlistStore) LoadItems() ([]domain.WatchlistItem, bool) {
	data, ok := s.getRaw(keyItems)
	if !ok {
		return nil, false
	}

	var items []domain.WatchlistItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, false
	}
	if items == nil {
		// "null" is not a list
		return nil, false
	}
	return sanitizeItems(items), true
}

func (s *WatchlistStore) SaveItems(items []domain.WatchlistItem) error {
	if items == nil {
		items = []domain.WatchlistItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.setRaw(keyItems, data)
}

// === Filter ===

// LoadFilter returns the persisted filter. Unknown values read as absent.
func (s *WatchlistStore) LoadFilter() (domain.Filter, bool) {
	data, ok := s.getRaw(keyFilter)
	if !ok {
		return "", false
	}
	return domain.ParseFilter(string(data))
}

func (s *WatchlistStore) SaveFilter(filter domain.Filter) error {
	return s.setRaw(keyFilter, []byte(filter))
}

// Reset removes both the list and the filter
func (s *WatchlistStore) Reset() error {
	if err := s.delete(keyItems); err != nil {
		return err
	}
	return s.delete(keyFilter)
}

// sanitizeItems drops entries that would break list invariants:
// blank text or an ID that is empty or already seen.
func sanitizeItems(items []domain.WatchlistItem) []domain.WatchlistItem {
	seen := make(map[string]bool, len(items))
	out := make([]domain.WatchlistItem, 0, len(items))
	for _, item := range items {
		if item.ID == "" || seen[item.ID] || strings.TrimSpace(item.Text) == "" {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}
