package cache

import (
	"encoding/json"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"

	"github.com/anshif14/petzify-sub001/pkg/model"
)

// cacheKeyPrefix namespaces the single location slot each identity owns.
const cacheKeyPrefix = "petzify_user_location"

// Store is the ephemeral tier of the location resolver: one slot per
// identity, overwritten wholesale, possibly absent. The durable copy in
// the user profile is the source of truth when both exist.
type Store interface {
	Get(identity string) (*model.LocationRecord, bool)
	Put(identity string, record *model.LocationRecord)
	Delete(identity string)
}

type memoryStore struct {
	slots cmap.ConcurrentMap[string, []byte]
}

func NewMemoryStore() Store {
	return &memoryStore{slots: cmap.New[[]byte]()}
}

func key(identity string) string {
	if identity == "" {
		return cacheKeyPrefix
	}
	return cacheKeyPrefix + ":" + identity
}

func (s *memoryStore) Get(identity string) (*model.LocationRecord, bool) {
	raw, ok := s.slots.Get(key(identity))
	if !ok {
		return nil, false
	}

	var record model.LocationRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		// Corrupt slot, drop it so the next tier repopulates.
		s.slots.Remove(key(identity))
		return nil, false
	}
	return &record, true
}

// Put overwrites the identity's slot, stamping LastUpdated when absent.
func (s *memoryStore) Put(identity string, record *model.LocationRecord) {
	if record == nil {
		return
	}

	stored := *record
	if stored.LastUpdated.IsZero() {
		stored.LastUpdated = time.Now()
	}

	raw, err := json.Marshal(&stored)
	if err != nil {
		return
	}
	s.slots.Set(key(identity), raw)
}

func (s *memoryStore) Delete(identity string) {
	s.slots.Remove(key(identity))
}
