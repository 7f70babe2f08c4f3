package cache

import (
	"testing"
	"time"

	"github.com/anshif14/petzify-sub001/pkg/model"
)

func TestPutOverwritesWholesale(t *testing.T) {
	store := NewMemoryStore()

	store.Put("a@b.com", &model.LocationRecord{
		Latitude:    1,
		Longitude:   2,
		PlaceName:   "Old Town",
		LastUpdated: time.Now(),
	})
	store.Put("a@b.com", &model.LocationRecord{
		Latitude:    3,
		Longitude:   4,
		LastUpdated: time.Now(),
	})

	record, ok := store.Get("a@b.com")
	if !ok {
		t.Fatal("record missing after put")
	}
	if record.Latitude != 3 || record.Longitude != 4 {
		t.Errorf("got %+v, want overwritten coordinates", record)
	}
	if record.PlaceName != "" {
		t.Errorf("place name = %q, want empty: slots are replaced, never merged", record.PlaceName)
	}
}

func TestPutStampsLastUpdatedWhenAbsent(t *testing.T) {
	store := NewMemoryStore()

	store.Put("a@b.com", &model.LocationRecord{Latitude: 1, Longitude: 2})

	record, ok := store.Get("a@b.com")
	if !ok {
		t.Fatal("record missing after put")
	}
	if record.LastUpdated.IsZero() {
		t.Error("LastUpdated not stamped")
	}
}

func TestIdentitiesAreIsolated(t *testing.T) {
	store := NewMemoryStore()

	store.Put("a@b.com", &model.LocationRecord{Latitude: 1, Longitude: 2})
	store.Put("", &model.LocationRecord{Latitude: 9, Longitude: 9})

	record, ok := store.Get("a@b.com")
	if !ok || record.Latitude != 1 {
		t.Errorf("identity slot clobbered by anonymous slot: %+v", record)
	}
}

func TestDeleteIsUnconditional(t *testing.T) {
	store := NewMemoryStore()

	store.Delete("missing@b.com") // no-op, must not panic

	store.Put("a@b.com", &model.LocationRecord{Latitude: 1, Longitude: 2})
	store.Delete("a@b.com")

	if _, ok := store.Get("a@b.com"); ok {
		t.Error("record still present after delete")
	}
}
