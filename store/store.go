// Package store holds the latest-known snapshot per data kind. It is the
// only shared mutable state between the polling side and the read side:
// writers replace a kind's value wholesale under the lock, readers get a
// consistent value for one kind with no cross-kind guarantee.
package store

import (
	"sync"
	"time"

	"github.com/Rishi5377/NagaraTrackLite/fleet"
)

type entry struct {
	value     any
	seq       uint64
	fetchedAt time.Time
}

// Store keeps the last successfully fetched value for each kind together
// with the sequence number of the cycle that produced it. Completions are
// applied in completion order: a Set carrying a sequence number at or
// below the applied one is discarded, so a slow early fetch cannot
// overwrite a faster later one.
type Store struct {
	mu      sync.RWMutex
	entries map[fleet.Kind]entry
}

func New() *Store {
	return &Store{entries: map[fleet.Kind]entry{}}
}

// Set replaces the value for kind if seq is newer than the applied
// sequence number. It reports whether the value was applied.
func (s *Store) Set(kind fleet.Kind, seq uint64, value any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cur, ok := s.entries[kind]; ok && seq <= cur.seq {
		return false
	}
	s.entries[kind] = entry{value: value, seq: seq, fetchedAt: time.Now()}
	return true
}

// Seq returns the applied sequence number for kind (0 before first load).
func (s *Store) Seq(kind fleet.Kind) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[kind].seq
}

// FetchedAt returns when the current value for kind was applied.
func (s *Store) FetchedAt(kind fleet.Kind) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[kind]
	return e.fetchedAt, ok
}

func (s *Store) get(kind fleet.Kind) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entries[kind]
	return e.value, ok
}

// Vehicles returns the current vehicle snapshot set. ok is false before
// the first successful vehicles fetch.
func (s *Store) Vehicles() ([]fleet.VehicleSnapshot, bool) {
	v, ok := s.get(fleet.KindVehicles)
	if !ok {
		return nil, false
	}
	return v.([]fleet.VehicleSnapshot), true
}

// Routes returns the current route snapshot set.
func (s *Store) Routes() ([]fleet.RouteSnapshot, bool) {
	v, ok := s.get(fleet.KindRoutes)
	if !ok {
		return nil, false
	}
	return v.([]fleet.RouteSnapshot), true
}

// Stops returns the current stop snapshot set.
func (s *Store) Stops() ([]fleet.StopSnapshot, bool) {
	v, ok := s.get(fleet.KindStops)
	if !ok {
		return nil, false
	}
	return v.([]fleet.StopSnapshot), true
}

// Health returns the current health snapshot.
func (s *Store) Health() (fleet.HealthSnapshot, bool) {
	v, ok := s.get(fleet.KindHealth)
	if !ok {
		return fleet.HealthSnapshot{}, false
	}
	return v.(fleet.HealthSnapshot), true
}
