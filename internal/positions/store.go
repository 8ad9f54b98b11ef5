package positions

import (
	"hash/fnv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
)

const shardCount = 32

// Store keeps the latest PositionReport per bus in a striped map. Each shard
// carries its own RWMutex so concurrent ingest from many drivers and reads
// from many riders never serialize on a single lock.
type Store struct {
	shards [shardCount]shard
}

type shard struct {
	mu      sync.RWMutex
	reports map[uuid.UUID]*domain.PositionReport
}

func NewStore() *Store {
	s := &Store{}
	for i := range s.shards {
		s.shards[i].reports = make(map[uuid.UUID]*domain.PositionReport)
	}
	return s
}

var _ repository.PositionStore = (*Store)(nil)

func (s *Store) shardFor(busID uuid.UUID) *shard {
	h := fnv.New32a()
	h.Write(busID[:])
	return &s.shards[h.Sum32()%shardCount]
}

// Update applies the report unless a newer one is already stored for the bus.
// Equal timestamps are treated as duplicates and discarded, which makes
// retried deliveries idempotent.
func (s *Store) Update(report *domain.PositionReport) bool {
	sh := s.shardFor(report.BusID)

	sh.mu.Lock()
	defer sh.mu.Unlock()

	if current, ok := sh.reports[report.BusID]; ok && !report.ReportedAt.After(current.ReportedAt) {
		return false
	}
	sh.reports[report.BusID] = report
	return true
}

func (s *Store) Get(busID uuid.UUID) *domain.PositionReport {
	sh := s.shardFor(busID)

	sh.mu.RLock()
	defer sh.mu.RUnlock()

	return sh.reports[busID]
}

// SnapshotFresh collects the latest report of every bus still inside the
// staleness window. Shards are read independently; the snapshot is not a
// point-in-time view across shards, which is fine for best-effort matching.
func (s *Store) SnapshotFresh(now time.Time, window time.Duration) []*domain.PositionReport {
	var fresh []*domain.PositionReport
	for i := range s.shards {
		sh := &s.shards[i]
		sh.mu.RLock()
		for _, r := range sh.reports {
			if r.IsFresh(now, window) {
				fresh = append(fresh, r)
			}
		}
		sh.mu.RUnlock()
	}
	return fresh
}
