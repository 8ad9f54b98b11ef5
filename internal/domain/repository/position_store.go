package repository

import (
	"time"

	"github.com/google/uuid"

	"github.com/campus-commute-service/internal/domain"
)

// PositionStore holds the latest known position per bus. It is the only
// frequently contended shared resource in the service: implementations must
// allow concurrent reads and per-bus writes without a global lock.
type PositionStore interface {
	// Update overwrites the bus's latest position. Reports older than the
	// stored one are discarded; the return value says whether it was applied.
	Update(report *domain.PositionReport) bool

	// Get returns the latest report for a bus, or nil when none exists.
	Get(busID uuid.UUID) *domain.PositionReport

	// SnapshotFresh returns the latest report of every bus whose report is
	// no older than the staleness window relative to now.
	SnapshotFresh(now time.Time, window time.Duration) []*domain.PositionReport
}
