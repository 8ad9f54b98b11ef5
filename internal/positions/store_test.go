package positions_test

import (
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/positions"
)

func report(busID uuid.UUID, at time.Time, lat float64) *domain.PositionReport {
	return &domain.PositionReport{
		BusID:      busID,
		BusNumber:  "B-7",
		Lat:        lat,
		Lng:        77.41,
		SpeedKmh:   30,
		ReportedAt: at,
	}
}

func TestStore_UpdateKeepsNewestReport(t *testing.T) {
	store := positions.NewStore()
	busID := uuid.New()
	base := time.Now()

	assert.True(t, store.Update(report(busID, base, 23.25)))
	assert.True(t, store.Update(report(busID, base.Add(5*time.Second), 23.26)))

	got := store.Get(busID)
	require.NotNil(t, got)
	assert.Equal(t, 23.26, got.Lat)
}

func TestStore_UpdateDiscardsOutOfOrderReports(t *testing.T) {
	store := positions.NewStore()
	busID := uuid.New()
	base := time.Now()

	// Apply out of order: the stored position must always reflect the
	// maximum timestamp seen so far.
	assert.True(t, store.Update(report(busID, base.Add(10*time.Second), 23.30)))
	assert.False(t, store.Update(report(busID, base, 23.10)), "older report must be discarded")
	assert.False(t, store.Update(report(busID, base.Add(10*time.Second), 23.99)), "duplicate timestamp must be discarded")

	got := store.Get(busID)
	require.NotNil(t, got)
	assert.Equal(t, 23.30, got.Lat)
	assert.Equal(t, base.Add(10*time.Second), got.ReportedAt)
}

func TestStore_GetUnknownBus(t *testing.T) {
	store := positions.NewStore()
	assert.Nil(t, store.Get(uuid.New()))
}

func TestStore_SnapshotFreshExcludesStale(t *testing.T) {
	store := positions.NewStore()
	now := time.Now()

	freshBus := uuid.New()
	staleBus := uuid.New()

	store.Update(report(freshBus, now.Add(-30*time.Second), 23.25))
	// 3 minutes old with a 2-minute window: must not appear.
	store.Update(report(staleBus, now.Add(-3*time.Minute), 23.26))

	fresh := store.SnapshotFresh(now, 2*time.Minute)
	require.Len(t, fresh, 1)
	assert.Equal(t, freshBus, fresh[0].BusID)
}

func TestStore_ConcurrentWritersAndReaders(t *testing.T) {
	store := positions.NewStore()
	base := time.Now()

	buses := make([]uuid.UUID, 50)
	for i := range buses {
		buses[i] = uuid.New()
	}

	var wg sync.WaitGroup
	for _, busID := range buses {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.Update(report(id, base.Add(time.Duration(i)*time.Second), 23.0))
			}
		}(busID)
	}
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				store.SnapshotFresh(base.Add(200*time.Second), 5*time.Minute)
			}
		}()
	}
	wg.Wait()

	for _, busID := range buses {
		got := store.Get(busID)
		require.NotNil(t, got)
		assert.Equal(t, base.Add(99*time.Second), got.ReportedAt)
	}
}
