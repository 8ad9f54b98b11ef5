package arrivals

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/domain"
)

func newTestWorker(stops []*domain.Stop, radiusM float64) *ArrivalWorker {
	w := NewArrivalWorker(nil, nil, "test-group", radiusM, zap.NewNop())
	w.stops = stops
	return w
}

func TestArrivalWorker_Evaluate(t *testing.T) {
	stopID := uuid.New()
	stop := &domain.Stop{ID: stopID, Name: "Ashoka Garden", Lat: 23.268104, Lng: 77.457846}
	busID := uuid.New()

	report := func(lat, lng float64) *domain.PositionReport {
		return &domain.PositionReport{
			BusID:      busID,
			BusNumber:  "OC-07",
			Lat:        lat,
			Lng:        lng,
			ReportedAt: time.Now(),
		}
	}

	t.Run("alert fires on entering the approach radius", func(t *testing.T) {
		w := newTestWorker([]*domain.Stop{stop}, 300)

		// Far away: nothing.
		assert.Nil(t, w.Evaluate(report(23.2324, 77.4303)))

		// At the stop: one alert.
		alert := w.Evaluate(report(stop.Lat, stop.Lng))
		require.NotNil(t, alert)
		assert.Equal(t, "OC-07", alert.BusNumber)
		assert.Equal(t, stopID, alert.StopID)
		assert.Equal(t, "Ashoka Garden", alert.StopName)
	})

	t.Run("staying inside the radius is silent", func(t *testing.T) {
		w := newTestWorker([]*domain.Stop{stop}, 300)

		require.NotNil(t, w.Evaluate(report(stop.Lat, stop.Lng)))
		// Creeping forward within the radius must not re-alert.
		assert.Nil(t, w.Evaluate(report(stop.Lat+0.0005, stop.Lng)))
		assert.Nil(t, w.Evaluate(report(stop.Lat+0.0010, stop.Lng)))
	})

	t.Run("leaving and re-entering alerts again", func(t *testing.T) {
		w := newTestWorker([]*domain.Stop{stop}, 300)

		require.NotNil(t, w.Evaluate(report(stop.Lat, stop.Lng)))
		assert.Nil(t, w.Evaluate(report(23.2324, 77.4303)))
		assert.NotNil(t, w.Evaluate(report(stop.Lat, stop.Lng)))
	})

	t.Run("two buses are tracked independently", func(t *testing.T) {
		w := newTestWorker([]*domain.Stop{stop}, 300)

		otherBus := &domain.PositionReport{
			BusID:      uuid.New(),
			BusNumber:  "OC-02",
			Lat:        stop.Lat,
			Lng:        stop.Lng,
			ReportedAt: time.Now(),
		}

		require.NotNil(t, w.Evaluate(report(stop.Lat, stop.Lng)))
		// The second bus entering the same radius gets its own alert.
		assert.NotNil(t, w.Evaluate(otherBus))
	})

	t.Run("alert names the nearest of overlapping stops", func(t *testing.T) {
		nearID := uuid.New()
		farID := uuid.New()
		stops := []*domain.Stop{
			{ID: farID, Name: "Far Gate", Lat: 23.268104, Lng: 77.459846},
			{ID: nearID, Name: "Near Gate", Lat: 23.268104, Lng: 77.457846},
		}
		w := newTestWorker(stops, 300)

		alert := w.Evaluate(report(23.268104, 77.457846))
		require.NotNil(t, alert)
		assert.Equal(t, nearID, alert.StopID)
	})
}
