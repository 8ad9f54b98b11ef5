package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/campus-commute-service/internal/config"
	"github.com/campus-commute-service/internal/domain"
	"github.com/campus-commute-service/internal/domain/repository"
	"github.com/campus-commute-service/internal/metrics"
	"github.com/campus-commute-service/internal/pkg/errors"
	"github.com/campus-commute-service/internal/pkg/utils"
	"github.com/campus-commute-service/internal/usecase/dto"
)

// CommuteUseCase is the geofence/direction classifier plus the matching and
// ETA engine behind the student-facing endpoints.
type CommuteUseCase struct {
	stopRepo     repository.StopRepository
	routeRepo    repository.RouteRepository
	scheduleRepo repository.ScheduleRepository
	store        repository.PositionStore
	logger       *zap.Logger
	metrics      *metrics.Collector

	campus   config.CampusConfig
	tracking config.TrackingConfig

	// now is swappable in tests
	now func() time.Time
}

func NewCommuteUseCase(
	stopRepo repository.StopRepository,
	routeRepo repository.RouteRepository,
	scheduleRepo repository.ScheduleRepository,
	store repository.PositionStore,
	logger *zap.Logger,
	m *metrics.Collector,
	campus config.CampusConfig,
	tracking config.TrackingConfig,
) *CommuteUseCase {
	return &CommuteUseCase{
		stopRepo:     stopRepo,
		routeRepo:    routeRepo,
		scheduleRepo: scheduleRepo,
		store:        store,
		logger:       logger,
		metrics:      m,
		campus:       campus,
		tracking:     tracking,
		now:          time.Now,
	}
}

// WithClock overrides the time source. Test helper.
func (uc *CommuteUseCase) WithClock(now func() time.Time) *CommuteUseCase {
	uc.now = now
	return uc
}

// ClassifyDirection applies the geofence rule: a rider inside the campus
// radius is leaving (OUTGOING, needs a drop-off), a rider outside it is
// heading toward campus (INCOMING).
func (uc *CommuteUseCase) ClassifyDirection(lat, lng float64) domain.CommuteDirection {
	distKm := utils.HaversineDistance(lat, lng, uc.campus.Lat, uc.campus.Lng)
	if distKm*1000 <= uc.campus.GeofenceRadiusM {
		return domain.CommuteOutgoing
	}
	return domain.CommuteIncoming
}

// FindNearestStop picks the stop minimizing haversine distance within the
// search radius, ties broken by lowest stop id. Returns nil when no stop
// qualifies; callers must treat that as "no stop context", not an error.
func (uc *CommuteUseCase) FindNearestStop(ctx context.Context, lat, lng float64) (*domain.Stop, error) {
	stops, err := uc.stopRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	var nearest *domain.Stop
	var nearestDist float64
	for _, stop := range stops {
		distM := utils.HaversineDistance(lat, lng, stop.Lat, stop.Lng) * 1000
		if distM > uc.tracking.StopSearchRadiusM {
			continue
		}
		if nearest == nil || distM < nearestDist ||
			(distM == nearestDist && stop.ID.String() < nearest.ID.String()) {
			nearest = stop
			nearestDist = distM
		}
	}

	return nearest, nil
}

func (uc *CommuteUseCase) GetCommuteStatus(ctx context.Context, req dto.CommuteStatusRequest) (*dto.CommuteStatusResponse, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	if uc.metrics != nil {
		uc.metrics.CommuteQueries.Inc()
	}

	direction := uc.ClassifyDirection(req.Latitude, req.Longitude)

	nearestStop, err := uc.FindNearestStop(ctx, req.Latitude, req.Longitude)
	if err != nil {
		return nil, err
	}

	// The stop the ETA is measured against: the rider's pickup stop when
	// inbound, the chosen drop-off when outbound.
	var targetStop *domain.Stop
	var routeDirection domain.RouteDirection
	switch direction {
	case domain.CommuteIncoming:
		targetStop = nearestStop
		routeDirection = domain.DirectionInbound
	case domain.CommuteOutgoing:
		routeDirection = domain.DirectionOutbound
		if req.DestinationStopID != "" {
			stopID, parseErr := uuid.Parse(req.DestinationStopID)
			if parseErr != nil {
				return nil, errors.ErrInvalidRequest
			}
			targetStop, err = uc.stopRepo.GetByID(ctx, stopID)
			if err != nil {
				return nil, err
			}
		}
	}

	resp := &dto.CommuteStatusResponse{
		Direction:      string(direction),
		NearestStop:    dto.ConvertStopWithDistance(nearestStop, req.Latitude, req.Longitude),
		AvailableBuses: []domain.AvailableBus{},
	}

	// No stop context: the classification still stands, the bus list is empty.
	if targetStop == nil {
		return resp, nil
	}

	buses, err := uc.matchBuses(ctx, targetStop, routeDirection)
	if err != nil {
		return nil, err
	}
	resp.AvailableBuses = buses

	return resp, nil
}

// matchBuses filters active schedules down to live buses whose route serves
// the target stop in the relevant direction, and ranks them by ETA.
func (uc *CommuteUseCase) matchBuses(
	ctx context.Context,
	targetStop *domain.Stop,
	direction domain.RouteDirection,
) ([]domain.AvailableBus, error) {
	servingRoutes, err := uc.routeRepo.ListServingStop(ctx, targetStop.ID, direction)
	if err != nil {
		return nil, err
	}
	if len(servingRoutes) == 0 {
		return []domain.AvailableBus{}, nil
	}

	routeIDs := make(map[uuid.UUID]bool, len(servingRoutes))
	for _, rt := range servingRoutes {
		routeIDs[rt.ID] = true
	}

	active, err := uc.scheduleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	buses := make([]domain.AvailableBus, 0, len(active))
	for _, sched := range active {
		if sched.Direction != direction || !routeIDs[sched.RouteID] {
			continue
		}

		pos := uc.store.Get(sched.BusID)
		if pos == nil || !pos.IsFresh(now, uc.tracking.StalenessWindow) {
			// A bus without a recent report is not in service for matching;
			// it must never show up as a ghost entry.
			continue
		}

		distanceKm := utils.HaversineDistance(pos.Lat, pos.Lng, targetStop.Lat, targetStop.Lng)
		eta := utils.EstimateETAMinutes(
			distanceKm,
			pos.SpeedKmh,
			uc.tracking.FallbackSpeedKmh,
			uc.tracking.MinPlausibleSpeedKmh,
		)

		buses = append(buses, domain.AvailableBus{
			BusNumber:  sched.BusNumber,
			RouteName:  sched.RouteName,
			Capacity:   sched.BusCapacity,
			Lat:        pos.Lat,
			Lng:        pos.Lng,
			DistanceKm: distanceKm,
			ETAMinutes: eta,
		})
	}

	sort.Slice(buses, func(i, j int) bool {
		if buses[i].ETAMinutes != buses[j].ETAMinutes {
			return buses[i].ETAMinutes < buses[j].ETAMinutes
		}
		return buses[i].BusNumber < buses[j].BusNumber
	})

	return buses, nil
}

func (uc *CommuteUseCase) GetNearbyStops(ctx context.Context, req dto.NearbyStopsRequest) ([]*dto.StopWithDistance, error) {
	if !utils.ValidateCoordinates(req.Latitude, req.Longitude) {
		return nil, errors.ErrInvalidCoordinates
	}

	radiusM := req.RadiusM
	if radiusM == 0 {
		radiusM = uc.tracking.StopSearchRadiusM
	}

	stops, err := uc.stopRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.StopWithDistance, 0, len(stops))
	for _, stop := range stops {
		converted := dto.ConvertStopWithDistance(stop, req.Latitude, req.Longitude)
		if converted.DistanceKm*1000 <= radiusM {
			result = append(result, converted)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].DistanceKm != result[j].DistanceKm {
			return result[i].DistanceKm < result[j].DistanceKm
		}
		return result[i].ID < result[j].ID
	})

	return result, nil
}

func (uc *CommuteUseCase) GetLiveBuses(ctx context.Context) ([]*dto.LiveBusResponse, error) {
	fresh := uc.store.SnapshotFresh(uc.now(), uc.tracking.StalenessWindow)

	result := make([]*dto.LiveBusResponse, 0, len(fresh))
	for _, pos := range fresh {
		result = append(result, &dto.LiveBusResponse{
			BusNumber:  pos.BusNumber,
			Lat:        pos.Lat,
			Lng:        pos.Lng,
			SpeedKmh:   pos.SpeedKmh,
			ReportedAt: pos.ReportedAt.Unix(),
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].BusNumber < result[j].BusNumber
	})

	return result, nil
}

func (uc *CommuteUseCase) GetMorningBuses(ctx context.Context, req dto.MorningBusesRequest) ([]*dto.ScheduledBusResponse, error) {
	stopID, err := uuid.Parse(req.StopID)
	if err != nil {
		return nil, errors.ErrInvalidRequest
	}

	day := uc.now()
	if req.Date != "" {
		day, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, errors.ErrInvalidRequest
		}
	}

	// Morning service runs toward campus.
	schedules, err := uc.scheduleRepo.ListForStopOnDate(ctx, stopID, day, domain.DirectionInbound)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ScheduledBusResponse, 0, len(schedules))
	for _, sched := range schedules {
		result = append(result, &dto.ScheduledBusResponse{
			ScheduleID: sched.ID.String(),
			BusNumber:  sched.BusNumber,
			RouteName:  sched.RouteName,
			Capacity:   sched.BusCapacity,
			Direction:  string(sched.Direction),
			Status:     string(sched.Status),
		})
	}

	return result, nil
}
