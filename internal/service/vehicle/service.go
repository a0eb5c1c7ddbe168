package vehicle

import (
	"context"
	"fmt"
	"time"

	"carrental-service/internal/domain/maintenance"
	"carrental-service/internal/domain/vehicle"
	xerrors "carrental-service/internal/pkg/errors"
	"carrental-service/internal/ws"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type txRunner interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type VehicleService struct {
	vehicleRepo     vehicle.Repository
	typeRepo        vehicle.TypeRepository
	maintenanceRepo maintenance.Repository
	tx              txRunner
	hub             *ws.Hub
	logger          *zap.Logger
}

func NewVehicleService(
	vehicleRepo vehicle.Repository,
	typeRepo vehicle.TypeRepository,
	maintenanceRepo maintenance.Repository,
	tx txRunner,
	hub *ws.Hub,
	logger *zap.Logger,
) *VehicleService {
	return &VehicleService{
		vehicleRepo:     vehicleRepo,
		typeRepo:        typeRepo,
		maintenanceRepo: maintenanceRepo,
		tx:              tx,
		hub:             hub,
		logger:          logger,
	}
}

func (s *VehicleService) Create(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	if _, err := s.typeRepo.FindByID(ctx, req.VehicleTypeID); err != nil {
		return nil, xerrors.Wrap(err, "vehicle type not found")
	}

	exists, err := s.vehicleRepo.ExistsByPlateNumber(ctx, req.PlateNumber)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, xerrors.ErrDuplicatePlate
	}

	v := &vehicle.Vehicle{
		PlateNumber:         req.PlateNumber,
		Make:                req.Make,
		Model:               req.Model,
		Year:                req.Year,
		Mileage:             req.Mileage,
		Status:              vehicle.StatusAvailable,
		BaseRatePerDay:      req.BaseRatePerDay,
		NextMaintenanceDate: req.NextMaintenanceDate,
		VehicleTypeID:       req.VehicleTypeID,
	}
	if err := s.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle added to fleet",
		zap.Int64("vehicle_id", v.ID),
		zap.String("plate", v.PlateNumber),
	)
	return v, nil
}

func (s *VehicleService) Get(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return s.vehicleRepo.FindWithDetails(ctx, id)
}

func (s *VehicleService) List(ctx context.Context) ([]*vehicle.Vehicle, error) {
	return s.vehicleRepo.List(ctx)
}

func (s *VehicleService) Update(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	v, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.PlateNumber != nil {
		v.PlateNumber = *req.PlateNumber
	}
	if req.Make != nil {
		v.Make = *req.Make
	}
	if req.Model != nil {
		v.Model = *req.Model
	}
	if req.Year != nil {
		v.Year = *req.Year
	}
	if req.Mileage != nil {
		v.Mileage = *req.Mileage
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown vehicle status")
		}
		v.Status = *req.Status
	}
	if req.BaseRatePerDay != nil {
		v.BaseRatePerDay = *req.BaseRatePerDay
	}
	if req.NextMaintenanceDate != nil {
		v.NextMaintenanceDate = *req.NextMaintenanceDate
	}
	if req.VehicleTypeID != nil {
		if _, err := s.typeRepo.FindByID(ctx, *req.VehicleTypeID); err != nil {
			return nil, xerrors.Wrap(err, "vehicle type not found")
		}
		v.VehicleTypeID = *req.VehicleTypeID
	}

	if err := s.vehicleRepo.Update(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VehicleService) Delete(ctx context.Context, id int64) error {
	if err := s.vehicleRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("vehicle removed from fleet", zap.Int64("vehicle_id", id))
	return nil
}

// Search lists vehicles of a type that are free over the requested window.
func (s *VehicleService) Search(ctx context.Context, req *vehicle.SearchRequest) ([]*vehicle.Vehicle, error) {
	if !req.End.After(req.Start) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "end date must be after start date")
	}
	return s.vehicleRepo.FindAvailable(ctx, req.VehicleTypeID, req.Start, req.End)
}

// ========== Images ==========

// AddImage stores an image reference. Marking it primary demotes the previous
// primary image, there is at most one per vehicle.
func (s *VehicleService) AddImage(ctx context.Context, vehicleID int64, req *vehicle.AddImageRequest) (*vehicle.Image, error) {
	if _, err := s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}

	img := &vehicle.Image{
		VehicleID: vehicleID,
		ImagePath: req.ImagePath,
		IsPrimary: req.IsPrimary,
	}
	if err := s.vehicleRepo.AddImage(ctx, img); err != nil {
		return nil, err
	}
	return img, nil
}

func (s *VehicleService) ListImages(ctx context.Context, vehicleID int64) ([]vehicle.Image, error) {
	return s.vehicleRepo.ListImages(ctx, vehicleID)
}

// PrimaryImage returns the primary image reference for a vehicle.
func (s *VehicleService) PrimaryImage(ctx context.Context, vehicleID int64) (*vehicle.Image, error) {
	return s.vehicleRepo.FindPrimaryImage(ctx, vehicleID)
}

// ========== Maintenance ==========

// ScheduleMaintenance books a workshop visit. The vehicle only drops out of
// the rentable pool immediately when the visit is due today or overdue;
// future visits block the calendar through the availability check instead.
func (s *VehicleService) ScheduleMaintenance(ctx context.Context, vehicleID int64, req *maintenance.ScheduleRequest) (*maintenance.Maintenance, error) {
	v, err := s.vehicleRepo.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if v.Status == vehicle.StatusRented {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "vehicle is currently rented out")
	}
	if _, err := s.maintenanceRepo.FindCurrentPending(ctx, vehicleID); err == nil {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "vehicle already has a pending maintenance")
	} else if !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	m := &maintenance.Maintenance{
		VehicleID:     vehicleID,
		ScheduledDate: req.Date,
		Type:          req.Type,
		Status:        maintenance.StatusScheduled,
		Notes:         req.Notes,
	}

	dueNow := !req.Date.After(endOfToday())

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.maintenanceRepo.CreateTx(ctx, tx, m); err != nil {
			return err
		}
		if dueNow {
			v.Status = vehicle.StatusMaintenance
			return s.vehicleRepo.UpdateTx(ctx, tx, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("maintenance scheduled",
		zap.Int64("maintenance_id", m.ID),
		zap.Int64("vehicle_id", vehicleID),
		zap.Time("date", m.ScheduledDate),
		zap.Bool("immediate", dueNow),
	)
	s.hub.Publish(ws.NewEvent(ws.EventMaintenanceScheduled, m))
	return m, nil
}

func endOfToday() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
}

// StartMaintenance moves a scheduled visit into the workshop and takes the
// vehicle off the road.
func (s *VehicleService) StartMaintenance(ctx context.Context, maintenanceID int64) (*maintenance.Maintenance, error) {
	m, err := s.maintenanceRepo.FindByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	if m.Status != maintenance.StatusScheduled {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot start a %s maintenance", m.Status))
	}

	v, err := s.vehicleRepo.FindByID(ctx, m.VehicleID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.maintenanceRepo.UpdateStatusTx(ctx, tx, m.ID, maintenance.StatusInProgress); err != nil {
			return err
		}
		v.Status = vehicle.StatusMaintenance
		return s.vehicleRepo.UpdateTx(ctx, tx, v)
	})
	if err != nil {
		return nil, err
	}

	m.Status = maintenance.StatusInProgress
	return m, nil
}

// CompleteMaintenance marks the visit done and puts the vehicle back into the
// rentable pool.
func (s *VehicleService) CompleteMaintenance(ctx context.Context, maintenanceID int64) (*maintenance.Maintenance, error) {
	m, err := s.maintenanceRepo.FindByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	if !m.Status.Pending() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot complete a %s maintenance", m.Status))
	}

	v, err := s.vehicleRepo.FindByID(ctx, m.VehicleID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.maintenanceRepo.UpdateStatusTx(ctx, tx, m.ID, maintenance.StatusDone); err != nil {
			return err
		}
		if v.Status == vehicle.StatusMaintenance {
			v.Status = vehicle.StatusAvailable
			return s.vehicleRepo.UpdateTx(ctx, tx, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Status = maintenance.StatusDone
	s.logger.Info("maintenance completed",
		zap.Int64("maintenance_id", m.ID),
		zap.Int64("vehicle_id", v.ID),
	)
	s.hub.Publish(ws.NewEvent(ws.EventVehicleReady, v))
	return m, nil
}

// CancelMaintenance drops a visit that never happened.
func (s *VehicleService) CancelMaintenance(ctx context.Context, maintenanceID int64) (*maintenance.Maintenance, error) {
	m, err := s.maintenanceRepo.FindByID(ctx, maintenanceID)
	if err != nil {
		return nil, err
	}
	if !m.Status.Pending() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot cancel a %s maintenance", m.Status))
	}

	v, err := s.vehicleRepo.FindByID(ctx, m.VehicleID)
	if err != nil {
		return nil, err
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.maintenanceRepo.UpdateStatusTx(ctx, tx, m.ID, maintenance.StatusCancelled); err != nil {
			return err
		}
		if v.Status == vehicle.StatusMaintenance {
			v.Status = vehicle.StatusAvailable
			return s.vehicleRepo.UpdateTx(ctx, tx, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.Status = maintenance.StatusCancelled
	return m, nil
}

func (s *VehicleService) ListMaintenance(ctx context.Context) ([]*maintenance.Maintenance, error) {
	return s.maintenanceRepo.List(ctx)
}

func (s *VehicleService) ListVehicleMaintenance(ctx context.Context, vehicleID int64) ([]*maintenance.Maintenance, error) {
	return s.maintenanceRepo.ListByVehicle(ctx, vehicleID)
}

// CurrentPendingMaintenance returns the latest Scheduled or InProgress record
// for a vehicle, or ErrNotFound when nothing is pending.
func (s *VehicleService) CurrentPendingMaintenance(ctx context.Context, vehicleID int64) (*maintenance.Maintenance, error) {
	if _, err := s.vehicleRepo.FindByID(ctx, vehicleID); err != nil {
		return nil, err
	}
	return s.maintenanceRepo.FindCurrentPending(ctx, vehicleID)
}

// ========== Vehicle types ==========

func (s *VehicleService) CreateType(ctx context.Context, req *vehicle.CreateTypeRequest) (*vehicle.Type, error) {
	t := &vehicle.Type{Name: req.Name, Description: req.Description}
	if err := s.typeRepo.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *VehicleService) ListTypes(ctx context.Context) ([]*vehicle.Type, error) {
	return s.typeRepo.List(ctx)
}

func (s *VehicleService) DeleteType(ctx context.Context, id int64) error {
	return s.typeRepo.Delete(ctx, id)
}
