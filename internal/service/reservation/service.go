package reservation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"carrental-service/internal/domain/client"
	"carrental-service/internal/domain/reservation"
	"carrental-service/internal/domain/tariff"
	"carrental-service/internal/domain/vehicle"
	xerrors "carrental-service/internal/pkg/errors"
	"carrental-service/internal/ws"

	"github.com/jackc/pgx/v5"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// txRunner is the transaction boundary the booking flows run inside.
type txRunner interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type ReservationService struct {
	reservationRepo reservation.Repository
	paymentRepo     reservation.PaymentRepository
	vehicleRepo     vehicle.Repository
	clientRepo      client.Repository
	tariffRepo      tariff.Repository
	tx              txRunner
	hub             *ws.Hub
	logger          *zap.Logger
}

func NewReservationService(
	reservationRepo reservation.Repository,
	paymentRepo reservation.PaymentRepository,
	vehicleRepo vehicle.Repository,
	clientRepo client.Repository,
	tariffRepo tariff.Repository,
	tx txRunner,
	hub *ws.Hub,
	logger *zap.Logger,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		paymentRepo:     paymentRepo,
		vehicleRepo:     vehicleRepo,
		clientRepo:      clientRepo,
		tariffRepo:      tariffRepo,
		tx:              tx,
		hub:             hub,
		logger:          logger,
	}
}

func newReference() string {
	return "RSV-" + ulid.Make().String()
}

// Create books a vehicle for a client on the staff flow. The availability
// check and the insert run under a per-vehicle advisory lock so two agents
// cannot double-book the same car.
func (s *ReservationService) Create(ctx context.Context, req *reservation.CreateReservationRequest, createdBy int64) (*reservation.Reservation, error) {
	if !req.RequestedEnd.After(req.RequestedStart) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "end date must be after start date")
	}

	cl, err := s.clientRepo.FindByID(ctx, req.ClientID)
	if err != nil {
		return nil, xerrors.Wrap(err, "client not found")
	}

	v, err := s.vehicleRepo.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, xerrors.Wrap(err, "vehicle not found")
	}
	if v.Status == vehicle.StatusMaintenance {
		return nil, xerrors.Wrap(xerrors.ErrVehicleUnavailable, "vehicle is in maintenance")
	}

	total := req.TotalAmount
	if total == 0 {
		total, err = s.quote(ctx, v, req.RequestedStart, req.RequestedEnd)
		if err != nil {
			return nil, err
		}
	}

	res := &reservation.Reservation{
		Reference:       newReference(),
		ClientID:        cl.ID,
		VehicleID:       &v.ID,
		RequestedStart:  req.RequestedStart,
		RequestedEnd:    req.RequestedEnd,
		Status:          reservation.StatusConfirmed,
		TotalAmount:     total,
		DepositAmount:   req.DepositAmount,
		CreatedByUserID: &createdBy,
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reservationRepo.LockVehicleTx(ctx, tx, v.ID); err != nil {
			return err
		}
		free, err := s.reservationRepo.IsVehicleAvailableTx(ctx, tx, v.ID, req.RequestedStart, req.RequestedEnd)
		if err != nil {
			return err
		}
		if !free {
			return xerrors.ErrVehicleUnavailable
		}
		if err := s.reservationRepo.CreateTx(ctx, tx, res); err != nil {
			return err
		}
		v.Status = vehicle.StatusReserved
		return s.vehicleRepo.UpdateTx(ctx, tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation created",
		zap.Int64("reservation_id", res.ID),
		zap.String("reference", res.Reference),
		zap.Int64("vehicle_id", v.ID),
		zap.Float64("total", res.TotalAmount),
	)
	s.hub.Publish(ws.NewEvent(ws.EventReservationCreated, res))
	return res, nil
}

// CreatePublicRequest handles the web booking form. The client is matched by
// email and created on the fly when unknown; the reservation stays Pending
// with no price until staff confirm it.
func (s *ReservationService) CreatePublicRequest(ctx context.Context, req *reservation.PublicRequest) (*reservation.Reservation, error) {
	if !req.End.After(req.Start) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "end date must be after start date")
	}

	if _, err := s.vehicleRepo.FindByID(ctx, req.VehicleID); err != nil {
		return nil, xerrors.Wrap(err, "vehicle not found")
	}

	free, err := s.reservationRepo.IsVehicleAvailable(ctx, req.VehicleID, req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, xerrors.ErrVehicleUnavailable
	}

	cl, err := s.findOrCreateClient(ctx, req)
	if err != nil {
		return nil, err
	}

	res := &reservation.Reservation{
		Reference:      newReference(),
		ClientID:       cl.ID,
		VehicleID:      &req.VehicleID,
		RequestedStart: req.Start,
		RequestedEnd:   req.End,
		Status:         reservation.StatusPending,
	}
	if err := s.reservationRepo.Create(ctx, res); err != nil {
		return nil, err
	}

	s.logger.Info("public reservation request received",
		zap.Int64("reservation_id", res.ID),
		zap.String("reference", res.Reference),
		zap.String("client_email", cl.Email),
	)
	s.hub.Publish(ws.NewEvent(ws.EventReservationCreated, res))
	return res, nil
}

func (s *ReservationService) findOrCreateClient(ctx context.Context, req *reservation.PublicRequest) (*client.Client, error) {
	cl, err := s.clientRepo.FindByEmail(ctx, req.ClientEmail)
	if err == nil {
		return cl, nil
	}
	if !xerrors.Is(err, xerrors.ErrNotFound) {
		return nil, err
	}

	first, last := splitFullName(req.ClientName)
	cl = &client.Client{
		FirstName: first,
		LastName:  last,
		Email:     strings.ToLower(req.ClientEmail),
		Phone:     req.ClientPhone,
		// License collected at the counter on pickup.
		DriverLicenseNumber: "TEMP-" + ulid.Make().String(),
		BirthDate:           time.Time{},
	}
	if err := s.clientRepo.Create(ctx, cl); err != nil {
		return nil, err
	}
	return cl, nil
}

func splitFullName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return name, ""
	}
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}

// Confirm moves a pending request to Confirmed, optionally reassigning the
// vehicle, and prices the booking if no amount was agreed yet.
func (s *ReservationService) Confirm(ctx context.Context, id int64, vehicleID *int64) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.CanTransition(res.Status, reservation.StatusConfirmed) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot confirm a %s reservation", res.Status))
	}

	if vehicleID != nil {
		res.VehicleID = vehicleID
	}
	if res.VehicleID == nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "a vehicle must be assigned before confirming")
	}

	v, err := s.vehicleRepo.FindByID(ctx, *res.VehicleID)
	if err != nil {
		return nil, xerrors.Wrap(err, "vehicle not found")
	}

	if res.TotalAmount == 0 {
		res.TotalAmount, err = s.quote(ctx, v, res.RequestedStart, res.RequestedEnd)
		if err != nil {
			return nil, err
		}
	}

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reservationRepo.LockVehicleTx(ctx, tx, v.ID); err != nil {
			return err
		}
		free, err := s.reservationRepo.IsVehicleAvailableTx(ctx, tx, v.ID, res.RequestedStart, res.RequestedEnd)
		if err != nil {
			return err
		}
		if !free {
			return xerrors.ErrVehicleUnavailable
		}
		res.Status = reservation.StatusConfirmed
		if err := s.reservationRepo.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		v.Status = vehicle.StatusReserved
		return s.vehicleRepo.UpdateTx(ctx, tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation confirmed", zap.Int64("reservation_id", res.ID))
	s.hub.Publish(ws.NewEvent(ws.EventReservationConfirmed, res))
	return res, nil
}

// quote prices [start, end) for a vehicle: the best matching tariff for its
// type wins, the vehicle's own base rate is the fallback.
func (s *ReservationService) quote(ctx context.Context, v *vehicle.Vehicle, start, end time.Time) (float64, error) {
	rate := v.BaseRatePerDay
	t, err := s.tariffRepo.FindBestRate(ctx, v.VehicleTypeID, start, end)
	if err == nil {
		rate = t.PricePerDay
	} else if !xerrors.Is(err, xerrors.ErrNotFound) {
		return 0, err
	}
	return round2(float64(BillableDays(start, end)) * rate), nil
}

// Pickup hands the vehicle over: the reservation goes Active, the vehicle is
// marked Rented, and the acting agent is recorded on the booking.
func (s *ReservationService) Pickup(ctx context.Context, id, userID int64) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.CanTransition(res.Status, reservation.StatusActive) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot hand over a %s reservation", res.Status))
	}
	if res.VehicleID == nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "reservation has no vehicle assigned")
	}

	v, err := s.vehicleRepo.FindByID(ctx, *res.VehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	res.Status = reservation.StatusActive
	res.ActualStart = &now
	res.CreatedByUserID = &userID

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reservationRepo.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		v.Status = vehicle.StatusRented
		return s.vehicleRepo.UpdateTx(ctx, tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vehicle picked up",
		zap.Int64("reservation_id", res.ID),
		zap.Int64("vehicle_id", v.ID),
	)
	s.hub.Publish(ws.NewEvent(ws.EventReservationPickedUp, res))
	return res, nil
}

// Return closes an active rental. A late return is charged per started late
// day at the vehicle's base rate with a surcharge, added onto the total.
func (s *ReservationService) Return(ctx context.Context, id int64, mileage int, userID int64) (*reservation.ReturnResult, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.CanTransition(res.Status, reservation.StatusCompleted) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot return a %s reservation", res.Status))
	}
	if res.VehicleID == nil {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "reservation has no vehicle assigned")
	}

	v, err := s.vehicleRepo.FindByID(ctx, *res.VehicleID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	extra := LateFee(res.RequestedEnd, now, v.BaseRatePerDay)

	res.Status = reservation.StatusCompleted
	res.ActualEnd = &now
	res.TotalAmount = round2(res.TotalAmount + extra)
	res.CreatedByUserID = &userID

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reservationRepo.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		v.Status = vehicle.StatusAvailable
		if mileage > v.Mileage {
			v.Mileage = mileage
		}
		return s.vehicleRepo.UpdateTx(ctx, tx, v)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("vehicle returned",
		zap.Int64("reservation_id", res.ID),
		zap.Int64("vehicle_id", v.ID),
		zap.Float64("extra_charges", extra),
	)
	s.hub.Publish(ws.NewEvent(ws.EventReservationReturned, res))
	return &reservation.ReturnResult{Reservation: res, ExtraCharges: extra}, nil
}

// Cancel aborts a reservation in any non-terminal state and frees the vehicle
// if it was only held, not out.
func (s *ReservationService) Cancel(ctx context.Context, id, userID int64) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.CanTransition(res.Status, reservation.StatusCancelled) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot cancel a %s reservation", res.Status))
	}

	res.Status = reservation.StatusCancelled
	res.CreatedByUserID = &userID

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reservationRepo.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		if res.VehicleID == nil {
			return nil
		}
		v, err := s.vehicleRepo.FindByID(ctx, *res.VehicleID)
		if err != nil {
			return err
		}
		if v.Status == vehicle.StatusReserved {
			v.Status = vehicle.StatusAvailable
			return s.vehicleRepo.UpdateTx(ctx, tx, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation cancelled", zap.Int64("reservation_id", res.ID))
	s.hub.Publish(ws.NewEvent(ws.EventReservationCancelled, res))
	return res, nil
}

// MarkNoShow flags a booking the client never collected and releases the hold
// on the vehicle.
func (s *ReservationService) MarkNoShow(ctx context.Context, id int64) (*reservation.Reservation, error) {
	res, err := s.reservationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !reservation.CanTransition(res.Status, reservation.StatusNoShow) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidTransition,
			fmt.Sprintf("cannot mark a %s reservation as no-show", res.Status))
	}

	res.Status = reservation.StatusNoShow

	err = s.tx.WithinTx(ctx, func(tx pgx.Tx) error {
		if err := s.reservationRepo.UpdateTx(ctx, tx, res); err != nil {
			return err
		}
		if res.VehicleID == nil {
			return nil
		}
		v, err := s.vehicleRepo.FindByID(ctx, *res.VehicleID)
		if err != nil {
			return err
		}
		if v.Status == vehicle.StatusReserved {
			v.Status = vehicle.StatusAvailable
			return s.vehicleRepo.UpdateTx(ctx, tx, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("reservation marked no-show", zap.Int64("reservation_id", res.ID))
	return res, nil
}

// RecordPayment stores money received against a reservation.
func (s *ReservationService) RecordPayment(ctx context.Context, reservationID int64, req *reservation.RecordPaymentRequest) (*reservation.Payment, error) {
	if !req.Method.Valid() {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "unknown payment method")
	}

	res, err := s.reservationRepo.FindByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if res.Status == reservation.StatusCancelled {
		return nil, xerrors.Wrap(xerrors.ErrConflict, "cannot record a payment on a cancelled reservation")
	}

	p := &reservation.Payment{
		ReservationID: res.ID,
		Amount:        req.Amount,
		Method:        req.Method,
		Status:        reservation.PaymentCompleted,
		PaidAt:        time.Now(),
	}
	if err := s.paymentRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("payment recorded",
		zap.Int64("reservation_id", res.ID),
		zap.Float64("amount", p.Amount),
		zap.String("method", string(p.Method)),
	)
	s.hub.Publish(ws.NewEvent(ws.EventPaymentRecorded, p))
	return p, nil
}

// ListPayments returns every payment recorded against a reservation.
func (s *ReservationService) ListPayments(ctx context.Context, reservationID int64) ([]reservation.Payment, error) {
	if _, err := s.reservationRepo.FindByID(ctx, reservationID); err != nil {
		return nil, err
	}
	return s.paymentRepo.ListByReservation(ctx, reservationID)
}

func (s *ReservationService) Get(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return s.reservationRepo.FindWithDetails(ctx, id)
}

func (s *ReservationService) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	return s.reservationRepo.ListActive(ctx)
}

func (s *ReservationService) ListByClient(ctx context.Context, clientID int64) ([]*reservation.Reservation, error) {
	return s.reservationRepo.ListByClient(ctx, clientID)
}
