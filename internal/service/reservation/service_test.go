package reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"carrental-service/internal/domain/client"
	"carrental-service/internal/domain/reservation"
	"carrental-service/internal/domain/tariff"
	"carrental-service/internal/domain/vehicle"
	xerrors "carrental-service/internal/pkg/errors"
	"carrental-service/internal/ws"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// ---------- fakes ----------

type fakeTx struct{}

func (fakeTx) WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

type fakeReservationRepo struct {
	nextID       int64
	reservations map[int64]*reservation.Reservation
	available    bool
	locked       []int64
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[int64]*reservation.Reservation),
		available:    true,
	}
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *reservation.Reservation) error {
	f.nextID++
	r.ID = f.nextID
	r.CreatedAt = time.Now()
	stored := *r
	f.reservations[r.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) CreateTx(ctx context.Context, tx pgx.Tx, r *reservation.Reservation) error {
	return f.Create(ctx, r)
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) FindWithDetails(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeReservationRepo) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, r := range f.reservations {
		if !r.Status.Terminal() {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) ListByClient(ctx context.Context, clientID int64) ([]*reservation.Reservation, error) {
	var out []*reservation.Reservation
	for _, r := range f.reservations {
		if r.ClientID == clientID {
			cp := *r
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeReservationRepo) UpdateTx(ctx context.Context, tx pgx.Tx, r *reservation.Reservation) error {
	if _, ok := f.reservations[r.ID]; !ok {
		return xerrors.ErrNotFound
	}
	stored := *r
	f.reservations[r.ID] = &stored
	return nil
}

func (f *fakeReservationRepo) IsVehicleAvailable(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	return f.available, nil
}

func (f *fakeReservationRepo) IsVehicleAvailableTx(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error) {
	return f.available, nil
}

func (f *fakeReservationRepo) LockVehicleTx(ctx context.Context, tx pgx.Tx, vehicleID int64) error {
	f.locked = append(f.locked, vehicleID)
	return nil
}

type fakePaymentRepo struct {
	nextID   int64
	payments []reservation.Payment
}

func (f *fakePaymentRepo) Create(ctx context.Context, p *reservation.Payment) error {
	f.nextID++
	p.ID = f.nextID
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakePaymentRepo) ListByReservation(ctx context.Context, reservationID int64) ([]reservation.Payment, error) {
	var out []reservation.Payment
	for _, p := range f.payments {
		if p.ReservationID == reservationID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeVehicleRepo struct {
	vehicles map[int64]*vehicle.Vehicle
}

func newFakeVehicleRepo(vs ...*vehicle.Vehicle) *fakeVehicleRepo {
	f := &fakeVehicleRepo{vehicles: make(map[int64]*vehicle.Vehicle)}
	for _, v := range vs {
		cp := *v
		f.vehicles[v.ID] = &cp
	}
	return f
}

func (f *fakeVehicleRepo) Create(ctx context.Context, v *vehicle.Vehicle) error { return nil }

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (f *fakeVehicleRepo) FindWithDetails(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	return f.FindByID(ctx, id)
}

func (f *fakeVehicleRepo) List(ctx context.Context) ([]*vehicle.Vehicle, error) { return nil, nil }

func (f *fakeVehicleRepo) Update(ctx context.Context, v *vehicle.Vehicle) error {
	cp := *v
	f.vehicles[v.ID] = &cp
	return nil
}

func (f *fakeVehicleRepo) UpdateTx(ctx context.Context, tx pgx.Tx, v *vehicle.Vehicle) error {
	return f.Update(ctx, v)
}

func (f *fakeVehicleRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeVehicleRepo) ExistsByPlateNumber(ctx context.Context, plateNumber string) (bool, error) {
	return false, nil
}

func (f *fakeVehicleRepo) FindAvailable(ctx context.Context, vehicleTypeID int64, start, end time.Time) ([]*vehicle.Vehicle, error) {
	return nil, nil
}

func (f *fakeVehicleRepo) AddImage(ctx context.Context, img *vehicle.Image) error { return nil }

func (f *fakeVehicleRepo) ListImages(ctx context.Context, vehicleID int64) ([]vehicle.Image, error) {
	return nil, nil
}

func (f *fakeVehicleRepo) FindPrimaryImage(ctx context.Context, vehicleID int64) (*vehicle.Image, error) {
	return nil, xerrors.ErrNotFound
}

type fakeClientRepo struct {
	nextID  int64
	clients map[int64]*client.Client
}

func newFakeClientRepo(cs ...*client.Client) *fakeClientRepo {
	f := &fakeClientRepo{clients: make(map[int64]*client.Client)}
	for _, c := range cs {
		cp := *c
		f.clients[c.ID] = &cp
		if c.ID > f.nextID {
			f.nextID = c.ID
		}
	}
	return f
}

func (f *fakeClientRepo) Create(ctx context.Context, c *client.Client) error {
	f.nextID++
	c.ID = f.nextID
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) FindByID(ctx context.Context, id int64) (*client.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeClientRepo) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	for _, c := range f.clients {
		if strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeClientRepo) FindByLicense(ctx context.Context, licenseNumber string) (*client.Client, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeClientRepo) List(ctx context.Context) ([]*client.Client, error) { return nil, nil }

func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error { return nil }

func (f *fakeClientRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeTariffRepo struct {
	best *tariff.Tariff
}

func (f *fakeTariffRepo) Create(ctx context.Context, t *tariff.Tariff) error { return nil }

func (f *fakeTariffRepo) FindByID(ctx context.Context, id int64) (*tariff.Tariff, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeTariffRepo) List(ctx context.Context) ([]*tariff.Tariff, error) { return nil, nil }

func (f *fakeTariffRepo) Delete(ctx context.Context, id int64) error { return nil }

func (f *fakeTariffRepo) FindBestRate(ctx context.Context, vehicleTypeID int64, start, end time.Time) (*tariff.Tariff, error) {
	if f.best == nil {
		return nil, xerrors.ErrNotFound
	}
	return f.best, nil
}

// ---------- fixtures ----------

type fixture struct {
	svc          *ReservationService
	reservations *fakeReservationRepo
	payments     *fakePaymentRepo
	vehicles     *fakeVehicleRepo
	clients      *fakeClientRepo
	tariffs      *fakeTariffRepo
}

func testVehicle() *vehicle.Vehicle {
	return &vehicle.Vehicle{
		ID:             1,
		PlateNumber:    "KAA 123B",
		Make:           "Toyota",
		Model:          "Corolla",
		Year:           2022,
		Mileage:        42000,
		Status:         vehicle.StatusAvailable,
		BaseRatePerDay: 40,
		VehicleTypeID:  1,
	}
}

func testClient() *client.Client {
	return &client.Client{
		ID:                  1,
		FirstName:           "Jane",
		LastName:            "Doe",
		Email:               "jane@example.com",
		DriverLicenseNumber: "DL-001",
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		reservations: newFakeReservationRepo(),
		payments:     &fakePaymentRepo{},
		vehicles:     newFakeVehicleRepo(testVehicle()),
		clients:      newFakeClientRepo(testClient()),
		tariffs:      &fakeTariffRepo{},
	}
	f.svc = NewReservationService(
		f.reservations, f.payments, f.vehicles, f.clients, f.tariffs,
		fakeTx{}, ws.NewHub(zap.NewNop()), zap.NewNop(),
	)
	return f
}

// ---------- tests ----------

func TestCreateReservation(t *testing.T) {
	ctx := context.Background()
	start := date(2026, 9, 1, 9)
	end := date(2026, 9, 5, 9)

	t.Run("prices from best tariff", func(t *testing.T) {
		f := newFixture(t)
		f.tariffs.best = &tariff.Tariff{PricePerDay: 50}

		res, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       1,
			VehicleID:      1,
			RequestedStart: start,
			RequestedEnd:   end,
		}, 7)
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusConfirmed, res.Status)
		assert.Equal(t, 200.0, res.TotalAmount)
		assert.True(t, strings.HasPrefix(res.Reference, "RSV-"))
		require.NotNil(t, res.CreatedByUserID)
		assert.Equal(t, int64(7), *res.CreatedByUserID)

		v, _ := f.vehicles.FindByID(ctx, 1)
		assert.Equal(t, vehicle.StatusReserved, v.Status)
		assert.Equal(t, []int64{1}, f.reservations.locked)
	})

	t.Run("falls back to vehicle base rate", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       1,
			VehicleID:      1,
			RequestedStart: start,
			RequestedEnd:   end,
		}, 7)
		require.NoError(t, err)
		assert.Equal(t, 160.0, res.TotalAmount)
	})

	t.Run("keeps an agreed amount", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       1,
			VehicleID:      1,
			RequestedStart: start,
			RequestedEnd:   end,
			TotalAmount:    300,
		}, 7)
		require.NoError(t, err)
		assert.Equal(t, 300.0, res.TotalAmount)
	})

	t.Run("rejects an overlapping booking", func(t *testing.T) {
		f := newFixture(t)
		f.reservations.available = false

		_, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       1,
			VehicleID:      1,
			RequestedStart: start,
			RequestedEnd:   end,
		}, 7)
		assert.ErrorIs(t, err, xerrors.ErrVehicleUnavailable)
		assert.Empty(t, f.reservations.reservations)
	})

	t.Run("rejects an inverted window", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       1,
			VehicleID:      1,
			RequestedStart: end,
			RequestedEnd:   start,
		}, 7)
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	})

	t.Run("rejects a vehicle in maintenance", func(t *testing.T) {
		f := newFixture(t)
		v, _ := f.vehicles.FindByID(ctx, 1)
		v.Status = vehicle.StatusMaintenance
		require.NoError(t, f.vehicles.Update(ctx, v))

		_, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       1,
			VehicleID:      1,
			RequestedStart: start,
			RequestedEnd:   end,
		}, 7)
		assert.ErrorIs(t, err, xerrors.ErrVehicleUnavailable)
	})

	t.Run("rejects an unknown client", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Create(ctx, &reservation.CreateReservationRequest{
			ClientID:       99,
			VehicleID:      1,
			RequestedStart: start,
			RequestedEnd:   end,
		}, 7)
		assert.ErrorIs(t, err, xerrors.ErrNotFound)
	})
}

func TestCreatePublicRequest(t *testing.T) {
	ctx := context.Background()
	start := date(2026, 9, 1, 9)
	end := date(2026, 9, 3, 9)

	t.Run("creates a client for an unknown email", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.CreatePublicRequest(ctx, &reservation.PublicRequest{
			VehicleID:   1,
			ClientName:  "John Smith",
			ClientEmail: "john@example.com",
			ClientPhone: "0700111222",
			Start:       start,
			End:         end,
		})
		require.NoError(t, err)

		assert.Equal(t, reservation.StatusPending, res.Status)
		assert.Zero(t, res.TotalAmount)
		assert.Nil(t, res.CreatedByUserID)

		cl, err := f.clients.FindByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		assert.Equal(t, "John", cl.FirstName)
		assert.Equal(t, "Smith", cl.LastName)
		assert.True(t, strings.HasPrefix(cl.DriverLicenseNumber, "TEMP-"))
	})

	t.Run("reuses an existing client by email", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.CreatePublicRequest(ctx, &reservation.PublicRequest{
			VehicleID:   1,
			ClientName:  "Jane D",
			ClientEmail: "JANE@example.com",
			Start:       start,
			End:         end,
		})
		require.NoError(t, err)
		assert.Equal(t, int64(1), res.ClientID)
		assert.Len(t, f.clients.clients, 1)
	})

	t.Run("rejects when the vehicle is booked", func(t *testing.T) {
		f := newFixture(t)
		f.reservations.available = false

		_, err := f.svc.CreatePublicRequest(ctx, &reservation.PublicRequest{
			VehicleID:   1,
			ClientName:  "John Smith",
			ClientEmail: "john@example.com",
			Start:       start,
			End:         end,
		})
		assert.ErrorIs(t, err, xerrors.ErrVehicleUnavailable)
	})
}

func createConfirmed(t *testing.T, f *fixture, start, end time.Time) *reservation.Reservation {
	t.Helper()
	res, err := f.svc.Create(context.Background(), &reservation.CreateReservationRequest{
		ClientID:       1,
		VehicleID:      1,
		RequestedStart: start,
		RequestedEnd:   end,
	}, 7)
	require.NoError(t, err)
	return res
}

func TestPickup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

	picked, err := f.svc.Pickup(ctx, res.ID, 7)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusActive, picked.Status)
	require.NotNil(t, picked.ActualStart)

	v, _ := f.vehicles.FindByID(ctx, 1)
	assert.Equal(t, vehicle.StatusRented, v.Status)

	_, err = f.svc.Pickup(ctx, res.ID, 7)
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
}

func TestReturn(t *testing.T) {
	ctx := context.Background()

	t.Run("on time", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, time.Now().Add(-48*time.Hour), time.Now().Add(48*time.Hour))
		_, err := f.svc.Pickup(ctx, res.ID, 7)
		require.NoError(t, err)

		result, err := f.svc.Return(ctx, res.ID, 42500, 7)
		require.NoError(t, err)
		assert.Zero(t, result.ExtraCharges)
		assert.Equal(t, reservation.StatusCompleted, result.Reservation.Status)
		require.NotNil(t, result.Reservation.ActualEnd)

		v, _ := f.vehicles.FindByID(ctx, 1)
		assert.Equal(t, vehicle.StatusAvailable, v.Status)
		assert.Equal(t, 42500, v.Mileage)
	})

	t.Run("late return charges per started day", func(t *testing.T) {
		f := newFixture(t)
		// Base rate 40/day, 4 billable days, due 30 hours ago.
		res := createConfirmed(t, f, time.Now().Add(-126*time.Hour), time.Now().Add(-30*time.Hour))
		total := res.TotalAmount
		_, err := f.svc.Pickup(ctx, res.ID, 7)
		require.NoError(t, err)

		result, err := f.svc.Return(ctx, res.ID, 0, 7)
		require.NoError(t, err)
		// ceil(30h / 24h) = 2 late days * 40 * 1.5
		assert.Equal(t, 120.0, result.ExtraCharges)
		assert.Equal(t, total+120, result.Reservation.TotalAmount)
	})

	t.Run("cannot return before pickup", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

		_, err := f.svc.Return(ctx, res.ID, 0, 7)
		assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("frees a reserved vehicle", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

		cancelled, err := f.svc.Cancel(ctx, res.ID, 7)
		require.NoError(t, err)
		assert.Equal(t, reservation.StatusCancelled, cancelled.Status)

		v, _ := f.vehicles.FindByID(ctx, 1)
		assert.Equal(t, vehicle.StatusAvailable, v.Status)
	})

	t.Run("cancel twice fails", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

		_, err := f.svc.Cancel(ctx, res.ID, 7)
		require.NoError(t, err)
		_, err = f.svc.Cancel(ctx, res.ID, 7)
		assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	})

	t.Run("completed rental cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, time.Now().Add(-48*time.Hour), time.Now().Add(48*time.Hour))
		_, err := f.svc.Pickup(ctx, res.ID, 7)
		require.NoError(t, err)
		_, err = f.svc.Return(ctx, res.ID, 0, 7)
		require.NoError(t, err)

		_, err = f.svc.Cancel(ctx, res.ID, 7)
		assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
	})
}

func TestMarkNoShow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

	marked, err := f.svc.MarkNoShow(ctx, res.ID)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusNoShow, marked.Status)

	v, _ := f.vehicles.FindByID(ctx, 1)
	assert.Equal(t, vehicle.StatusAvailable, v.Status)
}

func TestRecordPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("records a completed payment", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

		p, err := f.svc.RecordPayment(ctx, res.ID, &reservation.RecordPaymentRequest{
			Amount: 100,
			Method: reservation.MethodCard,
		})
		require.NoError(t, err)
		assert.Equal(t, reservation.PaymentCompleted, p.Status)
		assert.Len(t, f.payments.payments, 1)
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))

		_, err := f.svc.RecordPayment(ctx, res.ID, &reservation.RecordPaymentRequest{
			Amount: 100,
			Method: "Cheque",
		})
		assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
	})

	t.Run("rejects payments on a cancelled reservation", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, date(2026, 9, 1, 9), date(2026, 9, 5, 9))
		_, err := f.svc.Cancel(ctx, res.ID, 7)
		require.NoError(t, err)

		_, err = f.svc.RecordPayment(ctx, res.ID, &reservation.RecordPaymentRequest{
			Amount: 100,
			Method: reservation.MethodCash,
		})
		assert.ErrorIs(t, err, xerrors.ErrConflict)
	})
}

func TestConfirmPublicRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	res, err := f.svc.CreatePublicRequest(ctx, &reservation.PublicRequest{
		VehicleID:   1,
		ClientName:  "John Smith",
		ClientEmail: "john@example.com",
		Start:       date(2026, 9, 1, 9),
		End:         date(2026, 9, 3, 9),
	})
	require.NoError(t, err)

	confirmed, err := f.svc.Confirm(ctx, res.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, reservation.StatusConfirmed, confirmed.Status)
	// 2 billable days at the base rate of 40.
	assert.Equal(t, 80.0, confirmed.TotalAmount)

	v, _ := f.vehicles.FindByID(ctx, 1)
	assert.Equal(t, vehicle.StatusReserved, v.Status)

	_, err = f.svc.Confirm(ctx, res.ID, nil)
	assert.ErrorIs(t, err, xerrors.ErrInvalidTransition)
}

func TestLifecycleRecordsActingUser(t *testing.T) {
	ctx := context.Background()

	t.Run("pickup attributes a public request to the agent", func(t *testing.T) {
		f := newFixture(t)

		res, err := f.svc.CreatePublicRequest(ctx, &reservation.PublicRequest{
			VehicleID:   1,
			ClientName:  "John Smith",
			ClientEmail: "john@example.com",
			Start:       date(2026, 9, 1, 9),
			End:         date(2026, 9, 3, 9),
		})
		require.NoError(t, err)
		assert.Nil(t, res.CreatedByUserID)

		_, err = f.svc.Confirm(ctx, res.ID, nil)
		require.NoError(t, err)

		picked, err := f.svc.Pickup(ctx, res.ID, 42)
		require.NoError(t, err)
		require.NotNil(t, picked.CreatedByUserID)
		assert.Equal(t, int64(42), *picked.CreatedByUserID)

		stored, err := f.reservations.FindByID(ctx, res.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.CreatedByUserID)
		assert.Equal(t, int64(42), *stored.CreatedByUserID)
	})

	t.Run("return and cancel record the closing agent", func(t *testing.T) {
		f := newFixture(t)
		res := createConfirmed(t, f, time.Now().Add(-48*time.Hour), time.Now().Add(48*time.Hour))
		_, err := f.svc.Pickup(ctx, res.ID, 7)
		require.NoError(t, err)

		result, err := f.svc.Return(ctx, res.ID, 0, 9)
		require.NoError(t, err)
		require.NotNil(t, result.Reservation.CreatedByUserID)
		assert.Equal(t, int64(9), *result.Reservation.CreatedByUserID)

		f2 := newFixture(t)
		res2 := createConfirmed(t, f2, date(2026, 9, 1, 9), date(2026, 9, 5, 9))
		cancelled, err := f2.svc.Cancel(ctx, res2.ID, 11)
		require.NoError(t, err)
		require.NotNil(t, cancelled.CreatedByUserID)
		assert.Equal(t, int64(11), *cancelled.CreatedByUserID)
	})
}
