package client

import (
	"context"
	"testing"
	"time"

	"carrental-service/internal/domain/client"
	"carrental-service/internal/domain/reservation"
	xerrors "carrental-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClientRepo struct {
	nextID  int64
	clients map[int64]*client.Client
	inUse   map[int64]bool
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{
		clients: make(map[int64]*client.Client),
		inUse:   make(map[int64]bool),
	}
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
		if c.Email == email {
			cp := *c
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeClientRepo) FindByLicense(ctx context.Context, licenseNumber string) (*client.Client, error) {
	for _, c := range f.clients {
		if c.DriverLicenseNumber == licenseNumber {
			cp := *c
			return &cp, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (f *fakeClientRepo) List(ctx context.Context) ([]*client.Client, error) { return nil, nil }

func (f *fakeClientRepo) Update(ctx context.Context, c *client.Client) error {
	if _, ok := f.clients[c.ID]; !ok {
		return xerrors.ErrNotFound
	}
	cp := *c
	f.clients[c.ID] = &cp
	return nil
}

func (f *fakeClientRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.clients[id]; !ok {
		return xerrors.ErrNotFound
	}
	if f.inUse[id] {
		return xerrors.ErrInUse
	}
	delete(f.clients, id)
	return nil
}

type fakeReservationRepo struct {
	byClient map[int64][]*reservation.Reservation
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *reservation.Reservation) error {
	return nil
}

func (f *fakeReservationRepo) CreateTx(ctx context.Context, tx pgx.Tx, r *reservation.Reservation) error {
	return nil
}

func (f *fakeReservationRepo) FindByID(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeReservationRepo) FindWithDetails(ctx context.Context, id int64) (*reservation.Reservation, error) {
	return nil, xerrors.ErrNotFound
}

func (f *fakeReservationRepo) ListActive(ctx context.Context) ([]*reservation.Reservation, error) {
	return nil, nil
}

func (f *fakeReservationRepo) ListByClient(ctx context.Context, clientID int64) ([]*reservation.Reservation, error) {
	return f.byClient[clientID], nil
}

func (f *fakeReservationRepo) UpdateTx(ctx context.Context, tx pgx.Tx, r *reservation.Reservation) error {
	return nil
}

func (f *fakeReservationRepo) IsVehicleAvailable(ctx context.Context, vehicleID int64, start, end time.Time) (bool, error) {
	return true, nil
}

func (f *fakeReservationRepo) IsVehicleAvailableTx(ctx context.Context, tx pgx.Tx, vehicleID int64, start, end time.Time) (bool, error) {
	return true, nil
}

func (f *fakeReservationRepo) LockVehicleTx(ctx context.Context, tx pgx.Tx, vehicleID int64) error {
	return nil
}

func newService() (*ClientService, *fakeClientRepo, *fakeReservationRepo) {
	clients := newFakeClientRepo()
	reservations := &fakeReservationRepo{byClient: make(map[int64][]*reservation.Reservation)}
	return NewClientService(clients, reservations, zap.NewNop()), clients, reservations
}

func birthDateAtAge(years int) time.Time {
	return time.Now().AddDate(-years, 0, -1)
}

func TestRegisterClient(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	c, err := svc.Register(ctx, &client.RegisterClientRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		Email:               "jane@example.com",
		Phone:               "+254700000000",
		DriverLicenseNumber: "DL-00123",
		BirthDate:           birthDateAtAge(30),
	})
	require.NoError(t, err)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "jane@example.com", c.Email)
}

func TestRegisterClientUnderage(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	_, err := svc.Register(ctx, &client.RegisterClientRequest{
		FirstName:           "Kid",
		LastName:            "Driver",
		Email:               "kid@example.com",
		DriverLicenseNumber: "DL-00999",
		BirthDate:           birthDateAtAge(17),
	})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestUpdateClientRejectsUnderageBirthDate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService()

	c, err := svc.Register(ctx, &client.RegisterClientRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		Email:               "jane@example.com",
		DriverLicenseNumber: "DL-00123",
		BirthDate:           birthDateAtAge(30),
	})
	require.NoError(t, err)

	under := birthDateAtAge(16)
	_, err = svc.Update(ctx, c.ID, &client.UpdateClientRequest{BirthDate: &under})
	assert.ErrorIs(t, err, xerrors.ErrInvalidInput)
}

func TestDeleteClientWithHistory(t *testing.T) {
	ctx := context.Background()
	svc, clients, _ := newService()

	c, err := svc.Register(ctx, &client.RegisterClientRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		Email:               "jane@example.com",
		DriverLicenseNumber: "DL-00123",
		BirthDate:           birthDateAtAge(30),
	})
	require.NoError(t, err)
	clients.inUse[c.ID] = true

	err = svc.Delete(ctx, c.ID)
	assert.ErrorIs(t, err, xerrors.ErrInUse)

	_, err = clients.FindByID(ctx, c.ID)
	assert.NoError(t, err)
}

func TestClientHistory(t *testing.T) {
	ctx := context.Background()
	svc, _, reservations := newService()

	c, err := svc.Register(ctx, &client.RegisterClientRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		Email:               "jane@example.com",
		DriverLicenseNumber: "DL-00123",
		BirthDate:           birthDateAtAge(30),
	})
	require.NoError(t, err)

	reservations.byClient[c.ID] = []*reservation.Reservation{
		{ID: 10, ClientID: c.ID, Status: reservation.StatusCompleted},
	}

	history, err := svc.History(ctx, c.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, int64(10), history[0].ID)

	_, err = svc.History(ctx, 999)
	assert.ErrorIs(t, err, xerrors.ErrNotFound)
}
