package client

import (
	"context"
	"time"

	"carrental-service/internal/domain/client"
	"carrental-service/internal/domain/reservation"
	xerrors "carrental-service/internal/pkg/errors"

	"go.uber.org/zap"
)

const minDriverAge = 18

type ClientService struct {
	clientRepo      client.Repository
	reservationRepo reservation.Repository
	logger          *zap.Logger
}

func NewClientService(clientRepo client.Repository, reservationRepo reservation.Repository, logger *zap.Logger) *ClientService {
	return &ClientService{
		clientRepo:      clientRepo,
		reservationRepo: reservationRepo,
		logger:          logger,
	}
}

func (s *ClientService) Register(ctx context.Context, req *client.RegisterClientRequest) (*client.Client, error) {
	if age(req.BirthDate) < minDriverAge {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "client must be at least 18 years old")
	}

	c := &client.Client{
		FirstName:           req.FirstName,
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               req.Phone,
		Address:             req.Address,
		DriverLicenseNumber: req.DriverLicenseNumber,
		BirthDate:           req.BirthDate,
	}
	if err := s.clientRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("client registered",
		zap.Int64("client_id", c.ID),
		zap.String("email", c.Email),
	)
	return c, nil
}

func age(birthDate time.Time) int {
	now := time.Now()
	years := now.Year() - birthDate.Year()
	if now.YearDay() < birthDate.YearDay() {
		years--
	}
	return years
}

func (s *ClientService) Get(ctx context.Context, id int64) (*client.Client, error) {
	return s.clientRepo.FindByID(ctx, id)
}

func (s *ClientService) List(ctx context.Context) ([]*client.Client, error) {
	return s.clientRepo.List(ctx)
}

func (s *ClientService) Update(ctx context.Context, id int64, req *client.UpdateClientRequest) (*client.Client, error) {
	c, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		c.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		c.LastName = *req.LastName
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.DriverLicenseNumber != nil {
		c.DriverLicenseNumber = *req.DriverLicenseNumber
	}
	if req.BirthDate != nil {
		if age(*req.BirthDate) < minDriverAge {
			return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "client must be at least 18 years old")
		}
		c.BirthDate = *req.BirthDate
	}

	if err := s.clientRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a client without booking history. The database restricts the
// delete when reservations reference the client.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.clientRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

func (s *ClientService) History(ctx context.Context, id int64) ([]*reservation.Reservation, error) {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reservationRepo.ListByClient(ctx, id)
}
