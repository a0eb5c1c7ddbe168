package tariff

import (
	"context"

	"carrental-service/internal/domain/tariff"
	xerrors "carrental-service/internal/pkg/errors"

	"go.uber.org/zap"
)

type TariffService struct {
	tariffRepo tariff.Repository
	logger     *zap.Logger
}

func NewTariffService(tariffRepo tariff.Repository, logger *zap.Logger) *TariffService {
	return &TariffService{tariffRepo: tariffRepo, logger: logger}
}

// Create adds a pricing window for a vehicle type. Overlapping windows are
// allowed on purpose, the highest price wins when quoting.
func (s *TariffService) Create(ctx context.Context, req *tariff.CreateTariffRequest) (*tariff.Tariff, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, xerrors.Wrap(xerrors.ErrInvalidInput, "end date must not be before start date")
	}

	t := &tariff.Tariff{
		VehicleTypeID: req.VehicleTypeID,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		PricePerDay:   req.PricePerDay,
		PricePerHour:  req.PricePerHour,
		Description:   req.Description,
	}
	if err := s.tariffRepo.Create(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("tariff created",
		zap.Int64("tariff_id", t.ID),
		zap.Int64("vehicle_type_id", t.VehicleTypeID),
		zap.Float64("price_per_day", t.PricePerDay),
	)
	return t, nil
}

func (s *TariffService) Get(ctx context.Context, id int64) (*tariff.Tariff, error) {
	return s.tariffRepo.FindByID(ctx, id)
}

func (s *TariffService) List(ctx context.Context) ([]*tariff.Tariff, error) {
	return s.tariffRepo.List(ctx)
}

func (s *TariffService) Delete(ctx context.Context, id int64) error {
	return s.tariffRepo.Delete(ctx, id)
}
