package repository

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"roomboard/internal/domains/booking/model"
	gDto "roomboard/shared/dto"
	gRepo "roomboard/shared/repository"
)

type Booking interface {
	InsertBulk(ctx context.Context, bookings []model.Booking) error
	Get(ctx context.Context, id string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gRepo.Filter[model.Booking]) []model.Booking
	Find(ctx context.Context, filter gRepo.Filter[model.Booking]) []model.Booking
	Count(ctx context.Context, filter gRepo.Filter[model.Booking]) int
	Revision() uint64
}

type repositoryImpl struct {
	*gRepo.Repository[model.Booking]
}

func New(otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, func(b model.Booking) string { return b.ID }, otel),
	}
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := repo.Repository.Get(ctx, id)
	if errors.Is(err, gRepo.ErrNotFound) {
		return booking, fmt.Errorf("%w: %q", model.ErrBookingNotFound, id)
	}

	return booking, err //nolint:wrapcheck
}
