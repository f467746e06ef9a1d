package repository

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"roomboard/internal/domains/staff/model"
	gRepo "roomboard/shared/repository"
)

type Staff interface {
	InsertBulk(ctx context.Context, staff []model.Staff) error
	Get(ctx context.Context, id string) (model.Staff, error)
	GetAll(ctx context.Context) []model.Staff
	Exist(ctx context.Context, id string) bool
}

type repositoryImpl struct {
	*gRepo.Repository[model.Staff]
}

func New(otel otel.Otel) Staff {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Staff](model.EntityName, func(s model.Staff) string { return s.ID }, otel),
	}
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.Staff, error) {
	staff, err := repo.Repository.Get(ctx, id)
	if errors.Is(err, gRepo.ErrNotFound) {
		return staff, fmt.Errorf("%w: %q", model.ErrStaffNotFound, id)
	}

	return staff, err //nolint:wrapcheck
}

func (repo *repositoryImpl) GetAll(ctx context.Context) []model.Staff {
	return repo.Repository.Find(ctx, nil)
}

func (repo *repositoryImpl) Exist(ctx context.Context, id string) bool {
	_, err := repo.Repository.Get(ctx, id)

	return err == nil
}
