package repository

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"roomboard/internal/domains/room/model"
	gRepo "roomboard/shared/repository"
	"sync"
)

var ErrDuplicateName = errors.New("duplicate room name")

type Room interface {
	InsertBulk(ctx context.Context, rooms []model.Room) error
	Get(ctx context.Context, id string) (model.Room, error)
	GetByName(ctx context.Context, name string) (model.Room, error)
	GetAll(ctx context.Context) []model.Room
	Find(ctx context.Context, filter gRepo.Filter[model.Room]) []model.Room
	Exist(ctx context.Context, id string) bool
	UpdateStatus(ctx context.Context, id string, status model.Status) (previous, updated model.Room, err error)
	Revision() uint64
}

type repositoryImpl struct {
	*gRepo.Repository[model.Room]

	// serialises inserts so name uniqueness holds across batches
	mu sync.Mutex
}

func New(otel otel.Otel) Room {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Room](model.EntityName, func(r model.Room) string { return r.ID }, otel),
	}
}

func (repo *repositoryImpl) InsertBulk(ctx context.Context, rooms []model.Room) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	names := make(map[string]struct{}, len(rooms))
	for _, room := range rooms {
		if _, ok := names[room.Name]; ok {
			return fmt.Errorf("%w: %q", ErrDuplicateName, room.Name)
		}

		names[room.Name] = struct{}{}
	}

	taken := repo.Repository.Exist(ctx, func(r model.Room) bool {
		_, ok := names[r.Name]

		return ok
	})
	if taken {
		return ErrDuplicateName
	}

	return repo.Repository.InsertBulk(ctx, rooms) //nolint:wrapcheck
}

func (repo *repositoryImpl) Get(ctx context.Context, id string) (model.Room, error) {
	room, err := repo.Repository.Get(ctx, id)
	if errors.Is(err, gRepo.ErrNotFound) {
		return room, fmt.Errorf("%w: %q", model.ErrRoomNotFound, id)
	}

	return room, err //nolint:wrapcheck
}

func (repo *repositoryImpl) GetByName(ctx context.Context, name string) (model.Room, error) {
	rooms := repo.Repository.Find(ctx, func(r model.Room) bool { return r.Name == name })
	if len(rooms) == 0 {
		return model.Room{}, fmt.Errorf("%w: %q", model.ErrRoomNotFound, name)
	}

	return rooms[0], nil
}

// GetAll returns every room in canonical (seed) order.
func (repo *repositoryImpl) GetAll(ctx context.Context) []model.Room {
	return repo.Repository.Find(ctx, nil)
}

func (repo *repositoryImpl) Exist(ctx context.Context, id string) bool {
	_, err := repo.Repository.Get(ctx, id)

	return err == nil
}

func (repo *repositoryImpl) UpdateStatus(ctx context.Context, id string, status model.Status) (previous, updated model.Room, err error) {
	updated, err = repo.Repository.Update(ctx, id, func(r *model.Room) {
		previous = *r
		r.Status = status
	})
	if errors.Is(err, gRepo.ErrNotFound) {
		return previous, updated, fmt.Errorf("%w: %q", model.ErrRoomNotFound, id)
	}

	return previous, updated, err //nolint:wrapcheck
}
