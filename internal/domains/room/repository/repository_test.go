package repository_test

import (
	"context"
	"roomboard/infras/otel/mocks"
	"roomboard/internal/domains/room/model"
	"roomboard/internal/domains/room/repository"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoomRepository(t *testing.T) {
	ctx := context.Background()
	repo := repository.New(mocks.NewOtel())

	require.NoError(t, repo.InsertBulk(ctx, []model.Room{
		{ID: "101", Name: "Room 101", Type: model.TypeTwin, Status: model.StatusReady},
		{ID: "104", Name: "Room 104", Type: model.TypeDouble, Status: model.StatusReady},
	}))

	t.Run("names are unique", func(t *testing.T) {
		err := repo.InsertBulk(ctx, []model.Room{{ID: "999", Name: "Room 101"}})
		assert.ErrorIs(t, err, repository.ErrDuplicateName)

		err = repo.InsertBulk(ctx, []model.Room{{ID: "998", Name: "Twin"}, {ID: "997", Name: "Twin"}})
		assert.ErrorIs(t, err, repository.ErrDuplicateName)
		assert.Len(t, repo.GetAll(ctx), 2)
	})

	t.Run("lookup by id and name", func(t *testing.T) {
		room, err := repo.GetByName(ctx, "Room 104")
		require.NoError(t, err)
		assert.Equal(t, "104", room.ID)

		_, err = repo.GetByName(ctx, "room 104")
		assert.ErrorIs(t, err, model.ErrRoomNotFound)

		_, err = repo.Get(ctx, "404")
		assert.ErrorIs(t, err, model.ErrRoomNotFound)

		assert.True(t, repo.Exist(ctx, "101"))
		assert.False(t, repo.Exist(ctx, "404"))
	})

	t.Run("status update reports both sides", func(t *testing.T) {
		before := repo.Revision()

		previous, updated, err := repo.UpdateStatus(ctx, "101", model.StatusCleaning)
		require.NoError(t, err)
		assert.Equal(t, model.StatusReady, previous.Status)
		assert.Equal(t, model.StatusCleaning, updated.Status)
		assert.Greater(t, repo.Revision(), before)

		_, _, err = repo.UpdateStatus(ctx, "404", model.StatusCleaning)
		assert.ErrorIs(t, err, model.ErrRoomNotFound)
	})
}
