package service

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/otel"
	"roomboard/internal/domains/room/model"
	"roomboard/internal/domains/room/model/dto"
	"roomboard/internal/domains/room/repository"
	"roomboard/shared/constant"
	"roomboard/shared/event"
	"roomboard/shared/failure"
	"roomboard/shared/timezone"

	"github.com/rs/zerolog/log"
)

type Room interface {
	List(ctx context.Context, roomType string) (dto.GetRoomsResponse, error)
	Get(ctx context.Context, id string) (dto.RoomResponse, error)
	CycleStatus(ctx context.Context, id string) (dto.RoomResponse, error)
	SetStatus(ctx context.Context, id string, status model.Status, reason string) (dto.RoomResponse, error)
}

type serviceImpl struct {
	repo      repository.Room
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.Room, publisher event.Publisher, otel otel.Otel) Room {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		otel:      otel,
	}
}

// List returns rooms in canonical order, optionally restricted to one type.
func (s *serviceImpl) List(ctx context.Context, roomType string) (res dto.GetRoomsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if roomType == constant.Empty {
		res.FromModels(s.repo.GetAll(ctx))

		return res, nil
	}

	t, err := model.ParseType(roomType)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	res.FromModels(s.repo.Find(ctx, func(r model.Room) bool { return r.Type == t }))

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.repo.Get(ctx, id)
	if err != nil {
		return res, notFoundOr(err, "failed to get room")
	}

	res.FromModel(room)

	return res, nil
}

// CycleStatus advances the room one step along Ready, Occupied, Cleaning, Out of Order.
func (s *serviceImpl) CycleStatus(ctx context.Context, id string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CycleStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	room, err := s.repo.Get(ctx, id)
	if err != nil {
		return res, notFoundOr(err, "failed to get room")
	}

	return s.apply(ctx, id, room.Status.Next(), event.ReasonManualCycle)
}

// SetStatus moves the room straight to status; any status is reachable from any other.
func (s *serviceImpl) SetStatus(ctx context.Context, id string, status model.Status, reason string) (res dto.RoomResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !status.IsValid() {
		return res, failure.BadRequest(fmt.Errorf("%w: %q", model.ErrInvalidStatus, status)) // nolint:wrapcheck
	}

	if reason == constant.Empty {
		reason = event.ReasonManualSet
	}

	return s.apply(ctx, id, status, reason)
}

func (s *serviceImpl) apply(ctx context.Context, id string, status model.Status, reason string) (res dto.RoomResponse, err error) {
	previous, updated, err := s.repo.UpdateStatus(ctx, id, status)
	if err != nil {
		return res, notFoundOr(err, "failed to update room status")
	}

	if previous.Status == model.StatusOutOfOrder && status != model.StatusOutOfOrder && reason == event.ReasonBooking {
		log.Warn().Str("room_id", id).Msg("booking cleared an Out of Order room")
	}

	s.publisher.RoomStatusChanged(ctx, event.RoomStatusChanged{
		RoomID:    id,
		From:      string(previous.Status),
		To:        string(updated.Status),
		Reason:    reason,
		ChangedAt: timezone.Now(),
	})

	res.FromModel(updated)

	return res, nil
}

func notFoundOr(err error, msg string) error {
	if errors.Is(err, model.ErrRoomNotFound) {
		return failure.NotFound(err.Error()) // nolint:wrapcheck
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}
