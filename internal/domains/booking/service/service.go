package service

import (
	"context"
	"errors"
	"fmt"
	"roomboard/config"
	"roomboard/infras/otel"
	"roomboard/internal/domains/booking/model"
	"roomboard/internal/domains/booking/model/dto"
	"roomboard/internal/domains/booking/repository"
	roomModel "roomboard/internal/domains/room/model"
	roomRepo "roomboard/internal/domains/room/repository"
	roomService "roomboard/internal/domains/room/service"
	staffRepo "roomboard/internal/domains/staff/repository"
	"roomboard/shared/calendar"
	"roomboard/shared/constant"
	gDto "roomboard/shared/dto"
	"roomboard/shared/event"
	"roomboard/shared/failure"
	gRepo "roomboard/shared/repository"
	"roomboard/shared/timezone"
	"roomboard/shared/validator"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	CountsByStaff(ctx context.Context) (map[string]int, error)
}

type serviceImpl struct {
	// held across the overlap check and the insert
	mu sync.Mutex

	repo      repository.Booking
	roomRepo  roomRepo.Room
	staffRepo staffRepo.Staff
	rooms     roomService.Room
	publisher event.Publisher
	cfg       *config.Config
	otel      otel.Otel
	now       func() time.Time
}

func New(repo repository.Booking, roomRepo roomRepo.Room, staffRepo staffRepo.Staff, rooms roomService.Room, publisher event.Publisher, cfg *config.Config, otel otel.Otel) Booking {
	return NewWithClock(repo, roomRepo, staffRepo, rooms, publisher, cfg, otel, timezone.Now)
}

// NewWithClock is New with the wall clock replaced, so "today" can be pinned.
func NewWithClock(repo repository.Booking, roomRepo roomRepo.Room, staffRepo staffRepo.Staff, rooms roomService.Room, publisher event.Publisher, cfg *config.Config, otel otel.Otel, now func() time.Time) Booking {
	return &serviceImpl{
		repo:      repo,
		roomRepo:  roomRepo,
		staffRepo: staffRepo,
		rooms:     rooms,
		publisher: publisher,
		cfg:       cfg,
		otel:      otel,
		now:       now,
	}
}

func invalid(format string, args ...any) error {
	return failure.BadRequest(fmt.Errorf("%w: "+format, append([]any{model.ErrInvalidBooking}, args...)...)) // nolint:wrapcheck
}

// Create books the same stay in every requested room. Nothing is written unless every room
// can be booked.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.now()
	today := calendar.DateOf(now)

	if err = validator.ValidateStruct(&req); err != nil {
		return res, invalid("%s", err.Error())
	}

	staffID := req.StaffID
	if staffID == constant.Empty {
		staffID, _ = ctx.Value(constant.ContextKeyStaffID).(string)
	}

	if staffID == constant.Empty {
		return res, invalid("staff_id is required")
	}

	start, end, err := req.Stay(today.Location())
	if err != nil {
		return res, invalid("%s", err.Error())
	}

	if !end.After(start) {
		return res, invalid("end_date must be after start_date")
	}

	scope.SetAttributes(map[string]any{
		"rooms":      req.RoomIDs,
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
		"staff_id":   staffID,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, roomID := range req.RoomIDs {
		if !s.roomRepo.Exist(ctx, roomID) {
			return res, failure.UnprocessableEntity(fmt.Errorf("%w: room %q does not exist", model.ErrUnknownReference, roomID)) // nolint:wrapcheck
		}
	}

	if !s.staffRepo.Exist(ctx, staffID) {
		return res, failure.UnprocessableEntity(fmt.Errorf("%w: staff %q does not exist", model.ErrUnknownReference, staffID)) // nolint:wrapcheck
	}

	if s.cfg.Booking.EnforceNonOverlap {
		for _, roomID := range req.RoomIDs {
			clashes := s.repo.Find(ctx, func(b model.Booking) bool {
				return b.RoomID == roomID && b.Overlaps(start, end)
			})
			if len(clashes) > 0 {
				return res, failure.ConflictFrom(fmt.Errorf("%w: room %s is already booked by %s from %s to %s", // nolint:wrapcheck
					model.ErrOverlap, roomID, clashes[0].ID,
					calendar.FormatDate(clashes[0].StartDate), calendar.FormatDate(clashes[0].EndDate)))
			}
		}
	}

	bookings := req.ToModels(staffID, start, end, now)

	if err = s.repo.InsertBulk(ctx, bookings); err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	for _, booking := range bookings {
		if !booking.Covers(today) {
			continue
		}

		if _, err := s.rooms.SetStatus(ctx, booking.RoomID, roomModel.StatusOccupied, event.ReasonBooking); err != nil {
			log.Error().Err(err).Str("room_id", booking.RoomID).Msg("failed to mark room occupied")
		}
	}

	s.publisher.BookingsCreated(ctx, toEvents(bookings)...)

	res.FromModels(bookings)
	scope.AddEvent(fmt.Sprintf("%d bookings created by staff %s", len(bookings), staffID))

	return res, nil
}

func toEvents(bookings []model.Booking) []event.BookingCreated {
	events := make([]event.BookingCreated, len(bookings))
	for i, b := range bookings {
		events[i] = event.BookingCreated{
			BookingID: b.ID,
			RoomID:    b.RoomID,
			GuestName: b.GuestName,
			StartDate: calendar.FormatDate(b.StartDate),
			EndDate:   calendar.FormatDate(b.EndDate),
			StaffID:   b.StaffID,
			CreatedAt: b.CreatedAt,
		}
	}

	return events
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter dto.BookingFilter) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&filter); err != nil {
		return res, err //nolint:wrapcheck
	}

	match := filter.Match(timezone.GetLocation())
	total := s.repo.Count(ctx, match)

	var models []model.Booking

	switch req.SortBy {
	case constant.Empty, dto.SortByCreatedAt:
		models = s.repo.GetAll(ctx, req, match)
	case dto.SortByStartDate:
		models = s.repo.Find(ctx, match)
		slices.SortStableFunc(models, func(a, b model.Booking) int {
			if req.Ascending() {
				return a.StartDate.Compare(b.StartDate)
			}

			return b.StartDate.Compare(a.StartDate)
		})
		models = gRepo.Page(models, req)
	default:
		return res, failure.BadRequestFromString(fmt.Sprintf("sort_by must be one of %s %s", dto.SortByCreatedAt, dto.SortByStartDate)) // nolint:wrapcheck
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrBookingNotFound) {
			return res, failure.NotFound(err.Error()) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to get booking")

		return res, fmt.Errorf("failed to get booking: %w", err)
	}

	res.FromModel(booking)

	return res, nil
}

// CountsByStaff counts bookings per known staff member. Every member starts at zero and
// bookings attributed to unknown staff are ignored.
func (s *serviceImpl) CountsByStaff(ctx context.Context) (res map[string]int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CountsByStaff")
	defer scope.End()

	staff := s.staffRepo.GetAll(ctx)

	res = make(map[string]int, len(staff))
	for _, member := range staff {
		res[member.ID] = 0
	}

	for _, booking := range s.repo.Find(ctx, nil) {
		if _, ok := res[booking.StaffID]; ok {
			res[booking.StaffID]++
		}
	}

	return res, nil
}
