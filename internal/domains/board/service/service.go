package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"roomboard/config"
	"roomboard/infras/otel"
	"roomboard/infras/s3"
	"roomboard/internal/domains/board/model/dto"
	"roomboard/internal/domains/board/resolver"
	bookingModel "roomboard/internal/domains/booking/model"
	bookingRepo "roomboard/internal/domains/booking/repository"
	bookingService "roomboard/internal/domains/booking/service"
	roomModel "roomboard/internal/domains/room/model"
	roomRepo "roomboard/internal/domains/room/repository"
	staffDto "roomboard/internal/domains/staff/model/dto"
	staffRepo "roomboard/internal/domains/staff/repository"
	"roomboard/shared"
	"roomboard/shared/cache"
	"roomboard/shared/calendar"
	"roomboard/shared/constant"
	"roomboard/shared/failure"
	"roomboard/shared/timezone"
	"roomboard/shared/validator"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	CachePrefix     = "board"
	exportDirectory = "board"
)

type Board interface {
	Month(ctx context.Context, req dto.MonthRequest) (dto.MonthResponse, error)
	Cell(ctx context.Context, req dto.CellRequest) (dto.CellResponse, error)
	Export(ctx context.Context, req dto.MonthRequest) (dto.ExportResponse, error)
	// Version increases with every room or booking change. It is local to this process.
	Version() uint64
	// Instance identifies this process's board, so cached views of different processes never mix.
	Instance() string
}

type serviceImpl struct {
	roomRepo    roomRepo.Room
	bookingRepo bookingRepo.Booking
	staffRepo   staffRepo.Staff
	bookings    bookingService.Booking
	cache       cache.RedisCache
	storage     s3.S3
	cfg         *config.Config
	otel        otel.Otel
	now         func() time.Time
	instance    string
}

// New builds the board. storage may be nil, in which case Export is unavailable.
func New(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, staffRepo staffRepo.Staff, bookings bookingService.Booking, cache cache.RedisCache, storage s3.S3, cfg *config.Config, otel otel.Otel) Board {
	return NewWithClock(roomRepo, bookingRepo, staffRepo, bookings, cache, storage, cfg, otel, timezone.Now)
}

func NewWithClock(roomRepo roomRepo.Room, bookingRepo bookingRepo.Booking, staffRepo staffRepo.Staff, bookings bookingService.Booking, cache cache.RedisCache, storage s3.S3, cfg *config.Config, otel otel.Otel, now func() time.Time) Board {
	return &serviceImpl{
		roomRepo:    roomRepo,
		bookingRepo: bookingRepo,
		staffRepo:   staffRepo,
		bookings:    bookings,
		cache:       cache,
		storage:     storage,
		cfg:         cfg,
		otel:        otel,
		now:         now,
		instance:    uuid.NewString(),
	}
}

func (s *serviceImpl) Version() uint64 {
	return s.roomRepo.Revision() + s.bookingRepo.Revision()
}

func (s *serviceImpl) Instance() string {
	return s.instance
}

// Month renders the grid for one month. Responses are cached per instance, board version and
// day, so any room or booking change produces a fresh grid.
func (s *serviceImpl) Month(ctx context.Context, req dto.MonthRequest) (res dto.MonthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Month")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	today := calendar.DateOf(s.now())
	version := s.Version()
	key := shared.BuildCacheKey(CachePrefix, s.instance, req.Key(), version, calendar.FormatDate(today))

	if err = s.cache.Get(ctx, key, &res); err == nil {
		scope.AddEvent("board served from cache")

		return res, nil
	} else if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("failed to read board cache")
	}

	res, err = s.build(ctx, req, today, version)
	if err != nil {
		return res, err
	}

	if err := s.cache.Save(ctx, key, res, s.cfg.Cache.TTL); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to cache board")
	}

	return res, nil
}

func (s *serviceImpl) build(ctx context.Context, req dto.MonthRequest, today time.Time, version uint64) (res dto.MonthResponse, err error) {
	days := calendar.DaysInMonth(req.Year, time.Month(req.Month), today.Location())
	rooms := s.roomRepo.GetAll(ctx)
	bookings := s.bookingRepo.Find(ctx, nil)
	idx := resolver.NewIndex(bookings)

	counts, err := s.bookings.CountsByStaff(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by staff")

		return res, fmt.Errorf("failed to count bookings by staff: %w", err)
	}

	res.Year = req.Year
	res.Month = req.Month
	res.Label = days[0].Format(constant.MonthLabelFmt)
	res.Version = version
	res.TotalBookings = len(bookings)

	res.Days = make([]dto.DayResponse, len(days))
	for i, day := range days {
		res.Days[i].FromDate(day, today)
	}

	res.Sections = make([]dto.SectionResponse, 0, len(roomModel.Types))
	for _, roomType := range roomModel.Types {
		section := dto.SectionResponse{Type: string(roomType), Rows: []dto.RowResponse{}}

		for _, room := range rooms {
			if room.Type != roomType {
				continue
			}

			row := dto.RowResponse{Cells: make([]dto.CellResponse, len(days))}
			row.Room.FromModel(room)

			for i, day := range days {
				cell, found := idx.Resolve(room.ID, day)
				row.Cells[i].FromCell(room.ID, day, cell, found)

				if found {
					res.Days[i].Occupied++
				}
			}

			section.Rows = append(section.Rows, row)
		}

		res.Sections = append(res.Sections, section)
	}

	res.Legend = make([]dto.StatusCount, len(roomModel.Statuses))
	for i, status := range roomModel.Statuses {
		res.Legend[i].Status = string(status)
	}

	for _, room := range rooms {
		for i, status := range roomModel.Statuses {
			if room.Status == status {
				res.Legend[i].Count++
			}
		}
	}

	var staff staffDto.GetStaffResponse
	staff.FromModels(s.staffRepo.GetAll(ctx), counts)
	res.Staff = staff.Staff

	return res, nil
}

// Cell resolves a single room and day against every booking.
func (s *serviceImpl) Cell(ctx context.Context, req dto.CellRequest) (res dto.CellResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cell")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	if !s.roomRepo.Exist(ctx, req.RoomID) {
		return res, failure.NotFound(fmt.Sprintf("%s: %q", roomModel.ErrRoomNotFound, req.RoomID)) // nolint:wrapcheck
	}

	day, err := calendar.ParseDate(req.Date, timezone.GetLocation())
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	bookings := s.bookingRepo.Find(ctx, func(b bookingModel.Booking) bool { return b.RoomID == req.RoomID })
	cell, found := resolver.Resolve(req.RoomID, day, bookings)

	res.FromCell(req.RoomID, day, cell, found)

	return res, nil
}

// Export uploads the month grid as JSON to board/<yyyy-mm>.json and returns its location.
func (s *serviceImpl) Export(ctx context.Context, req dto.MonthRequest) (res dto.ExportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if s.storage == nil {
		return res, failure.ServiceUnavailable("board export storage is not configured") // nolint:wrapcheck
	}

	month, err := s.Month(ctx, req)
	if err != nil {
		return res, err
	}

	data, err := json.Marshal(month)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode board export")

		return res, fmt.Errorf("failed to encode board export: %w", err)
	}

	fileName := req.Key() + ".json"

	url, err := s.storage.UploadFileBytes(ctx, constant.Empty, exportDirectory, fileName, constant.ContentTypeJSON, data)
	if err != nil {
		log.Error().Err(err).Str("month", req.Key()).Msg("failed to upload board export")

		return res, fmt.Errorf("failed to upload board export: %w", err)
	}

	res.Key = exportDirectory + "/" + fileName
	res.URL = url

	scope.AddEvent("board exported to " + res.Key)

	return res, nil
}
