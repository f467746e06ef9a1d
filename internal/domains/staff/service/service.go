package service

import (
	"context"
	"errors"
	"fmt"
	"roomboard/infras/jwt"
	"roomboard/infras/otel"
	"roomboard/internal/domains/staff/model"
	"roomboard/internal/domains/staff/model/dto"
	"roomboard/internal/domains/staff/repository"
	"roomboard/shared/constant"
	"roomboard/shared/failure"
	"roomboard/shared/password"

	"github.com/rs/zerolog/log"
)

// BookingCounter supplies per-staff booking totals.
type BookingCounter interface {
	CountsByStaff(ctx context.Context) (map[string]int, error)
}

type Staff interface {
	List(ctx context.Context) (dto.GetStaffResponse, error)
	Get(ctx context.Context, id string) (dto.StaffResponse, error)
	StartSession(ctx context.Context, req dto.SessionRequest) (dto.SessionResponse, error)
}

type serviceImpl struct {
	repo     repository.Staff
	bookings BookingCounter
	jwt      jwt.JWT
	otel     otel.Otel
}

func New(repo repository.Staff, bookings BookingCounter, jwt jwt.JWT, otel otel.Otel) Staff {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		jwt:      jwt,
		otel:     otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetStaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	counts, err := s.bookings.CountsByStaff(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings by staff")

		return res, fmt.Errorf("failed to count bookings by staff: %w", err)
	}

	res.FromModels(s.repo.GetAll(ctx), counts)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.StaffResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, err := s.repo.Get(ctx, id)
	if err != nil {
		return res, notFoundOr(err)
	}

	counts, err := s.bookings.CountsByStaff(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings by staff: %w", err)
	}

	res.FromModel(staff, counts[staff.ID])

	return res, nil
}

// StartSession selects the active staff member, checking the code when one is set.
func (s *serviceImpl) StartSession(ctx context.Context, req dto.SessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".StartSession")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	staff, err := s.repo.Get(ctx, req.StaffID)
	if err != nil {
		return res, notFoundOr(err)
	}

	if staff.HasPin() {
		if err = password.Verify(req.Pin, staff.PinHash); err != nil {
			if errors.Is(err, password.ErrInvalidPin) {
				return res, failure.Unauthorized("invalid staff pin") // nolint:wrapcheck
			}

			log.Error().Err(err).Str("staff_id", staff.ID).Msg("failed to verify staff pin")

			return res, fmt.Errorf("failed to verify staff pin: %w", err)
		}
	}

	token, err := s.jwt.GenerateToken(staff.ID, staff.Name)
	if err != nil {
		log.Error().Err(err).Msg("failed to issue staff session")

		return res, fmt.Errorf("failed to issue staff session: %w", err)
	}

	counts, err := s.bookings.CountsByStaff(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to count bookings by staff: %w", err)
	}

	res.Staff.FromModel(staff, counts[staff.ID])
	res.Token = *token

	scope.AddEvent("staff session started for " + staff.ID)

	return res, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, model.ErrStaffNotFound) {
		return failure.NotFound(err.Error()) // nolint:wrapcheck
	}

	return fmt.Errorf("failed to get staff: %w", err)
}
