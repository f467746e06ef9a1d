package service_test

import (
	"context"
	"errors"
	"net/http"
	"roomboard/config"
	"roomboard/infras/jwt"
	"roomboard/infras/otel/mocks"
	"roomboard/internal/domains/staff/model/dto"
	"roomboard/internal/domains/staff/repository"
	"roomboard/internal/domains/staff/service"
	"roomboard/internal/seed"
	"roomboard/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type counterFunc func(ctx context.Context) (map[string]int, error)

func (f counterFunc) CountsByStaff(ctx context.Context) (map[string]int, error) {
	return f(ctx)
}

var fixedCounts = counterFunc(func(context.Context) (map[string]int, error) {
	return map[string]int{"s1": 4, "s2": 1}, nil
})

func newService(t *testing.T, counter service.BookingCounter) (service.Staff, jwt.JWT) {
	t.Helper()

	members, err := seed.Staff(map[string]string{"s2": "2468"}, bcrypt.MinCost)
	require.NoError(t, err)

	repo := repository.New(mocks.NewOtel())
	require.NoError(t, repo.InsertBulk(context.Background(), members))

	cfg := &config.Config{}
	cfg.App.Name = "roomboard-test"
	cfg.JWT.AccessExpireMin = 60

	tokens := jwt.New(cfg)

	return service.New(repo, counter, tokens, mocks.NewOtel()), tokens
}

func TestList(t *testing.T) {
	svc, _ := newService(t, fixedCounts)

	res, err := svc.List(context.Background())
	require.NoError(t, err)

	require.Equal(t, 5, res.TotalData)
	assert.Equal(t, dto.StaffResponse{ID: "s1", Name: "Bestey", BookingCount: 4}, res.Staff[0])
	assert.Equal(t, dto.StaffResponse{ID: "s2", Name: "Faari", PinRequired: true, BookingCount: 1}, res.Staff[1])
	assert.Equal(t, 0, res.Staff[4].BookingCount)
}

func TestList_CounterFails(t *testing.T) {
	svc, _ := newService(t, counterFunc(func(context.Context) (map[string]int, error) {
		return nil, errors.New("boom")
	}))

	_, err := svc.List(context.Background())
	assert.Error(t, err)
}

func TestGet(t *testing.T) {
	svc, _ := newService(t, fixedCounts)

	res, err := svc.Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, res.BookingCount)

	_, err = svc.Get(context.Background(), "s9")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestStartSession(t *testing.T) {
	tests := []struct {
		name     string
		req      dto.SessionRequest
		wantCode int
	}{
		{name: "member without pin", req: dto.SessionRequest{StaffID: "s1"}},
		{name: "member with correct pin", req: dto.SessionRequest{StaffID: "s2", Pin: "2468"}},
		{name: "member with wrong pin", req: dto.SessionRequest{StaffID: "s2", Pin: "1357"}, wantCode: http.StatusUnauthorized},
		{name: "member with missing pin", req: dto.SessionRequest{StaffID: "s2"}, wantCode: http.StatusUnauthorized},
		{name: "unknown member", req: dto.SessionRequest{StaffID: "s9"}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, tokens := newService(t, fixedCounts)

			res, err := svc.StartSession(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.req.StaffID, res.Staff.ID)
			assert.Equal(t, "Bearer", res.TokenType)

			claims, err := tokens.ValidateToken(res.AccessToken)
			require.NoError(t, err)
			assert.Equal(t, tt.req.StaffID, claims.StaffID)
			assert.Equal(t, res.Staff.Name, claims.StaffName)
		})
	}
}
