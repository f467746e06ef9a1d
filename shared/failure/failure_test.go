package failure_test

import (
	"errors"
	"fmt"
	"net/http"
	"roomboard/shared/failure"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errOverlap = errors.New("room is already booked for that stay")

func TestWrappingConstructors(t *testing.T) {
	tests := []struct {
		name  string
		build func(error) error
		code  int
	}{
		{name: "bad request", build: failure.BadRequest, code: http.StatusBadRequest},
		{name: "unknown reference", build: failure.UnprocessableEntity, code: http.StatusUnprocessableEntity},
		{name: "conflict", build: failure.ConflictFrom, code: http.StatusConflict},
		{name: "internal", build: failure.InternalError, code: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build(fmt.Errorf("room 101: %w", errOverlap))

			var f *failure.Failure
			require.ErrorAs(t, err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Equal(t, "room 101: room is already booked for that stay", f.Error())
			assert.ErrorIs(t, err, errOverlap)

			assert.NoError(t, tt.build(nil))
		})
	}
}

func TestMessageConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{name: "bad request", err: failure.BadRequestFromString("sort_by must be one of created_at start_date"), code: http.StatusBadRequest},
		{name: "unauthorized", err: failure.Unauthorized("invalid staff pin"), code: http.StatusUnauthorized},
		{name: "not found", err: failure.NotFound("room \"999\" not found"), code: http.StatusNotFound},
		{name: "unavailable", err: failure.ServiceUnavailable("board export storage is not configured"), code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f *failure.Failure
			require.ErrorAs(t, tt.err, &f)
			assert.Equal(t, tt.code, f.Code)
			assert.Nil(t, f.Unwrap())
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "failure", err: failure.BadRequestFromString("nights must be at least 1"), want: http.StatusBadRequest},
		{name: "wrapped failure", err: fmt.Errorf("failed to create booking: %w", failure.ConflictFrom(errOverlap)), want: http.StatusConflict},
		{name: "plain error", err: errors.New("redis down"), want: http.StatusInternalServerError},
		{name: "nil", err: nil, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, failure.GetCode(tt.err))
		})
	}
}
