package dto_test

import (
	"net/http"
	"net/http/httptest"
	"roomboard/shared/constant"
	"roomboard/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryParams_FromRequest(t *testing.T) {
	defaults := dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit}

	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "every parameter",
			query:    "page=2&limit=20&sort_by=start_date&sort_dir=ASC",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date", SortDir: dto.SortDirAsc},
		},
		{name: "nothing without defaults", query: "", expected: dto.QueryParams{}},
		{name: "nothing with defaults", query: "", defaultRequest: true, expected: defaults},
		{name: "page not a number", query: "page=first", defaultRequest: true, expected: defaults},
		{name: "page zero", query: "page=0", defaultRequest: true, expected: defaults},
		{name: "negative limit", query: "limit=-10", defaultRequest: true, expected: defaults},
		{
			name:     "limit capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{name: "lowercase direction", query: "sort_dir=desc", expected: dto.QueryParams{SortDir: dto.SortDirDesc}},
		{name: "unknown direction", query: "sort_dir=sideways", expected: dto.QueryParams{}},
		{
			name:           "partial with defaults",
			query:          "page=3&sort_by=created_at",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: 3, Limit: constant.DefaultValueLimit, SortBy: "created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/bookings?"+tt.query, nil)

			var params dto.QueryParams
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	tests := []struct {
		params   dto.QueryParams
		expected int
	}{
		{params: dto.QueryParams{}, expected: 0},
		{params: dto.QueryParams{Page: 1, Limit: 10}, expected: 0},
		{params: dto.QueryParams{Page: 3, Limit: 10}, expected: 20},
		{params: dto.QueryParams{Page: 3}, expected: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.params.Offset(), "%+v", tt.params)
	}
}

func TestQueryParams_Ascending(t *testing.T) {
	assert.True(t, dto.QueryParams{SortDir: dto.SortDirAsc}.Ascending())
	assert.False(t, dto.QueryParams{SortDir: dto.SortDirDesc}.Ascending())
	assert.False(t, dto.QueryParams{}.Ascending(), "newest first unless asked otherwise")
}
