package helpers

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"centroespirita/internal/domain"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   domain.PaginationParams
	}{
		{
			name:   "defaults when absent",
			target: "/users",
			want:   domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize},
		},
		{
			name:   "explicit values",
			target: "/users?page=3&page_size=10",
			want:   domain.PaginationParams{Page: 3, PageSize: 10},
		},
		{
			name:   "page size clamped to max",
			target: "/users?page_size=500",
			want:   domain.PaginationParams{Page: DefaultPage, PageSize: MaxPageSize},
		},
		{
			name:   "invalid values fall back",
			target: "/users?page=abc&page_size=0",
			want:   domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize},
		},
		{
			name:   "negative page falls back",
			target: "/users?page=-2",
			want:   domain.PaginationParams{Page: DefaultPage, PageSize: DefaultPageSize},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.target, nil)
			assert.Equal(t, tt.want, ParsePagination(r))
		})
	}
}

func TestNewPaginationMeta(t *testing.T) {
	meta := NewPaginationMeta(2, 25, 51)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 51, meta.Total)

	empty := NewPaginationMeta(1, 0, 10)
	assert.Equal(t, 0, empty.TotalPages)
}
