package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsParams(t *testing.T) {
	tests := []struct {
		name        string
		in          PaginationParams
		wantPage    int
		wantPerPage int
	}{
		{"defaults", PaginationParams{}, 1, 15},
		{"negative page", PaginationParams{Page: -3, PerPage: 20}, 1, 20},
		{"too many per page", PaginationParams{Page: 2, PerPage: 500}, 2, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.in
			p.Validate()
			assert.Equal(t, tt.wantPage, p.Page)
			assert.Equal(t, tt.wantPerPage, p.PerPage)
		})
	}
}

func TestOffset(t *testing.T) {
	p := &PaginationParams{Page: 3, PerPage: 10}
	assert.Equal(t, 20, p.Offset())
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)

	assert.Equal(t, 3, p.TotalPages)
	assert.True(t, p.HasNext)
	assert.True(t, p.HasPrev)

	last := NewPagination(3, 10, 25)
	assert.False(t, last.HasNext)

	empty := NewPagination(1, 10, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.False(t, empty.HasNext)
	assert.False(t, empty.HasPrev)
}

func TestNewPaginatedResultNeverNil(t *testing.T) {
	result := NewPaginatedResult[int](nil, NewPagination(1, 10, 0))
	assert.NotNil(t, result.Items)
	assert.Len(t, result.Items, 0)
}
