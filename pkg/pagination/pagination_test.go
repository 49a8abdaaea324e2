package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateClampsValues(t *testing.T) {
	p := &PaginationParams{Page: 0, PerPage: 500}
	p.Validate()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PerPage)
	assert.Equal(t, 0, p.Offset())
}

func TestNewPagination(t *testing.T) {
	pag := NewPagination(2, 20, 45)

	assert.Equal(t, 3, pag.TotalPages)
	assert.True(t, pag.HasNext)
	assert.True(t, pag.HasPrev)

	last := NewPagination(3, 20, 45)
	assert.False(t, last.HasNext)
}

func TestNewParamsOffset(t *testing.T) {
	p := NewParams(3, 10)
	assert.Equal(t, 20, p.Offset())
}
