package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationOffset(t *testing.T) {
	assert.Equal(t, 0, PaginationOptions{Page: 0, PageSize: 50}.Offset())
	assert.Equal(t, 0, PaginationOptions{Page: 1, PageSize: 50}.Offset())
	assert.Equal(t, 50, PaginationOptions{Page: 2, PageSize: 50}.Offset())
	assert.Equal(t, 40, PaginationOptions{Page: 3, PageSize: 20}.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]string{"a", "b"}, 101, PaginationOptions{Page: 2, PageSize: 50})
	assert.Equal(t, int64(101), p.Total)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 3, p.TotalPages)
	assert.Len(t, p.Items, 2)

	empty := NewPaginated[string](nil, 0, PaginationOptions{Page: 1, PageSize: 50})
	assert.Equal(t, 0, empty.TotalPages)
}

func TestBatchID(t *testing.T) {
	id := NewBatchID()
	assert.False(t, id.IsEmpty())
	assert.NotEqual(t, id, NewBatchID())
	assert.Equal(t, string(id), id.String())
}
