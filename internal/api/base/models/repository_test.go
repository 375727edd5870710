package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		page, limit         int64
		wantPage, wantLimit int64
	}{
		{0, 0, 1, 10},
		{-3, 5, 1, 5},
		{2, 500, 2, 100},
		{4, 20, 4, 20},
	}
	for _, tt := range tests {
		p, l := NormalizePage(tt.page, tt.limit)
		assert.Equal(t, tt.wantPage, p)
		assert.Equal(t, tt.wantLimit, l)
	}
}

func TestNewPaginateResult(t *testing.T) {
	r := NewPaginateResult([]string{"a", "b"}, 1, 2, 5)
	assert.Equal(t, int64(3), r.TotalPage)
	assert.Equal(t, int64(2), r.ItemCount)

	empty := NewPaginateResult([]string{}, 1, 10, 0)
	assert.Equal(t, int64(0), empty.TotalPage)
}
