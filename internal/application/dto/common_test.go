package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/taller-api/internal/application/dto"
)

func TestClampPage(t *testing.T) {
	cases := []struct{ limit, offset, wantLimit, wantOffset int }{
		{0, 0, dto.DefaultLimit, 0},
		{-3, -1, dto.DefaultLimit, 0},
		{50, 10, 50, 10},
		{500, 0, dto.MaxLimit, 0},
	}
	for _, tc := range cases {
		l, o := dto.ClampPage(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, l, "limit %d", tc.limit)
		assert.Equal(t, tc.wantOffset, o, "offset %d", tc.offset)
	}
}

func TestPageRequest_NormalizeYPage(t *testing.T) {
	q := dto.PageRequest{Limit: 0, Offset: 40}
	q.Normalize()

	assert.Equal(t, dto.PageResponse{Limit: dto.DefaultLimit, Offset: 40, Total: 7}, q.Page(7))
	assert.Equal(t, dto.PageResponse{Limit: dto.DefaultLimit, Offset: 40}, q.Page(-1))
}
