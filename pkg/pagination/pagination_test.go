package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		p, err := Parse("", "")
		require.NoError(t, err)
		assert.Equal(t, Params{Page: 1, PerPage: DefaultPerPage}, p)
	})

	t.Run("values", func(t *testing.T) {
		p, err := Parse("3", "10")
		require.NoError(t, err)
		assert.Equal(t, Params{Page: 3, PerPage: 10}, p)
	})

	t.Run("clamped", func(t *testing.T) {
		p, err := Parse("-1", "500")
		require.NoError(t, err)
		assert.Equal(t, Params{Page: 1, PerPage: MaxPerPage}, p)
	})

	t.Run("invalid page", func(t *testing.T) {
		_, err := Parse("first", "")
		assert.ErrorContains(t, err, "invalid page")
	})

	t.Run("invalid perPage", func(t *testing.T) {
		_, err := Parse("1", "many")
		assert.ErrorContains(t, err, "invalid perPage")
	})
}

func TestBuildMeta(t *testing.T) {
	meta := Params{Page: 2, PerPage: 20}.BuildMeta(45, true)
	assert.Equal(t, Meta{Page: 2, PerPage: 20, TotalItems: 45, TotalPages: 3, HasNextPage: true}, meta)

	empty := Params{}.BuildMeta(10, false)
	assert.Equal(t, 0, empty.TotalPages)
}
