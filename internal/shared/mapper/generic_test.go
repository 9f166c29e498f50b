package mapper

import (
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_ToDTOList(t *testing.T) {
	m := New(func(v int) string { return strconv.Itoa(v * 2) })

	assert.Equal(t, "4", m.ToDTO(2))
	assert.Equal(t, []string{"2", "4"}, m.ToDTOList([]int{1, 2}))
	assert.Nil(t, m.ToDTOList(nil))
	assert.Empty(t, m.ToDTOList([]int{}))
}

func TestMapSliceWithError(t *testing.T) {
	parse := func(s string) (int, error) { return strconv.Atoi(s) }

	got, err := MapSliceWithError([]string{"1", "2"}, parse)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, got)

	_, err = MapSliceWithError([]string{"1", "x"}, parse)
	var numErr *strconv.NumError
	assert.True(t, errors.As(err, &numErr))

	got, err = MapSliceWithError[string, int](nil, parse)
	require.NoError(t, err)
	assert.Nil(t, got)
}
