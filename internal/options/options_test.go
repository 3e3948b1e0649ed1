package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type target struct {
	size  int
	name  string
	calls []string
}

func withSize(n int) Option[*target] {
	return New(func(t *target) error {
		if n < 0 {
			return errors.New("size cannot be negative")
		}
		t.size = n
		t.calls = append(t.calls, "size")

		return nil
	})
}

func withName(name string) Option[*target] {
	return NoError(func(t *target) {
		t.name = name
		t.calls = append(t.calls, "name")
	})
}

func TestApply(t *testing.T) {
	tg := &target{}
	err := Apply(tg, withSize(3), withName("rows"))
	require.NoError(t, err)
	require.Equal(t, 3, tg.size)
	require.Equal(t, "rows", tg.name)
	require.Equal(t, []string{"size", "name"}, tg.calls)
}

func TestApply_StopsAtFirstError(t *testing.T) {
	tg := &target{}
	err := Apply(tg, withName("a"), withSize(-1), withName("b"))
	require.EqualError(t, err, "size cannot be negative")
	require.Equal(t, "a", tg.name)
	require.Equal(t, []string{"name"}, tg.calls)
}

func TestApply_Empty(t *testing.T) {
	tg := &target{}
	require.NoError(t, Apply(tg))
	require.NoError(t, Apply[*target](tg, nil, withSize(1)))
	require.Equal(t, 1, tg.size)
}

func TestApply_LaterOptionWins(t *testing.T) {
	tg := &target{}
	require.NoError(t, Apply(tg, withSize(1), withSize(2)))
	require.Equal(t, 2, tg.size)
}
