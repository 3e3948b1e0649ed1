package table

import (
	"fmt"
	"sync"
	"testing"

	"github.com/arloliu/rowseg/errs"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	id, err := r.Register("items")
	require.NoError(t, err)
	require.Equal(t, TableID("items"), id)
	require.True(t, r.Has("items"))

	name, ok := r.Name(id)
	require.True(t, ok)
	require.Equal(t, "items", name)

	_, err = r.Register("items")
	require.ErrorIs(t, err, errs.ErrTableAlreadyLoaded)

	_, err = r.Register("")
	require.ErrorIs(t, err, errs.ErrInvalidTableName)

	_, err = r.Register("skills")
	require.NoError(t, err)
	require.Equal(t, []string{"items", "skills"}, r.Names())
	require.Equal(t, 2, r.Len())

	require.True(t, r.Unregister("items"))
	require.False(t, r.Unregister("items"))
	require.False(t, r.Has("items"))
	_, ok = r.Name(id)
	require.False(t, ok)
	require.Equal(t, []string{"skills"}, r.Names())
}

func TestRegistry_Concurrent(t *testing.T) {
	r := NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Register(fmt.Sprintf("table-%d", i%25))
			if err != nil {
				require.ErrorIs(t, err, errs.ErrTableAlreadyLoaded)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 25, r.Len())
}
