package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alp4ka/relaypager"
)

type item struct {
	ID string
	At time.Time
}

func itemKey(i item) relaypager.Key {
	return relaypager.Key{CreatedAt: i.At, ID: i.ID}
}

func itemIDs(items []item) []string {
	return lo.Map(items, func(i item, _ int) string { return i.ID })
}

func Test_Store_Find(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New(itemKey,
		item{"b", t0},
		item{"d", t0.Add(2 * time.Minute)},
		item{"a", t0},
		item{"c", t0.Add(time.Minute)},
	)
	cursor := &relaypager.Key{CreatedAt: t0.Add(time.Minute), ID: "c"}

	tests := []struct {
		name   string
		window relaypager.Window
		limit  int
		want   []string
	}{
		{"descending, no bound", relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, nil), 10, []string{"d", "c", "b", "a"}},
		{"ascending, no bound", relaypager.BuildWindow(relaypager.DirectionASC, relaypager.DefaultColumns, nil, nil), 10, []string{"a", "b", "c", "d"}},
		{"limited", relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, nil), 2, []string{"d", "c"}},
		{"zero limit", relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, nil), 0, []string{}},
		{"after cursor", relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, cursor, nil), 10, []string{"b", "a"}},
		{"before cursor", relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, cursor), 10, []string{"d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Find(context.Background(), tt.window, tt.limit)
			require.NoError(t, err)
			assert.Equal(t, tt.want, itemIDs(got))
		})
	}
}

func Test_Store_InsertDeleteCount(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seed := []item{{"a", t0}}
	s := New(itemKey, seed...)
	ctx := context.Background()

	// New copies its input.
	seed[0].ID = "mutated"

	s.Insert(item{"b", t0}, item{"c", t0})
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	assert.True(t, s.Delete(relaypager.Key{CreatedAt: t0, ID: "a"}))
	assert.False(t, s.Delete(relaypager.Key{CreatedAt: t0, ID: "a"}))
	assert.False(t, s.Delete(relaypager.Key{CreatedAt: t0, ID: "mutated"}))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func Test_Store_CancelledContext(t *testing.T) {
	s := New(itemKey, item{"a", time.Now()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Find(ctx, relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, nil), 1)
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Count(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func Test_Store_ConcurrentAccess(t *testing.T) {
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s := New[item](itemKey)
	w := relaypager.BuildWindow(relaypager.DirectionDESC, relaypager.DefaultColumns, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			s.Insert(item{ID: string(rune('a' + i)), At: t0})
		}(i)
		go func() {
			defer wg.Done()
			_, err := s.Find(context.Background(), w, 100)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := s.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), n)
}
