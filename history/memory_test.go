package history_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/award-engine/award"
	"github.com/warp/award-engine/history"
)

func record(label string, at time.Time) history.Record {
	return history.NewRecord(label,
		award.WeeklyInput{Schedule: "current"},
		award.WeeklySummary{AwardCode: "MA000012", AwardVersion: "2024-07", Total: decimal.RequireFromString("194.93")},
		at)
}

func TestNewRecord_StampsIDAndAward(t *testing.T) {
	at := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.FixedZone("AEDT", 11*3600))
	r := record("week 1", at)

	assert.True(t, history.ValidID(r.ID))
	assert.Equal(t, time.UTC, r.CreatedAt.Location())
	assert.Equal(t, "MA000012", r.AwardCode)
	assert.Equal(t, "2024-07", r.AwardVersion)
	assert.Equal(t, "current", r.Schedule)
	assert.False(t, history.ValidID("not-a-uuid"))
}

func TestMemory_SaveGetDelete(t *testing.T) {
	// GIVEN: An empty memory store
	// WHEN: A record is saved, fetched and deleted
	// THEN: Each step behaves and missing IDs are NotFoundError

	ctx := context.Background()
	store := history.NewMemory()
	r := record("week 1", time.Now())

	require.NoError(t, store.Save(ctx, r))
	assert.ErrorIs(t, store.Save(ctx, r), history.ErrDuplicateID)

	got, err := store.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)

	require.NoError(t, store.Delete(ctx, r.ID))
	_, err = store.Get(ctx, r.ID)
	assert.ErrorIs(t, err, history.ErrNotFound)

	var nf *history.NotFoundError
	err = store.Delete(ctx, r.ID)
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, r.ID, nf.ID)
}

func TestMemory_ListNewestFirstWithPaging(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(ctx, record(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))))
	}

	all, err := store.List(ctx, history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "e", all[0].Label)
	assert.Equal(t, "a", all[4].Label)

	page, err := store.List(ctx, history.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "d", page[0].Label)
	assert.Equal(t, "c", page[1].Label)

	empty, err := store.List(ctx, history.ListOptions{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestMemory_DeleteBefore(t *testing.T) {
	ctx := context.Background()
	store := history.NewMemory()
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, store.Save(ctx, record("old", now.Add(-48*time.Hour))))
	require.NoError(t, store.Save(ctx, record("new", now)))

	n, err := store.DeleteBefore(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	left, err := store.List(ctx, history.ListOptions{})
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "new", left[0].Label)
}
