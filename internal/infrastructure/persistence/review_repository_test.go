package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/foodhub/backend/internal/domain/review"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormReviewRepository(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	reviews := NewGormReviewRepository(db)
	orders := NewGormOrderRepository(db)

	flagged := newPendingOrder(t, "u1", "fresh-fusion")
	unflagged := newPendingOrder(t, "u1", "fresh-fusion")
	require.NoError(t, orders.Create(ctx, flagged))
	require.NoError(t, orders.Create(ctx, unflagged))

	write := func(orderID string, rating int, at time.Time) *review.Review {
		rv, err := review.NewReview(review.Author{ID: "u1", DisplayName: "Ana"}, orderID, "fresh-fusion", rating, "")
		require.NoError(t, err)
		rv.CreatedAt = at
		require.NoError(t, reviews.Create(ctx, rv))
		return rv
	}
	first := write(flagged.ID, 5, time.Now().Add(-time.Hour))
	second := write(flagged.ID, 4, time.Now())
	write(unflagged.ID, 3, time.Now())
	require.NoError(t, orders.MarkReviewed(ctx, flagged.ID))

	t.Run("by order keeps every review", func(t *testing.T) {
		got, err := reviews.FindByOrder(ctx, flagged.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, second.ID, got[0].ID)
		assert.Equal(t, first.ID, got[1].ID)
		assert.Nil(t, got[0].Reply)
	})

	t.Run("by restaurant", func(t *testing.T) {
		got, err := reviews.FindByRestaurant(ctx, "fresh-fusion")
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("summary", func(t *testing.T) {
		s, err := reviews.Summarize(ctx, "fresh-fusion")
		require.NoError(t, err)
		assert.EqualValues(t, 3, s.Count)
		assert.InDelta(t, 4.0, s.Average, 0.001)

		empty, err := reviews.Summarize(ctx, "nowhere")
		require.NoError(t, err)
		assert.Zero(t, empty.Count)
		assert.Zero(t, empty.Average)
	})

	t.Run("unflagged orders", func(t *testing.T) {
		ids, err := reviews.FindUnflaggedOrderIDs(ctx, 10)
		require.NoError(t, err)
		assert.Equal(t, []string{unflagged.ID}, ids)
	})
}
