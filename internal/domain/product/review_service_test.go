package product

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
)

func TestAddReviewAttachesOptionalUser(t *testing.T) {
	svc, db := newTestService(t)
	reviews := NewReviewService(db, &config.Config{})

	p, err := svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda"))
	require.NoError(t, err)

	guest, err := reviews.AddReview(p.SKU, nil, &CreateReviewRequest{
		Name: "Sam", Rating: 4, Comment: "Comfortable out of the box",
	})
	require.NoError(t, err)
	require.Nil(t, guest.UserID)

	uid := uint(7)
	signed, err := reviews.AddReview(p.SKU, &uid, &CreateReviewRequest{
		Name: "Alex", Rating: 5, Comment: "True to size",
	})
	require.NoError(t, err)
	require.Equal(t, uint(7), *signed.UserID)
}

func TestAddReviewUnknownProductFails(t *testing.T) {
	_, db := newTestService(t)
	reviews := NewReviewService(db, &config.Config{})

	_, err := reviews.AddReview("NOPE-1", nil, &CreateReviewRequest{
		Name: "Sam", Rating: 3, Comment: "x",
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "product not found")
}

func TestReviewSummaryAverages(t *testing.T) {
	svc, db := newTestService(t)
	reviews := NewReviewService(db, &config.Config{})

	p, err := svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda"))
	require.NoError(t, err)

	for _, rating := range []int{5, 4, 3} {
		_, err := reviews.AddReview(p.SKU, nil, &CreateReviewRequest{
			Name: "Sam", Rating: rating, Comment: "ok",
		})
		require.NoError(t, err)
	}

	summary, err := reviews.GetReviewSummary(p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(3), summary.Count)
	require.InDelta(t, 4.0, summary.AverageRating, 0.001)
}

func TestReviewSummaryEmptyProduct(t *testing.T) {
	svc, db := newTestService(t)
	reviews := NewReviewService(db, &config.Config{})

	p, err := svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda"))
	require.NoError(t, err)

	summary, err := reviews.GetReviewSummary(p.ID)
	require.NoError(t, err)
	require.Equal(t, int64(0), summary.Count)
	require.Equal(t, 0.0, summary.AverageRating)
}

func TestGetReviewsNewestFirst(t *testing.T) {
	svc, db := newTestService(t)
	reviews := NewReviewService(db, &config.Config{})

	p, err := svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda"))
	require.NoError(t, err)

	for _, name := range []string{"first", "second"} {
		_, err := reviews.AddReview(p.SKU, nil, &CreateReviewRequest{
			Name: name, Rating: 5, Comment: "ok",
		})
		require.NoError(t, err)
	}

	got, err := reviews.GetReviews(p.SKU)
	require.NoError(t, err)
	require.Len(t, got, 2)
}
