package db

import (
	"context"
	"testing"
	"time"

	"libraryapp_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFollowUpLifecycle(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	book := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp := seedCopy(t, r, u.ID, book.ID)
	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")
	co, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp.ID, BorrowerID: br.ID})
	require.NoError(t, err)

	f := &models.FollowUp{CheckoutID: co.ID, Reason: "two weeks overdue"}
	require.NoError(t, r.CreateFollowUp(ctx, u.ID, f))
	assert.Equal(t, models.FollowUpPending, f.Status)

	// One follow-up per checkout.
	err = r.CreateFollowUp(ctx, u.ID, &models.FollowUp{CheckoutID: co.ID, Reason: "again"})
	assert.ErrorIs(t, err, ErrFollowUpExists)

	// Against an unknown checkout.
	err = r.CreateFollowUp(ctx, u.ID, &models.FollowUp{CheckoutID: "ffffffff-0000-0000-0000-000000000000", Reason: "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	// Any status reachable from any status, with outreach details.
	contacted := time.Now().UTC()
	updated, err := r.UpdateFollowUp(ctx, u.ID, &models.FollowUp{
		ID:            f.ID,
		Status:        models.FollowUpEscalated,
		ContactedDate: &contacted,
	})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpEscalated, updated.Status)

	updated, err = r.UpdateFollowUp(ctx, u.ID, &models.FollowUp{
		ID:              f.ID,
		Status:          models.FollowUpPending,
		ResolutionNotes: "reopened",
	})
	require.NoError(t, err)
	assert.Equal(t, models.FollowUpPending, updated.Status)
	assert.True(t, updated.Open())

	require.NoError(t, r.DeleteFollowUp(ctx, u.ID, f.ID))
	assert.ErrorIs(t, r.DeleteFollowUp(ctx, u.ID, f.ID), ErrNotFound)
}

func TestListFollowUpsOldestCheckoutFirst(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	book := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp1 := seedCopy(t, r, u.ID, book.ID)
	cp2 := seedCopy(t, r, u.ID, book.ID)
	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	co1, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp1.ID, BorrowerID: br.ID})
	require.NoError(t, err)
	co2, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp2.ID, BorrowerID: br.ID})
	require.NoError(t, err)

	// Backdate the second loan so it is the longest outstanding.
	older := co2.CheckoutDate.Add(-72 * time.Hour)
	require.NoError(t, r.DB.Model(&models.Checkout{}).Where("id = ?", co2.ID).Update("checkout_date", older).Error)

	require.NoError(t, r.CreateFollowUp(ctx, u.ID, &models.FollowUp{CheckoutID: co1.ID, Reason: "a"}))
	require.NoError(t, r.CreateFollowUp(ctx, u.ID, &models.FollowUp{CheckoutID: co2.ID, Reason: "b"}))

	rows, err := r.ListFollowUps(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, co2.ID, rows[0].CheckoutID)
	assert.Equal(t, 3, rows[0].DaysCheckedOut)
	assert.Equal(t, "Dune", rows[0].Title)
	assert.Equal(t, "Paul", rows[0].FirstName)
}
