package db

import (
	"context"
	"testing"

	"libraryapp_backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowerEmailUnique(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	err := r.CreateBorrower(ctx, u.ID, &models.Borrower{
		FirstName: "Paulina",
		LastName:  "Atreides",
		Email:     "PAUL@example.com", // case-insensitive match
	})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, ErrConflict)

	// Updating another borrower onto a taken email conflicts too.
	other := seedBorrower(t, r, u.ID, "Leto", "Atreides", "leto@example.com")
	other.Email = "paul@example.com"
	_, err = r.UpdateBorrower(ctx, u.ID, other)
	assert.ErrorIs(t, err, ErrEmailTaken)

	// Updating a borrower without changing email is fine.
	other.Email = "leto@example.com"
	other.Phone = "555-0100"
	updated, err := r.UpdateBorrower(ctx, u.ID, other)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", updated.Phone)
}

func TestDeleteBorrowerWithActiveCheckouts(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	book := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp := seedCopy(t, r, u.ID, book.ID)
	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	co, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp.ID, BorrowerID: br.ID})
	require.NoError(t, err)

	err = r.DeleteBorrower(ctx, u.ID, br.ID)
	assert.ErrorIs(t, err, ErrActiveCheckouts)

	row, err := r.FindBorrowerByID(ctx, u.ID, br.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, row.ActiveCheckouts)

	_, err = r.ReturnCheckout(ctx, u.ID, testActor(u), co.ID)
	require.NoError(t, err)

	require.NoError(t, r.DeleteBorrower(ctx, u.ID, br.ID))

	// Gone from subsequent searches.
	rows, err := r.ListBorrowers(ctx, u.ID, "atreides")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestListBorrowersSearchAndCounts(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	book := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp1 := seedCopy(t, r, u.ID, book.ID)
	cp2 := seedCopy(t, r, u.ID, book.ID)
	paul := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")
	seedBorrower(t, r, u.ID, "Gurney", "Halleck", "gurney@example.com")

	co, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp1.ID, BorrowerID: paul.ID})
	require.NoError(t, err)
	_, err = r.ReturnCheckout(ctx, u.ID, testActor(u), co.ID)
	require.NoError(t, err)
	_, err = r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp2.ID, BorrowerID: paul.ID})
	require.NoError(t, err)

	rows, err := r.ListBorrowers(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Ordered last_name, first_name.
	assert.Equal(t, "Atreides", rows[0].LastName)
	assert.EqualValues(t, 1, rows[0].ActiveCheckouts)
	assert.EqualValues(t, 1, rows[0].TotalCheckouts)
	assert.EqualValues(t, 0, rows[1].ActiveCheckouts)

	rows, err = r.ListBorrowers(ctx, u.ID, "halleck")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Gurney", rows[0].FirstName)
}

func TestAutocompleteBounded(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	names := []string{"Alia", "Chani", "Duncan", "Gurney", "Irulan", "Jessica", "Leto", "Paul", "Stilgar", "Thufir", "Vladimir", "Wellington"}
	for i, n := range names {
		seedBorrower(t, r, u.ID, n, "Arrakis", n+string(rune('a'+i))+"@example.com")
	}

	out, err := r.AutocompleteBorrowers(ctx, u.ID, "arrakis")
	require.NoError(t, err)
	assert.Len(t, out, 10) // bounded result set

	out, err = r.AutocompleteBorrowers(ctx, u.ID, "paul")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Paul", out[0].FirstName)
	assert.NotEmpty(t, out[0].Email)
}

func TestBorrowerScopedToUser(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	other, err := r.FindOrCreateUserByEmail(ctx, "other@example.com")
	require.NoError(t, err)

	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	_, err = r.FindBorrowerByID(ctx, other.ID, br.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Same email under a different staff account is not a conflict.
	require.NoError(t, r.CreateBorrower(ctx, other.ID, &models.Borrower{
		FirstName: "Paul",
		LastName:  "Atreides",
		Email:     "paul@example.com",
	}))
}
