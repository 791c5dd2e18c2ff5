package db

import (
	"context"
	"testing"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookSearch(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)

	dune := &models.Book{
		ID: uuid.NewString(), UserID: u.ID,
		Title: "Dune", Author: "Frank Herbert", ISBN: "9780441172719", Barcode: "LIB-0001",
	}
	require.NoError(t, r.CreateBook(ctx, dune))
	seedBook(t, r, u.ID, "The Hobbit", "Tolkien")

	for _, q := range []string{"dune", "herbert", "9780441", "lib-0001"} {
		rows, err := r.ListBooks(ctx, u.ID, q)
		require.NoError(t, err)
		require.Len(t, rows, 1, "search %q", q)
		assert.Equal(t, "Dune", rows[0].Title)
	}

	rows, err := r.ListBooks(ctx, u.ID, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// Ordered by title.
	assert.Equal(t, "Dune", rows[0].Title)
}

func TestFindBookByBarcode(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)

	b := &models.Book{ID: uuid.NewString(), UserID: u.ID, Title: "Dune", Barcode: "LIB-0001"}
	require.NoError(t, r.CreateBook(ctx, b))
	seedCopy(t, r, u.ID, b.ID)
	seedCopy(t, r, u.ID, b.ID)

	detail, err := r.FindBookByBarcode(ctx, u.ID, "LIB-0001")
	require.NoError(t, err)
	assert.Equal(t, b.ID, detail.ID)
	assert.EqualValues(t, 2, detail.TotalCopies)
	assert.EqualValues(t, 2, detail.AvailableCopies)
	require.Len(t, detail.Copies, 2)
	assert.Equal(t, 1, detail.Copies[0].CopyNumber)

	_, err = r.FindBookByBarcode(ctx, u.ID, "LIB-9999")
	assert.ErrorIs(t, err, ErrNotFound)

	// Books without a barcode must never match an empty scan.
	noBarcode := seedBook(t, r, u.ID, "Unlabeled", "Anon")
	_ = noBarcode
	_, err = r.FindBookByBarcode(ctx, u.ID, "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateCopiesSequentialNumbers(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	b := seedBook(t, r, u.ID, "Dune", "Herbert")

	created, err := r.CreateCopies(ctx, u.ID, models.BookCopy{BookID: b.ID}, 3)
	require.NoError(t, err)
	require.Len(t, created, 3)
	for i, c := range created {
		assert.Equal(t, i+1, c.CopyNumber)
		assert.Equal(t, models.CopyAvailable, c.Status)
		assert.Equal(t, models.ConditionGood, c.Condition)
	}

	// A batch against an unknown book fails with nothing created.
	none, err := r.CreateCopies(ctx, u.ID, models.BookCopy{BookID: uuid.NewString()}, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, none)
}

func TestListCopiesWithCheckoutInfo(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	b := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp1 := seedCopy(t, r, u.ID, b.ID)
	seedCopy(t, r, u.ID, b.ID)
	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	_, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp1.ID, BorrowerID: br.ID})
	require.NoError(t, err)

	rows, err := r.ListCopies(ctx, u.ID, b.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "Dune", rows[0].Title)
	require.NotNil(t, rows[0].CheckoutInfo)
	assert.Equal(t, "Paul Atreides", rows[0].CheckoutInfo.BorrowerName)
	assert.Equal(t, "paul@example.com", rows[0].CheckoutInfo.BorrowerEmail)
	assert.Nil(t, rows[1].CheckoutInfo)
}

func TestDeleteCopyCheckedOut(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	b := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp := seedCopy(t, r, u.ID, b.ID)
	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	co, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp.ID, BorrowerID: br.ID})
	require.NoError(t, err)

	err = r.DeleteCopy(ctx, u.ID, cp.ID)
	assert.ErrorIs(t, err, ErrCopyCheckedOut)

	_, err = r.ReturnCheckout(ctx, u.ID, testActor(u), co.ID)
	require.NoError(t, err)
	require.NoError(t, r.DeleteCopy(ctx, u.ID, cp.ID))

	book, err := r.FindBookByID(ctx, u.ID, b.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, book.TotalCopies)
}

func TestDeleteBookPolicy(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	b := seedBook(t, r, u.ID, "Dune", "Herbert")
	cp := seedCopy(t, r, u.ID, b.ID)
	seedCopy(t, r, u.ID, b.ID)
	br := seedBorrower(t, r, u.ID, "Paul", "Atreides", "paul@example.com")

	co, err := r.CreateCheckout(ctx, u.ID, testActor(u), CreateCheckoutInput{CopyID: cp.ID, BorrowerID: br.ID})
	require.NoError(t, err)

	// Blocked while any copy is out.
	err = r.DeleteBook(ctx, u.ID, b.ID)
	assert.ErrorIs(t, err, ErrBookCheckedOut)

	_, err = r.ReturnCheckout(ctx, u.ID, testActor(u), co.ID)
	require.NoError(t, err)

	// With everything back on the shelf the cascade goes through.
	require.NoError(t, r.DeleteBook(ctx, u.ID, b.ID))
	_, err = r.FindBookByID(ctx, u.ID, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var copies int64
	require.NoError(t, r.DB.Model(&models.BookCopy{}).Where("book_id = ?", b.ID).Count(&copies).Error)
	assert.Zero(t, copies)
}

func TestUpdateBook(t *testing.T) {
	r := openTestRepo(t)
	ctx := context.Background()
	u := seedUser(t, r)
	b := seedBook(t, r, u.ID, "Dune", "Herbert")

	year := 1965
	b.PublicationYear = &year
	b.Genre = "Science Fiction"
	require.NoError(t, r.UpdateBook(ctx, b))

	got, err := r.FindBookByID(ctx, u.ID, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got.PublicationYear)
	assert.Equal(t, 1965, *got.PublicationYear)
	assert.Equal(t, "Science Fiction", got.Genre)

	missing := *b
	missing.ID = uuid.NewString()
	assert.ErrorIs(t, r.UpdateBook(ctx, &missing), ErrNotFound)
}
