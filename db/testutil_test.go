package db

import (
	"context"
	"path/filepath"
	"testing"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestRepo(t *testing.T) *Repo {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "library.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(gdb))
	return NewRepo(gdb)
}

func seedUser(t *testing.T, r *Repo) *models.User {
	t.Helper()
	u, err := r.FindOrCreateUserByEmail(context.Background(), "librarian@example.com")
	require.NoError(t, err)
	return u
}

func seedBook(t *testing.T, r *Repo, userID, title, author string) *models.Book {
	t.Helper()
	b := &models.Book{
		ID:       uuid.NewString(),
		UserID:   userID,
		Title:    title,
		Author:   author,
		Language: "English",
	}
	require.NoError(t, r.CreateBook(context.Background(), b))
	return b
}

func seedCopy(t *testing.T, r *Repo, userID, bookID string) *models.BookCopy {
	t.Helper()
	c := &models.BookCopy{BookID: bookID}
	require.NoError(t, r.CreateCopy(context.Background(), userID, c))
	return c
}

func seedBorrower(t *testing.T, r *Repo, userID, first, last, email string) *models.Borrower {
	t.Helper()
	b := &models.Borrower{FirstName: first, LastName: last, Email: email}
	require.NoError(t, r.CreateBorrower(context.Background(), userID, b))
	return b
}

func testActor(u *models.User) Actor { return Actor{ID: u.ID, Email: u.Email} }
