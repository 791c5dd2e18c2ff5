package db

import (
	"context"
	"time"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckoutInfo is the open-loan summary nested under a checked-out copy.
type CheckoutInfo struct {
	ID            string    `json:"id"`
	BorrowerName  string    `json:"borrower_name"`
	BorrowerEmail string    `json:"borrower_email"`
	CheckoutDate  time.Time `json:"checkout_date"`
	DueDate       time.Time `json:"due_date"`
}

// CopyRow is a BookCopy with its book's title/author and, when out, the
// open checkout.
type CopyRow struct {
	models.BookCopy
	Title        string        `json:"title"`
	Author       string        `json:"author"`
	CheckoutInfo *CheckoutInfo `json:"checkout_info"`
}

// CreateCopy registers one new physical copy, always Available, numbered
// max+1 within its book.
func (r *Repo) CreateCopy(ctx context.Context, userID string, c *models.BookCopy) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := lockForUpdate(tx).First(&b, "id = ? AND user_id = ?", c.BookID, userID).Error; err != nil {
			return notFound("book", err)
		}

		var next int
		if err := tx.Model(&models.BookCopy{}).
			Select("COALESCE(MAX(copy_number), 0) + 1").
			Where("book_id = ?", c.BookID).
			Scan(&next).Error; err != nil {
			return err
		}

		c.ID = uuid.NewString()
		c.UserID = userID
		c.CopyNumber = next
		c.Status = models.CopyAvailable
		if c.Condition == "" {
			c.Condition = models.ConditionGood
		}
		return tx.Create(c).Error
	})
}

// CreateCopies runs n independent CreateCopy operations. Not atomic: a
// failure on copy k leaves copies 1..k-1 persisted, and callers are told so.
func (r *Repo) CreateCopies(ctx context.Context, userID string, template models.BookCopy, n int) ([]models.BookCopy, error) {
	created := make([]models.BookCopy, 0, n)
	for i := 0; i < n; i++ {
		c := template
		if err := r.CreateCopy(ctx, userID, &c); err != nil {
			return created, err
		}
		created = append(created, c)
	}
	return created, nil
}

// ListCopies returns a book's copies ordered by copy_number, each carrying
// its open checkout when one exists.
func (r *Repo) ListCopies(ctx context.Context, userID, bookID string) ([]CopyRow, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).First(&b, "id = ? AND user_id = ?", bookID, userID).Error; err != nil {
		return nil, notFound("book", err)
	}

	var copies []models.BookCopy
	if err := r.DB.WithContext(ctx).
		Where("book_id = ?", bookID).
		Order("copy_number ASC").
		Find(&copies).Error; err != nil {
		return nil, err
	}

	rows := make([]CopyRow, len(copies))
	ids := make([]string, len(copies))
	for i, c := range copies {
		rows[i] = CopyRow{BookCopy: c, Title: b.Title, Author: b.Author}
		ids[i] = c.ID
	}
	if len(ids) == 0 {
		return rows, nil
	}

	type openRow struct {
		ID           string
		CopyID       string
		FirstName    string
		LastName     string
		Email        string
		CheckoutDate time.Time
		DueDate      time.Time
	}
	var open []openRow
	if err := r.DB.WithContext(ctx).Model(&models.Checkout{}).
		Select("checkouts.id, checkouts.copy_id, checkouts.checkout_date, checkouts.due_date, borrowers.first_name, borrowers.last_name, borrowers.email").
		Joins("JOIN borrowers ON borrowers.id = checkouts.borrower_id").
		Where("checkouts.copy_id IN ? AND checkouts.return_date IS NULL", ids).
		Scan(&open).Error; err != nil {
		return nil, err
	}

	byCopy := make(map[string]openRow, len(open))
	for _, o := range open {
		byCopy[o.CopyID] = o
	}
	for i := range rows {
		if o, ok := byCopy[rows[i].ID]; ok {
			rows[i].CheckoutInfo = &CheckoutInfo{
				ID:            o.ID,
				BorrowerName:  o.FirstName + " " + o.LastName,
				BorrowerEmail: o.Email,
				CheckoutDate:  o.CheckoutDate,
				DueDate:       o.DueDate,
			}
		}
	}
	return rows, nil
}

// UpdateCopy edits condition/location/notes. Status is owned by the lending
// engine and deliberately not settable here.
func (r *Repo) UpdateCopy(ctx context.Context, userID string, c *models.BookCopy) (*models.BookCopy, error) {
	var existing models.BookCopy
	if err := r.DB.WithContext(ctx).
		First(&existing, "id = ? AND user_id = ?", c.ID, userID).Error; err != nil {
		return nil, notFound("book copy", err)
	}
	if err := r.DB.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"condition": c.Condition,
		"location":  c.Location,
		"notes":     c.Notes,
	}).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// DeleteCopy removes a copy and its closed circulation history. Blocked
// while the copy is out on loan.
func (r *Repo) DeleteCopy(ctx context.Context, userID, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c models.BookCopy
		if err := lockForUpdate(tx).First(&c, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return notFound("book copy", err)
		}
		if c.Status == models.CopyCheckedOut {
			return ErrCopyCheckedOut
		}

		checkoutIDs := tx.Model(&models.Checkout{}).Select("id").Where("copy_id = ?", c.ID)
		if err := tx.Where("checkout_id IN (?)", checkoutIDs).Delete(&models.FollowUp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("copy_id = ?", c.ID).Delete(&models.Checkout{}).Error; err != nil {
			return err
		}
		return tx.Delete(&c).Error
	})
}
