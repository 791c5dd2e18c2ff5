package db

import (
	"context"
	"strings"
	"time"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateCheckoutInput carries the lending request. DueDays <= 0 falls back
// to the repo default.
type CreateCheckoutInput struct {
	CopyID     string
	BorrowerID string
	DueDays    int
	Notes      string
}

// Actor identifies the staff member driving a circulation mutation, for the
// audit trail.
type Actor struct {
	ID    string
	Email string
}

// CheckoutRow is a checkout joined with its book, copy and borrower, plus
// the derived fields the circulation views need.
type CheckoutRow struct {
	ID           string     `json:"id"`
	CopyID       string     `json:"copy_id"`
	BorrowerID   string     `json:"borrower_id"`
	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date"`
	Notes        string     `json:"notes"`

	Title      string `json:"title"`
	Author     string `json:"author"`
	ISBN       string `json:"isbn"`
	CopyNumber int    `json:"copy_number"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`

	Status       string `json:"status"`
	DurationDays int    `json:"duration_days"`
}

// CreateCheckout is the Available -> CheckedOut transition. The status check
// and the checkout insert are one atomic unit: of two staff members racing
// for the same copy, exactly one wins and the other gets a conflict.
func (r *Repo) CreateCheckout(ctx context.Context, userID string, actor Actor, in CreateCheckoutInput) (*models.Checkout, error) {
	dueDays := in.DueDays
	if dueDays <= 0 {
		dueDays = r.DefaultDueDays
	}

	var co *models.Checkout
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cp models.BookCopy
		if err := lockForUpdate(tx).First(&cp, "id = ? AND user_id = ?", in.CopyID, userID).Error; err != nil {
			return notFound("book copy", err)
		}
		if cp.Status != models.CopyAvailable {
			return ErrCopyNotAvailable
		}

		var br models.Borrower
		if err := tx.First(&br, "id = ? AND user_id = ?", in.BorrowerID, userID).Error; err != nil {
			return notFound("borrower", err)
		}

		// Guarded flip; zero rows means we lost a race.
		res := tx.Model(&models.BookCopy{}).
			Where("id = ? AND status = ?", cp.ID, models.CopyAvailable).
			Update("status", models.CopyCheckedOut)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCopyNotAvailable
		}

		now := nowUTC()
		c := &models.Checkout{
			ID:           uuid.NewString(),
			CopyID:       cp.ID,
			BorrowerID:   br.ID,
			UserID:       userID,
			CheckoutDate: now,
			DueDate:      now.AddDate(0, 0, dueDays),
			Notes:        in.Notes,
		}
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		co = c
		return r.audit(tx, actor, models.AuditCheckoutCreated, c.ID, "")
	})
	if err != nil {
		return nil, err
	}
	return co, nil
}

// ReturnCheckout is the CheckedOut -> Available transition. A second return
// of the same checkout fails instead of silently succeeding; availability
// must never be incremented twice.
func (r *Repo) ReturnCheckout(ctx context.Context, userID string, actor Actor, checkoutID string) (*models.Checkout, error) {
	var co models.Checkout
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&co, "id = ? AND user_id = ?", checkoutID, userID).Error; err != nil {
			return notFound("checkout", err)
		}
		if co.ReturnDate != nil {
			return ErrAlreadyReturned
		}

		now := nowUTC()
		res := tx.Model(&models.Checkout{}).
			Where("id = ? AND return_date IS NULL", co.ID).
			Update("return_date", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyReturned
		}
		co.ReturnDate = &now

		if err := tx.Model(&models.BookCopy{}).
			Where("id = ?", co.CopyID).
			Update("status", models.CopyAvailable).Error; err != nil {
			return err
		}

		if r.AutoResolveFollowUps {
			if err := tx.Model(&models.FollowUp{}).
				Where("checkout_id = ? AND status <> ?", co.ID, models.FollowUpResolved).
				Updates(map[string]any{
					"status":           models.FollowUpResolved,
					"resolution_notes": "Resolved automatically on return",
				}).Error; err != nil {
				return err
			}
		}

		return r.audit(tx, actor, models.AuditCheckoutReturn, co.ID, "")
	})
	if err != nil {
		return nil, err
	}
	return &co, nil
}

// DeleteCheckout removes a loan record outright. Deleting an open checkout
// frees its copy in the same transaction so availability stays consistent.
func (r *Repo) DeleteCheckout(ctx context.Context, userID string, actor Actor, checkoutID string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var co models.Checkout
		if err := lockForUpdate(tx).First(&co, "id = ? AND user_id = ?", checkoutID, userID).Error; err != nil {
			return notFound("checkout", err)
		}

		if co.ReturnDate == nil {
			if err := tx.Model(&models.BookCopy{}).
				Where("id = ?", co.CopyID).
				Update("status", models.CopyAvailable).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("checkout_id = ?", co.ID).Delete(&models.FollowUp{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&co).Error; err != nil {
			return err
		}
		return r.audit(tx, actor, models.AuditCheckoutDeleted, co.ID, "")
	})
}

// ListCheckouts returns open loans, oldest checkout first so check-in and
// follow-up views surface the longest-outstanding loans on top.
func (r *Repo) ListCheckouts(ctx context.Context, userID, search string) ([]CheckoutRow, error) {
	tx := r.checkoutJoin(ctx).
		Where("checkouts.user_id = ? AND checkouts.return_date IS NULL", userID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where(
			"LOWER(books.title) LIKE ? OR LOWER(books.author) LIKE ? OR LOWER(borrowers.first_name) LIKE ? OR LOWER(borrowers.last_name) LIKE ?",
			like, like, like, like,
		)
	}

	var rows []CheckoutRow
	if err := tx.Order("checkouts.checkout_date ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	deriveCheckoutFields(rows, nowUTC())
	return rows, nil
}

// HistoryFilter narrows checkout history.
type HistoryFilter struct {
	BookID     string
	BorrowerID string
	Search     string
}

// CheckoutHistory returns all loans, returned ones included, newest first.
func (r *Repo) CheckoutHistory(ctx context.Context, userID string, f HistoryFilter) ([]CheckoutRow, error) {
	tx := r.checkoutJoin(ctx).Where("checkouts.user_id = ?", userID)
	if f.BookID != "" {
		tx = tx.Where("books.id = ?", f.BookID)
	}
	if f.BorrowerID != "" {
		tx = tx.Where("borrowers.id = ?", f.BorrowerID)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		tx = tx.Where(
			"LOWER(books.title) LIKE ? OR LOWER(books.author) LIKE ? OR LOWER(borrowers.first_name) LIKE ? OR LOWER(borrowers.last_name) LIKE ?",
			like, like, like, like,
		)
	}

	var rows []CheckoutRow
	if err := tx.Order("checkouts.checkout_date DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	deriveCheckoutFields(rows, nowUTC())
	return rows, nil
}

func (r *Repo) checkoutJoin(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).Model(&models.Checkout{}).
		Select(`checkouts.id, checkouts.copy_id, checkouts.borrower_id,
			checkouts.checkout_date, checkouts.due_date, checkouts.return_date, checkouts.notes,
			books.title, books.author, books.isbn, book_copies.copy_number,
			borrowers.first_name, borrowers.last_name, borrowers.email, borrowers.phone`).
		Joins("JOIN book_copies ON book_copies.id = checkouts.copy_id").
		Joins("JOIN books ON books.id = book_copies.book_id").
		Joins("JOIN borrowers ON borrowers.id = checkouts.borrower_id")
}

func deriveCheckoutFields(rows []CheckoutRow, now time.Time) {
	for i := range rows {
		c := models.Checkout{
			CheckoutDate: rows[i].CheckoutDate,
			DueDate:      rows[i].DueDate,
			ReturnDate:   rows[i].ReturnDate,
		}
		rows[i].Status = c.StatusAt(now)
		rows[i].DurationDays = c.DurationDays(now)
	}
}

func (r *Repo) audit(tx *gorm.DB, actor Actor, action, checkoutID, note string) error {
	return tx.Create(&models.AuditEntry{
		ID:         uuid.NewString(),
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     action,
		CheckoutID: checkoutID,
		Note:       note,
	}).Error
}

// ListAudit returns the circulation audit trail, newest first.
func (r *Repo) ListAudit(ctx context.Context, checkoutID string) ([]models.AuditEntry, error) {
	q := r.DB.WithContext(ctx).Model(&models.AuditEntry{}).Order("created_at DESC")
	if checkoutID != "" {
		q = q.Where("checkout_id = ?", checkoutID)
	}
	var out []models.AuditEntry
	err := q.Find(&out).Error
	return out, err
}
