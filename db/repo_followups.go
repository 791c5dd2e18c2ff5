package db

import (
	"context"
	"time"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FollowUpRow joins a follow-up with its checkout, book and borrower.
type FollowUpRow struct {
	ID              string     `json:"id"`
	CheckoutID      string     `json:"checkout_id"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ContactedDate   *time.Time `json:"contacted_date"`
	ResolutionNotes string     `json:"resolution_notes"`

	CheckoutDate time.Time  `json:"checkout_date"`
	DueDate      time.Time  `json:"due_date"`
	ReturnDate   *time.Time `json:"return_date"`
	Title        string     `json:"title"`
	Author       string     `json:"author"`
	CopyNumber   int        `json:"copy_number"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`

	DaysCheckedOut int `json:"days_checked_out"`
}

// CreateFollowUp opens an outreach task against a checkout. One follow-up
// per checkout, matching how staff work a single outstanding loan.
func (r *Repo) CreateFollowUp(ctx context.Context, userID string, f *models.FollowUp) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var co models.Checkout
		if err := tx.First(&co, "id = ? AND user_id = ?", f.CheckoutID, userID).Error; err != nil {
			return notFound("checkout", err)
		}

		var n int64
		if err := tx.Model(&models.FollowUp{}).
			Where("checkout_id = ?", f.CheckoutID).
			Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrFollowUpExists
		}

		f.ID = uuid.NewString()
		f.UserID = userID
		if f.Status == "" {
			f.Status = models.FollowUpPending
		}
		return tx.Create(f).Error
	})
}

// UpdateFollowUp sets status and outreach details. Any status may follow any
// other; there is no enforced ordering.
func (r *Repo) UpdateFollowUp(ctx context.Context, userID string, f *models.FollowUp) (*models.FollowUp, error) {
	var existing models.FollowUp
	if err := r.DB.WithContext(ctx).
		First(&existing, "id = ? AND user_id = ?", f.ID, userID).Error; err != nil {
		return nil, notFound("follow-up", err)
	}
	if err := r.DB.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"status":           f.Status,
		"contacted_date":   f.ContactedDate,
		"resolution_notes": f.ResolutionNotes,
	}).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *Repo) DeleteFollowUp(ctx context.Context, userID, id string) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.FollowUp{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("follow-up", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListFollowUps orders oldest checkout first, same rationale as the open
// checkout list: longest-outstanding loans surface on top.
func (r *Repo) ListFollowUps(ctx context.Context, userID string) ([]FollowUpRow, error) {
	var rows []FollowUpRow
	err := r.DB.WithContext(ctx).Model(&models.FollowUp{}).
		Select(`follow_ups.id, follow_ups.checkout_id, follow_ups.reason, follow_ups.status,
			follow_ups.contacted_date, follow_ups.resolution_notes,
			checkouts.checkout_date, checkouts.due_date, checkouts.return_date,
			books.title, books.author, book_copies.copy_number,
			borrowers.first_name, borrowers.last_name, borrowers.email, borrowers.phone`).
		Joins("JOIN checkouts ON checkouts.id = follow_ups.checkout_id").
		Joins("JOIN book_copies ON book_copies.id = checkouts.copy_id").
		Joins("JOIN books ON books.id = book_copies.book_id").
		Joins("JOIN borrowers ON borrowers.id = checkouts.borrower_id").
		Where("follow_ups.user_id = ?", userID).
		Order("checkouts.checkout_date ASC, follow_ups.status ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	now := nowUTC()
	for i := range rows {
		c := models.Checkout{CheckoutDate: rows[i].CheckoutDate, ReturnDate: rows[i].ReturnDate}
		rows[i].DaysCheckedOut = c.DurationDays(now)
	}
	return rows, nil
}
