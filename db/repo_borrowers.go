package db

import (
	"context"
	"strings"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BorrowerRow is a Borrower with derived loan counts.
type BorrowerRow struct {
	models.Borrower
	ActiveCheckouts int64 `json:"active_checkouts"`
	TotalCheckouts  int64 `json:"total_checkouts"`
}

// BorrowerSuggestion is the trimmed shape returned by autocomplete.
type BorrowerSuggestion struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

func (r *Repo) CreateBorrower(ctx context.Context, userID string, b *models.Borrower) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taken, err := emailTaken(tx, userID, b.Email, "")
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		b.ID = uuid.NewString()
		b.UserID = userID
		return tx.Create(b).Error
	})
}

func (r *Repo) UpdateBorrower(ctx context.Context, userID string, b *models.Borrower) (*models.Borrower, error) {
	var updated models.Borrower
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&updated, "id = ? AND user_id = ?", b.ID, userID).Error; err != nil {
			return notFound("borrower", err)
		}
		taken, err := emailTaken(tx, userID, b.Email, b.ID)
		if err != nil {
			return err
		}
		if taken {
			return ErrEmailTaken
		}
		return tx.Model(&updated).Updates(map[string]any{
			"first_name": b.FirstName,
			"last_name":  b.LastName,
			"email":      b.Email,
			"phone":      b.Phone,
			"alt_phone":  b.AltPhone,
			"address":    b.Address,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteBorrower is blocked while the borrower holds open checkouts; this is
// server-enforced, the UI is not the only client. A deletable borrower's
// closed history goes with them.
func (r *Repo) DeleteBorrower(ctx context.Context, userID, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Borrower
		if err := lockForUpdate(tx).First(&b, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return notFound("borrower", err)
		}

		var open int64
		if err := tx.Model(&models.Checkout{}).
			Where("borrower_id = ? AND return_date IS NULL", b.ID).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrActiveCheckouts
		}

		checkoutIDs := tx.Model(&models.Checkout{}).Select("id").Where("borrower_id = ?", b.ID)
		if err := tx.Where("checkout_id IN (?)", checkoutIDs).Delete(&models.FollowUp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("borrower_id = ?", b.ID).Delete(&models.Checkout{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
}

// ListBorrowers returns borrowers with active checkout counts, optionally
// filtered by a substring match on names/email.
func (r *Repo) ListBorrowers(ctx context.Context, userID, search string) ([]BorrowerRow, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Borrower{}).Where("user_id = ?", userID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var borrowers []models.Borrower
	if err := tx.Order("last_name ASC, first_name ASC").Find(&borrowers).Error; err != nil {
		return nil, err
	}
	return r.attachCheckoutCounts(ctx, borrowers)
}

func (r *Repo) FindBorrowerByID(ctx context.Context, userID, id string) (*BorrowerRow, error) {
	var b models.Borrower
	if err := r.DB.WithContext(ctx).
		First(&b, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound("borrower", err)
	}
	rows, err := r.attachCheckoutCounts(ctx, []models.Borrower{b})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// AutocompleteBorrowers is the low-latency type-ahead variant of search:
// names only, bounded result set.
func (r *Repo) AutocompleteBorrowers(ctx context.Context, userID, q string) ([]BorrowerSuggestion, error) {
	like := "%" + strings.ToLower(strings.TrimSpace(q)) + "%"
	var out []BorrowerSuggestion
	err := r.DB.WithContext(ctx).Model(&models.Borrower{}).
		Select("id, first_name, last_name, email, phone").
		Where("user_id = ? AND (LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?)", userID, like, like).
		Order("last_name ASC, first_name ASC").
		Limit(10).
		Scan(&out).Error
	return out, err
}

func emailTaken(tx *gorm.DB, userID, email, excludeID string) (bool, error) {
	q := tx.Model(&models.Borrower{}).
		Where("user_id = ? AND LOWER(email) = LOWER(?)", userID, strings.TrimSpace(email))
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *Repo) attachCheckoutCounts(ctx context.Context, borrowers []models.Borrower) ([]BorrowerRow, error) {
	rows := make([]BorrowerRow, len(borrowers))
	if len(borrowers) == 0 {
		return rows, nil
	}
	ids := make([]string, len(borrowers))
	for i, b := range borrowers {
		rows[i] = BorrowerRow{Borrower: b}
		ids[i] = b.ID
	}

	type countRow struct {
		BorrowerID string
		Active     int64
		Returned   int64
	}
	var counts []countRow
	if err := r.DB.WithContext(ctx).Model(&models.Checkout{}).
		Select("borrower_id, COUNT(CASE WHEN return_date IS NULL THEN 1 END) AS active, COUNT(CASE WHEN return_date IS NOT NULL THEN 1 END) AS returned").
		Where("borrower_id IN ?", ids).
		Group("borrower_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]countRow, len(counts))
	for _, c := range counts {
		byID[c.BorrowerID] = c
	}
	for i := range rows {
		if c, ok := byID[rows[i].ID]; ok {
			rows[i].ActiveCheckouts = c.Active
			rows[i].TotalCheckouts = c.Returned
		}
	}
	return rows, nil
}
