package db

import (
	"context"

	"libraryapp_backend/models"
)

// DashboardStats is a pure projection over the other stores; nothing here is
// persisted and it is safe to recompute on every request.
type DashboardStats struct {
	TotalBooks       int64   `json:"total_books"`
	TotalCopies      int64   `json:"total_copies"`
	AvailableCopies  int64   `json:"available_copies"`
	ActiveCheckouts  int64   `json:"active_checkouts"`
	OverdueCheckouts int64   `json:"overdue_checkouts"`
	TotalBorrowers   int64   `json:"total_borrowers"`
	WishlistItems    int64   `json:"wishlist_items"`
	PendingFollowUps int64   `json:"pending_follow_ups"`
	UtilizationRate  float64 `json:"utilization_rate"`
}

func (r *Repo) DashboardStats(ctx context.Context, userID string) (*DashboardStats, error) {
	var s DashboardStats
	db := r.DB.WithContext(ctx)

	if err := db.Model(&models.Book{}).
		Where("user_id = ?", userID).Count(&s.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BookCopy{}).
		Where("user_id = ?", userID).Count(&s.TotalCopies).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.BookCopy{}).
		Where("user_id = ? AND status = ?", userID, models.CopyAvailable).
		Count(&s.AvailableCopies).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Checkout{}).
		Where("user_id = ? AND return_date IS NULL", userID).
		Count(&s.ActiveCheckouts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Checkout{}).
		Where("user_id = ? AND return_date IS NULL AND due_date < ?", userID, nowUTC()).
		Count(&s.OverdueCheckouts).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Borrower{}).
		Where("user_id = ?", userID).Count(&s.TotalBorrowers).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND status = ?", userID, models.WishlistRequested).
		Count(&s.WishlistItems).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.FollowUp{}).
		Where("user_id = ? AND status IN ?", userID,
			[]string{models.FollowUpPending, models.FollowUpContacted}).
		Count(&s.PendingFollowUps).Error; err != nil {
		return nil, err
	}

	if s.TotalCopies > 0 {
		s.UtilizationRate = float64(s.ActiveCheckouts) / float64(s.TotalCopies)
	}
	return &s, nil
}
