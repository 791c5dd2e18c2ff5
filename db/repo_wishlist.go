package db

import (
	"context"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (r *Repo) CreateWishlistItem(ctx context.Context, userID string, w *models.WishlistItem) error {
	w.ID = uuid.NewString()
	w.UserID = userID
	if w.Priority == "" {
		w.Priority = models.PriorityMedium
	}
	if w.Status == "" {
		w.Status = models.WishlistRequested
	}
	return r.DB.WithContext(ctx).Create(w).Error
}

func (r *Repo) UpdateWishlistItem(ctx context.Context, userID string, w *models.WishlistItem) (*models.WishlistItem, error) {
	var existing models.WishlistItem
	if err := r.DB.WithContext(ctx).
		First(&existing, "id = ? AND user_id = ?", w.ID, userID).Error; err != nil {
		return nil, notFound("wishlist item", err)
	}
	if err := r.DB.WithContext(ctx).Model(&existing).Updates(map[string]any{
		"title":         w.Title,
		"author":        w.Author,
		"isbn":          w.ISBN,
		"requested_by":  w.RequestedBy,
		"request_notes": w.RequestNotes,
		"priority":      w.Priority,
		"status":        w.Status,
	}).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

func (r *Repo) DeleteWishlistItem(ctx context.Context, userID, id string) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.WishlistItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("wishlist item", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListWishlist orders High -> Medium -> Low, newest first within a priority.
func (r *Repo) ListWishlist(ctx context.Context, userID string) ([]models.WishlistItem, error) {
	var items []models.WishlistItem
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order(`CASE priority
			WHEN 'High' THEN 1
			WHEN 'Medium' THEN 2
			WHEN 'Low' THEN 3
		END`).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}
