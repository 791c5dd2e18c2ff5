package db

import (
	"context"
	"strings"

	"libraryapp_backend/models"

	"gorm.io/gorm"
)

// BookRow is a Book plus its derived copy counts.
type BookRow struct {
	models.Book
	TotalCopies     int64 `json:"total_copies"`
	AvailableCopies int64 `json:"available_copies"`
}

// BookDetail adds the full copy list, enough for a caller to act (e.g. drive
// a checkout off a barcode scan) without a second round trip.
type BookDetail struct {
	BookRow
	Copies []CopyRow `json:"copies"`
}

func (r *Repo) CreateBook(ctx context.Context, b *models.Book) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *Repo) UpdateBook(ctx context.Context, b *models.Book) error {
	res := r.DB.WithContext(ctx).Model(&models.Book{}).
		Where("id = ? AND user_id = ?", b.ID, b.UserID).
		Updates(map[string]any{
			"title":            b.Title,
			"author":           b.Author,
			"isbn":             b.ISBN,
			"barcode":          b.Barcode,
			"publisher":        b.Publisher,
			"publication_year": b.PublicationYear,
			"genre":            b.Genre,
			"description":      b.Description,
			"language":         b.Language,
			"pages":            b.Pages,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return notFound("book", gorm.ErrRecordNotFound)
	}
	return nil
}

// ListBooks returns all books for the user, optionally filtered by a
// substring match on title/author/isbn/barcode, ordered by title.
func (r *Repo) ListBooks(ctx context.Context, userID, search string) ([]BookRow, error) {
	tx := r.DB.WithContext(ctx).Model(&models.Book{}).Where("user_id = ?", userID)
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		tx = tx.Where(
			"LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(isbn) LIKE ? OR LOWER(barcode) LIKE ?",
			like, like, like, like,
		)
	}

	var books []models.Book
	if err := tx.Order("title ASC").Find(&books).Error; err != nil {
		return nil, err
	}
	return r.attachCopyCounts(ctx, books)
}

func (r *Repo) FindBookByID(ctx context.Context, userID, id string) (*BookRow, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).
		First(&b, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		return nil, notFound("book", err)
	}
	rows, err := r.attachCopyCounts(ctx, []models.Book{b})
	if err != nil {
		return nil, err
	}
	return &rows[0], nil
}

// FindBookByBarcode resolves a scanner read to the full book with copies.
// A miss is a distinct NotFound so scan UIs can offer registration instead.
func (r *Repo) FindBookByBarcode(ctx context.Context, userID, barcode string) (*BookDetail, error) {
	var b models.Book
	if err := r.DB.WithContext(ctx).
		Where("user_id = ? AND barcode = ? AND barcode <> ''", userID, barcode).
		First(&b).Error; err != nil {
		return nil, notFound("book", err)
	}
	rows, err := r.attachCopyCounts(ctx, []models.Book{b})
	if err != nil {
		return nil, err
	}
	copies, err := r.ListCopies(ctx, userID, b.ID)
	if err != nil {
		return nil, err
	}
	return &BookDetail{BookRow: rows[0], Copies: copies}, nil
}

// DeleteBook removes the book with its copies and circulation history in one
// transaction. Blocked while any copy is out on loan.
func (r *Repo) DeleteBook(ctx context.Context, userID, id string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var b models.Book
		if err := lockForUpdate(tx).First(&b, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			return notFound("book", err)
		}

		var open int64
		if err := tx.Model(&models.Checkout{}).
			Where("copy_id IN (?) AND return_date IS NULL",
				tx.Model(&models.BookCopy{}).Select("id").Where("book_id = ?", b.ID)).
			Count(&open).Error; err != nil {
			return err
		}
		if open > 0 {
			return ErrBookCheckedOut
		}

		copyIDs := func() *gorm.DB {
			return tx.Model(&models.BookCopy{}).Select("id").Where("book_id = ?", b.ID)
		}
		checkoutIDs := tx.Model(&models.Checkout{}).Select("id").Where("copy_id IN (?)", copyIDs())
		if err := tx.Where("checkout_id IN (?)", checkoutIDs).Delete(&models.FollowUp{}).Error; err != nil {
			return err
		}
		if err := tx.Where("copy_id IN (?)", copyIDs()).Delete(&models.Checkout{}).Error; err != nil {
			return err
		}
		if err := tx.Where("book_id = ?", b.ID).Delete(&models.BookCopy{}).Error; err != nil {
			return err
		}
		return tx.Delete(&b).Error
	})
}

// attachCopyCounts derives total/available per book with one grouped query.
func (r *Repo) attachCopyCounts(ctx context.Context, books []models.Book) ([]BookRow, error) {
	rows := make([]BookRow, len(books))
	if len(books) == 0 {
		return rows, nil
	}
	ids := make([]string, len(books))
	for i, b := range books {
		rows[i] = BookRow{Book: b}
		ids[i] = b.ID
	}

	type countRow struct {
		BookID    string
		Total     int64
		Available int64
	}
	var counts []countRow
	if err := r.DB.WithContext(ctx).Model(&models.BookCopy{}).
		Select("book_id, COUNT(*) AS total, COUNT(CASE WHEN status = ? THEN 1 END) AS available", models.CopyAvailable).
		Where("book_id IN ?", ids).
		Group("book_id").
		Scan(&counts).Error; err != nil {
		return nil, err
	}

	byID := make(map[string]countRow, len(counts))
	for _, c := range counts {
		byID[c.BookID] = c
	}
	for i := range rows {
		if c, ok := byID[rows[i].ID]; ok {
			rows[i].TotalCopies = c.Total
			rows[i].AvailableCopies = c.Available
		}
	}
	return rows, nil
}
