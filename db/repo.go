package db

import (
	"context"
	"errors"
	"strings"
	"time"

	"libraryapp_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct {
	DB *gorm.DB

	// DefaultDueDays applies when a checkout request omits due_days.
	DefaultDueDays int
	// AutoResolveFollowUps closes open follow-ups when their checkout is
	// returned (same transaction). Off by default.
	AutoResolveFollowUps bool
}

func NewRepo(db *gorm.DB) *Repo { return &Repo{DB: db, DefaultDueDays: 14} }

// Timestamps are set in Go rather than with database NOW() so the same code
// runs under postgres and the sqlite test driver.
func nowUTC() time.Time { return time.Now().UTC() }

// lockForUpdate takes a row lock on Postgres. The sqlite test driver has no
// SELECT FOR UPDATE; there the guarded UPDATE inside each transaction is the
// actual gate.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// Users

func (r *Repo) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	if err := r.DB.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, notFound("user", err)
	}
	return &u, nil
}

// FindOrCreateUserByEmail backs the identity middleware: the external
// provider owns authentication, rows here only scope the data.
func (r *Repo) FindOrCreateUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u models.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		username := email
		if i := strings.IndexByte(email, '@'); i > 0 {
			username = email[:i]
		}
		u = models.User{ID: uuid.NewString(), Email: email, Username: username}
		if err := r.DB.WithContext(ctx).Create(&u).Error; err != nil {
			return nil, err
		}
		return &u, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *Repo) TouchUserSeen(ctx context.Context, userID string) error {
	return r.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", userID).
		Update("last_seen_at", nowUTC()).Error
}
