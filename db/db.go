package db

import (
	"fmt"
	"os"

	"libraryapp_backend/models"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("failed to connect to database")
	}

	if err := Migrate(DB); err != nil {
		logrus.WithError(err).Fatal("failed to migrate models")
	}
	logrus.Info("database connected")
	return DB
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Book{},
		&models.BookCopy{},
		&models.Borrower{},
		&models.Checkout{},
		&models.FollowUp{},
		&models.WishlistItem{},
		&models.AuditEntry{},
	); err != nil {
		return err
	}

	// At most one open checkout per copy. The lending transaction is the
	// front door; this index is the backstop.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE UNIQUE INDEX IF NOT EXISTS %s_one_open_per_copy
	  ON %s (copy_id)
	  WHERE return_date IS NULL;
	`, models.CheckoutTable, models.CheckoutTable)).Error; err != nil {
		return err
	}

	// Overdue scans and oldest-first listings hit this.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_open_due_date
	  ON %s (due_date)
	  WHERE return_date IS NULL;
	`, models.CheckoutTable, models.CheckoutTable)).Error; err != nil {
		return err
	}

	return nil
}
