package models

import "time"

const (
	BookTable = "books"
	CopyTable = "book_copies"
)

// Copy status values. Only the lending engine (db.CreateCheckout /
// db.ReturnCheckout) may move a copy between them.
const (
	CopyAvailable  = "Available"
	CopyCheckedOut = "Checked Out"
)

// Copy condition values.
const (
	ConditionExcellent = "Excellent"
	ConditionGood      = "Good"
	ConditionFair      = "Fair"
	ConditionPoor      = "Poor"
)

// Book is a catalog title. available_copies / total_copies are never stored;
// they are counted over the book's copies on every read.
type Book struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	Title           string `gorm:"size:500;not null" json:"title"`
	Author          string `gorm:"size:300" json:"author"`
	ISBN            string `gorm:"size:32" json:"isbn"`
	Barcode         string `gorm:"size:120;index" json:"barcode"` // scanner label, distinct from isbn
	Publisher       string `gorm:"size:300" json:"publisher"`
	PublicationYear *int   `json:"publication_year"`
	Genre           string `gorm:"size:120" json:"genre"`
	Description     string `gorm:"type:text" json:"description"`
	Language        string `gorm:"size:60;not null;default:'English'" json:"language"`
	Pages           *int   `json:"pages"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookCopy is one physical instance of a Book.
type BookCopy struct {
	ID     string `gorm:"type:uuid;primaryKey" json:"id"`
	BookID string `gorm:"type:uuid;not null;uniqueIndex:uq_copies_book_number" json:"book_id"`
	UserID string `gorm:"type:uuid;index;not null" json:"user_id"`

	CopyNumber int    `gorm:"not null;uniqueIndex:uq_copies_book_number" json:"copy_number"`
	Condition  string `gorm:"size:20;not null;default:'Good'" json:"condition"`
	Status     string `gorm:"size:20;not null;default:'Available'" json:"status"`
	Location   string `gorm:"size:200" json:"location"`
	Notes      string `gorm:"size:500" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string     { return BookTable }
func (BookCopy) TableName() string { return CopyTable }
