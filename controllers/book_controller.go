package controllers

import (
	"net/http"

	"libraryapp_backend/app"
	"libraryapp_backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookController struct{ *Srv }

func NewBookController(s *Srv) *BookController { return &BookController{Srv: s} }

type bookInput struct {
	Title           string   `json:"title" binding:"required"`
	Author          string   `json:"author"`
	ISBN            string   `json:"isbn"`
	Barcode         string   `json:"barcode"`
	Publisher       string   `json:"publisher"`
	PublicationYear intField `json:"publication_year"`
	Genre           string   `json:"genre"`
	Description     string   `json:"description"`
	Language        string   `json:"language"`
	Pages           intField `json:"pages"`
}

func (in *bookInput) toModel() models.Book {
	lang := in.Language
	if lang == "" {
		lang = "English"
	}
	return models.Book{
		Title:           in.Title,
		Author:          in.Author,
		ISBN:            in.ISBN,
		Barcode:         in.Barcode,
		Publisher:       in.Publisher,
		PublicationYear: in.PublicationYear.Value,
		Genre:           in.Genre,
		Description:     in.Description,
		Language:        lang,
		Pages:           in.Pages.Value,
	}
}

func (bc *BookController) ListBooks(c *gin.Context) {
	books, err := bc.Repo.ListBooks(c.Request.Context(), userID(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

func (bc *BookController) GetBook(c *gin.Context) {
	book, err := bc.Repo.FindBookByID(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// GetBookByBarcode drives the scanner flow: one scan yields the book, its
// counts and its copies, enough to start a checkout immediately.
func (bc *BookController) GetBookByBarcode(c *gin.Context) {
	book, err := bc.Repo.FindBookByBarcode(c.Request.Context(), userID(c), c.Param("barcode"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

func (bc *BookController) CreateBook(c *gin.Context) {
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	book := in.toModel()
	book.ID = uuid.NewString()
	book.UserID = userID(c)
	if err := bc.Repo.CreateBook(c.Request.Context(), &book); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, book)
}

func (bc *BookController) UpdateBook(c *gin.Context) {
	var in bookInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	book := in.toModel()
	book.ID = c.Param("id")
	book.UserID = userID(c)
	if err := bc.Repo.UpdateBook(c.Request.Context(), &book); err != nil {
		fail(c, err)
		return
	}
	updated, err := bc.Repo.FindBookByID(c.Request.Context(), userID(c), book.ID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (bc *BookController) DeleteBook(c *gin.Context) {
	if err := bc.Repo.DeleteBook(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Book deleted successfully"})
}
