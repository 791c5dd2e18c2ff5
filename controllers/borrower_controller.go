package controllers

import (
	"net/http"

	"libraryapp_backend/app"
	"libraryapp_backend/models"

	"github.com/gin-gonic/gin"
)

type BorrowerController struct{ *Srv }

func NewBorrowerController(s *Srv) *BorrowerController { return &BorrowerController{Srv: s} }

type borrowerInput struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone"`
	AltPhone  string `json:"alt_phone"`
	Address   string `json:"address"`
}

func (in *borrowerInput) toModel() models.Borrower {
	return models.Borrower{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Phone:     in.Phone,
		AltPhone:  in.AltPhone,
		Address:   in.Address,
	}
}

func (bc *BorrowerController) ListBorrowers(c *gin.Context) {
	borrowers, err := bc.Repo.ListBorrowers(c.Request.Context(), userID(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, borrowers)
}

// Autocomplete is the bounded type-ahead lookup; the full search is above.
func (bc *BorrowerController) Autocomplete(c *gin.Context) {
	suggestions, err := bc.Repo.AutocompleteBorrowers(c.Request.Context(), userID(c), c.Query("q"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, suggestions)
}

func (bc *BorrowerController) GetBorrower(c *gin.Context) {
	b, err := bc.Repo.FindBorrowerByID(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (bc *BorrowerController) CreateBorrower(c *gin.Context) {
	var in borrowerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	b := in.toModel()
	if err := bc.Repo.CreateBorrower(c.Request.Context(), userID(c), &b); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (bc *BorrowerController) UpdateBorrower(c *gin.Context) {
	var in borrowerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	b := in.toModel()
	b.ID = c.Param("id")
	updated, err := bc.Repo.UpdateBorrower(c.Request.Context(), userID(c), &b)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (bc *BorrowerController) DeleteBorrower(c *gin.Context) {
	if err := bc.Repo.DeleteBorrower(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Borrower deleted successfully"})
}
