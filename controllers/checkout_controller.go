package controllers

import (
	"net/http"

	"libraryapp_backend/app"
	"libraryapp_backend/db"

	"github.com/gin-gonic/gin"
)

type CheckoutController struct{ *Srv }

func NewCheckoutController(s *Srv) *CheckoutController { return &CheckoutController{Srv: s} }

func (cc *CheckoutController) ListCheckouts(c *gin.Context) {
	rows, err := cc.Repo.ListCheckouts(c.Request.Context(), userID(c), c.Query("search"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

type checkoutInput struct {
	CopyID     string   `json:"copy_id" binding:"required"`
	BorrowerID string   `json:"borrower_id" binding:"required"`
	DueDays    intField `json:"due_days"`
	Notes      string   `json:"notes"`
}

func (cc *CheckoutController) CreateCheckout(c *gin.Context) {
	var in checkoutInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	dueDays := 0
	if in.DueDays.Value != nil {
		if *in.DueDays.Value <= 0 {
			c.JSON(http.StatusBadRequest, app.H{"error": "due_days must be a positive integer"})
			return
		}
		dueDays = *in.DueDays.Value
	}

	checkout, err := cc.Repo.CreateCheckout(c.Request.Context(), userID(c), actor(c), db.CreateCheckoutInput{
		CopyID:     in.CopyID,
		BorrowerID: in.BorrowerID,
		DueDays:    dueDays,
		Notes:      in.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, checkout)
}

func (cc *CheckoutController) ReturnCheckout(c *gin.Context) {
	checkout, err := cc.Repo.ReturnCheckout(c.Request.Context(), userID(c), actor(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, checkout)
}

func (cc *CheckoutController) DeleteCheckout(c *gin.Context) {
	if err := cc.Repo.DeleteCheckout(c.Request.Context(), userID(c), actor(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Checkout deleted successfully"})
}

func (cc *CheckoutController) CheckoutHistory(c *gin.Context) {
	rows, err := cc.Repo.CheckoutHistory(c.Request.Context(), userID(c), db.HistoryFilter{
		BookID:     c.Query("book_id"),
		BorrowerID: c.Query("borrower_id"),
		Search:     c.Query("search"),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
