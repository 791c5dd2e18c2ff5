package controllers

import (
	"net/http"

	"libraryapp_backend/app"
	"libraryapp_backend/models"

	"github.com/gin-gonic/gin"
)

type CopyController struct{ *Srv }

func NewCopyController(s *Srv) *CopyController { return &CopyController{Srv: s} }

func (cc *CopyController) ListBookCopies(c *gin.Context) {
	copies, err := cc.Repo.ListCopies(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, copies)
}

type copyInput struct {
	BookID    string `json:"book_id" binding:"required"`
	Condition string `json:"condition"`
	Location  string `json:"location"`
	Notes     string `json:"notes"`
	// Count > 1 creates that many copies as independent operations.
	// Not atomic: a mid-batch failure leaves the earlier copies persisted.
	Count int `json:"count"`
}

func (cc *CopyController) CreateCopy(c *gin.Context) {
	var in copyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}

	template := models.BookCopy{
		BookID:    in.BookID,
		Condition: in.Condition,
		Location:  in.Location,
		Notes:     in.Notes,
	}

	if in.Count > 1 {
		created, err := cc.Repo.CreateCopies(c.Request.Context(), userID(c), template, in.Count)
		if err != nil {
			if len(created) > 0 {
				c.JSON(http.StatusInternalServerError, app.H{
					"error":   err.Error(),
					"created": created,
				})
				return
			}
			fail(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
		return
	}

	if err := cc.Repo.CreateCopy(c.Request.Context(), userID(c), &template); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, template)
}

func (cc *CopyController) UpdateCopy(c *gin.Context) {
	var in struct {
		Condition string `json:"condition"`
		Location  string `json:"location"`
		Notes     string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := cc.Repo.UpdateCopy(c.Request.Context(), userID(c), &models.BookCopy{
		ID:        c.Param("id"),
		Condition: in.Condition,
		Location:  in.Location,
		Notes:     in.Notes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (cc *CopyController) DeleteCopy(c *gin.Context) {
	if err := cc.Repo.DeleteCopy(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Book copy deleted successfully"})
}
