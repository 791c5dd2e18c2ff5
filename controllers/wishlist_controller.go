package controllers

import (
	"net/http"

	"libraryapp_backend/app"
	"libraryapp_backend/models"

	"github.com/gin-gonic/gin"
)

type WishlistController struct{ *Srv }

func NewWishlistController(s *Srv) *WishlistController { return &WishlistController{Srv: s} }

type wishlistInput struct {
	Title        string `json:"title" binding:"required"`
	Author       string `json:"author"`
	ISBN         string `json:"isbn"`
	RequestedBy  string `json:"requested_by"`
	RequestNotes string `json:"request_notes"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
}

func (wc *WishlistController) ListWishlist(c *gin.Context) {
	items, err := wc.Repo.ListWishlist(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (wc *WishlistController) CreateWishlistItem(c *gin.Context) {
	var in wishlistInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	item := models.WishlistItem{
		Title:        in.Title,
		Author:       in.Author,
		ISBN:         in.ISBN,
		RequestedBy:  in.RequestedBy,
		RequestNotes: in.RequestNotes,
		Priority:     in.Priority,
	}
	if err := wc.Repo.CreateWishlistItem(c.Request.Context(), userID(c), &item); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (wc *WishlistController) UpdateWishlistItem(c *gin.Context) {
	var in wishlistInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := wc.Repo.UpdateWishlistItem(c.Request.Context(), userID(c), &models.WishlistItem{
		ID:           c.Param("id"),
		Title:        in.Title,
		Author:       in.Author,
		ISBN:         in.ISBN,
		RequestedBy:  in.RequestedBy,
		RequestNotes: in.RequestNotes,
		Priority:     in.Priority,
		Status:       in.Status,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (wc *WishlistController) DeleteWishlistItem(c *gin.Context) {
	if err := wc.Repo.DeleteWishlistItem(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Wishlist item deleted successfully"})
}
