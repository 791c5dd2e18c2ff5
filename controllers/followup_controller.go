package controllers

import (
	"net/http"
	"time"

	"libraryapp_backend/app"
	"libraryapp_backend/models"

	"github.com/gin-gonic/gin"
)

type FollowUpController struct{ *Srv }

func NewFollowUpController(s *Srv) *FollowUpController { return &FollowUpController{Srv: s} }

func (fc *FollowUpController) ListFollowUps(c *gin.Context) {
	rows, err := fc.Repo.ListFollowUps(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

func (fc *FollowUpController) CreateFollowUp(c *gin.Context) {
	var in struct {
		CheckoutID string `json:"checkout_id" binding:"required"`
		Reason     string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	f := models.FollowUp{CheckoutID: in.CheckoutID, Reason: in.Reason}
	if err := fc.Repo.CreateFollowUp(c.Request.Context(), userID(c), &f); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, f)
}

func (fc *FollowUpController) UpdateFollowUp(c *gin.Context) {
	var in struct {
		Status          string     `json:"status" binding:"required"`
		ContactedDate   *time.Time `json:"contacted_date"`
		ResolutionNotes string     `json:"resolution_notes"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	updated, err := fc.Repo.UpdateFollowUp(c.Request.Context(), userID(c), &models.FollowUp{
		ID:              c.Param("id"),
		Status:          in.Status,
		ContactedDate:   in.ContactedDate,
		ResolutionNotes: in.ResolutionNotes,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (fc *FollowUpController) DeleteFollowUp(c *gin.Context) {
	if err := fc.Repo.DeleteFollowUp(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, app.H{"message": "Follow-up deleted successfully"})
}
