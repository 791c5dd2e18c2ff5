package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type DashboardController struct{ *Srv }

func NewDashboardController(s *Srv) *DashboardController { return &DashboardController{Srv: s} }

// Stats is a pure projection; it recomputes every count on each request.
func (dc *DashboardController) Stats(c *gin.Context) {
	stats, err := dc.Repo.DashboardStats(c.Request.Context(), userID(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
