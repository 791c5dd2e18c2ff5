package controllers

import (
	"net/http"

	"libraryapp_backend/app"

	"github.com/gin-gonic/gin"
)

type UserController struct{ *Srv }

func NewUserController(s *Srv) *UserController { return &UserController{Srv: s} }

// CurrentUser echoes the identity the middleware resolved.
func (uc *UserController) CurrentUser(c *gin.Context) {
	e, _ := c.Get("userEmail")
	email, _ := e.(string)
	c.JSON(http.StatusOK, app.H{
		"id":    userID(c),
		"email": email,
	})
}
