// controllers/srv.go
package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"libraryapp_backend/app"
	"libraryapp_backend/db"
	"libraryapp_backend/session"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Srv struct {
	Repo  *db.Repo
	Cache *session.IdentityCache
	Cfg   app.Config
}

func GetSrv(a *app.App) *Srv {
	repo := db.NewRepo(a.DB)
	repo.DefaultDueDays = a.Config.DefaultDueDays
	repo.AutoResolveFollowUps = a.Config.AutoResolveFollowUps
	return &Srv{Repo: repo, Cache: a.Identities(), Cfg: a.Config}
}

// --- helpers ---

func userID(c *gin.Context) string {
	v, _ := c.Get("userID")
	id, _ := v.(string)
	return id
}

func actor(c *gin.Context) db.Actor {
	e, _ := c.Get("userEmail")
	email, _ := e.(string)
	return db.Actor{ID: userID(c), Email: email}
}

// fail maps repo errors onto the API's error kinds: 404 for missing
// entities, 409 for state conflicts, 500 for the rest.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		c.JSON(http.StatusNotFound, app.H{"error": err.Error()})
	case errors.Is(err, db.ErrConflict):
		c.JSON(http.StatusConflict, app.H{"error": err.Error()})
	default:
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, app.H{"error": err.Error()})
	}
}

// badRequest reports validation failures with field-level messages.
func badRequest(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		fields := make(map[string]string, len(ve))
		for _, fe := range ve {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusBadRequest, app.H{"error": "validation failed", "fields": fields})
		return
	}
	c.JSON(http.StatusBadRequest, app.H{"error": err.Error()})
}

// intField accepts a JSON number, a numeric string, or an empty string
// (treated as null). Form UIs send "" for cleared numeric inputs.
type intField struct {
	Value *int
}

func (f *intField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) || bytes.Equal(b, []byte(`""`)) {
		f.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n, err := strconv.Atoi(s)
		if err != nil {
			f.Value = nil
			return nil
		}
		f.Value = &n
		return nil
	}
	var n int
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	f.Value = &n
	return nil
}
