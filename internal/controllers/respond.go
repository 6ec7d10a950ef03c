package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"soko_market/internal/apperr"
	"soko_market/internal/authz"
	"soko_market/internal/middleware"
	"soko_market/internal/services"
)

// respondErr maps a service failure onto its wire status. Internal faults
// are logged with their cause but reported generically.
func respondErr(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// pathID parses the :id route parameter; a malformed id aborts with 400.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id format"})
		return 0, false
	}
	return uint(id), true
}

// caller returns the authenticated identity; requests reaching a controller
// without one abort with 401.
func caller(c *gin.Context) (authz.Identity, bool) {
	id, ok := middleware.CallerIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing identity"})
	}
	return id, ok
}

// respondBatch reports a batch create: plain success when every item
// landed, otherwise the created records alongside the per-item errors.
func respondBatch(c *gin.Context, created interface{}, errs []services.ItemError) {
	if len(errs) == 0 {
		c.JSON(http.StatusCreated, gin.H{"message": "created successfully", "created": created})
		return
	}
	c.JSON(http.StatusOK, gin.H{"created": created, "errors": errs})
}
