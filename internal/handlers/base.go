package handlers

import (
	"net/http"
	"strconv"

	"cimsel/internal/middleware"
	"cimsel/internal/models"
	"cimsel/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// apiResponse is the envelope every endpoint answers with.
type apiResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func respondOK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Message: message, Data: data})
}

func respondCreated(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, apiResponse{Success: true, Message: message, Data: data})
}

func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, apiResponse{Success: false, Message: message})
}

// respondServiceError maps the service error taxonomy onto HTTP status codes.
// Anything unclassified is an infrastructure failure and stays opaque to the
// client.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case services.IsNotFound(err):
		respondError(c, http.StatusNotFound, err.Error())
	case services.IsValidation(err):
		respondError(c, http.StatusBadRequest, err.Error())
	case services.IsAuthorization(err):
		respondError(c, http.StatusForbidden, err.Error())
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("request failed")
		respondError(c, http.StatusInternalServerError, "internal server error")
	}
}

// currentUser returns the session user set by middleware.LoadUser, or nil.
func currentUser(c *gin.Context) *models.User {
	if u, exists := c.Get(middleware.CheckUserKey); exists {
		return u.(*models.User)
	}
	return nil
}

// paramID parses a positive numeric path parameter. On failure it writes the
// 400 response itself and returns ok=false.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		respondError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return uint(id), true
}

// pagination reads page/limit query params with sane bounds.
func pagination(c *gin.Context) (page, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit, (page - 1) * limit
}
