package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"starwars/internal/domain"
	"starwars/internal/repository"
)

// APIError carries the status code it should be answered with.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

func BadRequest(message string) *APIError {
	return NewError(http.StatusBadRequest, message)
}

func NotFound(message string) *APIError {
	return NewError(http.StatusNotFound, message)
}

// Message answers with {"msg": message}.
func Message(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"msg": message})
}

// Error answers with {"error": message}. Every failure uses this envelope.
func Error(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, gin.H{"error": message})
}

func AbortWithError(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}

// HandleError is the single error-to-JSON conversion path for handlers.
func HandleError(c *gin.Context, err error) {
	var apiErr *APIError
	switch {
	case errors.As(err, &apiErr):
		Error(c, apiErr.Status, apiErr.Message)
	case errors.Is(err, repository.ErrNotFound):
		Error(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, repository.ErrDuplicate):
		Error(c, http.StatusConflict, "resource already exists")
	case errors.Is(err, repository.ErrMissingReference):
		Error(c, http.StatusNotFound, "referenced resource not found")
	case errors.Is(err, domain.ErrInvalidTarget):
		Error(c, http.StatusBadRequest, err.Error())
	default:
		_ = c.Error(err)
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.Request.URL.Path,
			"error":  err.Error(),
		}).Error("request failed")
		Error(c, http.StatusInternalServerError, "internal server error")
	}
}
