package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mamadbah2/hotelbudget/internal/domain/models"
)

// NetworkErrorMessage is shown when the record store could not be reached.
const NetworkErrorMessage = "Network error: Failed to connect to server."

// statusFor maps the error taxonomy onto ledger HTTP statuses.
func statusFor(err error) (int, string) {
	var (
		validation *models.ValidationError
		conflict   *models.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		return http.StatusUnprocessableEntity, validation.Message
	case errors.As(err, &conflict):
		return http.StatusConflict, conflict.Message
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, "Record not found."
	case models.IsNetwork(err):
		return http.StatusBadGateway, NetworkErrorMessage
	default:
		return http.StatusInternalServerError, "An error occurred. Please try again."
	}
}

func abortWithError(c *gin.Context, err error) {
	status, message := statusFor(err)
	c.AbortWithStatusJSON(status, gin.H{"error": message})
}
