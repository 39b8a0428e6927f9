package response

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/playcourt/booking-backend/internal/pkg/apperror"
)

// ErrorResponse is the JSON envelope for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error writes a JSON error response. AppError values determine the status
// code; anything else becomes an opaque 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code, ErrorResponse{Error: appErr.Message})
		return
	}

	log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
}
