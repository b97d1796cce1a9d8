package response

import (
	"log"
	"net/http"

	"github.com/alumninet/alumninet/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

// ResponseOK writes a success payload.
func ResponseOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// ResponseCreated writes a 201 with the created entity.
func ResponseCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
