package response

import "github.com/gin-gonic/gin"

// RespondJSON writes the envelope every handler in the API uses. Handlers
// never call c.JSON directly, so the booking UI can rely on one shape for
// success and error responses alike.
func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}
