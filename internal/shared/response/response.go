package response

import (
	"github.com/gin-gonic/gin"
)

// The API speaks the same wire shape as the dashboard expects: success bodies
// are the entity or array itself, failures are {"message": "..."}.

type ErrorBody struct {
	Message string `json:"message"`
}

func JSON(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

func Error(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorBody{Message: message})
}
