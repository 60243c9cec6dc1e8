package attendance

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	attendance := r.Group("/attendance")
	{
		attendance.GET("", h.GetAll)
		attendance.POST("", h.Mark)
		attendance.GET("/:employeeId", h.GetByEmployee)
	}
}
