package summary

import (
	"net/http"

	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/apperror"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/contextutil"
	"github.com/ruzzhdontmiss/hrms-lite/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("summary.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("summary.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) Get(c *gin.Context) {
	resp, err := h.service.GetSummary(c.Request.Context(), c.Query("date"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		contextutil.GetLogger(c.Request.Context(), h.logger).Warn("summary request failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
			zap.String("message", httpErr.Message),
		)
		response.Error(c, httpErr.Status, httpErr.Message)
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	r.GET("/summary", h.Get)
}
