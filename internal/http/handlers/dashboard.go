package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/regula-backend/internal/http/response"
	"github.com/yungbote/regula-backend/internal/services"
)

type DashboardHandler struct {
	dashboard services.DashboardService
	now       func() time.Time
}

func NewDashboardHandler(dashboard services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, now: time.Now}
}

// GET /api/regula/dashboard
func (h *DashboardHandler) GetOverview(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	overview, err := h.dashboard.Overview(requestDBC(c), userID, h.now())
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, overview)
}
