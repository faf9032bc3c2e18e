package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/arganhr/backoffice/internal/services"
)

type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (dh *DashboardHandler) Summary(c *gin.Context) {
	summary, err := dh.dashboardService.Summary(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	RespondOK(c, summary)
}
