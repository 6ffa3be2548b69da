package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/services"
	"github.com/lintangpradipa/catatankita/internal/middleware"
)

// MaintenanceController exposes the externally-triggered sweep entry point.
// It sits behind the shared-secret middleware, not user authentication.
type MaintenanceController struct {
	maintenanceService services.MaintenanceService
}

// NewMaintenanceController creates a new MaintenanceController
func NewMaintenanceController(maintenanceService services.MaintenanceService) *MaintenanceController {
	return &MaintenanceController{maintenanceService: maintenanceService}
}

// RunSweeps godoc
// @Summary Run the auto-archive and purge sweeps
// @Description Archives finished minimum-completed notes and purges trashed notes past retention. Idempotent; safe to trigger repeatedly.
// @Tags maintenance
// @Produce json
// @Param X-Maintenance-Secret header string true "Shared maintenance secret"
// @Success 200 {object} dto.APIResponse{data=dto.MaintenanceResult}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /maintenance/sweep [post]
func (c *MaintenanceController) RunSweeps(ctx *gin.Context) {
	result, err := c.maintenanceService.RunSweeps(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result, "Sweeps completed"))
}
