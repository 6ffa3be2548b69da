package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/services"
	"github.com/lintangpradipa/catatankita/internal/middleware"
)

// PreferenceController handles the academic calendar preference
type PreferenceController struct {
	preferenceService services.PreferenceService
}

// NewPreferenceController creates a new PreferenceController
func NewPreferenceController(preferenceService services.PreferenceService) *PreferenceController {
	return &PreferenceController{preferenceService: preferenceService}
}

// GetSemesterPreference godoc
// @Summary Get the caller's academic year start month
// @Tags preferences
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.SemesterPreferenceResponse}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /preferences/semester [get]
func (c *PreferenceController) GetSemesterPreference(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	pref, err := c.preferenceService.GetSemesterPreference(ctx, caller)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pref, ""))
}

// UpdateSemesterPreference godoc
// @Summary Update the caller's academic year start month
// @Tags preferences
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SemesterPreferenceRequest true "New start month (1-12)"
// @Success 200 {object} dto.APIResponse{data=dto.SemesterPreferenceResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /preferences/semester [put]
func (c *PreferenceController) UpdateSemesterPreference(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.SemesterPreferenceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error()).WithField("yearStartMonth")))
		return
	}

	pref, err := c.preferenceService.UpdateSemesterPreference(ctx, caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(pref, "Preference updated"))
}
