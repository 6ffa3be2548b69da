package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/services"
	"github.com/lintangpradipa/catatankita/internal/middleware"
	"github.com/lintangpradipa/catatankita/internal/pkg/helpers"
)

// VaultController handles the archive/trash view and lifecycle actions
type VaultController struct {
	vaultService services.VaultService
}

// NewVaultController creates a new VaultController
func NewVaultController(vaultService services.VaultService) *VaultController {
	return &VaultController{vaultService: vaultService}
}

// GetVault godoc
// @Summary Get the grouped vault view
// @Description Paginated archive+trash view grouped by subject and ISO week, or by semester when groupBy=semester
// @Tags vault
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Natural-language query (Indonesian)"
// @Param groupBy query string false "Grouping mode: empty or semester"
// @Param withPartner query bool false "Include the partner's notes (their trash stays hidden)"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.VaultViewResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /vault [get]
func (c *VaultController) GetVault(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var filter dto.VaultFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters")))
		return
	}
	filter.Page, filter.Limit = helpers.ParsePaginationParams(ctx)

	view, err := c.vaultService.GetVault(ctx, caller, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(view, ""))
}

// GetInsight godoc
// @Summary Get the vault insight aggregate
// @Description Status totals, pinned and open-question counts, top subject, average quality, and a templated narrative over the filtered set
// @Tags vault
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=insight.VaultInsight}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /vault/insight [get]
func (c *VaultController) GetInsight(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var filter dto.VaultFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters")))
		return
	}

	agg, err := c.vaultService.GetInsight(ctx, caller, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(agg, ""))
}

// GetSemesterBuckets godoc
// @Summary Get per-semester note counts
// @Description Buckets an owner's non-trashed notes per semester, newest semester first
// @Tags vault
// @Produce json
// @Security ApiKeyAuth
// @Param owner query string false "Owner ID (default caller)"
// @Param subject query string false "Subject contains"
// @Success 200 {object} dto.APIResponse{data=[]dto.SemesterBucket}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /vault/semesters [get]
func (c *VaultController) GetSemesterBuckets(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	buckets, err := c.vaultService.GetSemesterBuckets(ctx, caller, ctx.Query("owner"), ctx.Query("subject"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(buckets, ""))
}

// ApplyAction godoc
// @Summary Apply a lifecycle action to a note
// @Description Owner-only archive/unarchive/trash/restore/purge/pin/unpin. The transition, its revision snapshot, and the audit entry land atomically.
// @Tags vault
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.VaultActionRequest true "Note ID and action"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /vault/actions [post]
func (c *VaultController) ApplyAction(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.VaultActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	note, err := c.vaultService.ApplyAction(ctx, caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	message := "Action applied"
	if note == nil {
		message = "Note purged"
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note, message))
}
