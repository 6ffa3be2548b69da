package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lintangpradipa/catatankita/internal/app/models/dto"
	"github.com/lintangpradipa/catatankita/internal/app/services"
	"github.com/lintangpradipa/catatankita/internal/middleware"
	"github.com/lintangpradipa/catatankita/internal/pkg/apperrors"
	"github.com/lintangpradipa/catatankita/internal/pkg/helpers"
)

// requireCaller reads the authenticated caller or aborts with 401.
func requireCaller(ctx *gin.Context) (uuid.UUID, bool) {
	caller, ok := middleware.CallerID(ctx)
	if !ok {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
		return uuid.Nil, false
	}
	return caller, true
}

// parseUUIDParam parses a UUID path parameter.
func parseUUIDParam(ctx *gin.Context, paramName string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param(paramName))
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("malformed " + paramName + " parameter")
	}
	return id, nil
}

// NoteController handles class note operations
type NoteController struct {
	noteService services.NoteService
}

// NewNoteController creates a new NoteController
func NewNoteController(noteService services.NoteService) *NoteController {
	return &NoteController{noteService: noteService}
}

// GetTodaySessions godoc
// @Summary Get today's class sessions with note status
// @Description List the caller's schedule sessions for a date (default today), each with the state of its note
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param date query string false "Calendar date (YYYY-MM-DD, default today)"
// @Success 200 {object} dto.APIResponse{data=dto.TodaySessionsResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /sessions/today [get]
func (c *NoteController) GetTodaySessions(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	sessions, err := c.noteService.SessionsForDate(ctx, caller, ctx.Query("date"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(sessions, ""))
}

// ListNotes godoc
// @Summary List active and archived notes
// @Description Filtered, sorted, paginated note list. Supports a natural-language q parameter; explicit filters always win over parsed ones.
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param q query string false "Natural-language query (Indonesian)"
// @Param owner query string false "Restrict to one owner"
// @Param subject query string false "Subject contains"
// @Param status query string false "active | archived | trashed"
// @Param semester query string false "Semester key, e.g. 2024-2025-genap"
// @Param withPartner query bool false "Include the partner's notes"
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 20, max 100)"
// @Success 200 {object} dto.APIResponse{data=dto.NoteListResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [get]
func (c *NoteController) ListNotes(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var filter dto.NoteFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeInvalidRequest, "Invalid filter parameters")))
		return
	}
	filter.Page, filter.Limit = helpers.ParsePaginationParams(ctx)

	notes, err := c.noteService.ListNotes(ctx, caller, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(notes, ""))
}

// SaveNote godoc
// @Summary Save a class note
// @Description Idempotent upsert keyed on (caller, scheduleId, classDate). Every save appends a revision snapshot.
// @Tags notes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.SaveNoteRequest true "Note content"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 401 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 409 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes [post]
func (c *NoteController) SaveNote(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	var req dto.SaveNoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())))
		return
	}

	note, err := c.noteService.SaveNote(ctx, caller, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note, "Note saved"))
}

// GetNote godoc
// @Summary Get a single note
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id} [get]
func (c *NoteController) GetNote(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	noteID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	note, err := c.noteService.GetNote(ctx, caller, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note, ""))
}

// GetRevisions godoc
// @Summary Get a note's revision history
// @Description Returns the append-only revision log newest-first, capped.
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.RevisionResponse}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/revisions [get]
func (c *NoteController) GetRevisions(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	noteID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	revisions, err := c.noteService.GetRevisions(ctx, caller, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(revisions, ""))
}

// GetAuditTrail godoc
// @Summary Get a note's audit trail
// @Description Owner-only log of every mutation to the note, newest-first.
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Note ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.AuditEntryResponse}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/audit [get]
func (c *NoteController) GetAuditTrail(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	noteID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	entries, err := c.noteService.GetAuditTrail(ctx, caller, noteID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(entries, ""))
}

// RestoreRevision godoc
// @Summary Restore a note to an old revision
// @Description Copies the revision's content back onto the live note, returns it to the active state, and appends a new "restore" revision.
// @Tags notes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Note ID"
// @Param versionNo path int true "Revision version number"
// @Success 200 {object} dto.APIResponse{data=dto.NoteResponse}
// @Failure 400 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 403 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Failure 404 {object} dto.APIResponse{error=dto.ErrorDetail}
// @Router /notes/{id}/revisions/{versionNo}/restore [post]
func (c *NoteController) RestoreRevision(ctx *gin.Context) {
	caller, ok := requireCaller(ctx)
	if !ok {
		return
	}

	noteID, err := parseUUIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	versionNo, err := strconv.Atoi(ctx.Param("versionNo"))
	if err != nil || versionNo < 1 {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("malformed version number"))
		return
	}

	note, err := c.noteService.RestoreRevision(ctx, caller, noteID, versionNo)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(note, "Revision restored"))
}
