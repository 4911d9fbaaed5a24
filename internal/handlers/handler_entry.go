package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/dto"
	"github.com/quantabooks/accounting_backend/internal/middleware"
)

// entryHandler handles HTTP requests for journal entries and their lifecycle.
type entryHandler struct {
	entryService portssvc.EntrySvcFacade
}

func newEntryHandler(entryService portssvc.EntrySvcFacade) *entryHandler {
	return &entryHandler{
		entryService: entryService,
	}
}

// transitionOperations maps URL operation names onto lifecycle verbs for the
// validate-only and bulk endpoints.
var transitionOperations = map[string]domain.EntryOperation{
	"approve":        domain.OperationApprove,
	"post":           domain.OperationPost,
	"cancel":         domain.OperationCancel,
	"reverse":        domain.OperationReverse,
	"reset_to_draft": domain.OperationResetToDraft,
	"delete":         domain.OperationDelete,
	"update":         domain.OperationUpdate,
}

// createEntry godoc
// @Summary Create a journal entry
// @Description Creates a new balanced journal entry in DRAFT status
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateEntryRequest true "Entry details"
// @Success 201 {object} dto.EntryResponse "The created entry"
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /entries [post]
func (h *entryHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for createEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CreateEntry(c.Request.Context(), req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(entry))
}

// getEntry godoc
// @Summary Get a journal entry
// @Description Retrieves a journal entry with its lines
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 200 {object} dto.EntryResponse "The entry"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID} [get]
func (h *entryHandler) getEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	entry, err := h.entryService.GetEntryByID(c.Request.Context(), entryID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// listEntries godoc
// @Summary List journal entries
// @Description Retrieves a filtered, token-paginated list of entries
// @Tags entries
// @Produce  json
// @Param   status query string false "Filter by status" Enums(DRAFT, APPROVED, POSTED, CANCELLED)
// @Param   entryType query string false "Filter by entry type"
// @Param   origin query string false "Filter by transaction origin"
// @Param   from query string false "Entry date lower bound (YYYY-MM-DD)"
// @Param   to query string false "Entry date upper bound (YYYY-MM-DD)"
// @Param   limit query int false "Page size (default 20, max 100)"
// @Param   nextToken query string false "Pagination token from a previous page"
// @Success 200 {object} dto.ListEntriesResponse "Page of entries"
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Router /entries [get]
func (h *entryHandler) listEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListEntriesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Error("Failed to bind query for listEntries", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	entries, nextToken, err := h.entryService.ListEntries(c.Request.Context(), params)
	if err != nil {
		respondError(c, logger, err, "Failed to list entries")
		return
	}

	resp := dto.ListEntriesResponse{
		Entries:   make([]dto.EntryResponse, len(entries)),
		NextToken: nextToken,
	}
	for i := range entries {
		resp.Entries[i] = dto.ToEntryResponse(&entries[i])
	}
	c.JSON(http.StatusOK, resp)
}

// updateEntry godoc
// @Summary Update a draft journal entry
// @Description Edits fields and optionally replaces the lines of a DRAFT entry
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   entry body dto.UpdateEntryRequest true "Fields to update"
// @Success 200 {object} dto.EntryResponse "The updated entry"
// @Failure 400 {object} map[string]string "Invalid or unbalanced entry"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Router /entries/{entryID} [put]
func (h *entryHandler) updateEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.UpdateEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for updateEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.UpdateEntry(c.Request.Context(), entryID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to update entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// deleteEntry godoc
// @Summary Delete a draft journal entry
// @Description Hard-deletes a DRAFT entry; posted entries can only be cancelled or reversed
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Success 204 "Entry deleted"
// @Failure 404 {object} map[string]string "Entry not found"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Router /entries/{entryID} [delete]
func (h *entryHandler) deleteEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.entryService.DeleteEntry(c.Request.Context(), entryID, actorID); err != nil {
		respondError(c, logger, err, "Failed to delete entry")
		return
	}

	c.Status(http.StatusNoContent)
}

// approveEntry godoc
// @Summary Approve a draft journal entry
// @Description Moves a DRAFT entry to APPROVED after re-validating the balance
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.TransitionRequest false "Force flag"
// @Success 200 {object} dto.EntryResponse "The approved entry"
// @Failure 400 {object} map[string]string "Validation errors or blocking warnings"
// @Failure 409 {object} map[string]string "Entry is not in DRAFT status"
// @Router /entries/{entryID}/approve [post]
func (h *entryHandler) approveEntry(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, entryID, actorID string, force bool) (*domain.JournalEntry, error) {
		return h.entryService.ApproveEntry(ctx.Request.Context(), entryID, actorID, force)
	})
}

// postEntry godoc
// @Summary Post an approved journal entry
// @Description Moves an APPROVED entry to POSTED and applies account balance changes
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.TransitionRequest false "Force flag"
// @Success 200 {object} dto.EntryResponse "The posted entry"
// @Failure 400 {object} map[string]string "Validation errors or blocking warnings"
// @Failure 409 {object} map[string]string "Entry is not in APPROVED status"
// @Router /entries/{entryID}/post [post]
func (h *entryHandler) postEntry(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, entryID, actorID string, force bool) (*domain.JournalEntry, error) {
		return h.entryService.PostEntry(ctx.Request.Context(), entryID, actorID, force)
	})
}

// resetEntry godoc
// @Summary Reset an entry to draft
// @Description Returns an APPROVED or POSTED entry to DRAFT, reversing any balance accumulation
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.TransitionRequest false "Force flag"
// @Success 200 {object} dto.EntryResponse "The reset entry"
// @Failure 409 {object} map[string]string "Entry cannot be reset from its current status"
// @Router /entries/{entryID}/reset_to_draft [post]
func (h *entryHandler) resetEntry(c *gin.Context) {
	h.transition(c, func(ctx *gin.Context, entryID, actorID string, force bool) (*domain.JournalEntry, error) {
		return h.entryService.ResetEntryToDraft(ctx.Request.Context(), entryID, actorID, force)
	})
}

// transition is the shared approve/post/reset plumbing: bind the optional
// force flag, resolve the actor and convert the result.
func (h *entryHandler) transition(c *gin.Context, apply func(*gin.Context, string, string, bool) (*domain.JournalEntry, error)) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.TransitionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := apply(c, entryID, actorID, req.Force)
	if err != nil {
		respondError(c, logger, err, "Failed to transition entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// cancelEntry godoc
// @Summary Cancel a journal entry
// @Description Cancels an entry from any non-terminal status; cancelling a posted entry reverses its balance accumulation
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.CancelEntryRequest true "Cancellation reason"
// @Success 200 {object} dto.EntryResponse "The cancelled entry"
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 409 {object} map[string]string "Entry is already cancelled"
// @Router /entries/{entryID}/cancel [post]
func (h *entryHandler) cancelEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.CancelEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A cancellation reason is required"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	entry, err := h.entryService.CancelEntry(c.Request.Context(), entryID, req.Reason, actorID, req.Force)
	if err != nil {
		respondError(c, logger, err, "Failed to cancel entry")
		return
	}

	c.JSON(http.StatusOK, dto.ToEntryResponse(entry))
}

// reverseEntry godoc
// @Summary Reverse a posted journal entry
// @Description Generates and persists the mirror entry; the original stays POSTED and is marked as reversed
// @Tags entries
// @Accept  json
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   body body dto.ReverseEntryRequest true "Reversal reason"
// @Success 201 {object} dto.EntryResponse "The generated reversal entry"
// @Failure 400 {object} map[string]string "Missing reason or already reversed"
// @Failure 409 {object} map[string]string "Entry is not in POSTED status"
// @Router /entries/{entryID}/reverse [post]
func (h *entryHandler) reverseEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	var req dto.ReverseEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reversal reason is required"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	reversal, err := h.entryService.ReverseEntry(c.Request.Context(), entryID, req.Reason, actorID, req.Force)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse entry")
		return
	}

	c.JSON(http.StatusCreated, dto.ToEntryResponse(reversal))
}

// validateTransition godoc
// @Summary Check whether a lifecycle operation would succeed
// @Description Validate-only counterpart of a lifecycle verb; never mutates the entry
// @Tags entries
// @Produce  json
// @Param   entryID path string true "Entry ID"
// @Param   operation path string true "Lifecycle operation" Enums(approve, post, cancel, reverse, reset_to_draft, delete, update)
// @Param   reason query string false "Reason to validate for cancel/reverse"
// @Success 200 {object} domain.TransitionCheck "Check result"
// @Failure 400 {object} map[string]string "Unknown operation"
// @Failure 404 {object} map[string]string "Entry not found"
// @Router /entries/{entryID}/validations/{operation} [get]
func (h *entryHandler) validateTransition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	entryID := c.Param("entryID")

	op, ok := transitionOperations[c.Param("operation")]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown operation " + c.Param("operation")})
		return
	}

	check, err := h.entryService.ValidateTransition(c.Request.Context(), entryID, op, c.Query("reason"))
	if err != nil {
		respondError(c, logger, err, "Failed to validate transition")
		return
	}

	c.JSON(http.StatusOK, check)
}

// registerEntryRoutes wires the entry lifecycle endpoints into the router group.
func registerEntryRoutes(rg *gin.RouterGroup, entryService portssvc.EntrySvcFacade) {
	h := newEntryHandler(entryService)

	entries := rg.Group("/entries")
	{
		entries.POST("", h.createEntry)
		entries.GET("", h.listEntries)
		entries.GET("/:entryID", h.getEntry)
		entries.PUT("/:entryID", h.updateEntry)
		entries.DELETE("/:entryID", h.deleteEntry)

		entries.POST("/:entryID/approve", h.approveEntry)
		entries.POST("/:entryID/post", h.postEntry)
		entries.POST("/:entryID/cancel", h.cancelEntry)
		entries.POST("/:entryID/reverse", h.reverseEntry)
		entries.POST("/:entryID/reset_to_draft", h.resetEntry)
		entries.GET("/:entryID/validations/:operation", h.validateTransition)
	}
}
