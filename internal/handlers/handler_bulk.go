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

// bulkHandler handles bulk lifecycle operations over many entries.
type bulkHandler struct {
	bulkService portssvc.BulkSvcFacade
}

func newBulkHandler(bulkService portssvc.BulkSvcFacade) *bulkHandler {
	return &bulkHandler{
		bulkService: bulkService,
	}
}

// bulkApply godoc
// @Summary Apply a lifecycle operation to many entries
// @Description Processes every entry independently in request order; a failure never rolls back the others. Returns 422 when every entry failed.
// @Tags bulk
// @Accept  json
// @Produce  json
// @Param   operation path string true "Lifecycle operation" Enums(approve, post, cancel, reverse, reset_to_draft, delete)
// @Param   body body dto.BulkEntryRequest true "Entry IDs plus optional force/reason"
// @Success 200 {object} dto.BulkOperationResponse "Per-entry outcomes"
// @Failure 400 {object} map[string]string "Unknown operation or invalid request"
// @Failure 422 {object} dto.BulkOperationResponse "Every entry failed"
// @Router /entries/bulk/{operation} [post]
func (h *bulkHandler) bulkApply(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	op, ok := transitionOperations[c.Param("operation")]
	if !ok || op == domain.OperationUpdate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bulk operation " + c.Param("operation")})
		return
	}

	var req dto.BulkEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Failed to bind JSON for bulkApply", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	result, err := h.bulkService.BulkApply(c.Request.Context(), op, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to apply bulk operation")
		return
	}

	status := http.StatusOK
	if result.AllFailed() {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, dto.ToBulkOperationResponse(result))
}

// bulkValidate godoc
// @Summary Pre-flight check a lifecycle operation over many entries
// @Description Runs the validate-only check per entry without mutating anything
// @Tags bulk
// @Accept  json
// @Produce  json
// @Param   operation path string true "Lifecycle operation" Enums(approve, post, cancel, reverse, reset_to_draft, delete)
// @Param   body body dto.BulkEntryRequest true "Entry IDs plus optional reason"
// @Success 200 {object} dto.BulkValidationResponse "Per-entry check results"
// @Failure 400 {object} map[string]string "Unknown operation or invalid request"
// @Router /entries/bulk/{operation}/validate [post]
func (h *bulkHandler) bulkValidate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	op, ok := transitionOperations[c.Param("operation")]
	if !ok || op == domain.OperationUpdate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown bulk operation " + c.Param("operation")})
		return
	}

	var req dto.BulkEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	items, err := h.bulkService.BulkValidate(c.Request.Context(), op, req.EntryIDs, req.Reason)
	if err != nil {
		respondError(c, logger, err, "Failed to validate bulk operation")
		return
	}

	c.JSON(http.StatusOK, dto.ToBulkValidationResponse(items))
}

// registerBulkRoutes wires the bulk endpoints into the router group.
func registerBulkRoutes(rg *gin.RouterGroup, bulkService portssvc.BulkSvcFacade) {
	h := newBulkHandler(bulkService)

	bulk := rg.Group("/entries/bulk")
	{
		bulk.POST("/:operation", h.bulkApply)
		bulk.POST("/:operation/validate", h.bulkValidate)
	}
}
