package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/middleware"
)

const reportDateFormat = "2006-01-02"

// reportingHandler handles the financial statement endpoints.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// asOfDate reads the optional asOf query parameter, defaulting to today.
func asOfDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("asOf")
	if raw == "" {
		return time.Now().UTC(), true
	}
	asOf, err := time.Parse(reportDateFormat, raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid asOf date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return asOf, true
}

// periodDates reads the mandatory from/to query parameters.
func periodDates(c *gin.Context) (time.Time, time.Time, bool) {
	from, err := time.Parse(reportDateFormat, c.Query("from"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing from date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	to, err := time.Parse(reportDateFormat, c.Query("to"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing to date, expected YYYY-MM-DD"})
		return time.Time{}, time.Time{}, false
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to date must not be before from date"})
		return time.Time{}, time.Time{}, false
	}
	return from, to, true
}

// trialBalance godoc
// @Summary Trial balance report
// @Description Per-account debit/credit movements and closing balances as of a date; total debits always equal total credits
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.TrialBalanceReport "The report"
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := asOfDate(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}

// balanceSheet godoc
// @Summary Balance sheet report
// @Description Assets, liabilities and equity as of a date, with an explicit isBalanced flag
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} domain.BalanceSheetReport "The report"
// @Failure 400 {object} map[string]string "Invalid date"
// @Router /reports/balance-sheet [get]
func (h *reportingHandler) balanceSheet(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := asOfDate(c)
	if !ok {
		return
	}

	report, err := h.reportingService.BalanceSheet(c.Request.Context(), asOf)
	if err != nil {
		respondError(c, logger, err, "Failed to build balance sheet")
		return
	}
	c.JSON(http.StatusOK, report)
}

// incomeStatement godoc
// @Summary Income statement report
// @Description Income and expense activity within a period
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end (YYYY-MM-DD)"
// @Success 200 {object} domain.IncomeStatementReport "The report"
// @Failure 400 {object} map[string]string "Invalid period"
// @Router /reports/income-statement [get]
func (h *reportingHandler) incomeStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := periodDates(c)
	if !ok {
		return
	}

	report, err := h.reportingService.IncomeStatement(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to build income statement")
		return
	}
	c.JSON(http.StatusOK, report)
}

// generalLedger godoc
// @Summary General ledger report
// @Description Per-account movement detail with running balances within a period
// @Tags reports
// @Produce  json
// @Param   from query string true "Period start (YYYY-MM-DD)"
// @Param   to query string true "Period end (YYYY-MM-DD)"
// @Param   accountIDs query string false "Comma-separated account IDs; all accounts when omitted"
// @Success 200 {object} domain.GeneralLedgerReport "The report"
// @Failure 400 {object} map[string]string "Invalid period"
// @Router /reports/general-ledger [get]
func (h *reportingHandler) generalLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	from, to, ok := periodDates(c)
	if !ok {
		return
	}

	var accountIDs []string
	if raw := c.Query("accountIDs"); raw != "" {
		accountIDs = strings.Split(raw, ",")
	}

	report, err := h.reportingService.GeneralLedger(c.Request.Context(), from, to, accountIDs)
	if err != nil {
		respondError(c, logger, err, "Failed to build general ledger")
		return
	}
	c.JSON(http.StatusOK, report)
}

// financialRatios godoc
// @Summary Financial ratio indicators
// @Description Liquidity, profitability and leverage indicators derived from the statements
// @Tags reports
// @Produce  json
// @Param   asOf query string false "Balance sheet date (YYYY-MM-DD), defaults to today"
// @Param   from query string true "Income statement period start (YYYY-MM-DD)"
// @Param   to query string true "Income statement period end (YYYY-MM-DD)"
// @Success 200 {object} domain.FinancialRatios "The indicators"
// @Failure 400 {object} map[string]string "Invalid dates"
// @Router /reports/ratios [get]
func (h *reportingHandler) financialRatios(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	asOf, ok := asOfDate(c)
	if !ok {
		return
	}
	from, to, ok := periodDates(c)
	if !ok {
		return
	}

	ratios, err := h.reportingService.FinancialRatios(c.Request.Context(), asOf, from, to)
	if err != nil {
		respondError(c, logger, err, "Failed to compute financial ratios")
		return
	}
	c.JSON(http.StatusOK, ratios)
}

// registerReportingRoutes wires the report endpoints into the router group.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
		reports.GET("/balance-sheet", h.balanceSheet)
		reports.GET("/income-statement", h.incomeStatement)
		reports.GET("/general-ledger", h.generalLedger)
		reports.GET("/ratios", h.financialRatios)
	}
}
