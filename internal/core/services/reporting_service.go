package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
	portsrepo "github.com/quantabooks/accounting_backend/internal/core/ports/repositories"
	portssvc "github.com/quantabooks/accounting_backend/internal/core/ports/services"
	"github.com/quantabooks/accounting_backend/internal/middleware"
	"github.com/quantabooks/accounting_backend/internal/utils/accounting"
)

// reportingService assembles the financial statements from posted entry
// lines. Nothing here mutates state; every report is recomputed from the
// repository on each call.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the financial statement service.
func NewReportingService(reportingRepo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: reportingRepo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// TrialBalance lists every account with posted movements up to asOf and
// proves total debits equal total credits.
func (s *reportingService) TrialBalance(ctx context.Context, asOf time.Time) (*domain.TrialBalanceReport, error) {
	rows, err := s.reportingRepo.GetTrialBalanceData(ctx, asOf)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch trial balance data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch trial balance data: %w", err)
	}

	report := &domain.TrialBalanceReport{
		AsOf:         asOf,
		Rows:         rows,
		TotalDebits:  decimal.Zero,
		TotalCredits: decimal.Zero,
	}
	for i := range report.Rows {
		row := &report.Rows[i]
		row.ClosingBalance = accounting.ClosingBalance(row.AccountType, row.OpeningBalance, row.DebitMovements, row.CreditMovements)
		report.TotalDebits = report.TotalDebits.Add(row.DebitMovements)
		report.TotalCredits = report.TotalCredits.Add(row.CreditMovements)
	}
	return report, nil
}

// BalanceSheet snapshots assets, liabilities and equity as of a date.
// Section totals sum absolute net amounts; IsBalanced reports whether the
// accounting equation holds rather than hiding a violation.
func (s *reportingService) BalanceSheet(ctx context.Context, asOf time.Time) (*domain.BalanceSheetReport, error) {
	assets, liabilities, equity, err := s.reportingRepo.GetBalanceSheetData(ctx, asOf)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch balance sheet data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch balance sheet data: %w", err)
	}

	report := &domain.BalanceSheetReport{
		AsOf:             asOf,
		Assets:           assets,
		Liabilities:      liabilities,
		Equity:           equity,
		TotalAssets:      sumAbsolute(assets),
		TotalLiabilities: sumAbsolute(liabilities),
		TotalEquity:      sumAbsolute(equity),
	}
	report.IsBalanced = report.TotalAssets.Equal(report.TotalLiabilities.Add(report.TotalEquity))
	return report, nil
}

// IncomeStatement summarises income against expense and cost activity within
// [from, to]. Gross, operating and net profit are identical until operating
// and non-operating results are separated.
func (s *reportingService) IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error) {
	revenue, expenses, err := s.reportingRepo.GetIncomeStatementData(ctx, from, to)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch income statement data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch income statement data: %w", err)
	}

	report := &domain.IncomeStatementReport{
		From:          from,
		To:            to,
		Revenue:       revenue,
		Expenses:      expenses,
		TotalRevenue:  sumNet(revenue),
		TotalExpenses: sumNet(expenses),
	}
	profit := report.TotalRevenue.Sub(report.TotalExpenses)
	report.GrossProfit = profit
	report.OperatingProfit = profit
	report.NetProfit = profit
	return report, nil
}

// GeneralLedger details every posted movement per account within [from, to],
// folding a running balance over (entry_date, line_number) order by the
// account's normal balance side.
func (s *reportingService) GeneralLedger(ctx context.Context, from, to time.Time, accountIDs []string) (*domain.GeneralLedgerReport, error) {
	accounts, err := s.reportingRepo.GetGeneralLedgerData(ctx, from, to, accountIDs)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to fetch general ledger data", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch general ledger data: %w", err)
	}

	report := &domain.GeneralLedgerReport{From: from, To: to, Accounts: accounts}
	for i := range report.Accounts {
		account := &report.Accounts[i]
		running := account.OpeningBalance
		totalDebits := decimal.Zero
		totalCredits := decimal.Zero

		for j := range account.Movements {
			movement := &account.Movements[j]
			if account.AccountType.NormalBalanceSide() == domain.DebitSide {
				running = running.Add(movement.Debit).Sub(movement.Credit)
			} else {
				running = running.Add(movement.Credit).Sub(movement.Debit)
			}
			movement.RunningBalance = running
			totalDebits = totalDebits.Add(movement.Debit)
			totalCredits = totalCredits.Add(movement.Credit)
		}

		account.TotalDebits = totalDebits
		account.TotalCredits = totalCredits
		account.ClosingBalance = running
	}
	return report, nil
}

// FinancialRatios derives scalar indicators from the balance sheet as of
// asOf and the income statement over [from, to]. A zero denominator yields a
// "not calculable" ratio instead of an error.
func (s *reportingService) FinancialRatios(ctx context.Context, asOf time.Time, from, to time.Time) (*domain.FinancialRatios, error) {
	balanceSheet, err := s.BalanceSheet(ctx, asOf)
	if err != nil {
		return nil, err
	}
	incomeStatement, err := s.IncomeStatement(ctx, from, to)
	if err != nil {
		return nil, err
	}

	return &domain.FinancialRatios{
		CurrentRatio:   currentRatio(balanceSheet.TotalAssets, balanceSheet.TotalLiabilities),
		NetMargin:      netMargin(incomeStatement.NetProfit, incomeStatement.TotalRevenue),
		DebtRatio:      debtRatio(balanceSheet.TotalLiabilities, balanceSheet.TotalAssets),
		ReturnOnAssets: returnOnAssets(incomeStatement.NetProfit, balanceSheet.TotalAssets),
	}, nil
}

func sumAbsolute(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount.NetAmount.Abs())
	}
	return total
}

func sumNet(amounts []domain.AccountAmount) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount.NetAmount)
	}
	return total
}

const ratioNotCalculable = "not calculable"

var ratioPrecision = int32(2)

func currentRatio(assets, liabilities decimal.Decimal) domain.Ratio {
	if liabilities.IsZero() {
		return domain.Ratio{Interpretation: ratioNotCalculable}
	}
	value := assets.Div(liabilities).Round(ratioPrecision)
	var interpretation string
	switch {
	case value.GreaterThanOrEqual(decimal.NewFromInt(2)):
		interpretation = "excellent liquidity"
	case value.GreaterThanOrEqual(decimal.NewFromFloat(1.5)):
		interpretation = "good liquidity"
	case value.GreaterThanOrEqual(decimal.NewFromInt(1)):
		interpretation = "adequate liquidity"
	default:
		interpretation = "poor liquidity"
	}
	return domain.Ratio{Value: value, Interpretation: interpretation}
}

func netMargin(netProfit, revenue decimal.Decimal) domain.Ratio {
	if revenue.IsZero() {
		return domain.Ratio{Interpretation: ratioNotCalculable}
	}
	value := netProfit.Div(revenue).Mul(decimal.NewFromInt(100)).Round(ratioPrecision)
	var interpretation string
	switch {
	case value.GreaterThanOrEqual(decimal.NewFromInt(20)):
		interpretation = "excellent profitability"
	case value.GreaterThanOrEqual(decimal.NewFromInt(10)):
		interpretation = "good profitability"
	case value.GreaterThanOrEqual(decimal.NewFromInt(5)):
		interpretation = "moderate profitability"
	case value.GreaterThanOrEqual(decimal.Zero):
		interpretation = "low profitability"
	default:
		interpretation = "operating at a loss"
	}
	return domain.Ratio{Value: value, Interpretation: interpretation}
}

func debtRatio(liabilities, assets decimal.Decimal) domain.Ratio {
	if assets.IsZero() {
		return domain.Ratio{Interpretation: ratioNotCalculable}
	}
	value := liabilities.Div(assets).Round(ratioPrecision)
	var interpretation string
	switch {
	case value.LessThanOrEqual(decimal.NewFromFloat(0.3)):
		interpretation = "low leverage"
	case value.LessThanOrEqual(decimal.NewFromFloat(0.6)):
		interpretation = "moderate leverage"
	default:
		interpretation = "high leverage"
	}
	return domain.Ratio{Value: value, Interpretation: interpretation}
}

func returnOnAssets(netProfit, assets decimal.Decimal) domain.Ratio {
	if assets.IsZero() {
		return domain.Ratio{Interpretation: ratioNotCalculable}
	}
	value := netProfit.Div(assets).Mul(decimal.NewFromInt(100)).Round(ratioPrecision)
	var interpretation string
	switch {
	case value.GreaterThanOrEqual(decimal.NewFromInt(10)):
		interpretation = "excellent asset efficiency"
	case value.GreaterThanOrEqual(decimal.NewFromInt(5)):
		interpretation = "good asset efficiency"
	case value.GreaterThanOrEqual(decimal.Zero):
		interpretation = "low asset efficiency"
	default:
		interpretation = "negative return"
	}
	return domain.Ratio{Value: value, Interpretation: interpretation}
}
