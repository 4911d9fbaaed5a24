package dto

import (
	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// BulkEntryRequest is the shared input shape for every bulk lifecycle verb.
// Force skips warnings only; hard validation errors are never bypassed.
type BulkEntryRequest struct {
	EntryIDs []string `json:"entryIDs" binding:"required,min=1"`
	Force    bool     `json:"force"`
	Reason   string   `json:"reason"`
}

// BulkFailureResponse is one failed entry within a bulk result.
type BulkFailureResponse struct {
	EntryID     string   `json:"entryID"`
	EntryNumber string   `json:"entryNumber,omitempty"`
	Errors      []string `json:"errors"`
}

// BulkOperationResponse is the API shape of a bulk lifecycle result.
type BulkOperationResponse struct {
	TotalRequested int                   `json:"totalRequested"`
	TotalSucceeded int                   `json:"totalSucceeded"`
	Succeeded      []string              `json:"succeededEntries"`
	Failed         []BulkFailureResponse `json:"failedEntries"`
}

// BulkValidationItemResponse is the validate-only result for one entry.
type BulkValidationItemResponse struct {
	EntryID       string   `json:"entryID"`
	EntryNumber   string   `json:"entryNumber,omitempty"`
	CanTransition bool     `json:"canTransition"`
	Errors        []string `json:"errors"`
	Warnings      []string `json:"warnings"`
}

// BulkValidationResponse is the API shape of a bulk pre-flight check.
type BulkValidationResponse struct {
	Results []BulkValidationItemResponse `json:"results"`
}

// ToBulkOperationResponse converts a domain bulk result to its API shape.
func ToBulkOperationResponse(result *domain.BulkOperationResult) BulkOperationResponse {
	resp := BulkOperationResponse{
		TotalRequested: result.TotalRequested,
		TotalSucceeded: result.TotalSucceeded,
		Succeeded:      result.Succeeded,
		Failed:         make([]BulkFailureResponse, len(result.Failed)),
	}
	for i, failure := range result.Failed {
		resp.Failed[i] = BulkFailureResponse{
			EntryID:     failure.EntryID,
			EntryNumber: failure.EntryNumber,
			Errors:      failure.Errors,
		}
	}
	return resp
}

// ToBulkValidationResponse converts validate-only items to their API shape.
func ToBulkValidationResponse(items []domain.BulkValidationItem) BulkValidationResponse {
	resp := BulkValidationResponse{Results: make([]BulkValidationItemResponse, len(items))}
	for i, item := range items {
		resp.Results[i] = BulkValidationItemResponse{
			EntryID:       item.EntryID,
			EntryNumber:   item.EntryNumber,
			CanTransition: item.Check.CanTransition,
			Errors:        item.Check.Errors,
			Warnings:      item.Check.Warnings,
		}
	}
	return resp
}
