package domain

// BulkEntryFailure records why one entry in a bulk call could not transition.
type BulkEntryFailure struct {
	EntryID     string   `json:"entryID"`
	EntryNumber string   `json:"entryNumber"`
	Errors      []string `json:"errors"`
}

// BulkOperationResult summarises a bulk lifecycle call. Failures are isolated
// per entry; successes are never rolled back because of later failures.
type BulkOperationResult struct {
	TotalRequested int                `json:"totalRequested"`
	TotalSucceeded int                `json:"totalSucceeded"`
	Succeeded      []string           `json:"succeededEntries"`
	Failed         []BulkEntryFailure `json:"failedEntries"`
}

// AllFailed reports whether a non-empty batch produced no successes.
func (r BulkOperationResult) AllFailed() bool {
	return r.TotalRequested > 0 && r.TotalSucceeded == 0
}

// BulkValidationItem is the validate-only counterpart result for one entry.
type BulkValidationItem struct {
	EntryID     string          `json:"entryID"`
	EntryNumber string          `json:"entryNumber"`
	Check       TransitionCheck `json:"check"`
}
