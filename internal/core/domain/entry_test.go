package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOperationAllowed(t *testing.T) {
	tests := []struct {
		op      EntryOperation
		from    EntryStatus
		allowed bool
	}{
		{OperationApprove, StatusDraft, true},
		{OperationApprove, StatusApproved, false},
		{OperationApprove, StatusPosted, false},
		{OperationPost, StatusApproved, true},
		{OperationPost, StatusDraft, false}, // no skipping straight to posted
		{OperationPost, StatusPosted, false},
		{OperationCancel, StatusDraft, true},
		{OperationCancel, StatusApproved, true},
		{OperationCancel, StatusPosted, true},
		{OperationCancel, StatusCancelled, false},
		{OperationReverse, StatusPosted, true},
		{OperationReverse, StatusApproved, false},
		{OperationResetToDraft, StatusApproved, true},
		{OperationResetToDraft, StatusPosted, true},
		{OperationResetToDraft, StatusDraft, false},
		{OperationResetToDraft, StatusCancelled, false},
		{OperationUpdate, StatusDraft, true},
		{OperationUpdate, StatusPosted, false},
		{OperationDelete, StatusDraft, true},
		{OperationDelete, StatusCancelled, false},
	}

	for _, tt := range tests {
		got := OperationAllowed(tt.op, tt.from)
		assert.Equal(t, tt.allowed, got, "%s from %s", tt.op, tt.from)
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	for op := range allowedFrom {
		if op == OperationCancel {
			continue
		}
		assert.False(t, OperationAllowed(op, StatusCancelled), "%s must not apply to a cancelled entry", op)
	}
	assert.False(t, OperationAllowed(OperationCancel, StatusCancelled))
}

func TestRecomputeTotals(t *testing.T) {
	entry := JournalEntry{
		Lines: []JournalEntryLine{
			{LineNumber: 1, DebitAmount: decimal.NewFromFloat(70.25)},
			{LineNumber: 2, DebitAmount: decimal.NewFromFloat(29.75)},
			{LineNumber: 3, CreditAmount: decimal.NewFromInt(100)},
		},
	}
	entry.RecomputeTotals()
	assert.True(t, entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	assert.True(t, entry.TotalCredit.Equal(decimal.NewFromInt(100)))
}

func TestTransitionCheckPasses(t *testing.T) {
	clean := TransitionCheck{CanTransition: true}
	assert.True(t, clean.Passes(false))

	warned := TransitionCheck{CanTransition: true, Warnings: []string{"entry date is in the future"}}
	assert.False(t, warned.Passes(false))
	assert.True(t, warned.Passes(true))

	failed := TransitionCheck{Errors: []string{"entry is not balanced"}}
	assert.False(t, failed.Passes(false))
	assert.False(t, failed.Passes(true)) // force never bypasses errors
}
