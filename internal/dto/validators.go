package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/quantabooks/accounting_backend/internal/core/domain"
)

// clientEntryTypes are the entry types a client may submit. REVERSAL is
// excluded because reversal entries are only ever system generated.
var clientEntryTypes = map[domain.EntryType]struct{}{
	domain.EntryManual:     {},
	domain.EntryAutomatic:  {},
	domain.EntryAdjustment: {},
	domain.EntryOpening:    {},
	domain.EntryClosing:    {},
}

// RegisterCustomValidators hooks domain-aware validators into gin's binding
// engine. Must be called once at startup before any request binding happens.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("entrytype", func(fl validator.FieldLevel) bool {
		_, ok := clientEntryTypes[domain.EntryType(fl.Field().String())]
		return ok
	})
}
