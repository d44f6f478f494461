package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Diagnosis is a read-only reference row keyed by diagnosis code.
type Diagnosis struct {
	Code        string    // diagnoses.code
	Description string    // diagnoses.description
	CreatedAt   time.Time // diagnoses.created_at
}

// Procedure is a read-only reference row keyed by procedure code.  The
// AverageCost column is the baseline used by fraud scoring: a claim more
// than twice this value gets flagged.
type Procedure struct {
	Code        string          // procedures.code
	Description string          // procedures.description
	AverageCost decimal.Decimal // procedures.average_cost DECIMAL(12,2)
	CreatedAt   time.Time       // procedures.created_at
}
