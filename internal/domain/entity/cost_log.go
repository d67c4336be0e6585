package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostLogEntry entrada inmutable de la bitácora de costo promedio (append-only).
// Se escribe solo en recepciones y solo cuando el costo promedio redondeado cambió.
type CostLogEntry struct {
	ID         string
	ProductID  string
	OldAvgCost decimal.Decimal
	NewAvgCost decimal.Decimal
	RelatedDoc string // número de la orden de compra
	Timestamp  time.Time
	CreatedAt  time.Time
}
