package entity

import "time"

// Tipos de entrada en la bitácora de inventario.
const (
	LogTypeIn  = "in"  // recepción de compra
	LogTypeOut = "out" // despacho de venta
)

// InventoryLogEntry entrada inmutable de la bitácora de inventario (append-only).
// Invariante: para un producto, la suma de Change en orden cronológico
// reconstruye exactamente el Stock actual.
type InventoryLogEntry struct {
	ID         string
	ProductID  string
	Type       string // in, out
	Change     int64  // positivo en recepción, negativo en despacho
	NewStock   int64  // saldo resultante tras aplicar el cambio
	RelatedDoc string // número de la orden (PO-n / SO-n)
	Timestamp  time.Time
	CreatedAt  time.Time
	CreatedBy  string // UserID
}
