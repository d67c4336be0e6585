package entity

import "time"

// Customer representa un cliente (órdenes de venta).
type Customer struct {
	ID        string
	Name      string
	TaxID     string // NIT o Cédula
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
