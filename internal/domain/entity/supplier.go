package entity

import "time"

// Supplier representa un proveedor de mercancía.
type Supplier struct {
	ID          string
	Name        string
	TaxID       string // NIT o identificación tributaria
	ContactName string
	Email       string
	Phone       string
	Address     string
	Status      string // active, inactive (borrado lógico)
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
