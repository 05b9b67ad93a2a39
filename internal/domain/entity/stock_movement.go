package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN       = "IN"       // entrada
	MovementTypeOUT      = "OUT"      // salida
	MovementTypeADJUST   = "ADJUST"   // ajuste con delta firmado
	MovementTypeTRANSFER = "TRANSFER" // traslado (solo la pata de salida)
)

// Orígenes de referencia de un movimiento.
const (
	ReferenceOrder      = "ORDER"
	ReferencePurchase   = "PURCHASE"
	ReferenceAdjustment = "ADJUSTMENT"
	ReferenceReturn     = "RETURN"
	ReferenceInitial    = "INITIAL"
	ReferenceManual     = "MANUAL"
)

// ValidMovementType reporta si el tipo es uno de los cuatro soportados.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIN, MovementTypeOUT, MovementTypeADJUST, MovementTypeTRANSFER:
		return true
	}
	return false
}

// StockMovement es un registro inmutable del libro de movimientos (append-only).
// Quantity es magnitud positiva para IN/OUT/TRANSFER (la dirección la da Type)
// y delta firmado para ADJUST. Reproducir los registros en orden de creación
// desde cero debe dar exactamente el CurrentStock de la cuenta.
type StockMovement struct {
	ID            string
	ProductID     string
	Type          string // IN, OUT, ADJUST, TRANSFER
	Quantity      int64
	UnitCost      *decimal.Decimal // opcional, costo unitario del movimiento
	ReferenceType string           // ORDER, PURCHASE, ADJUSTMENT, RETURN, INITIAL, MANUAL
	ReferenceID   string           // documento origen, vacío si no aplica
	Notes         string
	CreatedBy     string // UserID
	CreatedAt     time.Time
}

// Delta es el efecto del movimiento sobre CurrentStock al reproducir el libro.
func (m *StockMovement) Delta() int64 {
	switch m.Type {
	case MovementTypeIN:
		return m.Quantity
	case MovementTypeOUT, MovementTypeTRANSFER:
		return -m.Quantity
	case MovementTypeADJUST:
		return m.Quantity // ya viene firmado
	}
	return 0
}
