package entity

import "time"

// Category representa una categoría de productos (árbol vía ParentID).
// El grafo de padres debe permanecer acíclico; el guard de ciclos lo garantiza
// antes de persistir cualquier cambio de padre.
type Category struct {
	ID        string
	ParentID  string // vacío si es raíz
	Name      string
	Code      string // código único
	Status    string // active, inactive
	CreatedAt time.Time
	UpdatedAt time.Time
}
