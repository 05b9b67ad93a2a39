// Package category protege la integridad del árbol de categorías: el grafo
// de punteros a padre debe permanecer acíclico y una categoría nunca puede
// ser su propio ancestro.
package category

import "github.com/jhoicas/almacen-api/internal/domain"

// ParentLookup devuelve el padre de una categoría ("" si es raíz).
type ParentLookup func(categoryID string) (parentID string, err error)

// CheckNoCycle verifica que asignar proposedParentID como padre de nodeID no
// introduce un ciclo. Camina hacia arriba desde el padre propuesto con un
// conjunto de visitados: si encuentra nodeID hay ciclo; si revisita un nodo
// ya visitado el árbol ya tenía un ciclo ajeno y también se rechaza (sin el
// conjunto la caminata no terminaría). proposedParentID vacío (volver raíz)
// siempre es válido.
func CheckNoCycle(nodeID, proposedParentID string, lookup ParentLookup) error {
	if proposedParentID == "" {
		return nil
	}
	if nodeID == proposedParentID {
		return domain.ErrSelfParent
	}

	visited := map[string]bool{proposedParentID: true}
	current := proposedParentID
	for {
		parent, err := lookup(current)
		if err != nil {
			return err
		}
		if parent == "" {
			return nil
		}
		if parent == nodeID {
			return domain.ErrCategoryCycle
		}
		if visited[parent] {
			// ciclo preexistente que no involucra a nodeID
			return domain.ErrCategoryCycle
		}
		visited[parent] = true
		current = parent
	}
}
