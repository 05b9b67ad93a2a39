package category_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/category"
)

// lookupFromMap construye un ParentLookup sobre un mapa hijo → padre.
func lookupFromMap(parents map[string]string) category.ParentLookup {
	return func(id string) (string, error) {
		return parents[id], nil
	}
}

// Cadena A → B → C (el padre de C es B, el padre de B es A).
var cadenaABC = map[string]string{"B": "A", "C": "B"}

func TestCheckNoCycle_CadenaDetectada(t *testing.T) {
	// Colgar A bajo C cerraría el ciclo A→B→C→A.
	err := category.CheckNoCycle("A", "C", lookupFromMap(cadenaABC))
	assert.ErrorIs(t, err, domain.ErrCategoryCycle)
}

func TestCheckNoCycle_PadrePropio(t *testing.T) {
	err := category.CheckNoCycle("A", "A", lookupFromMap(cadenaABC))
	assert.ErrorIs(t, err, domain.ErrSelfParent)
}

func TestCheckNoCycle_PadreSinRelacion(t *testing.T) {
	// D no tiene padre ni relación con A.
	err := category.CheckNoCycle("A", "D", lookupFromMap(cadenaABC))
	assert.NoError(t, err)
}

func TestCheckNoCycle_VolverRaiz(t *testing.T) {
	// Quitar el padre (volver raíz) siempre es válido.
	err := category.CheckNoCycle("C", "", lookupFromMap(cadenaABC))
	assert.NoError(t, err)
}

func TestCheckNoCycle_MoverHojaBajoOtraRama(t *testing.T) {
	parents := map[string]string{"B": "A", "C": "A", "D": "B"}
	// Mover D bajo C: C→A→raíz, no pasa por D.
	err := category.CheckNoCycle("D", "C", lookupFromMap(parents))
	assert.NoError(t, err)
}

// El árbol ya contiene un ciclo ajeno (X↔Y). La caminata debe terminar y
// rechazar, no colgarse.
func TestCheckNoCycle_CicloPreexistenteTermina(t *testing.T) {
	parents := map[string]string{"X": "Y", "Y": "X"}
	err := category.CheckNoCycle("A", "X", lookupFromMap(parents))
	assert.ErrorIs(t, err, domain.ErrCategoryCycle)
}

func TestCheckNoCycle_PropagaErrorDelLookup(t *testing.T) {
	boom := fmt.Errorf("db caída")
	failing := func(id string) (string, error) { return "", boom }
	err := category.CheckNoCycle("A", "B", failing)
	require.ErrorIs(t, err, boom)
}

// Cadena profunda sin ciclo: debe recorrerla completa y aceptar.
func TestCheckNoCycle_CadenaProfunda(t *testing.T) {
	parents := map[string]string{}
	for i := 1; i < 100; i++ {
		parents[fmt.Sprintf("n%d", i)] = fmt.Sprintf("n%d", i+1)
	}
	err := category.CheckNoCycle("raiz", "n1", lookupFromMap(parents))
	assert.NoError(t, err)
}
