package numbering_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/numbering"
	"github.com/jhoicas/almacen-api/internal/domain/refnum"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake en memoria del asignador de consecutivos: una fila por (prefijo, fecha),
// igual que document_sequences.
// ──────────────────────────────────────────────────────────────────────────────

type fakeSequenceRepo struct {
	rows map[string]int
	err  error
}

func newFakeSequenceRepo() *fakeSequenceRepo {
	return &fakeSequenceRepo{rows: map[string]int{}}
}

func (r *fakeSequenceRepo) LastIssued(prefix, date string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	return r.rows[prefix+"|"+date], nil
}

func (r *fakeSequenceRepo) NextValue(prefix, date string) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	key := prefix + "|" + date
	r.rows[key]++
	return r.rows[key], nil
}

func TestIssue_PrimerNumeroDelDia(t *testing.T) {
	repo := newFakeSequenceRepo()
	uc := numbering.NewIssueNumberUseCase(repo)
	date := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	number, err := uc.Issue(context.Background(), refnum.DocPurchase, date)
	require.NoError(t, err)
	assert.Equal(t, "PUR-20240115-001", number)
}

func TestIssue_ConsecutivosSinHuecosNiRepetidos(t *testing.T) {
	repo := newFakeSequenceRepo()
	uc := numbering.NewIssueNumberUseCase(repo)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	seen := map[string]bool{}
	for i := 1; i <= 5; i++ {
		number, err := uc.Issue(context.Background(), refnum.DocPurchase, date)
		require.NoError(t, err)
		require.False(t, seen[number], "número repetido: %s", number)
		seen[number] = true

		ref, err := refnum.Parse(number)
		require.NoError(t, err)
		assert.Equal(t, i, ref.Sequence)
	}
}

func TestIssue_SeriesIndependientesPorTipoYFecha(t *testing.T) {
	repo := newFakeSequenceRepo()
	uc := numbering.NewIssueNumberUseCase(repo)
	lunes := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	martes := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)

	n1, err := uc.Issue(context.Background(), refnum.DocPurchase, lunes)
	require.NoError(t, err)
	n2, err := uc.Issue(context.Background(), refnum.DocSale, lunes)
	require.NoError(t, err)
	n3, err := uc.Issue(context.Background(), refnum.DocPurchase, martes)
	require.NoError(t, err)

	// cada serie arranca en 001: el consecutivo es por (prefijo, fecha)
	assert.Equal(t, "PUR-20240115-001", n1)
	assert.Equal(t, "SAL-20240115-001", n2)
	assert.Equal(t, "PUR-20240116-001", n3)
}

func TestPeek_NoReservaElNumero(t *testing.T) {
	repo := newFakeSequenceRepo()
	uc := numbering.NewIssueNumberUseCase(repo)
	date := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

	_, err := uc.Issue(context.Background(), refnum.DocPurchase, date)
	require.NoError(t, err)

	// Peek repetido siempre anuncia el mismo siguiente número
	peek1, err := uc.Peek(context.Background(), refnum.DocPurchase, date)
	require.NoError(t, err)
	peek2, err := uc.Peek(context.Background(), refnum.DocPurchase, date)
	require.NoError(t, err)
	assert.Equal(t, "PUR-20240115-002", peek1)
	assert.Equal(t, peek1, peek2)

	// y el siguiente Issue emite exactamente ese número
	issued, err := uc.Issue(context.Background(), refnum.DocPurchase, date)
	require.NoError(t, err)
	assert.Equal(t, peek1, issued)
}

func TestIssue_PropagaErrorDelAsignador(t *testing.T) {
	repo := newFakeSequenceRepo()
	repo.err = errors.New("conexión perdida")
	uc := numbering.NewIssueNumberUseCase(repo)

	_, err := uc.Issue(context.Background(), refnum.DocPurchase, time.Now())
	require.Error(t, err)
}
