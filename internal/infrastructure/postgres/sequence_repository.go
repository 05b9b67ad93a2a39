package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo asignador de consecutivos por (prefijo, fecha) sobre PostgreSQL.
// Una fila por par; NextValue hace el incremento en una sola sentencia atómica
// (INSERT ... ON CONFLICT DO UPDATE ... RETURNING) para que dos callers
// concurrentes nunca reciban el mismo consecutivo.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

func (r *SequenceRepo) LastIssued(prefix, date string) (int, error) {
	var last int
	err := r.q.QueryRow(context.Background(),
		`SELECT last_value FROM document_sequences WHERE prefix = $1 AND seq_date = $2`,
		prefix, date,
	).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("last issued sequence: %w", err)
	}
	return last, nil
}

func (r *SequenceRepo) NextValue(prefix, date string) (int, error) {
	query := `
		INSERT INTO document_sequences (prefix, seq_date, last_value)
		VALUES ($1, $2, 1)
		ON CONFLICT (prefix, seq_date)
		DO UPDATE SET last_value = document_sequences.last_value + 1
		RETURNING last_value`
	var next int
	err := r.q.QueryRow(context.Background(), query, prefix, date).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next sequence value: %w", err)
	}
	return next, nil
}
