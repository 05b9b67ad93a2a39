package numbering

import (
	"context"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/refnum"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// IssueNumberUseCase emite números de referencia respaldados por el asignador
// persistente. A diferencia de refnum.Next sobre un lookup de solo lectura,
// Issue reserva el consecutivo con un incremento atómico por (prefijo, fecha):
// dos callers concurrentes nunca reciben el mismo número.
type IssueNumberUseCase struct {
	sequenceRepo repository.SequenceRepository
}

// NewIssueNumberUseCase construye el caso de uso.
func NewIssueNumberUseCase(sequenceRepo repository.SequenceRepository) *IssueNumberUseCase {
	return &IssueNumberUseCase{sequenceRepo: sequenceRepo}
}

// Issue reserva y devuelve el siguiente número para (tipo, fecha).
func (uc *IssueNumberUseCase) Issue(ctx context.Context, docType refnum.DocType, date time.Time) (string, error) {
	return refnum.Next(docType, date, func(prefix, day string) (int, error) {
		// NextValue ya incrementa; restamos 1 porque Next vuelve a sumar.
		next, err := uc.sequenceRepo.NextValue(prefix, day)
		if err != nil {
			return 0, err
		}
		return next - 1, nil
	})
}

// Peek devuelve el número que se emitiría a continuación sin reservarlo
// (solo informativo; no usar para numerar documentos).
func (uc *IssueNumberUseCase) Peek(ctx context.Context, docType refnum.DocType, date time.Time) (string, error) {
	return refnum.Next(docType, date, uc.sequenceRepo.LastIssued)
}
