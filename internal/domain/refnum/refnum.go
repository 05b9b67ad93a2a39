// Package refnum genera y parsea números de referencia legibles para
// documentos de negocio, con el formato estricto PREFIX-YYYYMMDD-SEQ
// (ej: PUR-20240115-007). El consecutivo SEQ está acotado al par
// (prefijo, fecha) y se rellena con ceros a 3 dígitos.
package refnum

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/jhoicas/almacen-api/internal/domain"
)

// DocType identifica el tipo de documento a numerar.
type DocType string

// Tipos de documento soportados.
const (
	DocPurchase DocType = "PURCHASE" // órdenes de compra
	DocSale     DocType = "SALE"     // órdenes de venta
)

// Prefijos de 3 letras por tipo de documento.
const (
	prefixPurchase = "PUR"
	prefixSale     = "SAL"
)

const dateLayout = "20060102"

// Patrón estricto: prefijo conocido, fecha de exactamente 8 dígitos y
// consecutivo de exactamente 3 dígitos. Un consecutivo de 4 dígitos emitido
// por Format (ver nota en Format) NO es parseable; la asimetría se conserva
// a propósito para no aceptar números que el sistema nunca debió emitir.
var refPattern = regexp.MustCompile(`^(PUR|SAL)-(\d{8})-(\d{3})$`)

// Ref es un número de referencia descompuesto.
type Ref struct {
	Type     DocType
	Date     time.Time // medianoche UTC del día del documento
	Sequence int
}

// String reconstruye el número con Format.
func (r Ref) String() string {
	return Format(r.Type, r.Date, r.Sequence)
}

// Prefix devuelve el prefijo de 3 letras del tipo, o "" si el tipo es desconocido.
func Prefix(t DocType) string {
	switch t {
	case DocPurchase:
		return prefixPurchase
	case DocSale:
		return prefixSale
	}
	return ""
}

// typeForPrefix es el inverso de Prefix para el parser.
func typeForPrefix(p string) DocType {
	switch p {
	case prefixPurchase:
		return DocPurchase
	case prefixSale:
		return DocSale
	}
	return ""
}

// Format construye el número PREFIX-YYYYMMDD-SEQ. Determinista y puro.
// El consecutivo se rellena a 3 dígitos; a partir de 1000 el ancho crece
// sin truncar (PUR-20240101-1000). Parse no acepta ese ancho extra: el
// límite práctico es 999 documentos por día y prefijo.
func Format(t DocType, date time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%03d", Prefix(t), date.Format(dateLayout), sequence)
}

// Parse valida y descompone un número de referencia. Acepta exactamente la
// salida de Format para consecutivos 1..999 y rechaza todo lo demás
// (fecha inválida incluida: PUR-20241301-001 no es un número válido).
func Parse(s string) (Ref, error) {
	m := refPattern.FindStringSubmatch(s)
	if m == nil {
		return Ref{}, fmt.Errorf("%w: %q no cumple PREFIX-YYYYMMDD-SEQ", domain.ErrInvalidReference, s)
	}
	date, err := time.ParseInLocation(dateLayout, m[2], time.UTC)
	if err != nil {
		return Ref{}, fmt.Errorf("%w: fecha %q inválida", domain.ErrInvalidReference, m[2])
	}
	seq, err := strconv.Atoi(m[3])
	if err != nil {
		return Ref{}, fmt.Errorf("%w: consecutivo %q inválido", domain.ErrInvalidReference, m[3])
	}
	return Ref{Type: typeForPrefix(m[1]), Date: date, Sequence: seq}, nil
}

// LastSequenceFunc devuelve el último consecutivo emitido para (prefijo, fecha
// YYYYMMDD), 0 si aún no se ha emitido ninguno. La serialización frente a
// callers concurrentes es responsabilidad del almacén que la implementa
// (ver SequenceRepository: incremento atómico por fila).
type LastSequenceFunc func(prefix, date string) (int, error)

// Next calcula el siguiente número para (tipo, fecha) consultando el último
// consecutivo emitido. No garantiza unicidad por sí mismo bajo concurrencia;
// el lookup debe estar respaldado por un incremento atómico o la misma
// transacción del documento.
func Next(t DocType, date time.Time, last LastSequenceFunc) (string, error) {
	prefix := Prefix(t)
	if prefix == "" {
		return "", fmt.Errorf("%w: tipo de documento %q desconocido", domain.ErrInvalidInput, t)
	}
	seq, err := last(prefix, date.Format(dateLayout))
	if err != nil {
		return "", fmt.Errorf("consultar último consecutivo: %w", err)
	}
	return Format(t, date, seq+1), nil
}

// DateRangePatterns emite un patrón comodín PREFIX-YYYYMMDD-* por cada día
// del rango inclusivo [start, end], para consultas LIKE por rango de fechas.
// start == end emite exactamente un patrón; start > end emite cero.
func DateRangePatterns(t DocType, start, end time.Time) []string {
	prefix := Prefix(t)
	if prefix == "" {
		return nil
	}
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)

	var patterns []string
	for !day.After(last) {
		patterns = append(patterns, fmt.Sprintf("%s-%s-*", prefix, day.Format(dateLayout)))
		day = day.AddDate(0, 0, 1)
	}
	return patterns
}
