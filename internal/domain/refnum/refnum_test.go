package refnum_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/refnum"
)

var enero15 = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

// ──────────────────────────────────────────────────────────────────────────────
// Format
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_RellenaATresDigitos(t *testing.T) {
	assert.Equal(t, "PUR-20240115-007", refnum.Format(refnum.DocPurchase, enero15, 7))
	assert.Equal(t, "SAL-20240115-042", refnum.Format(refnum.DocSale, enero15, 42))
	assert.Equal(t, "PUR-20240115-999", refnum.Format(refnum.DocPurchase, enero15, 999))
}

// A partir de 1000 el ancho crece sin truncar. Decisión documentada: Format
// expande, Parse sigue estricto a 3 dígitos (el límite operativo es 999
// documentos por día y prefijo).
func TestFormat_ExpandeAnchoPasado999(t *testing.T) {
	s := refnum.Format(refnum.DocPurchase, enero15, 1000)
	assert.Equal(t, "PUR-20240115-1000", s)

	_, err := refnum.Parse(s)
	assert.ErrorIs(t, err, domain.ErrInvalidReference,
		"el parser estricto no acepta consecutivos de 4 dígitos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Parse
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_NumeroValido(t *testing.T) {
	ref, err := refnum.Parse("SAL-20231129-015")
	require.NoError(t, err)
	assert.Equal(t, refnum.DocSale, ref.Type)
	assert.Equal(t, time.Date(2023, 11, 29, 0, 0, 0, 0, time.UTC), ref.Date)
	assert.Equal(t, 15, ref.Sequence)
}

func TestParse_RechazaMalformados(t *testing.T) {
	cases := []string{
		"",
		"PUR-20240115",        // sin consecutivo
		"PUR-20240115-07",     // consecutivo de 2 dígitos
		"PUR-20240115-0007",   // consecutivo de 4 dígitos
		"XXX-20240115-001",    // prefijo desconocido
		"pur-20240115-001",    // minúsculas
		"PUR-2024015-001",     // fecha de 7 dígitos
		"PUR-20241301-001",    // mes 13
		"PUR-20240230-001",    // 30 de febrero
		"PUR_20240115_001",    // separador incorrecto
		" PUR-20240115-001",   // espacio inicial
		"PUR-20240115-001 ",   // espacio final
		"PUR-20240115-001-01", // sufijo extra
	}
	for _, s := range cases {
		t.Run(fmt.Sprintf("%q", s), func(t *testing.T) {
			_, err := refnum.Parse(s)
			assert.ErrorIs(t, err, domain.ErrInvalidReference)
		})
	}
}

// Ley de ida y vuelta: Parse(Format(t, d, s)) reproduce tipo, fecha y
// consecutivo para todo consecutivo 1..999.
func TestRoundTrip_FormatParse(t *testing.T) {
	dates := []time.Time{
		enero15,
		time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), // bisiesto
		time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC),
	}
	for _, docType := range []refnum.DocType{refnum.DocPurchase, refnum.DocSale} {
		for _, d := range dates {
			for _, seq := range []int{1, 9, 10, 99, 100, 500, 999} {
				s := refnum.Format(docType, d, seq)
				ref, err := refnum.Parse(s)
				require.NoError(t, err, "Format emitió %q y Parse debe aceptarlo", s)
				assert.Equal(t, docType, ref.Type)
				assert.True(t, ref.Date.Equal(d), "fecha: esperada %v, obtenida %v", d, ref.Date)
				assert.Equal(t, seq, ref.Sequence)
				assert.Equal(t, s, ref.String(), "la reconstrucción debe ser idéntica")
			}
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Next
// ──────────────────────────────────────────────────────────────────────────────

func TestNext_Monotonico(t *testing.T) {
	lookup := func(prefix, date string) (int, error) {
		assert.Equal(t, "PUR", prefix)
		assert.Equal(t, "20240101", date)
		return 7, nil
	}
	got, err := refnum.Next(refnum.DocPurchase, time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC), lookup)
	require.NoError(t, err)
	assert.Equal(t, "PUR-20240101-008", got)
}

func TestNext_PrimeroDelDia(t *testing.T) {
	lookup := func(prefix, date string) (int, error) { return 0, nil }
	got, err := refnum.Next(refnum.DocSale, enero15, lookup)
	require.NoError(t, err)
	assert.Equal(t, "SAL-20240115-001", got)
}

func TestNext_TipoDesconocido(t *testing.T) {
	_, err := refnum.Next(refnum.DocType("INVOICE"), enero15, func(string, string) (int, error) { return 0, nil })
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNext_PropagaErrorDelLookup(t *testing.T) {
	boom := fmt.Errorf("db caída")
	_, err := refnum.Next(refnum.DocPurchase, enero15, func(string, string) (int, error) { return 0, boom })
	assert.ErrorIs(t, err, boom)
}

// ──────────────────────────────────────────────────────────────────────────────
// DateRangePatterns
// ──────────────────────────────────────────────────────────────────────────────

func TestDateRangePatterns_RangoInclusivo(t *testing.T) {
	start := time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC)
	got := refnum.DateRangePatterns(refnum.DocPurchase, start, end)
	assert.Equal(t, []string{
		"PUR-20240130-*",
		"PUR-20240131-*",
		"PUR-20240201-*",
		"PUR-20240202-*",
	}, got, "ambos extremos incluidos, cruce de mes correcto")
}

func TestDateRangePatterns_UnSoloDia(t *testing.T) {
	got := refnum.DateRangePatterns(refnum.DocSale, enero15, enero15)
	assert.Equal(t, []string{"SAL-20240115-*"}, got)
}

func TestDateRangePatterns_RangoInvertidoVacio(t *testing.T) {
	got := refnum.DateRangePatterns(refnum.DocPurchase, enero15, enero15.AddDate(0, 0, -1))
	assert.Empty(t, got, "start > end emite cero patrones y no itera")
}

// Las horas del día no deben afectar el conteo de días del rango.
func TestDateRangePatterns_IgnoraHoras(t *testing.T) {
	start := time.Date(2024, 1, 15, 23, 59, 0, 0, time.UTC)
	end := time.Date(2024, 1, 16, 0, 1, 0, 0, time.UTC)
	got := refnum.DateRangePatterns(refnum.DocPurchase, start, end)
	assert.Len(t, got, 2)
}
