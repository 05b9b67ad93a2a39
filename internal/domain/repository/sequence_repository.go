package repository

// SequenceRepository define el puerto del asignador de consecutivos por
// (prefijo, fecha YYYYMMDD). NextValue debe ser un incremento atómico en el
// almacén (una fila por par, UPDATE ... RETURNING) para que dos callers
// concurrentes nunca reciban el mismo valor.
type SequenceRepository interface {
	// LastIssued devuelve el último consecutivo emitido, 0 si ninguno.
	LastIssued(prefix, date string) (int, error)
	// NextValue reserva y devuelve el siguiente consecutivo.
	NextValue(prefix, date string) (int, error)
}
