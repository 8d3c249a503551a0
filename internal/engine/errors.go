package engine

import "errors"

// Taxonomía de errores del motor. El orquestador decide qué se degrada a
// resultado vacío / fallback y qué se propaga; el motor solo los señala.
var (
	// ErrNotBuilt: consulta antes de construir el índice.
	ErrNotBuilt = errors.New("engine: índice no construido")
	// ErrUnknownItem: id ausente del corpus indexado.
	ErrUnknownItem = errors.New("engine: contenido desconocido")
	// ErrInsufficientData: matriz vacía o sin celdas positivas.
	ErrInsufficientData = errors.New("engine: datos insuficientes para entrenar")
	// ErrTrainingFailed: el fit divergió (loss NaN/Inf).
	ErrTrainingFailed = errors.New("engine: el entrenamiento divergió")
)
