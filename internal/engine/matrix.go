package engine

import (
	"math"
	"sort"
	"time"

	"contentrec/internal/models"
)

// Pesos de la fórmula de afinidad observada en producción.
//
// TODO: revisar con producto: ageWeight premia las interacciones ANTIGUAS
// (a más días, más peso), lo contrario de un decaimiento por recencia. Se
// reproduce tal cual está definida, no se corrige aquí.
const (
	ratingWeight = 0.6
	ageWeight    = 0.2

	// DefaultFavoriteAffinity es el rating implícito de un favorito sin
	// rating explícito. Marcar favorito se trata como señal máxima;
	// si producto decide que debe ser neutral, se cambia solo aquí.
	DefaultFavoriteAffinity = 5.0
)

// IDIndex es el mapeo bidireccional id estable ↔ posición de matriz.
// Se reconstruye junto con cada matriz para que entrenamiento e inferencia
// nunca usen mapeos desalineados.
type IDIndex struct {
	ids []int
	pos map[int]int
}

func newIDIndex(idSet map[int]struct{}) *IDIndex {
	ids := make([]int, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	pos := make(map[int]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return &IDIndex{ids: ids, pos: pos}
}

// Pos devuelve la posición de un id, o false si no fue observado.
func (ix *IDIndex) Pos(id int) (int, bool) {
	p, ok := ix.pos[id]
	return p, ok
}

// ID devuelve el id estable de una posición.
func (ix *IDIndex) ID(i int) int { return ix.ids[i] }

// IDs devuelve todos los ids en el orden de la matriz.
func (ix *IDIndex) IDs() []int { return ix.ids }

func (ix *IDIndex) Len() int { return len(ix.ids) }

// InteractionMatrix es la matriz usuario×contenido de afinidad ponderada.
// Las dimensiones salen de los ids observados en las interacciones, no del
// catálogo completo. Celda 0 = sin interacción (indistinguible de "sin
// señal"; limitación conocida del modelo, no se "arregla" acá).
type InteractionMatrix struct {
	Users    *IDIndex
	Contents *IDIndex
	Cells    [][]float64
}

// BuildInteractionMatrix construye la matriz desde la vista fusionada de
// favoritos y ratings. Celda = rating*0.6 + días_completos*0.2; un
// favorito sin rating usa DefaultFavoriteAffinity. Pares repetidos se
// promedian.
func BuildInteractionMatrix(interactions []models.Interaction, now time.Time) *InteractionMatrix {
	userSet := make(map[int]struct{})
	contentSet := make(map[int]struct{})
	for _, it := range interactions {
		userSet[it.UserID] = struct{}{}
		contentSet[it.ContentID] = struct{}{}
	}

	m := &InteractionMatrix{
		Users:    newIDIndex(userSet),
		Contents: newIDIndex(contentSet),
	}

	nu, nc := m.Users.Len(), m.Contents.Len()
	m.Cells = make([][]float64, nu)
	sums := make([][]float64, nu)
	counts := make([][]int, nu)
	for i := 0; i < nu; i++ {
		m.Cells[i] = make([]float64, nc)
		sums[i] = make([]float64, nc)
		counts[i] = make([]int, nc)
	}

	for _, it := range interactions {
		u, _ := m.Users.Pos(it.UserID)
		c, _ := m.Contents.Pos(it.ContentID)

		rating := DefaultFavoriteAffinity
		if it.Rating != nil {
			rating = *it.Rating
		}

		// días COMPLETOS de antigüedad (la fracción del día no puntúa);
		// antigüedad negativa (timestamp futuro) se trunca a cero
		ageDays := math.Floor(now.Sub(time.Unix(it.Timestamp, 0)).Hours() / 24)
		if ageDays < 0 {
			ageDays = 0
		}

		sums[u][c] += rating*ratingWeight + ageDays*ageWeight
		counts[u][c]++
	}

	for i := 0; i < nu; i++ {
		for j := 0; j < nc; j++ {
			if counts[i][j] > 0 {
				m.Cells[i][j] = sums[i][j] / float64(counts[i][j])
			}
		}
	}
	return m
}

// IsEmpty indica si la matriz no tiene ninguna dimensión observada.
func (m *InteractionMatrix) IsEmpty() bool {
	return m == nil || m.Users.Len() == 0 || m.Contents.Len() == 0
}

// HasUser indica si el usuario fue observado en las interacciones (si no,
// es cold start y el orquestador ni siquiera consulta el modelo).
func (m *InteractionMatrix) HasUser(userID int) bool {
	if m == nil {
		return false
	}
	_, ok := m.Users.Pos(userID)
	return ok
}
