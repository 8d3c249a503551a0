package engine

import "math"

// CategoryVote es un voto ya resuelto a nombre de categoría (el join
// categoría id -> nombre lo hace la capa de servicio).
type CategoryVote struct {
	Category string
	Vote     int
}

// Consensus convierte los votos crudos de un contenido en la distribución
// normalizada de consenso: solo categorías con suma neta positiva, cada una
// con share = suma / total_positivo, redondeado a 4 decimales.
//
// Sin votos, o sin ninguna categoría con suma positiva, devuelve un mapa
// vacío. Por el redondeo, las shares pueden no sumar exactamente 1.
func Consensus(votes []CategoryVote) map[string]float64 {
	sums := make(map[string]int)
	for _, v := range votes {
		sums[v.Category] += v.Vote
	}

	var positiveTotal int
	for _, s := range sums {
		if s > 0 {
			positiveTotal += s
		}
	}
	if positiveTotal == 0 {
		return map[string]float64{}
	}

	out := make(map[string]float64)
	for cat, s := range sums {
		if s <= 0 {
			continue
		}
		out[cat] = math.Round(float64(s)/float64(positiveTotal)*10000) / 10000
	}
	return out
}
