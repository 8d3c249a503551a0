package engine

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"contentrec/internal/models"
)

// FeatureIndex es el espacio vectorial TF-IDF sobre el catálogo publicado
// más la matriz densa de cosenos entre documentos. Se reconstruye entera en
// cada build; nunca se parchea incrementalmente.
type FeatureIndex struct {
	ids []int       // contentIds en el orden de las filas
	pos map[int]int // contentId -> fila
	sim [][]float64 // matriz simétrica de similitud coseno
}

// BuildFeatureIndex vectoriza título + resumen + autor de cada contenido y
// calcula la matriz de similitud coseno de todo el corpus.
func BuildFeatureIndex(contents []models.ContentDoc) *FeatureIndex {
	ix := &FeatureIndex{
		ids: make([]int, 0, len(contents)),
		pos: make(map[int]int, len(contents)),
	}

	docs := make([][]string, 0, len(contents))
	for _, c := range contents {
		ix.pos[c.ContentID] = len(ix.ids)
		ix.ids = append(ix.ids, c.ContentID)
		docs = append(docs, tokenize(c.Title+" "+c.Summary+" "+c.AuthorName))
	}

	vectors := tfidfVectors(docs)

	// con los vectores ya normalizados L2, el coseno es el producto punto
	n := len(vectors)
	ix.sim = make([][]float64, n)
	for i := range ix.sim {
		ix.sim[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		ix.sim[i][i] = 1
		for j := i + 1; j < n; j++ {
			s := dot(vectors[i], vectors[j])
			ix.sim[i][j] = s
			ix.sim[j][i] = s
		}
	}
	return ix
}

// Similar devuelve hasta topN contentIds ordenados por similitud
// descendente, excluyendo el propio contenido consultado.
//
// Un id desconocido devuelve slice vacío, no error: el tier de fallback del
// orquestador trata ambos casos igual. Un índice sin construir sí es error.
func (ix *FeatureIndex) Similar(contentID, topN int) ([]int, error) {
	if ix == nil || ix.sim == nil {
		return nil, ErrNotBuilt
	}
	row, ok := ix.pos[contentID]
	if !ok {
		// ErrUnknownItem degradado a vacío
		return []int{}, nil
	}
	if len(ix.ids) < 2 || topN <= 0 {
		return []int{}, nil
	}

	type scored struct {
		id    int
		score float64
	}
	candidates := make([]scored, 0, len(ix.ids)-1)
	for i, id := range ix.ids {
		if i == row {
			continue // el self-match (score 1.0) no se devuelve nunca
		}
		candidates = append(candidates, scored{id: id, score: ix.sim[row][i]})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	out := make([]int, len(candidates))
	for i, c := range candidates {
		out[i] = c.id
	}
	return out, nil
}

// Score expone la similitud cruda entre dos contenidos indexados.
func (ix *FeatureIndex) Score(a, b int) (float64, error) {
	if ix == nil || ix.sim == nil {
		return 0, ErrNotBuilt
	}
	i, ok := ix.pos[a]
	if !ok {
		return 0, ErrUnknownItem
	}
	j, ok := ix.pos[b]
	if !ok {
		return 0, ErrUnknownItem
	}
	return ix.sim[i][j], nil
}

// Len devuelve el tamaño del corpus indexado.
func (ix *FeatureIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.ids)
}

// tokenize: minúsculas, separa por no-alfanumérico, descarta tokens de un
// solo carácter y stop words (mismo criterio que un vectorizador estándar).
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// tfidfVectors calcula un vector TF-IDF L2-normalizado por documento:
// tf = conteo crudo del término, idf suavizado = ln((1+n)/(1+df)) + 1.
func tfidfVectors(docs [][]string) []map[string]float64 {
	n := len(docs)

	counts := make([]map[string]float64, n)
	df := make(map[string]int)
	for i, doc := range docs {
		tf := make(map[string]float64, len(doc))
		for _, tok := range doc {
			tf[tok]++
		}
		for tok := range tf {
			df[tok]++
		}
		counts[i] = tf
	}

	idf := make(map[string]float64, len(df))
	for tok, d := range df {
		idf[tok] = math.Log(float64(1+n)/float64(1+d)) + 1
	}

	vectors := make([]map[string]float64, n)
	for i, tf := range counts {
		vec := make(map[string]float64, len(tf))
		var norm float64
		for tok, c := range tf {
			w := c * idf[tok]
			vec[tok] = w
			norm += w * w
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for tok := range vec {
				vec[tok] /= norm
			}
		}
		vectors[i] = vec
	}
	return vectors
}

func dot(a, b map[string]float64) float64 {
	// iteramos sobre el más corto
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for tok, wa := range a {
		if wb, ok := b[tok]; ok {
			sum += wa * wb
		}
	}
	return sum
}
