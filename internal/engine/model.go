package engine

import (
	"context"
	"log"
	"math"
	"math/rand"
	"sort"
)

// targetScale: las celdas de la matriz se reescalan a ~[0,1] antes de
// entrenar porque la salida del modelo es una sigmoide.
const targetScale = 10.0

// TrainConfig agrupa los hiperparámetros del modelo colaborativo.
type TrainConfig struct {
	EmbeddingDim    int
	Hidden1         int
	Hidden2         int
	Epochs          int
	LearningRate    float64
	ValidationSplit float64
	Seed            int64
}

func DefaultTrainConfig() TrainConfig {
	return TrainConfig{
		EmbeddingDim:    50,
		Hidden1:         128,
		Hidden2:         64,
		Epochs:          10,
		// paso para SGD puro; con un optimizador adaptativo sería 0.001
		LearningRate:    0.05,
		ValidationSplit: 0.2,
		Seed:            1,
	}
}

// Model es el predictor colaborativo: embedding por usuario y por contenido,
// concatenados y pasados por dos capas densas ReLU que colapsan a una salida
// sigmoide. Se entrena siempre desde cero sobre una matriz de interacciones;
// no guarda estado entre entrenamientos.
type Model struct {
	users    *IDIndex
	contents *IDIndex

	userEmb    [][]float64
	contentEmb [][]float64
	w1         [][]float64 // (2*dim) x h1
	b1         []float64
	w2         [][]float64 // h1 x h2
	b2         []float64
	w3         []float64 // h2
	b3         float64

	cfg TrainConfig
}

type sample struct {
	u, c   int
	target float64
}

// Train ajusta el modelo por descenso de gradiente (SGD, pérdida MSE) sobre
// las celdas observadas (> 0) de la matriz, reservando una fracción para
// validación. Es una función pura matriz -> modelo; el ctx se chequea entre
// épocas para que el orquestador pueda acotar el tier personalizado.
func Train(ctx context.Context, m *InteractionMatrix, cfg TrainConfig) (*Model, error) {
	if m.IsEmpty() {
		return nil, ErrInsufficientData
	}

	var samples []sample
	for u := 0; u < m.Users.Len(); u++ {
		for c := 0; c < m.Contents.Len(); c++ {
			if cell := m.Cells[u][c]; cell > 0 {
				samples = append(samples, sample{u: u, c: c, target: cell / targetScale})
			}
		}
	}
	if len(samples) == 0 {
		return nil, ErrInsufficientData
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	model := newModel(m, cfg, rng)

	// split de validación
	rng.Shuffle(len(samples), func(i, j int) { samples[i], samples[j] = samples[j], samples[i] })
	valN := int(cfg.ValidationSplit * float64(len(samples)))
	val := samples[:valN]
	train := samples[valN:]
	if len(train) == 0 {
		train = samples
		val = nil
	}

	var trainLoss, valLoss float64
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		rng.Shuffle(len(train), func(i, j int) { train[i], train[j] = train[j], train[i] })

		trainLoss = 0
		for _, s := range train {
			trainLoss += model.step(s)
		}
		trainLoss /= float64(len(train))

		if math.IsNaN(trainLoss) || math.IsInf(trainLoss, 0) {
			return nil, ErrTrainingFailed
		}
	}

	if len(val) > 0 {
		for _, s := range val {
			y := model.forwardOnly(s.u, s.c)
			d := y - s.target
			valLoss += d * d
		}
		valLoss /= float64(len(val))
	}
	log.Printf("[engine] entrenamiento OK: samples=%d (val=%d) epochs=%d loss=%.4f val_loss=%.4f",
		len(samples), len(val), cfg.Epochs, trainLoss, valLoss)

	return model, nil
}

// escala uniforme de los embeddings al inicializar
const embInitScale = 0.5

func newModel(m *InteractionMatrix, cfg TrainConfig, rng *rand.Rand) *Model {
	dim := cfg.EmbeddingDim
	in := 2 * dim

	model := &Model{
		users:      m.Users,
		contents:   m.Contents,
		userEmb:    randMatrix(rng, m.Users.Len(), dim, embInitScale),
		contentEmb: randMatrix(rng, m.Contents.Len(), dim, embInitScale),
		w1:         heMatrix(rng, in, cfg.Hidden1),
		b1:         make([]float64, cfg.Hidden1),
		w2:         heMatrix(rng, cfg.Hidden1, cfg.Hidden2),
		b2:         make([]float64, cfg.Hidden2),
		w3:         heVector(rng, cfg.Hidden2),
		cfg:        cfg,
	}
	return model
}

func randMatrix(rng *rand.Rand, rows, cols int, scale float64) [][]float64 {
	m := make([][]float64, rows)
	for i := range m {
		m[i] = randVector(rng, cols, scale)
	}
	return m
}

func randVector(rng *rand.Rand, n int, scale float64) []float64 {
	v := make([]float64, n)
	for i := range v {
		v[i] = (rng.Float64()*2 - 1) * scale
	}
	return v
}

// heMatrix inicializa una capa densa con escala He (sqrt(2/fan_in)): sin
// escalar por fan-in, la cadena de gradiente w1·w2·w3 hacia los embeddings
// se desvanece y el modelo colapsa al target promedio vía el bias de salida.
func heMatrix(rng *rand.Rand, fanIn, fanOut int) [][]float64 {
	return randMatrix(rng, fanIn, fanOut, math.Sqrt(2.0/float64(fanIn)))
}

func heVector(rng *rand.Rand, fanIn int) []float64 {
	return randVector(rng, fanIn, math.Sqrt(2.0/float64(fanIn)))
}

// forward calcula la pasada completa conservando activaciones intermedias
// para el backward.
func (mo *Model) forward(u, c int) (x, z1, h1, z2, h2 []float64, y float64) {
	dim := mo.cfg.EmbeddingDim
	x = make([]float64, 2*dim)
	copy(x[:dim], mo.userEmb[u])
	copy(x[dim:], mo.contentEmb[c])

	z1 = make([]float64, mo.cfg.Hidden1)
	h1 = make([]float64, mo.cfg.Hidden1)
	for j := range z1 {
		s := mo.b1[j]
		for i, xi := range x {
			s += mo.w1[i][j] * xi
		}
		z1[j] = s
		if s > 0 {
			h1[j] = s
		}
	}

	z2 = make([]float64, mo.cfg.Hidden2)
	h2 = make([]float64, mo.cfg.Hidden2)
	for j := range z2 {
		s := mo.b2[j]
		for i, hi := range h1 {
			s += mo.w2[i][j] * hi
		}
		z2[j] = s
		if s > 0 {
			h2[j] = s
		}
	}

	z3 := mo.b3
	for i, hi := range h2 {
		z3 += mo.w3[i] * hi
	}
	y = sigmoid(z3)
	return
}

func (mo *Model) forwardOnly(u, c int) float64 {
	_, _, _, _, _, y := mo.forward(u, c)
	return y
}

// step hace forward + backward de un sample y devuelve su pérdida (MSE).
func (mo *Model) step(s sample) float64 {
	x, z1, h1, z2, h2, y := mo.forward(s.u, s.c)

	diff := y - s.target
	loss := diff * diff

	lr := mo.cfg.LearningRate
	dim := mo.cfg.EmbeddingDim

	// salida sigmoide con MSE
	dz3 := 2 * diff * y * (1 - y)

	dh2 := make([]float64, len(h2))
	for i := range h2 {
		dh2[i] = mo.w3[i] * dz3
		mo.w3[i] -= lr * dz3 * h2[i]
	}
	mo.b3 -= lr * dz3

	dz2 := make([]float64, len(z2))
	for i := range z2 {
		if z2[i] > 0 {
			dz2[i] = dh2[i]
		}
	}

	dh1 := make([]float64, len(h1))
	for i := range h1 {
		var g float64
		for j := range dz2 {
			g += mo.w2[i][j] * dz2[j]
			mo.w2[i][j] -= lr * dz2[j] * h1[i]
		}
		dh1[i] = g
	}
	for j := range dz2 {
		mo.b2[j] -= lr * dz2[j]
	}

	dz1 := make([]float64, len(z1))
	for i := range z1 {
		if z1[i] > 0 {
			dz1[i] = dh1[i]
		}
	}

	dx := make([]float64, len(x))
	for i := range x {
		var g float64
		for j := range dz1 {
			g += mo.w1[i][j] * dz1[j]
			mo.w1[i][j] -= lr * dz1[j] * x[i]
		}
		dx[i] = g
	}
	for j := range dz1 {
		mo.b1[j] -= lr * dz1[j]
	}

	// gradiente hacia los embeddings
	for i := 0; i < dim; i++ {
		mo.userEmb[s.u][i] -= lr * dx[i]
		mo.contentEmb[s.c][i] -= lr * dx[dim+i]
	}

	return loss
}

// Predict puntúa cada contentID pedido para el usuario dado. Los contenidos
// que no estuvieron en la matriz de entrenamiento se omiten del resultado.
func (mo *Model) Predict(userID int, contentIDs []int) (map[int]float64, error) {
	u, ok := mo.users.Pos(userID)
	if !ok {
		return nil, ErrUnknownItem
	}
	out := make(map[int]float64, len(contentIDs))
	for _, id := range contentIDs {
		c, ok := mo.contents.Pos(id)
		if !ok {
			continue
		}
		out[id] = mo.forwardOnly(u, c)
	}
	return out, nil
}

// RecommendForUser puntúa todas las columnas de contenido para el usuario y
// devuelve los topN ids en orden descendente de score.
func (mo *Model) RecommendForUser(userID, topN int) ([]ScoredContent, error) {
	u, ok := mo.users.Pos(userID)
	if !ok {
		return nil, ErrUnknownItem
	}

	scored := make([]ScoredContent, 0, mo.contents.Len())
	for c := 0; c < mo.contents.Len(); c++ {
		scored = append(scored, ScoredContent{
			ContentID: mo.contents.ID(c),
			Score:     mo.forwardOnly(u, c),
		})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].Score > scored[j].Score })
	if len(scored) > topN {
		scored = scored[:topN]
	}
	return scored, nil
}

// ScoredContent es un contenido con su afinidad predicha.
type ScoredContent struct {
	ContentID int
	Score     float64
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
