package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"contentrec/internal/cache"
	"contentrec/internal/engine"
	"contentrec/internal/models"

	"golang.org/x/sync/singleflight"
)

const (
	DefaultK = 10
	MaxK     = 50 // por seguridad, no deja pedir 1000 ítems
)

// Contratos de lectura que consume el orquestador. Los implementan los
// repositorios de Mongo; en tests se reemplazan por fakes en memoria.

type CatalogReader interface {
	ListPublished(ctx context.Context) ([]models.ContentDoc, error)
	ListTopByPopularity(ctx context.Context, n int) ([]models.ContentDoc, error)
}

type InteractionReader interface {
	ListInteractions(ctx context.Context) ([]models.Interaction, error)
	ListUserIDs(ctx context.Context) ([]int, error)
}

type RecommendationHistory interface {
	Insert(ctx context.Context, rec *models.Recommendation) error
	FindByUser(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error)
}

// RecommendService orquesta el pipeline de recomendación por tiers:
//
//	1) cache hit (bucket de hora vigente) → se devuelve tal cual
//	2) personalizado: rebuild de features + matriz, reentrenamiento desde
//	   cero e inferencia; cualquier fallo del tier cae al 3, nunca al caller
//	3) fallback por popularidad (favoritos desc, rating promedio desc)
//
// Los misses concurrentes del mismo usuario se coalescen en un solo
// reentrenamiento (singleflight).
type RecommendService struct {
	catalog CatalogReader
	inters  InteractionReader
	history RecommendationHistory
	cache   *cache.RecCache

	trainCfg      engine.TrainConfig
	refreshEpochs int
	timeout       time.Duration

	group singleflight.Group
}

func NewRecommendService(
	catalog CatalogReader,
	inters InteractionReader,
	history RecommendationHistory,
	recCache *cache.RecCache,
	trainCfg engine.TrainConfig,
	refreshEpochs int,
	timeout time.Duration,
) *RecommendService {
	return &RecommendService{
		catalog:       catalog,
		inters:        inters,
		history:       history,
		cache:         recCache,
		trainCfg:      trainCfg,
		refreshEpochs: refreshEpochs,
		timeout:       timeout,
	}
}

type RecRequest struct {
	UserID  int
	K       int
	Refresh bool
	// OnStage recibe avisos de progreso del tier personalizado (lo usa el
	// handler WebSocket); puede ser nil.
	OnStage func(stage string)
}

// Recommend sirve una petición de recomendaciones. Los únicos errores que
// ve el caller son fallos del catálogo; los fallos de entrenamiento se
// degradan al fallback y solo se loguean.
func (s *RecommendService) Recommend(ctx context.Context, req RecRequest) ([]models.RecItem, error) {
	// defaults y límites para K
	if req.K <= 0 {
		req.K = DefaultK
	} else if req.K > MaxK {
		req.K = MaxK
	}

	if req.Refresh {
		// un force-refresh purga todo lo del usuario y va directo al tier 2
		s.cache.PurgeUser(ctx, req.UserID)
	} else {
		if items, ok := s.cache.Get(ctx, req.UserID, req.K); ok {
			return items, nil
		}
	}

	// Coalescer misses concurrentes del mismo usuario. El refresh entra en
	// la key: un force-refresh nunca se cuelga de un cómputo normal en
	// vuelo, siempre ejecuta su propio tier 2.
	key := fmt.Sprintf("user:%d:k:%d:refresh:%t", req.UserID, req.K, req.Refresh)
	v, err, _ := s.group.Do(key, func() (any, error) {
		// cómputo desacoplado del contexto del líder: si el caller que
		// inició el vuelo se desconecta, los coalescidos igual reciben su
		// resultado (el timeout del tier 2 sigue acotando el trabajo)
		return s.compute(context.WithoutCancel(ctx), req)
	})
	if err != nil {
		return nil, err
	}
	return v.([]models.RecItem), nil
}

func (s *RecommendService) compute(ctx context.Context, req RecRequest) ([]models.RecItem, error) {
	algo := models.AlgoEmbedding
	kind := cache.ResultPersonalized
	if req.Refresh {
		kind = cache.ResultForced
	}

	items, err := s.personalized(ctx, req)
	if err != nil {
		if !recoverable(err) {
			// fallo del catálogo: fatal para esta petición
			return nil, err
		}
		log.Printf("[recommend] tier personalizado no disponible para user=%d (%v), usando popularidad", req.UserID, err)

		items, err = s.popular(ctx, req.K)
		if err != nil {
			return nil, err
		}
		algo = models.AlgoPopularity
		kind = cache.ResultFallback
	}

	s.cache.Set(ctx, req.UserID, req.K, items, kind)

	// historial en Mongo (no rompemos la respuesta si falla)
	if s.history != nil {
		hist := &models.Recommendation{
			UserID: req.UserID,
			Algo:   algo,
			Params: map[string]any{
				"k":       req.K,
				"refresh": req.Refresh,
			},
			Items:     items,
			CreatedAt: time.Now(),
		}
		if err := s.history.Insert(ctx, hist); err != nil {
			log.Printf("[recommend] error guardando historial en Mongo: %v", err)
		}
	}

	return items, nil
}

// personalized es el tier 2: reconstruye índice y matriz, reentrena desde
// cero (sin warm-start) y rankea. Acotado por el timeout del servicio.
func (s *RecommendService) personalized(ctx context.Context, req RecRequest) ([]models.RecItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	stage := req.OnStage
	if stage == nil {
		stage = func(string) {}
	}

	stage("features")
	contents, err := s.catalog.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}
	ix := engine.BuildFeatureIndex(contents)

	stage("matrix")
	interactions, err := s.inters.ListInteractions(ctx)
	if err != nil {
		return nil, fmt.Errorf("interacciones: %w", err)
	}
	matrix := engine.BuildInteractionMatrix(interactions, time.Now())

	if matrix.IsEmpty() {
		return nil, engine.ErrInsufficientData
	}
	if !matrix.HasUser(req.UserID) {
		// cold start: al modelo ni se le pregunta por índices que no vio
		return nil, engine.ErrUnknownItem
	}

	stage("training")
	cfg := s.trainCfg
	if req.Refresh {
		cfg.Epochs = s.refreshEpochs
	}
	model, err := engine.Train(ctx, matrix, cfg)
	if err != nil {
		return nil, err
	}

	stage("inference")
	scored, err := model.RecommendForUser(req.UserID, req.K)
	if err != nil {
		return nil, err
	}

	log.Printf("[recommend] personalizado OK: user=%d corpus=%d usuarios=%d contenidos=%d items=%d",
		req.UserID, ix.Len(), matrix.Users.Len(), matrix.Contents.Len(), len(scored))

	items := make([]models.RecItem, len(scored))
	for i, sc := range scored {
		items[i] = models.RecItem{ContentID: sc.ContentID, Score: sc.Score}
	}
	return items, nil
}

// popular es el tier 3: ranking global por popularidad, para cold start,
// datos vacíos o cualquier excepción del tier 2.
func (s *RecommendService) popular(ctx context.Context, k int) ([]models.RecItem, error) {
	contents, err := s.catalog.ListTopByPopularity(ctx, k)
	if err != nil {
		return nil, fmt.Errorf("catálogo: %w", err)
	}

	items := make([]models.RecItem, 0, len(contents))
	for _, c := range contents {
		var score float64
		if c.RatingStats != nil {
			score = c.RatingStats.Average
		}
		items = append(items, models.RecItem{ContentID: c.ContentID, Score: score})
	}
	return items, nil
}

// recoverable separa los fallos que caen al fallback de los que son fatales
// (errores del catálogo). Timeout y cancelación del tier también degradan
// a fallback.
func recoverable(err error) bool {
	return errors.Is(err, engine.ErrInsufficientData) ||
		errors.Is(err, engine.ErrTrainingFailed) ||
		errors.Is(err, engine.ErrUnknownItem) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled)
}

// ================== HOOKS DE INVALIDACIÓN ==================
// Los servicios de escritura los llaman sincrónicamente después de cada
// mutación; no se reintenta el entrenamiento acá, solo se invalida.

func (s *RecommendService) OnFavoriteChanged(ctx context.Context, userID int) {
	s.cache.PurgeUser(ctx, userID)
}

func (s *RecommendService) OnRatingChanged(ctx context.Context, userID int) {
	s.cache.PurgeUser(ctx, userID)
}

func (s *RecommendService) OnVoteChanged(ctx context.Context, userID int) {
	s.cache.PurgeUser(ctx, userID)
}

// History lista las últimas respuestas servidas a un usuario (tanto
// personalizadas como de fallback).
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.history.FindByUser(ctx, userID, limit)
}

// RefreshAll recalcula y re-cachea las recomendaciones de todos los
// usuarios con interacciones (lo usa el refresher y el rebuild de admin).
func (s *RecommendService) RefreshAll(ctx context.Context, k int) (processed, failed int) {
	users, err := s.inters.ListUserIDs(ctx)
	if err != nil {
		log.Printf("[recommend] refresh-all: error listando usuarios: %v", err)
		return 0, 0
	}

	return s.RefreshUsers(ctx, users, k)
}

// RefreshUsers fuerza el recálculo para un conjunto puntual de usuarios.
func (s *RecommendService) RefreshUsers(ctx context.Context, userIDs []int, k int) (processed, failed int) {
	for _, userID := range userIDs {
		if ctx.Err() != nil {
			log.Printf("[recommend] refresh cancelado tras %d usuarios", processed)
			return processed, failed
		}
		if _, err := s.Recommend(ctx, RecRequest{UserID: userID, K: k, Refresh: true}); err != nil {
			log.Printf("[recommend] refresh: user=%d falló: %v", userID, err)
			failed++
			continue
		}
		processed++
	}
	log.Printf("[recommend] refresh completado: ok=%d errores=%d", processed, failed)
	return processed, failed
}
