package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"contentrec/internal/models"
)

// Store es el contrato mínimo de backend que necesita RecCache: Redis en
// producción, un mapa en memoria en tests. El caché es el único estado
// persistido observable del motor.
type Store interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) (int, error)
}

// ResultKind clasifica de dónde salió el resultado, para elegir TTL.
type ResultKind int

const (
	// ResultPersonalized: tier 2 exitoso.
	ResultPersonalized ResultKind = iota
	// ResultFallback: tier 3 (cold start o error del tier 2); TTL corto
	// para reintentar el entrenamiento pronto.
	ResultFallback
	// ResultForced: force-refresh explícito; TTL extendido.
	ResultForced
)

// TTLPolicy define los TTL por origen del resultado.
type TTLPolicy struct {
	Personalized time.Duration
	Fallback     time.Duration
	Forced       time.Duration
}

func DefaultTTLPolicy() TTLPolicy {
	return TTLPolicy{
		Personalized: time.Hour,
		Fallback:     5 * time.Minute,
		Forced:       2 * time.Hour,
	}
}

// RecCache es el servicio de caché de recomendaciones: keys por
// (usuario, bucket de hora), TTL según origen del resultado y purga total
// por usuario ante cualquier mutación. El reloj se inyecta para poder
// testear buckets y expiraciones.
type RecCache struct {
	store  Store
	ttl    TTLPolicy
	bucket time.Duration
	now    func() time.Time
}

func NewRecCache(store Store, ttl TTLPolicy, now func() time.Time) *RecCache {
	if now == nil {
		now = time.Now
	}
	return &RecCache{
		store:  store,
		ttl:    ttl,
		bucket: time.Hour,
		now:    now,
	}
}

// key arma la clave del bucket temporal actual del usuario.
func (c *RecCache) key(userID, k int) string {
	bucket := c.now().Truncate(c.bucket).Unix()
	return fmt.Sprintf("rec:user:%d:k:%d:bucket:%d", userID, k, bucket)
}

// Get devuelve el set cacheado del bucket actual, si existe y no expiró.
func (c *RecCache) Get(ctx context.Context, userID, k int) ([]models.RecItem, bool) {
	var items []models.RecItem
	ok, err := c.store.GetJSON(ctx, c.key(userID, k), &items)
	if err != nil {
		log.Printf("[cache] error leyendo recomendaciones de user=%d: %v", userID, err)
		return nil, false
	}
	return items, ok
}

// Set guarda el resultado con el TTL que corresponde a su origen. Las
// entradas nunca se mutan en el lugar: solo se reemplazan o se borran.
func (c *RecCache) Set(ctx context.Context, userID, k int, items []models.RecItem, kind ResultKind) {
	var ttl time.Duration
	switch kind {
	case ResultFallback:
		ttl = c.ttl.Fallback
	case ResultForced:
		ttl = c.ttl.Forced
	default:
		ttl = c.ttl.Personalized
	}

	if err := c.store.SetJSON(ctx, c.key(userID, k), items, ttl); err != nil {
		log.Printf("[cache] error cacheando recomendaciones de user=%d: %v", userID, err)
	}
}

// PurgeUser borra todas las entradas del usuario, de cualquier bucket,
// ignorando TTL. Se llama sincrónicamente desde los hooks de mutación:
// la staleness nunca sobrevive a una edición del propio usuario.
func (c *RecCache) PurgeUser(ctx context.Context, userID int) int {
	n, err := c.store.DeleteByPattern(ctx, fmt.Sprintf("rec:user:%d:*", userID))
	if err != nil {
		log.Printf("[cache] error purgando keys de user=%d: %v", userID, err)
		return n
	}
	if n > 0 {
		log.Printf("🧹 purgadas %d entradas de recomendaciones de user=%d", n, userID)
	}
	return n
}
