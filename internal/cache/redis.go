package cache

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"contentrec/internal/config"

	"github.com/redis/go-redis/v9"
)

var client *redis.Client

func InitRedis(cfg *config.Config) {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("❌ Error conectando a Redis: %v", err)
	}

	log.Println("✅ Redis OK.")
}

// RedisStore adapta el cliente global al contrato Store que usa RecCache.
type RedisStore struct{}

func NewRedisStore() *RedisStore { return &RedisStore{} }

// GetJSON lee una key, si existe deserializa el JSON en `dest`.
func (s *RedisStore) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	val, err := client.Get(ctx, key).Result()
	if err == redis.Nil {
		// no existe la clave
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON serializa `value` a JSON y lo guarda con TTL.
func (s *RedisStore) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, b, ttl).Err()
}

// DeleteByPattern borra todas las keys que matcheen el patrón (SCAN + DEL,
// nunca KEYS) y devuelve cuántas borró.
func (s *RedisStore) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	if client == nil {
		return 0, nil
	}

	var deleted int
	iter := client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := client.Del(ctx, iter.Val()).Err(); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, iter.Err()
}
