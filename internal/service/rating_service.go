package service

import (
	"context"
	"fmt"
	"time"

	"contentrec/internal/models"
)

// Contratos que consume el servicio de ratings (repos de Mongo en
// producción, fakes en tests).

type RatingStore interface {
	GetOne(ctx context.Context, userID, contentID int) (*models.RatingDoc, error)
	Upsert(ctx context.Context, userID, contentID int, rating float64, text string) error
	GetByUser(ctx context.Context, userID, limit, offset int) ([]models.RatingDoc, error)
}

type ContentStatsWriter interface {
	GetByID(ctx context.Context, contentID int) (*models.ContentDoc, error)
	ApplyRatingDelta(ctx context.Context, contentID int, sumDelta float64, countDelta int, ratedAt string) error
}

type RatingService struct {
	ratings  RatingStore
	contents ContentStatsWriter
	hooks    MutationHooks
}

func NewRatingService(
	ratings RatingStore,
	contents ContentStatsWriter,
	hooks MutationHooks,
) *RatingService {
	return &RatingService{ratings: ratings, contents: contents, hooks: hooks}
}

// AddOrUpdate upsertea el rating del usuario, ajusta las stats
// desnormalizadas del contenido y purga el caché del usuario. Las stats se
// mueven por deltas (suma y conteo) que el repo aplica atómicamente.
func (s *RatingService) AddOrUpdate(ctx context.Context, userID, contentID int, rating float64, text string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating debe estar entre 1 y 5")
	}

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("content %d no encontrado", contentID)
	}

	prev, err := s.ratings.GetOne(ctx, userID, contentID)
	if err != nil {
		return err
	}

	if err := s.ratings.Upsert(ctx, userID, contentID, rating, text); err != nil {
		return err
	}

	// rating nuevo: suma el valor y cuenta uno más; edición: solo corrige
	// la suma por la diferencia
	sumDelta := rating
	countDelta := 1
	if prev != nil {
		sumDelta = rating - prev.Rating
		countDelta = 0
	}

	nowStr := time.Now().UTC().Format(time.RFC3339)
	if err := s.contents.ApplyRatingDelta(ctx, contentID, sumDelta, countDelta, nowStr); err != nil {
		return err
	}

	s.hooks.OnRatingChanged(ctx, userID)
	return nil
}

func (s *RatingService) GetByUser(ctx context.Context, userID, limit, offset int) ([]models.RatingDoc, error) {
	return s.ratings.GetByUser(ctx, userID, limit, offset)
}
