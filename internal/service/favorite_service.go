package service

import (
	"context"
	"fmt"

	"contentrec/internal/models"
	"contentrec/internal/repository"
)

// MutationHooks son los avisos sincrónicos de invalidación que dispara el
// camino de escritura; los implementa el RecommendService.
type MutationHooks interface {
	OnFavoriteChanged(ctx context.Context, userID int)
	OnRatingChanged(ctx context.Context, userID int)
	OnVoteChanged(ctx context.Context, userID int)
}

type FavoriteService struct {
	favorites *repository.FavoriteRepository
	contents  *repository.ContentRepository
	hooks     MutationHooks
}

func NewFavoriteService(
	favorites *repository.FavoriteRepository,
	contents *repository.ContentRepository,
	hooks MutationHooks,
) *FavoriteService {
	return &FavoriteService{favorites: favorites, contents: contents, hooks: hooks}
}

// Add marca un favorito, ajusta el contador desnormalizado y purga el caché
// del usuario antes de devolver.
func (s *FavoriteService) Add(ctx context.Context, userID, contentID int) error {
	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("content %d no encontrado", contentID)
	}

	created, err := s.favorites.Upsert(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if created {
		if err := s.contents.IncFavorites(ctx, contentID, 1); err != nil {
			return err
		}
	}

	s.hooks.OnFavoriteChanged(ctx, userID)
	return nil
}

// Remove quita el favorito si existía.
func (s *FavoriteService) Remove(ctx context.Context, userID, contentID int) error {
	deleted, err := s.favorites.Delete(ctx, userID, contentID)
	if err != nil {
		return err
	}
	if deleted {
		if err := s.contents.IncFavorites(ctx, contentID, -1); err != nil {
			return err
		}
	}

	s.hooks.OnFavoriteChanged(ctx, userID)
	return nil
}

func (s *FavoriteService) ListByUser(ctx context.Context, userID int) ([]models.FavoriteDoc, error) {
	return s.favorites.ListByUser(ctx, userID)
}
