package service

import (
	"context"
	"fmt"

	"contentrec/internal/repository"
)

type VoteService struct {
	votes      *repository.VoteRepository
	categories *repository.CategoryRepository
	contents   *repository.ContentRepository
	hooks      MutationHooks
}

func NewVoteService(
	votes *repository.VoteRepository,
	categories *repository.CategoryRepository,
	contents *repository.ContentRepository,
	hooks MutationHooks,
) *VoteService {
	return &VoteService{votes: votes, categories: categories, contents: contents, hooks: hooks}
}

// Cast registra (o reemplaza) el voto del usuario por una categoría del
// contenido y purga su caché de recomendaciones.
func (s *VoteService) Cast(ctx context.Context, contentID, categoryID, userID, vote int) error {
	if vote < -1 || vote > 1 {
		return fmt.Errorf("vote debe ser -1, 0 o 1")
	}

	content, err := s.contents.GetByID(ctx, contentID)
	if err != nil {
		return err
	}
	if content == nil {
		return fmt.Errorf("content %d no encontrado", contentID)
	}

	names, err := s.categories.MapByID(ctx)
	if err != nil {
		return err
	}
	if _, ok := names[categoryID]; !ok {
		return fmt.Errorf("categoría %d no encontrada", categoryID)
	}

	if err := s.votes.Upsert(ctx, contentID, categoryID, userID, vote); err != nil {
		return err
	}

	s.hooks.OnVoteChanged(ctx, userID)
	return nil
}
