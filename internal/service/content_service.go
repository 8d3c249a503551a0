package service

import (
	"context"
	"errors"
	"log"

	"contentrec/internal/engine"
	"contentrec/internal/models"
	"contentrec/internal/repository"
)

// ContentService sirve las lecturas de catálogo y la búsqueda de contenido
// similar por features de texto.
type ContentService struct {
	contents *repository.ContentRepository
}

func NewContentService(contents *repository.ContentRepository) *ContentService {
	return &ContentService{contents: contents}
}

func (s *ContentService) GetByID(ctx context.Context, contentID int) (*models.ContentDoc, error) {
	return s.contents.GetByID(ctx, contentID)
}

func (s *ContentService) ListPublished(ctx context.Context) ([]models.ContentDoc, error) {
	return s.contents.ListPublished(ctx)
}

func (s *ContentService) Popular(ctx context.Context, n int) ([]models.ContentDoc, error) {
	if n <= 0 {
		n = DefaultK
	} else if n > MaxK {
		n = MaxK
	}
	return s.contents.ListTopByPopularity(ctx, n)
}

// Similar reconstruye el índice TF-IDF sobre el catálogo publicado y
// devuelve los contenidos más parecidos al pedido. Ids desconocidos o
// corpus degenerados devuelven lista vacía, nunca error.
func (s *ContentService) Similar(ctx context.Context, contentID, topN int) ([]models.ContentDoc, error) {
	if topN <= 0 {
		topN = DefaultK
	} else if topN > MaxK {
		topN = MaxK
	}

	published, err := s.contents.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	ix := engine.BuildFeatureIndex(published)
	ids, err := ix.Similar(contentID, topN)
	if err != nil {
		if errors.Is(err, engine.ErrNotBuilt) || errors.Is(err, engine.ErrUnknownItem) {
			log.Printf("[content] similar degradado a vacío para contentId=%d: %v", contentID, err)
			return []models.ContentDoc{}, nil
		}
		return nil, err
	}
	if len(ids) == 0 {
		return []models.ContentDoc{}, nil
	}

	return s.contents.GetByIDs(ctx, ids)
}
