package service

import (
	"context"

	"contentrec/internal/engine"
	"contentrec/internal/models"
)

// Contratos de lectura para el agregador de consenso.

type VoteReader interface {
	ListByContent(ctx context.Context, contentID int) ([]models.CategoryVoteDoc, error)
}

type CategoryReader interface {
	MapByID(ctx context.Context) (map[int]string, error)
}

// ConsensusService resuelve los votos crudos de categoría de un contenido a
// la distribución normalizada de consenso.
type ConsensusService struct {
	votes      VoteReader
	categories CategoryReader
}

func NewConsensusService(votes VoteReader, categories CategoryReader) *ConsensusService {
	return &ConsensusService{votes: votes, categories: categories}
}

// Consensus devuelve nombre de categoría -> share ∈ (0,1]. Mapa vacío si no
// hay votos o ninguna categoría quedó con suma neta positiva.
func (s *ConsensusService) Consensus(ctx context.Context, contentID int) (map[string]float64, error) {
	raw, err := s.votes.ListByContent(ctx, contentID)
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return map[string]float64{}, nil
	}

	names, err := s.categories.MapByID(ctx)
	if err != nil {
		return nil, err
	}

	votes := make([]engine.CategoryVote, 0, len(raw))
	for _, v := range raw {
		name, ok := names[v.CategoryID]
		if !ok {
			// voto a una categoría borrada; no aporta al consenso
			continue
		}
		votes = append(votes, engine.CategoryVote{Category: name, Vote: v.Vote})
	}

	return engine.Consensus(votes), nil
}
