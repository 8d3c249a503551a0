package service

import (
	"context"
	"time"

	"contentrec/internal/cluster"
	"contentrec/internal/config"
	"contentrec/internal/models"
	"contentrec/internal/repository"
)

// AdminMaintenanceService expone el estado del motor y dispara recálculos
// on-demand delegándolos al refresher (no entrena en el proceso de la API).
type AdminMaintenanceService struct {
	cfg       *config.Config
	contents  *repository.ContentRepository
	favorites *repository.FavoriteRepository
	ratings   *repository.RatingRepository
	inters    *repository.InteractionRepository
}

func NewAdminMaintenanceService(
	cfg *config.Config,
	contents *repository.ContentRepository,
	favorites *repository.FavoriteRepository,
	ratings *repository.RatingRepository,
	inters *repository.InteractionRepository,
) *AdminMaintenanceService {
	return &AdminMaintenanceService{
		cfg:       cfg,
		contents:  contents,
		favorites: favorites,
		ratings:   ratings,
		inters:    inters,
	}
}

// GetEngineSummary devuelve los conteos globales que alimentan al motor.
func (s *AdminMaintenanceService) GetEngineSummary(ctx context.Context) (*models.AdminEngineSummary, error) {
	published, err := s.contents.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	favorites, err := s.favorites.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.inters.ListUserIDs(ctx)
	if err != nil {
		return nil, err
	}

	return &models.AdminEngineSummary{
		PublishedContents:     published,
		Favorites:             favorites,
		Ratings:               ratings,
		UsersWithInteractions: len(users),
	}, nil
}

// RebuildRecommendations manda la tarea de recálculo al refresher por TCP.
func (s *AdminMaintenanceService) RebuildRecommendations(
	ctx context.Context,
	req models.RebuildRecommendationsRequest,
) (*cluster.RefreshResult, error) {

	k := req.K
	if k <= 0 {
		k = DefaultK
	}

	task := &cluster.RefreshTask{
		All:     len(req.UserIDs) == 0,
		UserIDs: req.UserIDs,
		K:       k,
	}

	// el rebuild completo puede tardar; damos margen amplio
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	return cluster.SendRefresh(ctx, s.cfg.RefresherAddr, task)
}
