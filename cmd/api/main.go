package main

import (
	"log"
	"net/http"

	_ "contentrec/docs" // swagger docs

	"contentrec/internal/cache"
	"contentrec/internal/config"
	"contentrec/internal/db"
	"contentrec/internal/engine"
	"contentrec/internal/handler"
	"contentrec/internal/repository"
	"contentrec/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title ContentRec API
// @version 1.0
// @description API de recomendación de contenido (TF-IDF + filtrado colaborativo, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	contentRepo := repository.NewContentRepository()
	categoryRepo := repository.NewCategoryRepository()
	favoriteRepo := repository.NewFavoriteRepository()
	ratingRepo := repository.NewRatingRepository()
	voteRepo := repository.NewVoteRepository()
	interRepo := repository.NewInteractionRepository()
	recRepo := repository.NewRecommendationRepository()

	// caché de recomendaciones (Redis, TTL según origen del resultado)
	recCache := cache.NewRecCache(cache.NewRedisStore(), cache.DefaultTTLPolicy(), nil)

	// hiperparámetros del modelo desde el entorno
	trainCfg := engine.DefaultTrainConfig()
	trainCfg.EmbeddingDim = cfg.EmbeddingDim
	trainCfg.Epochs = cfg.TrainEpochs
	trainCfg.LearningRate = cfg.LearningRate

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	recSvc := service.NewRecommendService(
		contentRepo, interRepo, recRepo, recCache,
		trainCfg, cfg.RefreshEpochs, cfg.RecTimeout,
	)
	contentSvc := service.NewContentService(contentRepo)
	consensusSvc := service.NewConsensusService(voteRepo, categoryRepo)
	// los servicios de escritura disparan los hooks de invalidación del recSvc
	favoriteSvc := service.NewFavoriteService(favoriteRepo, contentRepo, recSvc)
	ratingSvc := service.NewRatingService(ratingRepo, contentRepo, recSvc)
	voteSvc := service.NewVoteService(voteRepo, categoryRepo, contentRepo, recSvc)
	adminMaintSvc := service.NewAdminMaintenanceService(cfg, contentRepo, favoriteRepo, ratingRepo, interRepo)

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	contentH := handler.NewContentHandler(contentSvc, consensusSvc)
	recH := handler.NewRecommendHandler(recSvc)
	favoriteH := handler.NewFavoriteHandler(favoriteSvc)
	ratingH := handler.NewRatingHandler(ratingSvc)
	voteH := handler.NewVoteHandler(voteSvc)
	adminMaintH := handler.NewAdminMaintenanceHandler(adminMaintSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Catálogo (público)
	r.Get("/contents", contentH.ListPublished)
	r.Get("/contents/popular", contentH.Popular)
	r.Get("/contents/{id}", contentH.GetContent)
	r.Get("/contents/{id}/similar", contentH.Similar)
	r.Get("/contents/{id}/consensus", contentH.Consensus)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/profile", authH.GetMyProfile)

			r.Get("/favorites", favoriteH.ListMine)
			r.Post("/favorites", favoriteH.Add)
			r.Delete("/favorites/{id}", favoriteH.Remove)

			r.Get("/ratings", ratingH.GetMyRatings)
			r.Post("/ratings", ratingH.PostMyRating)

			r.Post("/category-votes", voteH.Cast)

			r.Get("/recommendations", recH.GetMyRecommendations)
			r.Get("/recommendations/history", recH.GetMyHistory)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			r.Get("/users", authH.ListUsers)

			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/", authH.GetUserByID)
				r.Put("/update", authH.UpdateUser)

				// recomendaciones de cualquier usuario, HTTP normal
				r.Get("/recommendations", recH.GetRecommendations)

				// WebSocket
				r.Get("/ws/recommendations", recH.GetRecommendationsWS)
			})

			// --- mantenimiento del motor ---
			handler.MountAdminMaintenanceRoutes(r, adminMaintH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
