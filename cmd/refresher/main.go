package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"time"

	"contentrec/internal/cache"
	"contentrec/internal/cluster"
	"contentrec/internal/config"
	"contentrec/internal/db"
	"contentrec/internal/engine"
	"contentrec/internal/repository"
	"contentrec/internal/service"
)

// El refresher recalcula recomendaciones en segundo plano: un ciclo
// periódico sobre todos los usuarios con interacciones, más un listener
// TCP para las tareas que dispara el panel de admin.
func main() {
	cfg := config.Load()

	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	contentRepo := repository.NewContentRepository()
	interRepo := repository.NewInteractionRepository()
	recRepo := repository.NewRecommendationRepository()

	recCache := cache.NewRecCache(cache.NewRedisStore(), cache.DefaultTTLPolicy(), nil)

	trainCfg := engine.DefaultTrainConfig()
	trainCfg.EmbeddingDim = cfg.EmbeddingDim
	trainCfg.Epochs = cfg.TrainEpochs
	trainCfg.LearningRate = cfg.LearningRate

	recSvc := service.NewRecommendService(
		contentRepo, interRepo, recRepo, recCache,
		trainCfg, cfg.RefreshEpochs, cfg.RecTimeout,
	)

	go runTicker(recSvc, cfg.RefreshInterval)

	ln, err := net.Listen("tcp", cfg.RefresherAddr)
	if err != nil {
		log.Fatalf("❌ [refresher] no se pudo escuchar en %s: %v", cfg.RefresherAddr, err)
	}
	log.Printf("✅ [refresher] escuchando tareas en %s", cfg.RefresherAddr)

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Printf("❌ [refresher] accept: %v", err)
			continue
		}
		go handleConn(conn, recSvc)
	}
}

// runTicker lanza un refresh completo cada intervalo. El primero se hace
// al arrancar para que el caché no quede frío tras un deploy.
func runTicker(svc *service.RecommendService, interval time.Duration) {
	refreshAll(svc)

	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		refreshAll(svc)
	}
}

func refreshAll(svc *service.RecommendService) {
	start := time.Now()
	processed, failed := svc.RefreshAll(context.Background(), service.DefaultK)
	log.Printf("[refresher] ciclo completo: %d usuarios, %d fallos, %s",
		processed, failed, time.Since(start).Round(time.Millisecond))
}

// handleConn atiende una tarea puntual: un JSON RefreshTask por conexión,
// un JSON RefreshResult de vuelta.
func handleConn(conn net.Conn, svc *service.RecommendService) {
	defer conn.Close()

	var task cluster.RefreshTask
	if err := json.NewDecoder(conn).Decode(&task); err != nil {
		log.Printf("❌ [refresher] tarea inválida: %v", err)
		return
	}

	k := task.K
	if k <= 0 {
		k = service.DefaultK
	}

	start := time.Now()
	var processed, failed int
	if task.All {
		processed, failed = svc.RefreshAll(context.Background(), k)
	} else {
		processed, failed = svc.RefreshUsers(context.Background(), task.UserIDs, k)
	}

	res := cluster.RefreshResult{
		UsersProcessed: processed,
		Errors:         failed,
		Elapsed:        time.Since(start).Round(time.Millisecond).String(),
	}
	if err := json.NewEncoder(conn).Encode(res); err != nil {
		log.Printf("❌ [refresher] no se pudo responder: %v", err)
	}
	log.Printf("✅ [refresher] tarea atendida: %+v -> %+v", task, res)
}
