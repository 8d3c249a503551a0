package models

import "time"

type RecItem struct {
	ContentID int     `bson:"contentId" json:"contentId"`
	Score     float64 `bson:"score"     json:"score"`
}

// Recommendation es el historial que guardamos en Mongo por cada respuesta
// servida (personalizada o fallback).
type Recommendation struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	UserID    int       `bson:"userId"        json:"userId"`
	Algo      string    `bson:"algo"          json:"algo"`
	Params    any       `bson:"params"        json:"params"`
	Items     []RecItem `bson:"items"         json:"items"`
	CreatedAt time.Time `bson:"createdAt"     json:"createdAt"`
}

// Algoritmos que pueden aparecer en el historial.
const (
	AlgoEmbedding  = "embedding-mlp"
	AlgoPopularity = "popularity"
)
