package repository

import (
	"context"

	"contentrec/internal/db"
	"contentrec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContentRepository struct {
	col *mongo.Collection
}

func NewContentRepository() *ContentRepository {
	return &ContentRepository{col: db.DB().Collection("contents")}
}

func (r *ContentRepository) GetByID(ctx context.Context, contentID int) (*models.ContentDoc, error) {
	var c models.ContentDoc
	err := r.col.FindOne(ctx, bson.M{"contentId": contentID}).Decode(&c)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	return &c, err
}

// GetByIDs devuelve los contenidos pedidos preservando el orden de `ids`
// (el orden del ranking lo decide el motor, no Mongo).
func (r *ContentRepository) GetByIDs(ctx context.Context, ids []int) ([]models.ContentDoc, error) {
	if len(ids) == 0 {
		return []models.ContentDoc{}, nil
	}

	cur, err := r.col.Find(ctx, bson.M{"contentId": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	byID := make(map[int]models.ContentDoc, len(ids))
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		byID[c.ContentID] = c
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.ContentDoc, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// ListPublished devuelve el catálogo publicado completo (el corpus del
// índice de features).
func (r *ContentRepository) ListPublished(ctx context.Context) ([]models.ContentDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"isPublished": true})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContentDoc
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// ListTopByPopularity: publicados, ordenados por cantidad de favoritos y
// luego por rating promedio, ambos descendentes.
func (r *ContentRepository) ListTopByPopularity(ctx context.Context, n int) ([]models.ContentDoc, error) {
	opts := options.Find().
		SetSort(bson.D{
			{Key: "favoritesCount", Value: -1},
			{Key: "ratingStats.average", Value: -1},
		}).
		SetLimit(int64(n))

	cur, err := r.col.Find(ctx, bson.M{"isPublished": true}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.ContentDoc
	for cur.Next(ctx) {
		var c models.ContentDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// IncFavorites ajusta el contador desnormalizado de favoritos.
func (r *ContentRepository) IncFavorites(ctx context.Context, contentID, delta int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"contentId": contentID},
		bson.M{"$inc": bson.M{"favoritesCount": delta}},
	)
	return err
}

// ApplyRatingDelta ajusta las stats desnormalizadas de rating en un solo
// update de pipeline: suma y conteo se incrementan y el promedio se deriva
// de ambos en el mismo documento, así dos raters concurrentes nunca se
// pisan un incremento.
func (r *ContentRepository) ApplyRatingDelta(ctx context.Context, contentID int, sumDelta float64, countDelta int, ratedAt string) error {
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"ratingStats.sum": bson.M{"$add": bson.A{
				bson.M{"$ifNull": bson.A{"$ratingStats.sum", 0}}, sumDelta,
			}},
			"ratingStats.count": bson.M{"$add": bson.A{
				bson.M{"$ifNull": bson.A{"$ratingStats.count", 0}}, countDelta,
			}},
			"ratingStats.lastRatedAt": ratedAt,
			"updatedAt":               ratedAt,
		}}},
		{{Key: "$set", Value: bson.M{
			"ratingStats.average": bson.M{"$cond": bson.A{
				bson.M{"$gt": bson.A{"$ratingStats.count", 0}},
				bson.M{"$divide": bson.A{"$ratingStats.sum", "$ratingStats.count"}},
				0,
			}},
		}}},
	}

	_, err := r.col.UpdateOne(ctx, bson.M{"contentId": contentID}, update)
	return err
}

func (r *ContentRepository) CountPublished(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{"isPublished": true})
}
