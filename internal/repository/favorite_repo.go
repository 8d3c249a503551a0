package repository

import (
	"context"
	"time"

	"contentrec/internal/db"
	"contentrec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FavoriteRepository struct {
	col *mongo.Collection
}

func NewFavoriteRepository() *FavoriteRepository {
	return &FavoriteRepository{col: db.DB().Collection("favorites")}
}

// Upsert marca un favorito; devuelve true si es nuevo (no existía el par).
func (r *FavoriteRepository) Upsert(ctx context.Context, userID, contentID int) (bool, error) {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "contentId": contentID},
		bson.M{"$setOnInsert": bson.M{
			"timestamp": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return false, err
	}
	return res.UpsertedCount > 0, nil
}

// Delete quita el favorito; devuelve true si existía.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, contentID int) (bool, error) {
	res, err := r.col.DeleteOne(ctx, bson.M{"userId": userID, "contentId": contentID})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int) ([]models.FavoriteDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.FavoriteDoc
	for cur.Next(ctx) {
		var f models.FavoriteDoc
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, cur.Err()
}

func (r *FavoriteRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
