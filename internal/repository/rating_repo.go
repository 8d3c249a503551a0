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

type RatingRepository struct {
	col *mongo.Collection
}

func NewRatingRepository() *RatingRepository {
	return &RatingRepository{col: db.DB().Collection("ratings")}
}

func (r *RatingRepository) GetOne(ctx context.Context, userID, contentID int) (*models.RatingDoc, error) {
	var doc models.RatingDoc
	err := r.col.FindOne(ctx, bson.M{"userId": userID, "contentId": contentID}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *RatingRepository) Upsert(ctx context.Context, userID, contentID int, rating float64, text string) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"userId": userID, "contentId": contentID},
		bson.M{"$set": bson.M{
			"rating": rating,
			"text":   text,
			// guardamos epoch (int64)
			"timestamp": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *RatingRepository) GetByUser(ctx context.Context, userID, limit, offset int) ([]models.RatingDoc, error) {
	cur, err := r.col.Find(ctx,
		bson.M{"userId": userID},
		options.Find().SetLimit(int64(limit)).SetSkip(int64(offset)),
	)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.RatingDoc
	for cur.Next(ctx) {
		var doc models.RatingDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, cur.Err()
}

func (r *RatingRepository) CountAll(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
