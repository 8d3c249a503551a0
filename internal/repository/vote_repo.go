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

type VoteRepository struct {
	col *mongo.Collection
}

func NewVoteRepository() *VoteRepository {
	return &VoteRepository{col: db.DB().Collection("category_votes")}
}

// Upsert registra el voto; la unicidad por (contentId, categoryId, userId)
// la garantiza el filtro del upsert más el índice único de la colección.
func (r *VoteRepository) Upsert(ctx context.Context, contentID, categoryID, userID, vote int) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"contentId": contentID, "categoryId": categoryID, "userId": userID},
		bson.M{"$set": bson.M{
			"vote":      vote,
			"timestamp": time.Now().Unix(),
		}},
		options.Update().SetUpsert(true),
	)
	return err
}

func (r *VoteRepository) ListByContent(ctx context.Context, contentID int) ([]models.CategoryVoteDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{"contentId": contentID})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CategoryVoteDoc
	for cur.Next(ctx) {
		var v models.CategoryVoteDoc
		if err := cur.Decode(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, cur.Err()
}
