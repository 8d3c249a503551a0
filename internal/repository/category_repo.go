package repository

import (
	"context"

	"contentrec/internal/db"
	"contentrec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type CategoryRepository struct {
	col *mongo.Collection
}

func NewCategoryRepository() *CategoryRepository {
	return &CategoryRepository{col: db.DB().Collection("categories")}
}

func (r *CategoryRepository) ListAll(ctx context.Context) ([]models.CategoryDoc, error) {
	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.CategoryDoc
	for cur.Next(ctx) {
		var c models.CategoryDoc
		if err := cur.Decode(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, cur.Err()
}

// MapByID devuelve categoryId -> nombre, para resolver los votos crudos.
func (r *CategoryRepository) MapByID(ctx context.Context) (map[int]string, error) {
	cats, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	m := make(map[int]string, len(cats))
	for _, c := range cats {
		m[c.CategoryID] = c.Name
	}
	return m, nil
}
