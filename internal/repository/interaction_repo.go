package repository

import (
	"context"

	"contentrec/internal/db"
	"contentrec/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// InteractionRepository expone la vista fusionada de favoritos y ratings
// que consume el constructor de la matriz usuario×contenido.
type InteractionRepository struct {
	favorites *mongo.Collection
	ratings   *mongo.Collection
}

func NewInteractionRepository() *InteractionRepository {
	return &InteractionRepository{
		favorites: db.DB().Collection("favorites"),
		ratings:   db.DB().Collection("ratings"),
	}
}

// ListInteractions fusiona favoritos y ratings en un registro por par
// (usuario, contenido): si el par tiene rating explícito se usa ese valor,
// si es un favorito puro el rating queda nil y el builder le asigna la
// afinidad por defecto.
func (r *InteractionRepository) ListInteractions(ctx context.Context) ([]models.Interaction, error) {
	type pair struct{ u, c int }
	merged := make(map[pair]*models.Interaction)
	var order []pair

	cur, err := r.favorites.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var f models.FavoriteDoc
		if err := cur.Decode(&f); err != nil {
			return nil, err
		}
		p := pair{f.UserID, f.ContentID}
		merged[p] = &models.Interaction{
			UserID:    f.UserID,
			ContentID: f.ContentID,
			Timestamp: f.Timestamp,
		}
		order = append(order, p)
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}

	rcur, err := r.ratings.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer rcur.Close(ctx)
	for rcur.Next(ctx) {
		var rd models.RatingDoc
		if err := rcur.Decode(&rd); err != nil {
			return nil, err
		}
		p := pair{rd.UserID, rd.ContentID}
		rating := rd.Rating
		if it, ok := merged[p]; ok {
			// favorito + rating: conserva el timestamp del favorito
			it.Rating = &rating
			continue
		}
		merged[p] = &models.Interaction{
			UserID:    rd.UserID,
			ContentID: rd.ContentID,
			Rating:    &rating,
			Timestamp: rd.Timestamp,
		}
		order = append(order, p)
	}
	if err := rcur.Err(); err != nil {
		return nil, err
	}

	out := make([]models.Interaction, 0, len(order))
	for _, p := range order {
		out = append(out, *merged[p])
	}
	return out, nil
}

// ListUserIDs devuelve los usuarios con al menos una interacción
// (los candidatos del refresher).
func (r *InteractionRepository) ListUserIDs(ctx context.Context) ([]int, error) {
	seen := make(map[int]struct{})
	var out []int

	for _, col := range []*mongo.Collection{r.favorites, r.ratings} {
		vals, err := col.Distinct(ctx, "userId", bson.M{})
		if err != nil {
			return nil, err
		}
		for _, v := range vals {
			id := asInt(v)
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out, nil
}

// helpers de casteo seguro para valores que vienen de Distinct/bson.M
func asInt(v any) int {
	switch x := v.(type) {
	case int32:
		return int(x)
	case int64:
		return int(x)
	case float64:
		return int(x)
	case int:
		return x
	default:
		return 0
	}
}
