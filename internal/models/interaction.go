package models

// FavoriteDoc: a lo sumo uno por (userId, contentId).
// Un favorito sin rating explícito cuenta como señal positiva fuerte.
type FavoriteDoc struct {
	UserID    int   `json:"userId" bson:"userId"`
	ContentID int   `json:"contentId" bson:"contentId"`
	Timestamp int64 `json:"timestamp" bson:"timestamp"`
}

// RatingDoc: a lo sumo uno por (contentId, userId), rating entero 1..5.
type RatingDoc struct {
	UserID    int     `json:"userId" bson:"userId"`
	ContentID int     `json:"contentId" bson:"contentId"`
	Rating    float64 `json:"rating" bson:"rating"`
	Text      string  `json:"text,omitempty" bson:"text,omitempty"`
	Timestamp int64   `json:"timestamp" bson:"timestamp"`
}

// CategoryVoteDoc: voto ∈ {-1, 0, 1}, único por (contentId, categoryId, userId).
type CategoryVoteDoc struct {
	ContentID  int   `json:"contentId" bson:"contentId"`
	CategoryID int   `json:"categoryId" bson:"categoryId"`
	UserID     int   `json:"userId" bson:"userId"`
	Vote       int   `json:"vote" bson:"vote"`
	Timestamp  int64 `json:"timestamp" bson:"timestamp"`
}

// Interaction es la vista fusionada de favoritos y ratings que consume el
// constructor de la matriz usuario×contenido. Rating es nil cuando la
// interacción es solo un favorito.
type Interaction struct {
	UserID    int      `json:"userId"`
	ContentID int      `json:"contentId"`
	Rating    *float64 `json:"rating,omitempty"`
	Timestamp int64    `json:"timestamp"`
}
