package models

// Stats desnormalizadas de rating sobre el documento de contenido,
// para poder ordenar por popularidad sin agregaciones caras.
type RatingStats struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
	// suma acumulada de ratings; de acá se deriva Average en cada update
	Sum         float64 `json:"-" bson:"sum"`
	LastRatedAt string  `json:"lastRatedAt,omitempty" bson:"lastRatedAt,omitempty"`
}

// ContentDoc es el documento de catálogo en Mongo.
type ContentDoc struct {
	ContentID      int          `json:"contentId" bson:"contentId"`
	Title          string       `json:"title" bson:"title"`
	Summary        string       `json:"summary" bson:"summary"`
	Price          float64      `json:"price" bson:"price"`
	AuthorID       int          `json:"authorId" bson:"authorId"`
	AuthorName     string       `json:"authorName" bson:"authorName"`
	IsPublished    bool         `json:"isPublished" bson:"isPublished"`
	IsDigital      bool         `json:"isDigital" bson:"isDigital"`
	FavoritesCount int          `json:"favoritesCount" bson:"favoritesCount"`
	RatingStats    *RatingStats `json:"ratingStats,omitempty" bson:"ratingStats,omitempty"`
	CreatedAt      string       `json:"createdAt" bson:"createdAt"`
	UpdatedAt      string       `json:"updatedAt" bson:"updatedAt"`
}

// CategoryDoc es una categoría votable del catálogo.
type CategoryDoc struct {
	CategoryID  int    `json:"categoryId" bson:"categoryId"`
	Name        string `json:"name" bson:"name"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
	CreatedAt   string `json:"createdAt" bson:"createdAt"`
}
