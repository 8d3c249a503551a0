package models

// AdminEngineSummary es el resumen de estado del motor para /admin.
type AdminEngineSummary struct {
	PublishedContents     int64 `json:"publishedContents"`
	Favorites             int64 `json:"favorites"`
	Ratings               int64 `json:"ratings"`
	UsersWithInteractions int   `json:"usersWithInteractions"`
}

// RebuildRecommendationsRequest es el body de /admin/recommendations/rebuild.
type RebuildRecommendationsRequest struct {
	// usuarios puntuales; vacío = todos
	UserIDs []int `json:"userIds,omitempty"`
	K       int   `json:"k,omitempty"`
}
