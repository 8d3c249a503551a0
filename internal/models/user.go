package models

// UserDoc es el documento de usuario en Mongo.
type UserDoc struct {
	UserID       int    `json:"userId" bson:"userId"`
	Email        string `json:"email" bson:"email"`
	PasswordHash string `json:"-" bson:"passwordHash"`
	Role         string `json:"role" bson:"role"` // user | admin
	Username     string `json:"username,omitempty" bson:"username,omitempty"`
	About        string `json:"about,omitempty" bson:"about,omitempty"`
	CreatedAt    string `json:"createdAt" bson:"createdAt"`
	UpdatedAt    string `json:"updatedAt" bson:"updatedAt"`
}
