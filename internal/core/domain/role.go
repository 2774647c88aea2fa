package domain

// Role groups a named set of permissions assignable to users.
type Role struct {
	Base        `bson:",inline"`
	Name        string   `json:"name" bson:"name"`
	Description string   `json:"description" bson:"description"`
	Permissions []string `json:"permissions,omitempty" bson:"permissions,omitempty"`
}
