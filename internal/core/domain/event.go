package domain

import "time"

// Event is a voting event with a bounded voting window.
type Event struct {
	Base        `bson:",inline"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description" bson:"description"`
	StartDate   time.Time `json:"start_date" bson:"start_date"`
	EndDate     time.Time `json:"end_date" bson:"end_date"`
}

// Category is a contest within an event (e.g. "Best Newcomer").
type Category struct {
	Base         `bson:",inline"`
	Name         string `json:"name" bson:"name"`
	Description  string `json:"description" bson:"description"`
	EventID      string `json:"event_id" bson:"event_id"`
	ThumbnailURI string `json:"thumbnail_uri,omitempty" bson:"thumbnail_uri,omitempty"`
}
