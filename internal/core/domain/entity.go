package domain

import "time"

// Kind identifies one of the fixed set of manageable entity types.
type Kind string

const (
	KindUser       Kind = "user"
	KindRole       Kind = "role"
	KindEvent      Kind = "event"
	KindCategory   Kind = "category"
	KindCandidate  Kind = "candidate"
	KindNomination Kind = "nomination"
	KindVote       Kind = "vote"
)

// Base carries the fields shared by every stored entity. The ID is left
// empty at construction time and assigned by the document store on insert.
type Base struct {
	ID        string    `json:"id,omitempty" bson:"_id,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// NewBase returns a Base stamped with the given creation time.
func NewBase(now time.Time) Base {
	return Base{CreatedAt: now, UpdatedAt: now}
}

// SetID records the identifier assigned by the store.
func (b *Base) SetID(id string) { b.ID = id }

// Identifiable is satisfied by every entity embedding Base.
type Identifiable interface {
	SetID(id string)
}
