package models

import "time"

// Connection is an edge between two people in the network.
type Connection struct {
	ID int64

	// Person1ID and Person2ID reference the users table. Both must exist.
	Person1ID int64
	Person2ID int64

	// Relationship describes the nature of the edge, e.g. "colleague".
	Relationship *string

	// Strength is a subjective closeness rating.
	Strength *int

	Context         *string
	LastInteraction *time.Time
	Notes           *string

	CreatedAt time.Time
	UpdatedAt *time.Time
}

// TableName returns the name of the database table backing the Connection model.
func (c Connection) TableName() string {
	return "connections"
}

// ConnectionPatch carries a partial update of a Connection record.
// Nil fields are left untouched.
type ConnectionPatch struct {
	Relationship    *string    `json:"relationship,omitempty"`
	Strength        *int       `json:"strength,omitempty"`
	Context         *string    `json:"context,omitempty"`
	LastInteraction *time.Time `json:"last_interaction,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
}

// IsEmpty reports whether the patch sets no fields at all.
func (c ConnectionPatch) IsEmpty() bool {
	return c.Relationship == nil && c.Strength == nil && c.Context == nil &&
		c.LastInteraction == nil && c.Notes == nil
}
