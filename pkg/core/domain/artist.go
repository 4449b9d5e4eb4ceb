package domain

import "time"

// Artist is one entry on the public roster page.
// The JSON shape matches what the admin frontend already consumes,
// so the id field keeps its legacy "_id" name.
type Artist struct {
	ID           string    `json:"_id"`
	Name         string    `json:"name"`
	InstagramURL string    `json:"instagramUrl,omitempty"`
	Order        float64   `json:"order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ReorderPair is one entry of a batch reorder request.
type ReorderPair struct {
	ID    string  `json:"_id"`
	Order float64 `json:"order"`
}
