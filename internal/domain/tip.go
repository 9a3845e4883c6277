package domain

import "github.com/google/uuid"

// Tip is one interview tip for a career, displayed in ascending OrderIndex.
type Tip struct {
	ID         uuid.UUID `json:"id"`
	CareerID   string    `json:"career_id"`
	Category   string    `json:"category,omitempty"`
	Text       string    `json:"text"`
	OrderIndex int       `json:"order_index"`
}
