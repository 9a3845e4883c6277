package domain

import (
	"time"

	"github.com/google/uuid"
)

// ExperienceEntry is one position in the work experience list.
type ExperienceEntry struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// EducationEntry is one degree or certification in the education list.
type EducationEntry struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution"`
	Year        string `json:"year"`
	Details     string `json:"details"`
}

// StoredResume is the persisted, server-acknowledged projection of a draft.
// Immutable once created: there is no edit-after-save flow.
type StoredResume struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	CareerID    *string    `json:"career_id,omitempty"`
	FullName    string     `json:"full_name"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone,omitempty"`
	Address     string     `json:"address,omitempty"`
	ZipCode     string     `json:"zip_code,omitempty"`
	City        string     `json:"city,omitempty"`
	LinkedinURL string     `json:"linkedin_url,omitempty"`
	WebsiteURL  string     `json:"website_url,omitempty"`
	Summary     string     `json:"summary,omitempty"`
	PhotoURL    string     `json:"photo_url,omitempty"`

	WorkExperience []ExperienceEntry `json:"work_experience"`
	Education      []EducationEntry  `json:"education"`
	Skills         []string          `json:"skills"`
	Interests      []string          `json:"interests"`
	References     []string          `json:"professional_references"`

	CreatedAt time.Time `json:"created_at"`
}
