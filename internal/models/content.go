package models

import "time"

// Testimonial Index is the display order, changed through its own endpoint.
type Testimonial struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Role      string    `json:"role,omitempty"`
	Message   string    `json:"message"`
	Image     string    `json:"image,omitempty"`
	Index     int       `json:"index"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResearchAnalysis is an article. Description is HTML; Documents are file
// names relative to the file host.
type ResearchAnalysis struct {
	ID            string     `json:"_id"`
	Title         string     `json:"title"`
	Description   string     `json:"description"`
	Documents     StringList `json:"documents,omitempty"`
	ServiceChoice string     `json:"serviceChoice,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

const (
	PolicyAbout = "about"
	PolicyTerms = "terms"
)

// Policy is the singleton About Us / Terms block keyed by Type.
type Policy struct {
	ID      string `json:"_id,omitempty"`
	Type    string `json:"type"`
	Content string `json:"content"`
	Image   string `json:"image,omitempty"`
}

func IsPolicyType(t string) bool {
	return t == PolicyAbout || t == PolicyTerms
}

type FAQ struct {
	ID        string    `json:"_id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
