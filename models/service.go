package models

// Service is an agency service as published by the content API.
type Service struct {
	ID               int             `json:"id"`
	Slug             string          `json:"slug"`
	Title            LocalizedText   `json:"title"`
	Description      LocalizedText   `json:"description"`
	ShortDescription LocalizedText   `json:"short_description"`
	Icon             string          `json:"icon"`
	Image            *string         `json:"image"`
	Features         []LocalizedText `json:"features"`
	IsActive         bool            `json:"is_active"`
	Order            int             `json:"order"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
}
