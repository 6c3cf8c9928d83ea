package models

// Project is a portfolio entry. CompletedAt is null for ongoing work.
type Project struct {
	ID               int           `json:"id"`
	Slug             string        `json:"slug"`
	Title            LocalizedText `json:"title"`
	Description      LocalizedText `json:"description"`
	ShortDescription LocalizedText `json:"short_description"`
	ClientName       string        `json:"client_name"`
	ClientLogo       *string       `json:"client_logo"`
	Thumbnail        *string       `json:"thumbnail"`
	Images           []string      `json:"images"`
	Category         string        `json:"category"`
	Technologies     []string      `json:"technologies"`
	URL              *string       `json:"url"`
	IsFeatured       bool          `json:"is_featured"`
	IsActive         bool          `json:"is_active"`
	CompletedAt      *string       `json:"completed_at"`
	CreatedAt        string        `json:"created_at"`
	UpdatedAt        string        `json:"updated_at"`
}
