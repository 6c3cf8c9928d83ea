package models

// Testimonial is a client quote with a 1-5 rating.
type Testimonial struct {
	ID             int           `json:"id"`
	ClientName     LocalizedText `json:"client_name"`
	ClientPosition LocalizedText `json:"client_position"`
	ClientCompany  string        `json:"client_company"`
	ClientImage    *string       `json:"client_image"`
	Content        LocalizedText `json:"content"`
	Rating         int           `json:"rating"`
	IsFeatured     bool          `json:"is_featured"`
	IsActive       bool          `json:"is_active"`
	Order          int           `json:"order"`
	CreatedAt      string        `json:"created_at"`
	UpdatedAt      string        `json:"updated_at"`
}
