package models

// SocialLinks holds a team member's profile URLs; absent entries are omitted.
type SocialLinks struct {
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	GitHub   string `json:"github,omitempty"`
}

// TeamMember is a staff profile shown on the about page.
type TeamMember struct {
	ID          int           `json:"id"`
	Name        LocalizedText `json:"name"`
	Position    LocalizedText `json:"position"`
	Bio         LocalizedText `json:"bio"`
	Image       *string       `json:"image"`
	Email       *string       `json:"email"`
	Phone       *string       `json:"phone"`
	SocialLinks SocialLinks   `json:"social_links"`
	IsActive    bool          `json:"is_active"`
	Order       int           `json:"order"`
	CreatedAt   string        `json:"created_at"`
	UpdatedAt   string        `json:"updated_at"`
}
