package models

// Partner types as published by the API.
const (
	PartnerTypeClient  = "client"
	PartnerTypePartner = "partner"
	PartnerTypeSponsor = "sponsor"
)

// Partner is a client, partner or sponsor logo entry.
type Partner struct {
	ID          int            `json:"id"`
	Slug        string         `json:"slug"`
	Name        string         `json:"name"`
	Logo        string         `json:"logo"`
	Website     *string        `json:"website"`
	Description *LocalizedText `json:"description"`
	Type        string         `json:"type"`
	IsFeatured  bool           `json:"is_featured"`
	IsActive    bool           `json:"is_active"`
	Order       int            `json:"order"`
	CreatedAt   string         `json:"created_at"`
	UpdatedAt   string         `json:"updated_at"`
}
