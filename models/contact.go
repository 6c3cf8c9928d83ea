package models

// ContactMessage is a contact form submission forwarded to the content API.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	Service string `json:"service,omitempty"`
}
