package content

import (
	"context"

	"github.com/mo-sami19/zynk/models"
)

// Maximum field lengths accepted by the contact form. These are enforced
// before any network call so oversized submissions never reach the backend.
const (
	MaxNameLength    = 100
	MaxEmailLength   = 255
	MaxPhoneLength   = 20
	MaxSubjectLength = 200
	MaxMessageLength = 1000
)

// ValidateContact checks the client-side length ceilings for a contact
// submission. It returns a *ValidationError naming the first offending field.
func ValidateContact(msg models.ContactMessage) error {
	if len(msg.Name) > MaxNameLength {
		return &ValidationError{Field: "name", Limit: MaxNameLength, Length: len(msg.Name)}
	}
	if len(msg.Email) > MaxEmailLength {
		return &ValidationError{Field: "email", Limit: MaxEmailLength, Length: len(msg.Email)}
	}
	if len(msg.Phone) > MaxPhoneLength {
		return &ValidationError{Field: "phone", Limit: MaxPhoneLength, Length: len(msg.Phone)}
	}
	if len(msg.Subject) > MaxSubjectLength {
		return &ValidationError{Field: "subject", Limit: MaxSubjectLength, Length: len(msg.Subject)}
	}
	if len(msg.Message) > MaxMessageLength {
		return &ValidationError{Field: "message", Limit: MaxMessageLength, Length: len(msg.Message)}
	}
	return nil
}

// SubmitContact validates then forwards a contact form submission. The
// returned id is the upstream record id.
func (c *Client) SubmitContact(ctx context.Context, msg models.ContactMessage) (int, error) {
	if err := ValidateContact(msg); err != nil {
		return 0, err
	}

	var env Envelope[struct {
		ID int `json:"id"`
	}]
	if err := c.post(ctx, "/v1/contact", msg, &env); err != nil {
		return 0, err
	}
	return env.Data.ID, nil
}
