package models

import "time"

// ChatSessionRecord archives a finished lead-capture conversation for ops
// review. The gateway is not the system of record for leads; the archive
// exists so lead scores and transcripts survive upstream retention windows.
type ChatSessionRecord struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	GatewayID  string     `gorm:"column:gateway_id;size:64;uniqueIndex" json:"gateway_id"`
	UpstreamID string     `gorm:"column:upstream_id;size:64;index" json:"upstream_id"`
	Language   string     `gorm:"size:5" json:"language"`
	LeadScore  int        `gorm:"column:lead_score" json:"lead_score"`
	IsComplete bool       `gorm:"column:is_complete;default:false" json:"is_complete"`
	Rating     *int       `json:"rating,omitempty"`
	Feedback   string     `gorm:"type:text" json:"feedback,omitempty"`
	RatedAt    *time.Time `gorm:"column:rated_at" json:"rated_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`

	Messages []ChatMessageRecord `gorm:"foreignKey:SessionRecordID" json:"messages,omitempty"`
}

func (ChatSessionRecord) TableName() string {
	return "chat_session_records"
}

// ChatMessageRecord is one archived transcript turn.
type ChatMessageRecord struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	SessionRecordID uint      `gorm:"column:session_record_id;not null;index" json:"session_record_id"`
	Role            string    `gorm:"size:10;not null" json:"role"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	SentAt          time.Time `gorm:"column:sent_at" json:"sent_at"`
	CreatedAt       time.Time `json:"created_at"`
}

func (ChatMessageRecord) TableName() string {
	return "chat_message_records"
}

// Contact record delivery states.
const (
	ContactStatusSent    = "sent"
	ContactStatusPending = "pending"
	ContactStatusFailed  = "failed"
)

// ContactRecord archives a contact form submission and, when upstream
// delivery failed, queues it for the background flusher.
type ContactRecord struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100" json:"name"`
	Email     string     `gorm:"size:255" json:"email"`
	Phone     string     `gorm:"size:20" json:"phone,omitempty"`
	Subject   string     `gorm:"size:200" json:"subject"`
	Message   string     `gorm:"type:text" json:"message"`
	Service   string     `gorm:"size:100" json:"service,omitempty"`
	Status    string     `gorm:"type:enum('sent','pending','failed');default:'pending';index" json:"status"`
	Attempts  int        `gorm:"default:0" json:"attempts"`
	SentAt    *time.Time `gorm:"column:sent_at" json:"sent_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (ContactRecord) TableName() string {
	return "contact_records"
}
