package models

// PricingPlan is a published pricing tier. BillingPeriod is one of
// "monthly", "yearly" or "one-time".
type PricingPlan struct {
	ID            int             `json:"id"`
	Name          LocalizedText   `json:"name"`
	Description   LocalizedText   `json:"description"`
	Price         float64         `json:"price"`
	Currency      string          `json:"currency"`
	BillingPeriod string          `json:"billing_period"`
	Features      []LocalizedText `json:"features"`
	IsFeatured    bool            `json:"is_featured"`
	IsActive      bool            `json:"is_active"`
	Order         int             `json:"order"`
	CtaText       LocalizedText   `json:"cta_text"`
	CreatedAt     string          `json:"created_at"`
	UpdatedAt     string          `json:"updated_at"`
}
