package models

// Settings is the free-form key/value bag served by the settings endpoints.
type Settings map[string]interface{}

// SeoData is the SEO payload for a page, keyed by type and slug.
type SeoData struct {
	MetaTitle       LocalizedText          `json:"meta_title"`
	MetaDescription LocalizedText          `json:"meta_description"`
	Keywords        []string               `json:"keywords"`
	OgImage         *string                `json:"og_image"`
	SchemaMarkup    map[string]interface{} `json:"schema_markup"`
}
