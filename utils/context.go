package utils

type contextKey string

// RequestIDKey carries the request id through the request context.
const RequestIDKey contextKey = "request_id"

// Locale extraction: the active display language comes from the ?lang query
// parameter or the Accept-Language header, defaulting to English.
const (
	LocaleEN = "en"
	LocaleAR = "ar"
)

// NormalizeLocale maps any client-supplied language tag onto the two
// supported locales.
func NormalizeLocale(lang string) string {
	if len(lang) >= 2 && lang[:2] == "ar" {
		return LocaleAR
	}
	return LocaleEN
}
