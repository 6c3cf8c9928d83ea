package utils

import (
	"strconv"

	"github.com/mo-sami19/zynk/models"
)

// LocalizedString extracts a display string from a value that may be a plain
// string, a number, a map in the API's {en, ar} shape, or a models.LocalizedText.
// Fallback order is [locale, en, ar]; unresolvable input yields "".
func LocalizedString(value interface{}, locale string) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case models.LocalizedText:
		return v.Resolve(locale)
	case *models.LocalizedText:
		if v == nil {
			return ""
		}
		return v.Resolve(locale)
	case map[string]interface{}:
		for _, key := range []string{locale, "en", "ar"} {
			if key == "" {
				continue
			}
			if picked, ok := v[key]; ok {
				if s := scalarToString(picked); s != "" {
					return s
				}
			}
		}
		return ""
	default:
		return ""
	}
}

// LocalizedStrings maps each element through LocalizedString and drops empty
// results, preserving input order.
func LocalizedStrings(values []interface{}, locale string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := LocalizedString(v, locale); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ResolveTexts projects a slice of LocalizedText (e.g. service features) into
// display strings for locale, dropping entries with no content.
func ResolveTexts(values []models.LocalizedText, locale string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if s := v.Resolve(locale); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func scalarToString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	default:
		return ""
	}
}
