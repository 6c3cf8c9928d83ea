package models

import (
	"encoding/json"
	"strconv"
)

// LocalizedText holds bilingual content as delivered by the content API.
// On the wire it is either a plain JSON string or an {"en": ..., "ar": ...}
// object; some legacy records carry numbers. Both forms decode into this
// struct without error.
type LocalizedText struct {
	EN string `json:"en,omitempty"`
	AR string `json:"ar,omitempty"`

	// Plain is set when the wire value was a bare string or number.
	Plain string `json:"-"`
}

func (t *LocalizedText) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*t = LocalizedText{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*t = LocalizedText{Plain: s}
		return nil
	}

	var n float64
	if err := json.Unmarshal(b, &n); err == nil {
		*t = LocalizedText{Plain: strconv.FormatFloat(n, 'f', -1, 64)}
		return nil
	}

	var obj struct {
		EN json.RawMessage `json:"en"`
		AR json.RawMessage `json:"ar"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*t = LocalizedText{EN: scalarString(obj.EN), AR: scalarString(obj.AR)}
	return nil
}

func (t LocalizedText) MarshalJSON() ([]byte, error) {
	if t.Plain != "" && t.EN == "" && t.AR == "" {
		return json.Marshal(t.Plain)
	}
	return json.Marshal(struct {
		EN string `json:"en"`
		AR string `json:"ar"`
	}{t.EN, t.AR})
}

// Resolve picks the display string for locale with fallback order
// [locale, en, ar]. A missing value resolves to the empty string.
func (t LocalizedText) Resolve(locale string) string {
	if t.Plain != "" {
		return t.Plain
	}
	switch locale {
	case "ar":
		if t.AR != "" {
			return t.AR
		}
	default:
		if t.EN != "" {
			return t.EN
		}
	}
	if t.EN != "" {
		return t.EN
	}
	return t.AR
}

// IsZero reports whether no content is present in any form.
func (t LocalizedText) IsZero() bool {
	return t.Plain == "" && t.EN == "" && t.AR == ""
}

// scalarString decodes a raw JSON value that should be a string or a number.
// Anything else (nested objects, arrays) yields "".
func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return ""
}
