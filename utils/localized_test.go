package utils

import (
	"testing"

	"github.com/mo-sami19/zynk/models"
)

func TestLocalizedString_Nil(t *testing.T) {
	if got := LocalizedString(nil, "en"); got != "" {
		t.Fatalf("expected empty string for nil, got %q", got)
	}
}

func TestLocalizedString_PlainPassthrough(t *testing.T) {
	if got := LocalizedString("Hello", "ar"); got != "Hello" {
		t.Fatalf("expected plain string passthrough, got %q", got)
	}
}

func TestLocalizedString_Number(t *testing.T) {
	if got := LocalizedString(float64(42), "en"); got != "42" {
		t.Fatalf("expected \"42\", got %q", got)
	}
}

func TestLocalizedString_MapFallbackToEnglish(t *testing.T) {
	v := map[string]interface{}{"en": "Hi"}
	if got := LocalizedString(v, "ar"); got != "Hi" {
		t.Fatalf("expected english fallback for arabic locale, got %q", got)
	}
}

func TestLocalizedString_MapPrefersLocale(t *testing.T) {
	v := map[string]interface{}{"en": "Hi", "ar": "مرحبا"}
	if got := LocalizedString(v, "ar"); got != "مرحبا" {
		t.Fatalf("expected arabic value, got %q", got)
	}
	if got := LocalizedString(v, "en"); got != "Hi" {
		t.Fatalf("expected english value, got %q", got)
	}
}

func TestLocalizedString_MapArabicOnly(t *testing.T) {
	v := map[string]interface{}{"ar": "مرحبا"}
	if got := LocalizedString(v, "en"); got != "مرحبا" {
		t.Fatalf("expected arabic fallback when english missing, got %q", got)
	}
}

func TestLocalizedText_Resolve(t *testing.T) {
	txt := models.LocalizedText{EN: "Services", AR: "خدمات"}
	if got := LocalizedString(txt, "ar"); got != "خدمات" {
		t.Fatalf("expected arabic resolution, got %q", got)
	}
	empty := models.LocalizedText{}
	if got := LocalizedString(empty, "en"); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

func TestResolveTexts_DropsEmpty(t *testing.T) {
	in := []models.LocalizedText{
		{EN: "One"},
		{},
		{AR: "اثنان"},
	}
	out := ResolveTexts(in, "en")
	if len(out) != 2 || out[0] != "One" || out[1] != "اثنان" {
		t.Fatalf("unexpected resolution: %v", out)
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"ar":         LocaleAR,
		"ar-SA":      LocaleAR,
		"en":         LocaleEN,
		"en-US":      LocaleEN,
		"fr":         LocaleEN,
		"":           LocaleEN,
		"ar,en;q=.9": LocaleAR,
	}
	for in, want := range cases {
		if got := NormalizeLocale(in); got != want {
			t.Fatalf("NormalizeLocale(%q) = %q, want %q", in, got, want)
		}
	}
}
