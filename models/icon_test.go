package models

import "testing"

func TestNormalizeIcon(t *testing.T) {
	if got := NormalizeIcon("megaphone"); got != "megaphone" {
		t.Fatalf("known icon must pass through, got %q", got)
	}
	if got := NormalizeIcon("brand-new-backend-icon"); got != IconDefault {
		t.Fatalf("unknown icon must clamp to the default, got %q", got)
	}
	if got := NormalizeIcon(""); got != IconDefault {
		t.Fatalf("empty icon must clamp to the default, got %q", got)
	}
}
