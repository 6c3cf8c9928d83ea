package models

// IconDefault is served in place of any icon identifier the site does not
// render, so a new backend icon name degrades to a visible placeholder
// instead of a blank slot.
const IconDefault = "sparkles"

var knownIcons = map[string]bool{
	"megaphone": true,
	"search":    true,
	"code":      true,
	"palette":   true,
	"chart":     true,
	"globe":     true,
	"shield":    true,
	"mobile":    true,
	"video":     true,
	"sparkles":  true,
}

// NormalizeIcon maps an icon identifier onto the closed set the site can
// render, substituting IconDefault for unknown names.
func NormalizeIcon(name string) string {
	if knownIcons[name] {
		return name
	}
	return IconDefault
}
