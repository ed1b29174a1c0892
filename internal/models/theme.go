package models

// AccentColor is an RGB triple in the "R G B" form used by the stylesheet.
type AccentColor string

const (
	AccentIndigo  AccentColor = "79 70 229"
	AccentBlue    AccentColor = "37 99 235"
	AccentEmerald AccentColor = "5 150 105"
	AccentRose    AccentColor = "225 29 72"
	AccentAmber   AccentColor = "217 119 6"
	AccentViolet  AccentColor = "124 58 237"
)

var AccentColors = []AccentColor{AccentIndigo, AccentBlue, AccentEmerald, AccentRose, AccentAmber, AccentViolet}

// ThemeSettings holds a client's display preferences.
type ThemeSettings struct {
	Dark        bool        `json:"dark"`
	AccentColor AccentColor `json:"accent_color" validate:"required,accent_color"`
}

func DefaultThemeSettings() ThemeSettings {
	return ThemeSettings{
		Dark:        false,
		AccentColor: AccentIndigo,
	}
}

func IsValidAccentColor(c AccentColor) bool {
	for _, valid := range AccentColors {
		if valid == c {
			return true
		}
	}
	return false
}
