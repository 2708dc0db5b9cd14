package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the colour scheme for the TUI. The last five colours paint
// array elements by highlight role.
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Accent    lipgloss.Color
	Text      lipgloss.Color
	Muted     lipgloss.Color

	Normal    lipgloss.Color
	Comparing lipgloss.Color
	Swapping  lipgloss.Color
	Sorted    lipgloss.Color
	Pivot     lipgloss.Color
}

// Available themes
var (
	ThemeClassic = Theme{
		Name:      "classic",
		Primary:   lipgloss.Color("#3B82F6"),
		Secondary: lipgloss.Color("#60A5FA"),
		Accent:    lipgloss.Color("#F59E0B"),
		Text:      lipgloss.Color("#F3F4F6"),
		Muted:     lipgloss.Color("#6B7280"),
		Normal:    lipgloss.Color("#3B82F6"),
		Comparing: lipgloss.Color("#F59E0B"),
		Swapping:  lipgloss.Color("#EF4444"),
		Sorted:    lipgloss.Color("#10B981"),
		Pivot:     lipgloss.Color("#8B5CF6"),
	}

	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"), // Magenta
		Secondary: lipgloss.Color("#00ffff"), // Cyan
		Accent:    lipgloss.Color("#ffff00"),
		Text:      lipgloss.Color("#ffffff"),
		Muted:     lipgloss.Color("#666666"),
		Normal:    lipgloss.Color("#00ffff"),
		Comparing: lipgloss.Color("#ffff00"),
		Swapping:  lipgloss.Color("#ff0055"),
		Sorted:    lipgloss.Color("#00ff00"),
		Pivot:     lipgloss.Color("#ff00ff"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"), // Green phosphor
		Secondary: lipgloss.Color("#00cc00"),
		Accent:    lipgloss.Color("#88ff88"),
		Text:      lipgloss.Color("#00ff00"),
		Muted:     lipgloss.Color("#005500"),
		Normal:    lipgloss.Color("#008800"),
		Comparing: lipgloss.Color("#ffff00"),
		Swapping:  lipgloss.Color("#ff8800"),
		Sorted:    lipgloss.Color("#88ff88"),
		Pivot:     lipgloss.Color("#00ffaa"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"), // Ocean blue
		Secondary: lipgloss.Color("#00a8cc"),
		Accent:    lipgloss.Color("#ffd700"),
		Text:      lipgloss.Color("#e0f0ff"),
		Muted:     lipgloss.Color("#4488aa"),
		Normal:    lipgloss.Color("#0077be"),
		Comparing: lipgloss.Color("#ffd700"),
		Swapping:  lipgloss.Color("#ff4444"),
		Sorted:    lipgloss.Color("#00ff88"),
		Pivot:     lipgloss.Color("#cc88ff"),
	}

	ThemeSunset = Theme{
		Name:      "sunset",
		Primary:   lipgloss.Color("#ff6b6b"), // Coral
		Secondary: lipgloss.Color("#feca57"),
		Accent:    lipgloss.Color("#ff9ff3"),
		Text:      lipgloss.Color("#fff5f5"),
		Muted:     lipgloss.Color("#8b6b8c"),
		Normal:    lipgloss.Color("#feca57"),
		Comparing: lipgloss.Color("#ff9ff3"),
		Swapping:  lipgloss.Color("#ff4757"),
		Sorted:    lipgloss.Color("#5fd068"),
		Pivot:     lipgloss.Color("#a29bfe"),
	}

	// All available themes
	Themes = []Theme{
		ThemeClassic,
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
		ThemeSunset,
	}
)

// GetTheme returns a theme by name, falling back to classic.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeClassic
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i, th := range Themes {
		if th.Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// RoleColor maps a playback highlight role to the theme colour.
func (t Theme) RoleColor(role string) lipgloss.Color {
	switch role {
	case "comparing":
		return t.Comparing
	case "swapping":
		return t.Swapping
	case "sorted":
		return t.Sorted
	case "pivot":
		return t.Pivot
	default:
		return t.Normal
	}
}
