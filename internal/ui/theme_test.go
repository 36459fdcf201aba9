package ui

import "testing"

func TestGetTheme_KnownAndFallback(t *testing.T) {
	if got := GetTheme("Nord"); got.Name != "Nord" {
		t.Fatalf("GetTheme(Nord).Name = %q", got.Name)
	}
	if got := GetTheme("NoSuchTheme"); got.Name != themes[0].Name {
		t.Fatalf("GetTheme(unknown) = %q, want fallback %q", got.Name, themes[0].Name)
	}
}

func TestNextTheme_CyclesThroughAll(t *testing.T) {
	name := themes[0].Name
	seen := map[string]bool{}
	for range themes {
		seen[name] = true
		name = NextTheme(name)
	}
	if len(seen) != len(themes) {
		t.Fatalf("cycle covered %d themes, want %d", len(seen), len(themes))
	}
	if name != themes[0].Name {
		t.Fatalf("cycle did not wrap to %q, got %q", themes[0].Name, name)
	}
}

func TestThemes_AllFieldsPopulated(t *testing.T) {
	for _, theme := range themes {
		for field, value := range map[string]string{
			"Background": theme.Background,
			"Surface":    theme.Surface,
			"Border":     theme.Border,
			"Text":       theme.Text,
			"Muted":      theme.Muted,
			"Faint":      theme.Faint,
			"Accent":     theme.Accent,
			"Success":    theme.Success,
			"Warning":    theme.Warning,
			"Danger":     theme.Danger,
		} {
			if value == "" {
				t.Fatalf("theme %s missing %s", theme.Name, field)
			}
		}
	}
}
