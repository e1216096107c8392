package ui

import (
	"testing"

	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

func TestThemesUseStandardMarkdownStyles(t *testing.T) {
	for _, name := range ThemeNames() {
		style := GetTheme(name).Markdown
		if _, ok := styles.DefaultStyles[style]; !ok {
			t.Fatalf("theme %s: unknown glamour style %q", name, style)
		}
	}
}

func TestThemeNames(t *testing.T) {
	names := ThemeNames()
	want := []string{"Nightfox", "Kanagawa", "Slate"}
	if len(names) != len(want) {
		t.Fatalf("ThemeNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("ThemeNames() = %v, want %v", names, want)
		}
	}
}

func TestNextTheme(t *testing.T) {
	if got := NextTheme("Nightfox"); got != "Kanagawa" {
		t.Fatalf("NextTheme(Nightfox) = %q, want Kanagawa", got)
	}
	if got := NextTheme("Slate"); got != "Nightfox" {
		t.Fatalf("NextTheme(Slate) = %q, want Nightfox", got)
	}
	if got := NextTheme("Unknown"); got != "Nightfox" {
		t.Fatalf("NextTheme(Unknown) = %q, want Nightfox", got)
	}
}

func TestGetTheme_FallsBack(t *testing.T) {
	if got := GetTheme("Slate").Name; got != "Slate" {
		t.Fatalf("GetTheme(Slate).Name = %q", got)
	}
	if got := GetTheme("Dracula").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(Dracula).Name = %q, want Nightfox fallback", got)
	}
}

func TestLevelStyle(t *testing.T) {
	for _, name := range ThemeNames() {
		th := GetTheme(name)
		styles := th.Styles()
		for _, level := range []string{"debug", "info", "warn", "error"} {
			if th.LevelColors[level] == "" {
				t.Fatalf("%s: no color for level %q", name, level)
			}
			got := styles.LevelStyle(" " + level + " ").GetBackground()
			if got != lipgloss.Color(th.LevelColors[level]) {
				t.Fatalf("%s: LevelStyle(%q) background = %v", name, level, got)
			}
		}
		if got := styles.LevelStyle("trace").GetBackground(); got != lipgloss.Color(th.Muted) {
			t.Fatalf("%s: unknown level background = %v, want muted", name, got)
		}
	}
}
