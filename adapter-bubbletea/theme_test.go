package adapter_bubbletea

import (
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/ionut-t/goline/core"
	"github.com/stretchr/testify/require"
)

func TestThemePaint(t *testing.T) {
	got := DefaultTheme.Paint(core.Number, "7")
	require.Equal(t, "7", ansi.Strip(got))
	require.Contains(t, got, "\x1b[")
}

func TestThemeRendersLine(t *testing.T) {
	l := core.NewLine("a1\tb")
	l.RecomputeHighlight()

	got := l.RenderWith(DefaultTheme, 0, l.Len())
	require.Equal(t, "a1  b", ansi.Strip(got))
}

func TestThemeFallsBackToNone(t *testing.T) {
	theme := Theme{Classes: map[core.Class]lipgloss.Style{
		core.None: lipgloss.NewStyle().Bold(true),
	}}
	require.Equal(t, theme.Paint(core.None, "x"), theme.Paint(core.Keyword, "x"))

	require.Equal(t, "x", Theme{}.Paint(core.Keyword, "x"))
}

func TestWithClassCopies(t *testing.T) {
	bold := lipgloss.NewStyle().Bold(true)
	theme := DefaultTheme.WithClass(core.Number, bold)

	require.Equal(t, bold, theme.Classes[core.Number])
	require.NotEqual(t, bold, DefaultTheme.Classes[core.Number])
}

func TestThemeFromChroma(t *testing.T) {
	theme := ThemeFromChroma("monokai")
	for class := range classTokens {
		require.Contains(t, theme.Classes, class)
	}
	require.Equal(t, DefaultTheme.Classes[core.Match], theme.Classes[core.Match])
}

func TestLoadTheme(t *testing.T) {
	input := `
classes:
  number:
    foreground: "#FF0000"
    bold: true
  Keyword:
    underline: true
`
	theme, err := LoadTheme(strings.NewReader(input), DefaultTheme)
	require.NoError(t, err)

	number := theme.Classes[core.Number]
	require.True(t, number.GetBold())
	require.Equal(t, lipgloss.Color("#FF0000"), number.GetForeground())
	require.True(t, theme.Classes[core.Keyword].GetUnderline())
	require.Equal(t, DefaultTheme.Classes[core.String], theme.Classes[core.String])
}

func TestLoadThemeExtends(t *testing.T) {
	theme, err := LoadTheme(strings.NewReader("extends: monokai\n"), DefaultTheme)
	require.NoError(t, err)
	require.Equal(t, ThemeFromChroma("monokai").Classes[core.Keyword], theme.Classes[core.Keyword])
	require.Equal(t, DefaultTheme.CursorStyle, theme.CursorStyle)
}

func TestLoadThemeEmpty(t *testing.T) {
	theme, err := LoadTheme(strings.NewReader(""), DefaultTheme)
	require.NoError(t, err)
	require.Equal(t, len(DefaultTheme.Classes), len(theme.Classes))
}

func TestLoadThemeErrors(t *testing.T) {
	_, err := LoadTheme(strings.NewReader("classes:\n  bogus:\n    bold: true\n"), DefaultTheme)
	require.ErrorIs(t, err, core.ErrUnknownClass)

	_, err = LoadTheme(strings.NewReader("classes: [1, 2"), DefaultTheme)
	require.Error(t, err)
}
