package adapter_bubbletea

import (
	"errors"
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/ionut-t/goline/core"
	"gopkg.in/yaml.v3"
)

// Theme paints highlight classes with lipgloss styles. It implements core.Painter.
type Theme struct {
	Classes     map[core.Class]lipgloss.Style
	CursorStyle lipgloss.Style
	PromptStyle lipgloss.Style
	StatusStyle lipgloss.Style
	ErrorStyle  lipgloss.Style
}

var DefaultTheme = Theme{
	Classes: map[core.Class]lipgloss.Style{
		core.None:     lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")),
		core.Number:   lipgloss.NewStyle().Foreground(lipgloss.Color("#DCA3A3")),
		core.String:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A3BE8C")),
		core.Comment:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true),
		core.Keyword:  lipgloss.NewStyle().Foreground(lipgloss.Color("#B48EAD")).Bold(true),
		core.Operator: lipgloss.NewStyle().Foreground(lipgloss.Color("#88C0D0")),
		core.Match:    lipgloss.NewStyle().Foreground(lipgloss.Color("#268BD2")).Underline(true),
	},
	CursorStyle: lipgloss.NewStyle().Reverse(true),
	PromptStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("62")),
	StatusStyle: lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	ErrorStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
}

// Paint renders cluster with the style of c, falling back to the None style.
func (t Theme) Paint(c core.Class, cluster string) string {
	return t.style(c).Render(cluster)
}

func (t Theme) style(c core.Class) lipgloss.Style {
	if style, ok := t.Classes[c]; ok {
		return style
	}
	if style, ok := t.Classes[core.None]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// WithClass returns a copy of the theme with the style for c replaced.
func (t Theme) WithClass(c core.Class, style lipgloss.Style) Theme {
	t = t.clone()
	t.Classes[c] = style
	return t
}

func (t Theme) clone() Theme {
	classes := make(map[core.Class]lipgloss.Style, len(t.Classes)+1)
	for k, v := range t.Classes {
		classes[k] = v
	}
	t.Classes = classes
	return t
}

// classTokens maps each class to the chroma token whose style represents it.
var classTokens = map[core.Class]chroma.TokenType{
	core.None:     chroma.Text,
	core.Number:   chroma.LiteralNumber,
	core.String:   chroma.LiteralString,
	core.Comment:  chroma.Comment,
	core.Keyword:  chroma.Keyword,
	core.Operator: chroma.Operator,
}

// ThemeFromChroma derives class styles from a chroma style such as "monokai".
// Unknown names resolve to chroma's fallback style.
func ThemeFromChroma(name string) Theme {
	style := styles.Get(name)

	theme := DefaultTheme.clone()
	for class, tokenType := range classTokens {
		theme.Classes[class] = styleForToken(style, tokenType)
	}
	return theme
}

// styleForToken converts a chroma style entry to a lipgloss style.
func styleForToken(style *chroma.Style, tokenType chroma.TokenType) lipgloss.Style {
	entry := style.Get(tokenType)

	s := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		s = s.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		s = s.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		s = s.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		s = s.Underline(true)
	}
	return s
}

// StyleSpec is the YAML form of a single class style.
type StyleSpec struct {
	Foreground string `yaml:"foreground"`
	Background string `yaml:"background"`
	Bold       bool   `yaml:"bold"`
	Italic     bool   `yaml:"italic"`
	Underline  bool   `yaml:"underline"`
}

// ThemeFile is the YAML layout accepted by LoadTheme:
//
//	extends: monokai
//	classes:
//	  number:
//	    foreground: "#DCA3A3"
//	    bold: true
type ThemeFile struct {
	Extends string               `yaml:"extends"`
	Classes map[string]StyleSpec `yaml:"classes"`
}

// LoadTheme reads a YAML theme. Classes not listed keep the style of base,
// or of the chroma style named by extends.
func LoadTheme(r io.Reader, base Theme) (Theme, error) {
	var file ThemeFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return Theme{}, fmt.Errorf("decode theme: %w", err)
	}

	theme := base
	if file.Extends != "" {
		theme = ThemeFromChroma(file.Extends)
		theme.CursorStyle = base.CursorStyle
		theme.PromptStyle = base.PromptStyle
		theme.StatusStyle = base.StatusStyle
		theme.ErrorStyle = base.ErrorStyle
	}

	for name, spec := range file.Classes {
		class, err := core.ParseClass(name)
		if err != nil {
			return Theme{}, fmt.Errorf("theme class: %w", err)
		}
		theme = theme.WithClass(class, spec.style())
	}
	return theme, nil
}

func (s StyleSpec) style() lipgloss.Style {
	style := lipgloss.NewStyle().Bold(s.Bold).Italic(s.Italic).Underline(s.Underline)
	if s.Foreground != "" {
		style = style.Foreground(lipgloss.Color(s.Foreground))
	}
	if s.Background != "" {
		style = style.Background(lipgloss.Color(s.Background))
	}
	return style
}
