package core

import (
	"strings"

	"github.com/muesli/termenv"
)

// Painter wraps a single grapheme cluster in the markers for its class:
// a foreground marker, the cluster, then a foreground reset.
type Painter interface {
	Paint(c Class, cluster string) string
}

const resetForeground = termenv.CSI + "39m"

// ANSIPainter emits SGR foreground sequences. Classes without a color use
// the None color, or the terminal default when that is unset too.
type ANSIPainter struct {
	Colors map[Class]termenv.Color
}

// DefaultPainter uses the classic editor palette.
var DefaultPainter = ANSIPainter{
	Colors: map[Class]termenv.Color{
		None:     termenv.RGBColor("#FFFFFF"),
		Number:   termenv.RGBColor("#DCA3A3"),
		String:   termenv.RGBColor("#D3D3D3"),
		Comment:  termenv.RGBColor("#858585"),
		Keyword:  termenv.RGBColor("#B48EAD"),
		Operator: termenv.RGBColor("#88C0D0"),
		Match:    termenv.RGBColor("#268BD2"),
	},
}

func (p ANSIPainter) Paint(c Class, cluster string) string {
	var sb strings.Builder
	sb.Grow(len(cluster) + 24)
	sb.WriteString(p.foreground(c))
	sb.WriteString(cluster)
	sb.WriteString(resetForeground)
	return sb.String()
}

func (p ANSIPainter) foreground(c Class) string {
	color, ok := p.Colors[c]
	if !ok {
		color, ok = p.Colors[None]
	}
	if !ok || color == nil {
		return resetForeground
	}
	seq := color.Sequence(false)
	if seq == "" {
		return resetForeground
	}
	return termenv.CSI + seq + "m"
}
