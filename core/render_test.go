package core

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// bracketPainter makes markers visible: <class>cluster</>.
type bracketPainter struct{}

func (bracketPainter) Paint(c Class, cluster string) string {
	return "<" + c.String() + ">" + cluster + "</>"
}

func TestRenderWithMarkersPerCluster(t *testing.T) {
	l := NewLine("a1\tb")
	l.RecomputeHighlight()

	got := l.RenderWith(bracketPainter{}, 0, l.Len())
	require.Equal(t, "<none>a</><number>1</><none>  </><none>b</>", got)
}

func TestRenderMissingClassesUseNone(t *testing.T) {
	l := NewLine("12")
	l.RecomputeHighlight()
	l.Insert(2, '3')

	got := l.RenderWith(bracketPainter{}, 0, l.Len())
	require.Equal(t, "<number>1</><number>2</><none>3</>", got)
}

func TestRenderClamping(t *testing.T) {
	l := NewLine("hello")

	tests := []struct {
		name       string
		start, end int
		want       string
	}{
		{"full", 0, 5, "hello"},
		{"range", 1, 3, "el"},
		{"end past length", 2, 1000, "llo"},
		{"start past end", 4, 2, ""},
		{"start past length", 9, 12, ""},
		{"negative", -3, -1, ""},
		{"negative start", -3, 2, "he"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NotPanics(t, func() {
				require.Equal(t, tt.want, ansi.Strip(l.Render(tt.start, tt.end)))
			})
		})
	}
}

func TestRenderKeepsClustersWhole(t *testing.T) {
	l := NewLine("e\u0301👨\u200d👩\u200d👧x")
	got := l.RenderWith(bracketPainter{}, 0, 2)
	require.Equal(t, "<none>e\u0301</><none>👨\u200d👩\u200d👧</>", got)
}

func TestDefaultPainterMarkers(t *testing.T) {
	got := DefaultPainter.Paint(Number, "7")
	want := termenv.CSI + termenv.RGBColor("#DCA3A3").Sequence(false) + "m7" + termenv.CSI + "39m"
	require.Equal(t, want, got)
}

func TestANSIPainterFallsBackToNone(t *testing.T) {
	p := ANSIPainter{Colors: map[Class]termenv.Color{None: termenv.ANSIColor(7)}}
	require.Equal(t, p.Paint(None, "x"), p.Paint(Keyword, "x"))

	empty := ANSIPainter{}
	require.Equal(t, termenv.CSI+"39mx"+termenv.CSI+"39m", empty.Paint(Keyword, "x"))
}

func TestRenderProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		clusters := genText(t, "text")
		l := NewLine(join(clusters))

		visible := ansi.Strip(l.Render(0, l.Len()))
		want := strings.ReplaceAll(join(clusters), "\t", "  ")
		require.Equal(t, want, visible)

		marked := l.RenderWith(bracketPainter{}, 0, l.Len())
		require.Equal(t, len(clusters), strings.Count(marked, "</>"))
	})
}

func TestWidth(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\tx", 3},
		{"中文", 4},
		{"e\u0301", 1},
	}

	for _, tt := range tests {
		l := NewLine(tt.text)
		require.Equal(t, tt.want, l.Width(0, l.Len()), "text %q", tt.text)
	}
	require.Equal(t, 0, NewLine("abc").Width(2, 1))
}
