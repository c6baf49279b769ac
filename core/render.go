package core

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// tabReplacement is what a tab cluster renders as.
const tabReplacement = "  "

// Render paints clusters [start, end) with DefaultPainter.
func (l *Line) Render(start, end int) string {
	return l.RenderWith(DefaultPainter, start, end)
}

// RenderWith paints clusters [start, end) with p, one marker pair per cluster.
// end is clamped to the byte length of the text and start to end, so any
// pair of indices is accepted.
func (l *Line) RenderWith(p Painter, start, end int) string {
	start, end = l.clamp(start, end)
	if start == end {
		return ""
	}

	var sb strings.Builder
	for i := start; i < end; i++ {
		from, to := l.span(i)
		cluster := l.text[from:to]
		if cluster[0] == '\t' {
			cluster = tabReplacement
		}
		sb.WriteString(p.Paint(l.ClassAt(i), cluster))
	}
	return sb.String()
}

// Width returns the number of terminal cells Render(start, end) occupies.
func (l *Line) Width(start, end int) int {
	start, end = l.clamp(start, end)

	width := 0
	for i := start; i < end; i++ {
		from, to := l.span(i)
		width += clusterWidth(l.text[from:to])
	}
	return width
}

func (l *Line) clamp(start, end int) (int, int) {
	end = max(min(end, len(l.text), l.Len()), 0)
	start = min(max(start, 0), end)
	return start, end
}

func clusterWidth(cluster string) int {
	if cluster[0] == '\t' {
		return len(tabReplacement)
	}

	w := runewidth.StringWidth(cluster)
	if w <= 0 {
		w = max(uniseg.StringWidth(cluster), 0)
	}
	return w
}
