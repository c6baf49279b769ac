package core

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecomputeHighlight(t *testing.T) {
	l := NewLine("a1b2")
	require.True(t, l.HighlightStale())

	l.RecomputeHighlight()
	require.False(t, l.HighlightStale())
	require.Equal(t, []Class{None, Number, None, Number}, l.Classes())
}

func TestRecomputeHighlightIsPerCluster(t *testing.T) {
	l := NewLine("e\u03011\u20e3x")
	l.RecomputeHighlight()
	require.Equal(t, []Class{None, Number, None}, l.Classes())
	require.Len(t, l.Classes(), l.Len())
}

func TestHighlightStaleAfterMutation(t *testing.T) {
	mutations := map[string]func(l *Line){
		"insert": func(l *Line) { l.Insert(0, 'x') },
		"delete": func(l *Line) { l.Delete(0) },
		"append": func(l *Line) { l.Append(NewLine("x")) },
		"split":  func(l *Line) { l.Split(1) },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			l := NewLine("12")
			l.RecomputeHighlight()
			mutate(l)
			require.True(t, l.HighlightStale())
		})
	}
}

func TestHighlightWithClassifier(t *testing.T) {
	l := NewLine("if x")
	l.Highlight(ClassifierFunc(func(text string) []Class {
		return []Class{Keyword, Keyword}
	}))
	require.Equal(t, Keyword, l.ClassAt(1))
	require.Equal(t, None, l.ClassAt(2))
	require.Equal(t, None, l.ClassAt(-1))

	l.Highlight(nil)
	require.Empty(t, l.Classes())
	require.False(t, l.HighlightStale())
}

func TestClassesReturnsCopy(t *testing.T) {
	l := NewLine("1")
	l.RecomputeHighlight()
	c := l.Classes()
	c[0] = Keyword
	require.Equal(t, Number, l.ClassAt(0))
}

func TestMarkMatches(t *testing.T) {
	l := NewLine("cat 1 cat")
	l.RecomputeHighlight()
	l.MarkMatches("cat")

	want := []Class{Match, Match, Match, None, Number, None, Match, Match, Match}
	require.Equal(t, want, l.Classes())
}

func TestMarkMatchesGrowsStaleClasses(t *testing.T) {
	l := NewLine("ab")
	l.MarkMatches("b")
	require.Equal(t, []Class{None, Match}, l.Classes())

	l.MarkMatches("")
	require.Equal(t, []Class{None, Match}, l.Classes())
}

func TestParseClass(t *testing.T) {
	c, err := ParseClass(" Number ")
	require.NoError(t, err)
	require.Equal(t, Number, c)

	_, err = ParseClass("bogus")
	require.ErrorIs(t, err, ErrUnknownClass)

	require.Equal(t, "match", Match.String())
	require.Equal(t, "unknown", Class(42).String())
}
