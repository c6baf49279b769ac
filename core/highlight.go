package core

import (
	"fmt"
	"strings"

	"github.com/rivo/uniseg"
)

// Class tags how a grapheme cluster should be styled when rendered.
type Class int

const (
	None Class = iota
	Number
	String
	Comment
	Keyword
	Operator
	Match // search match overlay
)

var classNames = [...]string{
	None:     "none",
	Number:   "number",
	String:   "string",
	Comment:  "comment",
	Keyword:  "keyword",
	Operator: "operator",
	Match:    "match",
}

func (c Class) String() string {
	if c < 0 || int(c) >= len(classNames) {
		return "unknown"
	}
	return classNames[c]
}

// ParseClass resolves a class by its name, case-insensitively.
func ParseClass(name string) (Class, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range classNames {
		if n == name {
			return Class(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownClass, name)
}

// Classifier produces one class per grapheme cluster of text.
// Shorter results are allowed; missing positions render as None.
type Classifier interface {
	Classify(text string) []Class
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(text string) []Class

func (f ClassifierFunc) Classify(text string) []Class { return f(text) }

// NumberClassifier tags clusters that start with an ASCII digit as Number.
// It emits one class per cluster rather than one per scalar value.
var NumberClassifier Classifier = ClassifierFunc(classifyNumbers)

func classifyNumbers(text string) []Class {
	classes := make([]Class, 0, len(text))
	state := -1
	var cluster string
	for len(text) > 0 {
		cluster, text, _, state = uniseg.FirstGraphemeClusterInString(text, state)
		if c := cluster[0]; c >= '0' && c <= '9' {
			classes = append(classes, Number)
		} else {
			classes = append(classes, None)
		}
	}
	return classes
}

// RecomputeHighlight rebuilds the classes with the built-in number classifier.
func (l *Line) RecomputeHighlight() {
	l.Highlight(NumberClassifier)
}

// Highlight rebuilds the classes using c. A nil classifier clears them.
func (l *Line) Highlight(c Classifier) {
	l.stale = false
	if c == nil {
		l.classes = nil
		return
	}
	// Classifiers may cache their results; MarkMatches writes into ours.
	l.classes = append([]Class(nil), c.Classify(l.text)...)
}

// MarkMatches overlays Match on every cluster covered by an occurrence of query.
// Occurrences are found left to right without overlap.
func (l *Line) MarkMatches(query string) {
	if query == "" || l.Len() == 0 {
		return
	}

	if len(l.classes) < l.Len() {
		grown := make([]Class, l.Len())
		copy(grown, l.classes)
		l.classes = grown
	}

	offset := 0
	for {
		idx := strings.Index(l.text[offset:], query)
		if idx < 0 {
			return
		}
		from := offset + idx
		to := from + len(query)
		for i := l.clusterAt(from); i < l.Len() && l.bounds[i] < to; i++ {
			l.classes[i] = Match
		}
		offset = to
	}
}

// Classes returns a copy of the current highlight classes.
func (l *Line) Classes() []Class {
	if len(l.classes) == 0 {
		return nil
	}
	out := make([]Class, len(l.classes))
	copy(out, l.classes)
	return out
}

// ClassAt returns the class of the cluster at index, None when there is no entry.
func (l *Line) ClassAt(at int) Class {
	if at < 0 || at >= len(l.classes) {
		return None
	}
	return l.classes[at]
}

// HighlightStale reports whether text changed since the last highlight.
func (l *Line) HighlightStale() bool {
	return l.stale
}
