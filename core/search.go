package core

import "strings"

// SearchDirection selects which side of the start index Find scans.
type SearchDirection int

const (
	Forward  SearchDirection = iota // [at, Len())
	Backward                        // [0, at)
)

func (d SearchDirection) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Find looks for the literal query starting from cluster index at and returns
// the cluster index of the match. Forward returns the leftmost match in
// [at, Len()), Backward the rightmost match in [0, at).
//
// An empty query never matches. A match that does not start on a cluster
// boundary counts as no match.
func (l *Line) Find(query string, at int, dir SearchDirection) (int, bool) {
	if query == "" || at > l.Len() {
		return 0, false
	}
	at = max(at, 0)

	var from, to int
	if dir == Forward {
		from, to = l.offset(at), len(l.text)
	} else {
		from, to = 0, l.offset(at)
	}

	var idx int
	if dir == Forward {
		idx = strings.Index(l.text[from:to], query)
	} else {
		idx = strings.LastIndex(l.text[from:to], query)
	}
	if idx < 0 {
		return 0, false
	}

	return l.boundaryAt(from + idx)
}

// offset returns the byte offset of cluster at, or len(text) at the end.
func (l *Line) offset(at int) int {
	if at >= len(l.bounds) {
		return len(l.text)
	}
	return l.bounds[at]
}
