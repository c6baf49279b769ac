package core

import (
	"sort"
	"strings"

	"github.com/rivo/uniseg"
)

// Line holds the text of a single row.
// All positions are grapheme cluster indices; Len() is a valid insertion point.
//
// A Line performs no synchronization; callers serialize access.
type Line struct {
	text    string
	bounds  []int   // byte offset of each cluster start
	classes []Class // one per cluster, may lag behind text
	stale   bool
}

// NewLine creates a line holding a copy of text.
func NewLine(text string) *Line {
	l := &Line{text: strings.Clone(text)}
	l.reindex(0)
	l.stale = l.text != ""
	return l
}

// Len returns the number of grapheme clusters.
func (l *Line) Len() int {
	return len(l.bounds)
}

// IsEmpty reports whether the line holds no clusters.
func (l *Line) IsEmpty() bool {
	return len(l.bounds) == 0
}

// String returns the text of the line.
func (l *Line) String() string {
	return l.text
}

// Bytes returns a copy of the encoded text.
func (l *Line) Bytes() []byte {
	return []byte(l.text)
}

// Grapheme returns the cluster at index at.
func (l *Line) Grapheme(at int) (string, bool) {
	if at < 0 || at >= l.Len() {
		return "", false
	}
	from, to := l.span(at)
	return l.text[from:to], true
}

// Insert places r before the cluster at index at.
// Indices at or past the end append.
func (l *Line) Insert(at int, r rune) {
	l.InsertString(at, string(r))
}

// InsertString places s before the cluster at index at.
func (l *Line) InsertString(at int, s string) {
	if s == "" {
		return
	}
	l.stale = true
	at = max(at, 0)

	// Appending can only affect the last cluster.
	if at >= l.Len() {
		l.text += s
		l.reindex(l.Len() - 1)
		return
	}

	offset := l.bounds[at]
	l.text = l.text[:offset] + s + l.text[offset:]
	l.reindex(at - 1)
}

// Delete removes the cluster at index at. Out of range indices are ignored.
func (l *Line) Delete(at int) {
	if at < 0 || at >= l.Len() {
		return
	}
	l.stale = true

	from, to := l.span(at)
	l.text = l.text[:from] + l.text[to:]
	l.reindex(at - 1)
}

// Append moves the text of other onto the end of l.
func (l *Line) Append(other *Line) {
	if other == nil || other.text == "" {
		return
	}
	l.stale = true

	last := l.Len() - 1
	l.text += other.text
	l.reindex(last)
}

// Split keeps clusters [0, at) in l and returns a new line holding [at, Len()).
func (l *Line) Split(at int) *Line {
	at = min(max(at, 0), l.Len())
	l.stale = true

	if at == l.Len() {
		return &Line{}
	}

	offset := l.bounds[at]
	rest := NewLine(l.text[offset:])
	l.text = strings.Clone(l.text[:offset])
	l.bounds = l.bounds[:at:at]
	return rest
}

// span returns the byte range of the cluster at index at.
func (l *Line) span(at int) (int, int) {
	to := len(l.text)
	if at+1 < len(l.bounds) {
		to = l.bounds[at+1]
	}
	return l.bounds[at], to
}

// clusterAt returns the index of the cluster containing the byte offset.
func (l *Line) clusterAt(offset int) int {
	return sort.Search(len(l.bounds), func(i int) bool { return l.bounds[i] > offset }) - 1
}

// boundaryAt returns the index of the cluster starting exactly at offset.
func (l *Line) boundaryAt(offset int) (int, bool) {
	i := sort.SearchInts(l.bounds, offset)
	if i < len(l.bounds) && l.bounds[i] == offset {
		return i, true
	}
	return 0, false
}

// reindex rebuilds the boundary index starting at cluster from, whose
// start offset is assumed to still be a cluster boundary.
func (l *Line) reindex(from int) {
	if from < 0 || from >= len(l.bounds) {
		from = 0
	}

	offset := 0
	if from < len(l.bounds) {
		offset = l.bounds[from]
	}

	l.bounds = l.bounds[:from]
	rest := l.text[offset:]
	state := -1
	var cluster string
	for len(rest) > 0 {
		l.bounds = append(l.bounds, offset)
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		offset += len(cluster)
	}
}
