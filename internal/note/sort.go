package note

import (
	"sort"
	"strings"
)

// SortMode selects the document ordering for listings and search results.
type SortMode int

const (
	SortModified SortMode = iota // last modified, newest first
	SortName                     // case-insensitive title, ascending
	SortSize                     // byte size, largest first
)

// Next cycles to the following sort mode.
func (m SortMode) Next() SortMode {
	switch m {
	case SortModified:
		return SortName
	case SortName:
		return SortSize
	default:
		return SortModified
	}
}

func (m SortMode) String() string {
	switch m {
	case SortName:
		return "name"
	case SortSize:
		return "size"
	default:
		return "modified"
	}
}

// ParseSortMode maps a config value to a sort mode; unknown values fall
// back to the default.
func ParseSortMode(s string) SortMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "name":
		return SortName
	case "size":
		return SortSize
	default:
		return SortModified
	}
}

// SortNotes orders notes in place per the given mode. The sort is stable so
// equal keys keep their relative order.
func SortNotes(notes []Note, mode SortMode) {
	sort.SliceStable(notes, func(i, j int) bool {
		return noteLess(notes[i], notes[j], mode)
	})
}

func sortEntries(docs []Entry, mode SortMode) {
	sort.SliceStable(docs, func(i, j int) bool {
		return noteLess(docs[i].Note, docs[j].Note, mode)
	})
}

func noteLess(a, b Note, mode SortMode) bool {
	switch mode {
	case SortName:
		return strings.ToLower(a.Title) < strings.ToLower(b.Title)
	case SortSize:
		return a.Size > b.Size
	default:
		return a.Modified.After(b.Modified)
	}
}
