// Package search ranks documents against a query string in one of three
// scopes: fuzzy title match, fuzzy tag match, or literal body substring.
package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"go.uber.org/zap"

	"github.com/notare-dev/notare/internal/logging"
	"github.com/notare-dev/notare/internal/note"
)

// Scope selects which document attribute a query is matched against.
type Scope int

const (
	ScopeTitle Scope = iota
	ScopeTag
	ScopeContent
)

func (s Scope) String() string {
	switch s {
	case ScopeTag:
		return "tag"
	case ScopeContent:
		return "content"
	default:
		return "title"
	}
}

// contentBaseScore is granted to every qualifying content match; the fuzzy
// title score stacks on top so title relevance breaks ties among content
// matches. A poor title match can therefore outrank a better one when
// content qualification differs; that ordering is intended.
const contentBaseScore = 100

type scored struct {
	note  note.Note
	score int
}

// Rank filters and orders notes by query. An empty query returns the input
// unchanged (already carrying the active sort). Scores are signed integers,
// higher is better; ties keep the input order so results stay stable across
// query edits. Content scope loads bodies on demand through loadBody; a
// load failure excludes the document.
func Rank(notes []note.Note, query string, scope Scope, loadBody func(note.Note) (string, error)) []note.Note {
	if query == "" {
		out := make([]note.Note, len(notes))
		copy(out, notes)
		return out
	}

	ranked := make([]scored, 0, len(notes))
	for _, n := range notes {
		score, ok := scoreNote(n, query, scope, loadBody)
		if !ok {
			continue
		}
		ranked = append(ranked, scored{note: n, score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	out := make([]note.Note, len(ranked))
	for i, s := range ranked {
		out[i] = s.note
	}
	return out
}

func scoreNote(n note.Note, query string, scope Scope, loadBody func(note.Note) (string, error)) (int, bool) {
	switch scope {
	case ScopeTag:
		best := 0
		matched := false
		for _, tag := range n.Tags {
			s, ok := fuzzyScore(query, tag)
			if !ok {
				continue
			}
			if !matched || s > best {
				best = s
			}
			matched = true
		}
		return best, matched

	case ScopeContent:
		if loadBody == nil {
			return 0, false
		}
		body, err := loadBody(n)
		if err != nil {
			logging.L().Debug("content search skipping unreadable document",
				zap.String("title", n.Title), zap.Error(err))
			return 0, false
		}
		if !strings.Contains(strings.ToLower(body), strings.ToLower(query)) {
			return 0, false
		}
		score := contentBaseScore
		if s, ok := fuzzyScore(query, n.Title); ok {
			score += s
		}
		return score, true

	default:
		return fuzzyScore(query, n.Title)
	}
}

func fuzzyScore(query, target string) (int, bool) {
	matches := fuzzy.Find(query, []string{target})
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].Score, true
}
