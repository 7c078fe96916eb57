package record

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
)

// Predicate decides whether a record belongs to a query
type Predicate interface {
	Matches(r Record) bool
}

// StartIs matches records whose start equals Value. A nil Value matches records without a start.
type StartIs struct{ Value *time.Time }

// ActivityIs matches records whose activity equals Value. A nil Value matches records without an activity.
type ActivityIs struct{ Value *time.Duration }

// RestIs matches records whose rest equals Value. A nil Value matches records without a rest.
type RestIs struct{ Value *time.Duration }

// NoteIs matches records whose note is exactly Value.
type NoteIs struct{ Value string }

func (p StartIs) Matches(r Record) bool    { return equalTime(p.Value, r.Start) }
func (p ActivityIs) Matches(r Record) bool { return equalDuration(p.Value, r.Activity) }
func (p RestIs) Matches(r Record) bool     { return equalDuration(p.Value, r.Rest) }
func (p NoteIs) Matches(r Record) bool     { return p.Value == r.Note }

// NoteGlob matches records whose note matches a glob pattern (e.g. "*review*").
type NoteGlob struct {
	Pattern string
	g       glob.Glob
}

// NewNoteGlob compiles pattern into a NoteGlob predicate
func NewNoteGlob(pattern string) (NoteGlob, error) {
	g, err := glob.Compile(pattern)
	if err != nil {
		return NoteGlob{}, fmt.Errorf("invalid note pattern %q: %w", pattern, err)
	}
	return NoteGlob{Pattern: pattern, g: g}, nil
}

// Matches reports whether the note matches the compiled pattern.
// A zero NoteGlob matches nothing.
func (p NoteGlob) Matches(r Record) bool {
	if p.g == nil {
		return false
	}
	return p.g.Match(r.Note)
}

// Query is a conjunction of predicates. An empty query matches every record.
type Query []Predicate

// Matches reports whether every predicate in q holds for r
func (q Query) Matches(r Record) bool {
	for _, p := range q {
		if !p.Matches(r) {
			return false
		}
	}
	return true
}

// Exactly builds a query that only matches records equal to r
func Exactly(r Record) Query {
	return Query{
		StartIs{r.Start},
		ActivityIs{r.Activity},
		RestIs{r.Rest},
		NoteIs{r.Note},
	}
}
