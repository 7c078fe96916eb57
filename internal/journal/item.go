// Package journal implements the line-oriented record journal: a cursor over
// a line buffer, query resolution relative to an anchor record, and a
// file-backed store that mutates lines and flushes them safely.
package journal

import "github.com/xolan/tt/internal/record"

// Item is a single journal line as seen by a Cursor.
// A line that does not follow the record grammar is kept as an opaque item
// and is never matched by queries.
type Item struct {
	Record record.Record
	Raw    string // Original text of an opaque line
	Opaque bool
}

// RecordItem wraps r in an Item.
func RecordItem(r record.Record) Item {
	return Item{Record: r}
}

// OpaqueItem wraps a line that could not be parsed.
func OpaqueItem(line string) Item {
	return Item{Raw: line, Opaque: true}
}

// IsRecord reports whether the item holds a parsed record
func (it Item) IsRecord() bool {
	return !it.Opaque
}

// Text returns the line the item is written as.
// An opaque item returns its original text unchanged.
func (it Item) Text() string {
	if it.Opaque {
		return it.Raw
	}
	return record.Format(it.Record)
}
