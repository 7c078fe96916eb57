package journal

import "github.com/xolan/tt/internal/record"

// Locate walks c forward to the first record matching q (the anchor) and
// resolves offset relative to it. Opaque lines are skipped and never match.
//
// A positive offset moves forward from the anchor. A negative offset moves
// backward, except when the anchor is the first record the walk saw: then
// the cursor first jumps to the end of the journal, so Locate(c, nil, -1)
// is the last record of the file.
//
// The record found is returned with the cursor parked on its line. It
// returns false if nothing matches or the offset lands on an opaque line or
// past a boundary.
func Locate(c *Cursor, q record.Query, offset int) (record.Record, bool) {
	isFirstMatch := true
	for {
		item, ok := c.Next()
		if !ok {
			return record.Record{}, false
		}
		if item.Opaque {
			continue
		}
		if !q.Matches(item.Record) {
			isFirstMatch = false
			continue
		}

		switch {
		case offset == 0:
			return item.Record, true
		case offset > 0:
			c.Forward(offset)
		default:
			if isFirstMatch {
				c.GoToEnd()
			}
			// -offset overflows for math.MinInt
			if offset < -c.buf.LineCount() {
				c.GoToStart()
			} else {
				c.Backward(-offset)
			}
		}

		item, ok = c.Get()
		if !ok || item.Opaque {
			return record.Record{}, false
		}
		return item.Record, true
	}
}
