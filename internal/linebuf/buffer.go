// Package linebuf provides a mutable, line-addressable text buffer.
//
// Lines are kept in a balanced tree so that looking up, replacing, inserting
// and deleting a line, as well as mapping a line index to its byte offset,
// take O(log n) in the number of lines. Line terminators ("\n" or "\r\n") are
// preserved byte for byte; a final terminator does not create an extra line.
package linebuf

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Buffer is an in-memory working copy of a line-oriented text file.
// The zero value is an empty buffer ready to use.
type Buffer struct {
	root *node
}

// Load reads r to the end and splits its content into lines.
// It only fails if reading fails.
func Load(r io.Reader) (*Buffer, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read buffer: %w", err)
	}
	return New(string(data)), nil
}

// New creates a buffer holding s.
func New(s string) *Buffer {
	return &Buffer{root: build(split(s))}
}

// split cuts s into line nodes. The empty remainder after a final
// terminator is not a line.
func split(s string) []*node {
	var nodes []*node
	for len(s) > 0 {
		idx := strings.IndexByte(s, '\n')
		if idx < 0 {
			nodes = append(nodes, newNode(s, ""))
			break
		}
		text, eol := s[:idx], "\n"
		if strings.HasSuffix(text, "\r") {
			text, eol = text[:len(text)-1], "\r\n"
		}
		nodes = append(nodes, newNode(text, eol))
		s = s[idx+1:]
	}
	return nodes
}

// LineCount returns the number of lines in the buffer.
func (b *Buffer) LineCount() int {
	return lineCount(b.root)
}

// Len returns the size of the buffer in bytes.
func (b *Buffer) Len() int {
	return byteCount(b.root)
}

// Line returns the text of line i without its terminator.
// It panics if i is out of range.
func (b *Buffer) Line(i int) string {
	b.checkIndex(i, b.LineCount()-1)
	n, _ := at(b.root, i)
	return n.text
}

// Offset returns the byte offset at which line i starts.
// Offset(LineCount()) is the size of the buffer.
func (b *Buffer) Offset(i int) int {
	b.checkIndex(i, b.LineCount())
	if i == b.LineCount() {
		return b.Len()
	}
	_, offset := at(b.root, i)
	return offset
}

// ReplaceLine removes line i, if it exists, and inserts text terminated by
// "\n" at its start offset. i may equal LineCount() to append a line.
// It returns the byte offset of the inserted text.
func (b *Buffer) ReplaceLine(i int, text string) int {
	b.checkIndex(i, b.LineCount())
	if i < b.LineCount() {
		b.root = deleteAt(b.root, i)
	}
	return b.InsertLine(i, text)
}

// InsertLine inserts text terminated by "\n" so that it becomes line i,
// shifting line i and the following lines down. Text containing line
// terminators is inserted as several lines.
// It returns the byte offset of the inserted text.
func (b *Buffer) InsertLine(i int, text string) int {
	count := b.LineCount()
	b.checkIndex(i, count)

	// An unterminated last line would merge with anything appended after it.
	if i == count && count > 0 {
		if last, _ := at(b.root, count-1); last.eol == "" {
			b.root = deleteAt(b.root, count-1)
			b.root = insertAt(b.root, count-1, newNode(last.text, "\n"))
		}
	}

	offset := b.Offset(i)
	for j, nn := range split(text + "\n") {
		b.root = insertAt(b.root, i+j, nn)
	}
	return offset
}

// DeleteLine removes line i together with its terminator and returns the
// byte offset where it started.
func (b *Buffer) DeleteLine(i int) int {
	b.checkIndex(i, b.LineCount()-1)
	offset := b.Offset(i)
	b.root = deleteAt(b.root, i)
	return offset
}

// WriteTo writes the whole buffer to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var written int64
	var err error
	walk(b.root, func(n *node) bool {
		var k int
		k, err = bw.WriteString(n.text + n.eol)
		written += int64(k)
		return err == nil
	})
	if err != nil {
		return written, err
	}
	return written, bw.Flush()
}

// String returns the full buffer content.
func (b *Buffer) String() string {
	var sb strings.Builder
	sb.Grow(b.Len())
	walk(b.root, func(n *node) bool {
		sb.WriteString(n.text)
		sb.WriteString(n.eol)
		return true
	})
	return sb.String()
}

func (b *Buffer) checkIndex(i, last int) {
	if i < 0 || i > last {
		panic(fmt.Sprintf("linebuf: line index %d out of range [0:%d]", i, last+1))
	}
}
