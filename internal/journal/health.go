package journal

import (
	"strings"

	"github.com/xolan/tt/internal/record"
	"github.com/xolan/tt/internal/storage"
)

// ParseWarning describes a journal line that is not a record
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the line
	Error      string // Why the line was not read as a record
}

// Health summarises the state of the journal file.
type Health struct {
	TotalLines    int            // Lines in the file, excluding a final empty line
	Records       int            // Lines that parsed as records
	Warnings      []ParseWarning // One per opaque line
	BackupPresent bool           // A flush backup was left behind
}

// Opaque returns the number of lines that are not records
func (h Health) Opaque() int {
	return len(h.Warnings)
}

// Health reads the journal and reports how many of its lines are records.
// A missing file is healthy and empty.
func (s *Store) Health() (Health, error) {
	health := Health{
		Warnings:      []ParseWarning{},
		BackupPresent: storage.HasBackup(s.path),
	}

	c, err := s.Cursor()
	if err != nil {
		return health, err
	}

	for {
		item, ok := c.Next()
		if !ok {
			break
		}
		health.TotalLines++
		if item.IsRecord() {
			health.Records++
			continue
		}
		line, _ := c.Position()
		health.Warnings = append(health.Warnings, ParseWarning{
			LineNumber: line + 1,
			Content:    item.Raw,
			Error:      s.describe(item.Raw),
		})
	}
	return health, nil
}

func (s *Store) describe(line string) string {
	if strings.TrimSpace(line) == "" {
		return "empty line"
	}
	if _, err := record.Parse(line, s.loc); err != nil {
		return err.Error()
	}
	return ""
}
