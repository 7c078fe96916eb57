// Package storage handles the journal file on disk: locating it, appending
// lines, loading it into a line buffer and rewriting it safely.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xolan/tt/internal/linebuf"
	"github.com/xolan/tt/internal/osutil"
)

const (
	// AppName is the application name used for config directory
	AppName = "tt"
	// JournalFile is the name of the default journal file
	JournalFile = "journal.txt"
)

// GetStoragePath returns the path of the default journal, next to the config file.
func GetStoragePath() (string, error) {
	dir, err := osutil.AppDir(AppName)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, JournalFile), nil
}

// AppendLine appends a single line to the journal file.
// Creates the file if it doesn't exist.
// Uses O_APPEND so existing content is never read or rewritten.
func AppendLine(path string, line string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}

	if _, err := file.WriteString(line + "\n"); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// Load reads the whole journal file into a line buffer.
// A missing file loads as an empty buffer (graceful handling).
func Load(path string) (*linebuf.Buffer, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return linebuf.New(""), nil
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	buf, err := linebuf.Load(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return buf, nil
}
