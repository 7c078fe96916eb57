package storage

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/xolan/tt/internal/osutil"
)

// BackupSuffix is appended to the journal path to name the flush backup
const BackupSuffix = ".tt_back"

// ErrNoBackup is returned when there is no flush backup to restore
var ErrNoBackup = errors.New("no backup found")

// GetBackupPath returns the path of the backup taken while flushing journalPath.
func GetBackupPath(journalPath string) string {
	return journalPath + BackupSuffix
}

// HasBackup reports whether a flush backup exists next to the journal.
// A leftover backup means a previous flush was interrupted.
func HasBackup(journalPath string) bool {
	_, err := os.Stat(GetBackupPath(journalPath))
	return err == nil
}

// Flush rewrites the journal file with the content of src.
//
// The current file is first copied to the backup path. The journal is then
// truncated and rewritten. If writing fails, the backup is copied back over
// the journal and the write error is returned; the backup is kept only if
// that restore also fails. On success the backup is removed.
//
// The copy and the rewrite are separate steps: a crash between them leaves
// the backup behind for RestoreBackup to recover from.
func Flush(journalPath string, src io.WriterTo) error {
	backupPath := GetBackupPath(journalPath)

	if err := copyFile(journalPath, backupPath); err != nil {
		return fmt.Errorf("failed to back up journal: %w", err)
	}

	dest, err := osutil.Provider.OpenTruncate(journalPath)
	if err != nil {
		_ = os.Remove(backupPath)
		return fmt.Errorf("failed to open journal for writing: %w", err)
	}

	if err := writeAndClose(dest, src); err != nil {
		writeErr := fmt.Errorf("failed to write journal: %w", err)
		if restoreErr := copyFile(backupPath, journalPath); restoreErr != nil {
			return errors.Join(writeErr, fmt.Errorf("failed to restore journal from %s: %w", backupPath, restoreErr))
		}
		_ = os.Remove(backupPath)
		return writeErr
	}

	if err := osutil.Provider.Remove(backupPath); err != nil {
		return fmt.Errorf("failed to remove backup: %w", err)
	}
	return nil
}

// RestoreBackup copies a leftover flush backup over the journal and removes it.
// Returns ErrNoBackup if there is nothing to restore.
func RestoreBackup(journalPath string) error {
	backupPath := GetBackupPath(journalPath)

	if _, err := os.Stat(backupPath); err != nil {
		if os.IsNotExist(err) {
			return ErrNoBackup
		}
		return err
	}

	if err := copyFile(backupPath, journalPath); err != nil {
		return fmt.Errorf("failed to restore journal: %w", err)
	}

	return osutil.Provider.Remove(backupPath)
}

// writeAndClose writes src into dest and closes it.
func writeAndClose(dest io.WriteCloser, src io.WriterTo) error {
	if _, err := src.WriteTo(dest); err != nil {
		_ = dest.Close()
		return err
	}
	return dest.Close()
}

// copyFile copies the contents of src to dst, creating or truncating dst.
func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	if _, err := destFile.ReadFrom(sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}
