// Package osutil routes the file system calls of the config and journal layers
// through a replaceable provider, so tests can make any of them fail.
package osutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PathProvider is the set of OS operations that tests may replace.
type PathProvider interface {
	UserConfigDir() (string, error)
	MkdirAll(path string, perm os.FileMode) error
	// OpenTruncate opens an existing file for writing, truncating it first.
	OpenTruncate(path string) (io.WriteCloser, error)
	Remove(path string) error
}

// DefaultPathProvider calls the os package.
type DefaultPathProvider struct{}

func (DefaultPathProvider) UserConfigDir() (string, error) {
	return os.UserConfigDir()
}

func (DefaultPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (DefaultPathProvider) OpenTruncate(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
}

func (DefaultPathProvider) Remove(path string) error {
	return os.Remove(path)
}

// Provider is the provider in use. Tests can replace it with SetProvider.
var Provider PathProvider = DefaultPathProvider{}

// SetProvider sets a custom provider (for testing).
func SetProvider(p PathProvider) {
	Provider = p
}

// ResetProvider resets to the default provider.
func ResetProvider() {
	Provider = DefaultPathProvider{}
}

// AppDir returns the directory named app under the user config directory,
// creating it if needed.
func AppDir(app string) (string, error) {
	configDir, err := Provider.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate the user config directory: %w", err)
	}

	dir := filepath.Join(configDir, app)
	if err := Provider.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	return dir, nil
}
