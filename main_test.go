package main

import (
	"errors"
	"io"
	"os"
	"testing"

	"github.com/xolan/tt/cmd"
	"github.com/xolan/tt/internal/osutil"
)

// MockPathProvider points the config directory at a test directory or fails
type MockPathProvider struct {
	UserConfigDirFn func() (string, error)
}

func (m *MockPathProvider) UserConfigDir() (string, error) {
	if m.UserConfigDirFn != nil {
		return m.UserConfigDirFn()
	}
	return "", nil
}

func (m *MockPathProvider) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (m *MockPathProvider) OpenTruncate(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0644)
}

func (m *MockPathProvider) Remove(path string) error {
	return os.Remove(path)
}

func useConfigDir(t *testing.T, dir string, err error) {
	t.Helper()
	osutil.SetProvider(&MockPathProvider{
		UserConfigDirFn: func() (string, error) { return dir, err },
	})
	t.Cleanup(osutil.ResetProvider)
	t.Cleanup(cmd.ResetDeps)
}

func TestRun_Success(t *testing.T) {
	useConfigDir(t, t.TempDir(), nil)
	cmd.SetArgs([]string{"log"})
	defer cmd.SetArgs(nil)

	if code := run(); code != 0 {
		t.Errorf("Expected exit code 0, got %d", code)
	}
}

func TestRun_ConfigPathFailure(t *testing.T) {
	useConfigDir(t, "", errors.New("permission denied"))
	cmd.SetArgs([]string{"log"})
	defer cmd.SetArgs(nil)

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for config path failure, got %d", code)
	}
}

func TestRun_ExecuteError(t *testing.T) {
	cmd.SetArgs([]string{"--unknownflag"})
	defer cmd.SetArgs(nil)

	if code := run(); code != 1 {
		t.Errorf("Expected exit code 1 for Execute error, got %d", code)
	}
}

func TestMain_CallsExitWithRunResult(t *testing.T) {
	originalExit := exitFunc
	defer func() { exitFunc = originalExit }()

	capturedCode := -1
	exitFunc = func(code int) {
		capturedCode = code
	}
	cmd.SetArgs([]string{"--version"})
	defer cmd.SetArgs(nil)

	main()

	if capturedCode != 0 {
		t.Errorf("Expected exit code 0, got %d", capturedCode)
	}
}
