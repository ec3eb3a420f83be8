package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/dchest/safefile"
)

// FileSystem abstracts the file operations needed to replace a zone file.
// sshutil.SFTPFileSystem implements it for a remote name server.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte, perm os.FileMode) error
	Stat(path string) (os.FileInfo, error)
	Remove(path string) error
	Rename(oldPath, newPath string) error
}

// CommandRunner abstracts command execution.
// sshutil.SSHCommandRunner implements it for a remote name server.
type CommandRunner interface {
	Run(ctx context.Context, command string) error
}

// OSFileSystem implements FileSystem on the local disk.
type OSFileSystem struct{}

func (OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes through a temporary file in the same directory, so path
// never holds a partial zone.
func (OSFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	return safefile.WriteFile(path, data, perm)
}

func (OSFileSystem) Stat(path string) (os.FileInfo, error) {
	return os.Stat(path)
}

func (OSFileSystem) Remove(path string) error {
	return os.Remove(path)
}

func (OSFileSystem) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// ShellRunner implements CommandRunner with the local shell.
type ShellRunner struct {
	Logger *slog.Logger
}

func (r ShellRunner) Run(ctx context.Context, command string) error {
	if r.Logger != nil {
		r.Logger.Debug("executing command", slog.String("command", command))
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("command failed: %w, output: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
