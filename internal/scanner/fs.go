package scanner

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sys/unix"
)

// FileMeta carries the metadata the scanner needs from a stat call.
type FileMeta struct {
	Size    int64
	ModTime time.Time
}

// Filesystem is the gateway the scanner probes through. A production
// implementation backed by real OS calls lives in LocalFilesystem; tests
// substitute MemFilesystem to declare fixtures without touching disk.
type Filesystem interface {
	Exists(path string) bool
	IsDir(path string) bool
	IsFile(path string) bool
	IsSymlink(path string) bool
	Stat(path string) (FileMeta, error)
	IsWritable(path string) bool
	Resolve(path string) string
	Home() string
}

// LocalFilesystem implements Filesystem with direct OS calls.
type LocalFilesystem struct{}

func (LocalFilesystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (LocalFilesystem) IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (LocalFilesystem) IsFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func (LocalFilesystem) IsSymlink(path string) bool {
	info, err := os.Lstat(path)
	return err == nil && info.Mode()&os.ModeSymlink != 0
}

func (LocalFilesystem) Stat(path string) (FileMeta, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileMeta{}, err
	}
	return FileMeta{Size: info.Size(), ModTime: info.ModTime()}, nil
}

func (LocalFilesystem) IsWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

// Resolve expands environment variables and the home shorthand, then
// canonicalizes the path. Strict symlink resolution is attempted first;
// when the path or an ancestor does not exist it falls back to resolving
// the deepest existing ancestor and rejoining the remainder.
func (l LocalFilesystem) Resolve(path string) string {
	expanded := ExpandPath(path, l.Home())
	abs, err := filepath.Abs(expanded)
	if err != nil {
		abs = filepath.Clean(expanded)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}

	dir := abs
	tail := ""
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		tail = filepath.Join(filepath.Base(dir), tail)
		dir = parent
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, tail)
		}
	}
	return abs
}

func (LocalFilesystem) Home() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return os.Getenv("HOME")
}

// ExpandPath expands $VAR / ${VAR} references and a leading ~ against the
// given home directory.
func ExpandPath(path, home string) string {
	expanded := os.ExpandEnv(path)
	if expanded == "~" {
		return home
	}
	if strings.HasPrefix(expanded, "~/") {
		return filepath.Join(home, expanded[2:])
	}
	return expanded
}
