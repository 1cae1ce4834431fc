package scanner

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// MemEntry declares one path in a MemFilesystem fixture.
type MemEntry struct {
	Dir      bool
	Symlink  bool
	Size     int64
	ModTime  time.Time
	Writable bool
	// StatErr simulates a metadata read failure for an existing path.
	StatErr error
}

// MemFilesystem is an in-memory Filesystem fake. Tests declare a fixed set
// of paths with metadata and optional symlink aliases; no real filesystem
// is touched.
type MemFilesystem struct {
	HomeDir string
	Entries map[string]MemEntry
	// Links maps an alias path prefix to its canonical target prefix.
	Links map[string]string
}

// NewMemFilesystem returns an empty fake rooted at the given home directory.
func NewMemFilesystem(home string) *MemFilesystem {
	return &MemFilesystem{
		HomeDir: home,
		Entries: make(map[string]MemEntry),
		Links:   make(map[string]string),
	}
}

// AddFile declares a regular file of the given size.
func (m *MemFilesystem) AddFile(path string, size int64) {
	m.Entries[filepath.Clean(path)] = MemEntry{Size: size, ModTime: time.Unix(1700000000, 0), Writable: true}
}

// AddDir declares a directory.
func (m *MemFilesystem) AddDir(path string) {
	m.Entries[filepath.Clean(path)] = MemEntry{Dir: true, ModTime: time.Unix(1700000000, 0), Writable: true}
}

// AddSymlink declares a symlink whose target already exists.
func (m *MemFilesystem) AddSymlink(path string) {
	m.Entries[filepath.Clean(path)] = MemEntry{Symlink: true, ModTime: time.Unix(1700000000, 0), Writable: true}
}

// AddLink registers an alias prefix so Resolve rewrites alias-rooted paths
// onto the canonical target.
func (m *MemFilesystem) AddLink(alias, target string) {
	m.Links[filepath.Clean(alias)] = filepath.Clean(target)
}

// Add declares a path with explicit metadata.
func (m *MemFilesystem) Add(path string, entry MemEntry) {
	m.Entries[filepath.Clean(path)] = entry
}

func (m *MemFilesystem) lookup(path string) (MemEntry, bool) {
	entry, ok := m.Entries[m.Resolve(path)]
	return entry, ok
}

func (m *MemFilesystem) Exists(path string) bool {
	_, ok := m.lookup(path)
	return ok
}

func (m *MemFilesystem) IsDir(path string) bool {
	entry, ok := m.lookup(path)
	return ok && entry.Dir
}

func (m *MemFilesystem) IsFile(path string) bool {
	entry, ok := m.lookup(path)
	return ok && !entry.Dir && !entry.Symlink
}

func (m *MemFilesystem) IsSymlink(path string) bool {
	entry, ok := m.lookup(path)
	return ok && entry.Symlink
}

func (m *MemFilesystem) Stat(path string) (FileMeta, error) {
	entry, ok := m.lookup(path)
	if !ok {
		return FileMeta{}, fmt.Errorf("stat %s: no such file or directory", path)
	}
	if entry.StatErr != nil {
		return FileMeta{}, entry.StatErr
	}
	return FileMeta{Size: entry.Size, ModTime: entry.ModTime}, nil
}

func (m *MemFilesystem) IsWritable(path string) bool {
	entry, ok := m.lookup(path)
	return ok && entry.Writable
}

// Resolve expands the path against the fake home and rewrites any
// registered alias prefix onto its target. Longest alias wins, so nested
// aliases behave like nested symlinked directories.
func (m *MemFilesystem) Resolve(path string) string {
	cleaned := filepath.Clean(ExpandPath(path, m.HomeDir))

	aliases := make([]string, 0, len(m.Links))
	for alias := range m.Links {
		aliases = append(aliases, alias)
	}
	sort.Slice(aliases, func(i, j int) bool { return len(aliases[i]) > len(aliases[j]) })

	for _, alias := range aliases {
		if cleaned == alias {
			return m.Links[alias]
		}
		if strings.HasPrefix(cleaned, alias+string(filepath.Separator)) {
			return filepath.Join(m.Links[alias], cleaned[len(alias)+1:])
		}
	}
	return cleaned
}

func (m *MemFilesystem) Home() string {
	return m.HomeDir
}
