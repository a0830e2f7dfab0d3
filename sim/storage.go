package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrFileNotFound reports a read of a stored file that does not exist.
var ErrFileNotFound = errors.New("stored file not found")

// FileInfo describes one stored CSV batch.
type FileInfo struct {
	Name string `json:"filename"`
	Size int64  `json:"size"`
}

// Storage persists generated batches as flat CSV files under a single
// root directory. Only the owning service writes or deletes here;
// external consumers read the directory directly.
type Storage struct {
	root string
}

// NewStorage creates a Storage rooted at dir.
func NewStorage(dir string) (*Storage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("storage: root directory is required")
	}
	return &Storage{root: dir}, nil
}

// Root returns the output directory.
func (s *Storage) Root() string {
	return s.root
}

// WriteCSV persists one batch as a CSV file named name under the root.
// The header line and each row are comma-joined verbatim; values are
// numeric or simple tokens that never contain commas, so no quoting is
// applied. The write goes to a temp file first and is renamed into
// place, so directory readers never observe a partial file.
func (s *Storage) WriteCSV(name string, headers []string, rows []Row) (FileInfo, error) {
	if err := os.MkdirAll(s.root, 0o755); err != nil {
		return FileInfo{}, fmt.Errorf("storage: create root: %w", err)
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, ","))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteByte('\n')
	}
	data := []byte(b.String())

	tmp, err := os.CreateTemp(s.root, name+".tmp-*")
	if err != nil {
		return FileInfo{}, fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return FileInfo{}, fmt.Errorf("storage: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return FileInfo{}, fmt.Errorf("storage: close %s: %w", name, err)
	}
	path := filepath.Join(s.root, name)
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return FileInfo{}, fmt.Errorf("storage: rename %s: %w", name, err)
	}
	return FileInfo{Name: name, Size: int64(len(data))}, nil
}

// List returns every stored CSV with its byte size, sorted by filename.
// A missing root directory is an empty store, not an error.
func (s *Storage) List() ([]FileInfo, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("storage: list: %w", err)
	}
	var out []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// The file vanished between ReadDir and the stat: a reset
			// ran mid-scan. List is read-only and lock-free, so skip
			// the entry rather than failing the whole listing.
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("storage: stat %s: %w", e.Name(), err)
		}
		out = append(out, FileInfo{Name: e.Name(), Size: info.Size()})
	}
	// os.ReadDir returns entries sorted by filename, but keep the
	// ordering contract explicit.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Read returns the raw bytes of one stored CSV, or ErrFileNotFound.
// Names containing path separators are rejected outright.
func (s *Storage) Read(name string) ([]byte, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, fmt.Errorf("storage: invalid file name %q: %w", name, ErrFileNotFound)
	}
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage: %s: %w", name, ErrFileNotFound)
		}
		return nil, fmt.Errorf("storage: read %s: %w", name, err)
	}
	return data, nil
}

// Reset deletes every stored CSV. Non-CSV entries are left alone.
func (s *Storage) Reset() error {
	files, err := s.List()
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := os.Remove(filepath.Join(s.root, f.Name)); err != nil {
			return fmt.Errorf("storage: remove %s: %w", f.Name, err)
		}
	}
	return nil
}
