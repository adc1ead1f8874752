package infra

import (
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/uploadhub/uploadhub/config"
)

// LocalUploadStore writes upload payloads to a shared destination directory
// and resolves collision-free names. The name check and the write are
// serialized under one mutex, so concurrent ingestion calls inside this
// process cannot race each other on the same name. Writers outside the
// process are not coordinated with.
type LocalUploadStore struct {
	Dir       string
	URLPrefix string

	mu sync.Mutex
}

// StoredFile describes where a payload landed.
type StoredFile struct {
	File string // resolved collision-free file name
	Path string // on-disk path
	URL  string // public-facing path
}

func InitLocalUploadStore(cfg *config.EnvConfig) *LocalUploadStore {
	return NewLocalUploadStore(cfg.Upload.DirectoryBasePath, cfg.Upload.URLBasePath)
}

func NewLocalUploadStore(dir, urlPrefix string) *LocalUploadStore {
	return &LocalUploadStore{
		Dir:       dir,
		URLPrefix: strings.TrimSuffix(urlPrefix, "/") + "/",
	}
}

// Store resolves a safe name for the original file name, writes the payload
// fully to disk, and only then reports the stored location. A failed write
// leaves nothing behind.
func (s *LocalUploadStore) Store(originalName string, r io.Reader) (*StoredFile, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory %s: %w", s.Dir, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := s.safeName(originalName)
	path := filepath.Join(s.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", path, err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return &StoredFile{
		File: name,
		Path: path,
		URL:  s.URLPrefix + name,
	}, nil
}

// Delete removes the backing file of an upload. A missing file is not an
// error; any other failure is wrapped and reported so the caller can abort
// the row removal.
func (s *LocalUploadStore) Delete(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to delete stored file %s: %w", path, err)
	}
	return nil
}

// safeName URL-encodes the original name and appends _N before the extension
// until the name does not collide with an existing file in the directory.
func (s *LocalUploadStore) safeName(originalName string) string {
	encoded := url.PathEscape(originalName)
	ext := filepath.Ext(encoded)
	base := strings.TrimSuffix(encoded, ext)

	name := encoded
	for increment := 1; ; increment++ {
		if _, err := os.Stat(filepath.Join(s.Dir, name)); os.IsNotExist(err) {
			return name
		}
		name = fmt.Sprintf("%s_%d%s", base, increment, ext)
	}
}
