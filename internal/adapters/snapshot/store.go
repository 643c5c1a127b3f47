package snapshot

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/golang/snappy"
	"github.com/spf13/afero"

	"photocat/internal/domain"
	"photocat/internal/ports"
)

// File layout:
//   - 4 bytes: magic "PCAT"
//   - 2 bytes: format version (uint16, big-endian)
//   - remaining: snappy-compressed JSON of domain.Snapshot
const (
	magic         = "PCAT"
	formatVersion = 1
	headerSize    = len(magic) + 2
)

// FileStore implements ports.SnapshotStore as a single compressed file
type FileStore struct {
	fs   afero.Fs
	path string
}

// Ensure FileStore implements SnapshotStore
var _ ports.SnapshotStore = (*FileStore)(nil)

// NewFileStore creates a store at path on fs
func NewFileStore(fs afero.Fs, path string) *FileStore {
	return &FileStore{fs: fs, path: path}
}

// NewOSFileStore creates a store on the real filesystem
func NewOSFileStore(path string) *FileStore {
	return NewFileStore(afero.NewOsFs(), path)
}

// Location returns the snapshot file path
func (s *FileStore) Location() string {
	return s.path
}

// Close is a no-op; the file is only open during Load and Save
func (s *FileStore) Close() error {
	return nil
}

// Load reads and decodes the snapshot file
func (s *FileStore) Load(ctx context.Context) (*domain.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.Absent("load", s.path)
	}
	if err != nil {
		return nil, domain.IOFailure("load", s.path, err)
	}

	snap, err := decode(data)
	if err != nil {
		return nil, domain.Corrupt("load", s.path, err)
	}
	return snap, nil
}

// Save encodes snap and atomically replaces the snapshot file
func (s *FileStore) Save(ctx context.Context, snap *domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := encode(snap)
	if err != nil {
		return domain.IOFailure("save", s.path, err)
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return domain.IOFailure("save", s.path, err)
	}

	tmp, err := afero.TempFile(s.fs, dir, ".photocat-*.tmp")
	if err != nil {
		return domain.IOFailure("save", s.path, err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		s.fs.Remove(tmpName)
		return domain.IOFailure("save", s.path, err)
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		s.fs.Remove(tmpName)
		return domain.IOFailure("save", s.path, err)
	}
	return nil
}

func writeAndSync(f afero.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func encode(snap *domain.Snapshot) ([]byte, error) {
	body, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(magic)
	binary.Write(&buf, binary.BigEndian, uint16(formatVersion))
	buf.Write(snappy.Encode(nil, body))
	return buf.Bytes(), nil
}

func decode(data []byte) (*domain.Snapshot, error) {
	if len(data) < headerSize || string(data[:len(magic)]) != magic {
		return nil, errors.New("not a photocat snapshot")
	}
	if v := binary.BigEndian.Uint16(data[len(magic):headerSize]); v != formatVersion {
		return nil, fmt.Errorf("unsupported format version %d", v)
	}

	body, err := snappy.Decode(nil, data[headerSize:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(body, &snap); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if snap.Version != domain.SnapshotVersion {
		return nil, fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	return &snap, nil
}
