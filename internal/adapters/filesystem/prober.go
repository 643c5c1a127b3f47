package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/tiff"
	"github.com/spf13/afero"

	"photocat/internal/domain"
	"photocat/internal/ports"
)

var (
	ErrNotAFile   = errors.New("not a regular file")
	ErrNotAnImage = errors.New("not an image file")
)

// skipDirs are never descended into by recursive listing
var skipDirs = map[string]bool{
	".stfolder":                 true,
	".Trashes":                  true,
	".Spotlight-V100":           true,
	".fseventsd":                true,
	"@eaDir":                    true,
	"$RECYCLE.BIN":              true,
	"System Volume Information": true,
}

// maxTagValue caps metadata descriptions; maker notes can be huge blobs.
const maxTagValue = 256

// Prober implements ports.FileProber on an afero filesystem
type Prober struct {
	fs         afero.Fs
	extensions map[string]bool
	log        zerolog.Logger
}

// Ensure Prober implements FileProber
var _ ports.FileProber = (*Prober)(nil)

// NewProber creates a prober accepting files with the given extensions
func NewProber(fs afero.Fs, extensions []string, log zerolog.Logger) *Prober {
	if len(extensions) == 0 {
		extensions = domain.DefaultImageExtensions
	}
	exts := make(map[string]bool, len(extensions))
	for _, x := range extensions {
		exts[strings.ToLower(strings.TrimPrefix(x, "."))] = true
	}
	return &Prober{fs: fs, extensions: exts, log: log}
}

// NewOSProber probes the real filesystem
func NewOSProber(extensions []string, log zerolog.Logger) *Prober {
	return NewProber(afero.NewOsFs(), extensions, log)
}

// Fs exposes the underlying filesystem
func (p *Prober) Fs() afero.Fs {
	return p.fs
}

// Canonical returns the absolute, symlink-free form of path
func (p *Prober) Canonical(path string) (string, error) {
	path = ExpandHome(path)
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if _, ok := p.fs.(*afero.OsFs); ok {
		return resolveSymlinks(abs), nil
	}
	return abs, nil
}

// resolveSymlinks resolves the longest existing prefix of abs and rejoins
// the rest, so a deleted file keeps the path it was cataloged under.
func resolveSymlinks(abs string) string {
	dir, rest := abs, ""
	for {
		if resolved, err := filepath.EvalSymlinks(dir); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return abs
		}
		rest = filepath.Join(filepath.Base(dir), rest)
		dir = parent
	}
}

// Exists reports whether path is a regular file
func (p *Prober) Exists(path string) bool {
	full, err := p.Canonical(path)
	if err != nil {
		return false
	}
	info, err := p.fs.Stat(full)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether path is a directory
func (p *Prober) IsDir(path string) bool {
	full, err := p.Canonical(path)
	if err != nil {
		return false
	}
	info, err := p.fs.Stat(full)
	return err == nil && info.IsDir()
}

// IsImage reports whether the extension is one the prober accepts
func (p *Prober) IsImage(ext string) bool {
	return p.extensions[strings.ToLower(ext)]
}

// Probe reads identity, fingerprint, capture time and EXIF tags of a file
func (p *Prober) Probe(ctx context.Context, path string) (domain.FileProbe, error) {
	if err := ctx.Err(); err != nil {
		return domain.FileProbe{}, err
	}

	full, err := p.Canonical(path)
	if err != nil {
		return domain.FileProbe{}, err
	}
	info, err := p.fs.Stat(full)
	if err != nil {
		return domain.FileProbe{}, fmt.Errorf("failed to stat %s: %w", full, err)
	}
	if !info.Mode().IsRegular() {
		return domain.FileProbe{}, fmt.Errorf("%s: %w", full, ErrNotAFile)
	}

	name, ext := SplitName(info.Name())
	if !p.IsImage(ext) {
		return domain.FileProbe{}, fmt.Errorf("%s: %w", full, ErrNotAnImage)
	}

	f, err := p.fs.Open(full)
	if err != nil {
		return domain.FileProbe{}, fmt.Errorf("failed to open %s: %w", full, err)
	}
	defer f.Close()

	h := xxhash.New()
	if _, err := io.Copy(h, f); err != nil {
		return domain.FileProbe{}, fmt.Errorf("failed to read %s: %w", full, err)
	}

	probe := domain.FileProbe{
		FullPath:  full,
		Location:  filepath.Dir(full),
		Name:      name,
		Extension: ext,
		Timestamp: info.ModTime().Local().Format(domain.TimestampLayout),
		Size:      info.Size(),
		Checksum:  h.Sum64(),
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return probe, nil
	}
	x, err := exif.Decode(f)
	if err != nil {
		p.log.Debug().Str("path", full).Err(err).Msg("no exif data")
		return probe, nil
	}
	if taken, err := x.DateTime(); err == nil {
		probe.Timestamp = taken.Format(domain.TimestampLayout)
	}
	probe.Metadata = collectTags(x)
	return probe, nil
}

// List returns the image files in dir, sorted. Hidden and system
// directories are skipped when recursing.
func (p *Prober) List(ctx context.Context, dir string, recursive bool) ([]string, error) {
	root, err := p.Canonical(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	if !recursive {
		entries, err := afero.ReadDir(p.fs, root)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
		}
		for _, e := range entries {
			if e.Mode().IsRegular() && p.accept(e.Name()) {
				files = append(files, filepath.Join(root, e.Name()))
			}
		}
		return files, nil
	}

	err = afero.Walk(p.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			p.log.Warn().Str("path", path).Err(err).Msg("skipping unreadable path")
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if info.IsDir() {
			if path != root && (strings.HasPrefix(info.Name(), ".") || skipDirs[info.Name()]) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Mode().IsRegular() && p.accept(info.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}
	sort.Strings(files)
	return files, nil
}

func (p *Prober) accept(fileName string) bool {
	if strings.HasPrefix(fileName, ".") {
		return false
	}
	_, ext := SplitName(fileName)
	return p.IsImage(ext)
}

// SplitName splits a file name at its last dot. Names starting with a dot
// and names without one have no extension.
func SplitName(fileName string) (name, ext string) {
	i := strings.LastIndex(fileName, ".")
	if i <= 0 || i == len(fileName)-1 {
		return fileName, ""
	}
	return fileName[:i], fileName[i+1:]
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

type tagCollector struct {
	tags []domain.MetadataTag
}

func (c *tagCollector) Walk(name exif.FieldName, tag *tiff.Tag) error {
	if name == exif.MakerNote || tag == nil {
		return nil
	}
	var value string
	if tag.Format() == tiff.StringVal {
		s, err := tag.StringVal()
		if err != nil {
			return nil
		}
		value = strings.TrimSpace(s)
	} else {
		value = tag.String()
	}
	value = truncate(value, maxTagValue)
	c.tags = append(c.tags, domain.MetadataTag{
		Directory:   "Exif",
		Tag:         string(name),
		Description: value,
	})
	return nil
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func collectTags(x *exif.Exif) []domain.MetadataTag {
	c := &tagCollector{}
	if err := x.Walk(c); err != nil {
		return nil
	}
	return c.tags
}
