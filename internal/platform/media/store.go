package media

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ntvhs/portal-backend/internal/platform/logger"
)

// Area is one artifact area on disk. Each holds uploaded binaries of a
// single kind and has its own allowed-extension set.
type Area int

const (
	AreaVideo Area = iota
	AreaPDF
	AreaPicture
)

func Areas() []Area {
	return []Area{AreaVideo, AreaPDF, AreaPicture}
}

func (a Area) subdir() string {
	switch a {
	case AreaVideo:
		return "videos"
	case AreaPDF:
		return filepath.Join("library", "pdfs")
	case AreaPicture:
		return filepath.Join("library", "pictures")
	}
	panic(fmt.Sprintf("media: unknown area %d", int(a)))
}

var allowedExts = map[Area]map[string]bool{
	AreaVideo: {
		"mp4": true, "avi": true, "mov": true, "wmv": true, "mkv": true,
		"webm": true, "flv": true, "3gp": true, "m4v": true,
	},
	AreaPDF: {"pdf": true},
	AreaPicture: {
		"jpg": true, "jpeg": true, "png": true, "gif": true,
		"bmp": true, "webp": true,
	},
}

// AllowedExt reports whether filename carries an extension permitted in the
// area. A name without any extension is never allowed.
func AllowedExt(area Area, filename string) bool {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return false
	}
	ext := strings.ToLower(filename[idx+1:])
	return allowedExts[area][ext]
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SanitizeFilename strips path components and anything outside
// [A-Za-z0-9_.-], so a client-supplied name can be joined onto an artifact
// area safely.
func SanitizeFilename(name string) string {
	// Clients may send either separator regardless of their platform.
	if idx := strings.LastIndexAny(name, `/\`); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._-")
	if name == "" {
		name = "file"
	}
	return name
}

const prefixFormat = "20060102_150405_"

type Store struct {
	root string
	log  *logger.Logger
}

func NewStore(root string, baseLog *logger.Logger) *Store {
	storeLog := baseLog.With("service", "MediaStore")
	return &Store{root: root, log: storeLog}
}

// EnsureDirs creates every artifact area, called once on startup.
func (s *Store) EnsureDirs() error {
	for _, area := range Areas() {
		dir := filepath.Join(s.root, area.subdir())
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create artifact area %s: %w", dir, err)
		}
	}
	return nil
}

// Prefix returns the collision-avoidance timestamp prefix for this instant.
// Callers storing several artifacts for one record reuse a single prefix so
// the stored names visibly belong together.
func Prefix() string {
	return time.Now().Format(prefixFormat)
}

// Save writes the bytes under a sanitized, timestamp-prefixed name and
// returns the stored name plus the byte count. Two uploads of the same name
// within one second collide; that window is accepted.
func (s *Store) Save(area Area, filename string, r io.Reader) (string, int64, error) {
	stored := Prefix() + SanitizeFilename(filename)
	size, err := s.SaveNamed(area, stored, r)
	if err != nil {
		return "", 0, err
	}
	return stored, size, nil
}

// SaveNamed writes the bytes under an already-derived stored name.
func (s *Store) SaveNamed(area Area, stored string, r io.Reader) (int64, error) {
	path := filepath.Join(s.root, area.subdir(), filepath.Base(stored))

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", path, err)
	}
	size, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("write %s: %w", path, err)
	}
	return size, nil
}

// Remove deletes a stored artifact. A file already gone is success.
func (s *Store) Remove(area Area, name string) error {
	if name == "" {
		return nil
	}
	path := filepath.Join(s.root, area.subdir(), filepath.Base(name))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}

// Path resolves a stored name to its absolute location for streaming.
func (s *Store) Path(area Area, name string) string {
	return filepath.Join(s.root, area.subdir(), filepath.Base(name))
}

func (s *Store) Exists(area Area, name string) bool {
	info, err := os.Stat(s.Path(area, name))
	return err == nil && !info.IsDir()
}
