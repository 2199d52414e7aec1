package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"sniff/internal/diag"
	"sniff/internal/source"
	"sniff/internal/version"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache хранит отчёты check по ключу "содержимое + конфиг" на диске.
// Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// Digest is a cache key.
type Digest [32]byte

// DiskPayload is the cached report of one file version.
type DiskPayload struct {
	// Schema version for safe invalidation when format changes
	Schema     uint16
	Path       string
	Violations []CachedViolation
}

// CachedViolation is diag.Violation without the file identity.
type CachedViolation struct {
	Pos      int
	Start    uint32
	End      uint32
	Line     uint32
	Col      uint32
	Rule     string
	Code     string
	Message  string
	Severity uint8
	Fixable  bool
}

// OpenDiskCache initializes and returns a disk cache at the standard location.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenDiskCacheAt(filepath.Join(base, app))
}

// OpenDiskCacheAt uses dir as the cache root.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// CacheKey combines the file content hash with the config fingerprint
// and the tool version.
func CacheKey(content, config [32]byte) Digest {
	h := sha256.New()
	h.Write([]byte{byte(diskCacheSchemaVersion >> 8), byte(diskCacheSchemaVersion)})
	h.Write([]byte(version.Version))
	h.Write(config[:])
	h.Write(content[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func (c *DiskCache) pathFor(key Digest) string {
	hexKey := hex.EncodeToString(key[:])
	// подкаталог по первым двум символам, чтобы не раздувать один каталог
	return filepath.Join(c.dir, "reports", hexKey[:2], hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key Digest, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		// после Rename файла уже нет
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	payload.Schema = diskCacheSchemaVersion
	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache. A payload
// written by another schema counts as a miss.
func (c *DiskCache) Get(key Digest, out *DiskPayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	// #nosec G304 -- path is derived from the cache root and a hex digest
	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() { _ = f.Close() }()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	return out.Schema == diskCacheSchemaVersion, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return os.RemoveAll(filepath.Join(c.dir, "reports"))
}

func reportToPayload(r *diag.Report) *DiskPayload {
	payload := &DiskPayload{Path: r.Path}
	for _, v := range r.Items() {
		payload.Violations = append(payload.Violations, CachedViolation{
			Pos:      v.Pos,
			Start:    v.Span.Start,
			End:      v.Span.End,
			Line:     v.Line,
			Col:      v.Col,
			Rule:     v.Rule,
			Code:     v.Code,
			Message:  v.Message,
			Severity: uint8(v.Severity),
			Fixable:  v.Fixable,
		})
	}
	return payload
}

// payloadToReport rebuilds a report against file, which must hold the same
// content the payload was computed from.
func payloadToReport(payload *DiskPayload, file *source.File, max int) *diag.Report {
	r := diag.NewReport(file.Path, max)
	for _, cv := range payload.Violations {
		r.Add(diag.Violation{
			Pos:      cv.Pos,
			Span:     source.Span{File: file.ID, Start: cv.Start, End: cv.End},
			Line:     cv.Line,
			Col:      cv.Col,
			Rule:     cv.Rule,
			Code:     cv.Code,
			Message:  cv.Message,
			Severity: diag.Severity(cv.Severity),
			Fixable:  cv.Fixable,
		})
	}
	return r
}
