// file: internals/helpers/oss/blob_store.go
package helper

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

var ErrFileTooLarge = errors.New("file too large")

// BlobStore is the object storage facade used by controllers.
type BlobStore interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
	PublicURL(key string) string
}

type StoredObject struct {
	ObjectKey   string
	URL         string
	ContentType string
	SizeBytes   int64
}

/* =======================================================================
   Upload helpers
======================================================================= */

func readUpload(fh *multipart.FileHeader, maxBytes int64) ([]byte, error) {
	if fh == nil {
		return nil, fmt.Errorf("nil file header")
	}
	if maxBytes > 0 && fh.Size > maxBytes {
		return nil, ErrFileTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	r := io.Reader(src)
	if maxBytes > 0 {
		r = io.LimitReader(src, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// UploadAsWebP re-encodes an image upload and stores it at key.
func UploadAsWebP(ctx context.Context, store BlobStore, fh *multipart.FileHeader, key string, maxBytes int64, opt WebPOptions) (*StoredObject, error) {
	data, err := readUpload(fh, maxBytes)
	if err != nil {
		return nil, err
	}
	out, err := ConvertToWebP(data, fh.Filename, opt)
	if err != nil {
		return nil, err
	}
	if err := store.Put(ctx, key, bytes.NewReader(out), "image/webp"); err != nil {
		return nil, err
	}
	return &StoredObject{ObjectKey: key, URL: store.PublicURL(key), ContentType: "image/webp", SizeBytes: int64(len(out))}, nil
}

// UploadRaw stores the upload unchanged under dir with a generated name.
func UploadRaw(ctx context.Context, store BlobStore, fh *multipart.FileHeader, dir, contentType string, maxBytes int64) (*StoredObject, error) {
	data, err := readUpload(fh, maxBytes)
	if err != nil {
		return nil, err
	}
	key := BuildObjectKey(dir, fh.Filename)
	if err := store.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return nil, err
	}
	return &StoredObject{ObjectKey: key, URL: store.PublicURL(key), ContentType: contentType, SizeBytes: int64(len(data))}, nil
}

// DeleteBestEffort never fails the request; errors are only logged.
func DeleteBestEffort(ctx context.Context, store BlobStore, key string) {
	if store == nil || strings.TrimSpace(key) == "" {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		log.Printf("[WARN] oss delete %s: %v", key, err)
	}
}

/* =======================================================================
   Request helpers
======================================================================= */

func IsMultipart(c *fiber.Ctx) bool {
	ct := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))
	return strings.HasPrefix(ct, "multipart/form-data")
}

// GetFormFile returns the first file found under fieldNames, or (nil, nil).
func GetFormFile(c *fiber.Ctx, fieldNames ...string) (*multipart.FileHeader, error) {
	if !IsMultipart(c) {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Use multipart/form-data")
	}
	if len(fieldNames) == 0 {
		fieldNames = []string{"file", "image", "photo"}
	}
	for _, fn := range fieldNames {
		if fh, err := c.FormFile(fn); err == nil && fh != nil {
			return fh, nil
		}
	}
	return nil, nil
}

/* =======================================================================
   Key utils
======================================================================= */

// BuildObjectKey → dir/<slug>_<yyyymmdd_hhmmss>_<rand6><ext>
func BuildObjectKey(dir, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	key := fmt.Sprintf("%s_%s_%s%s", slugify(base), time.Now().Format("20060102_150405"), randHex(3), ext)
	if dir = strings.Trim(dir, "/"); dir != "" {
		key = dir + "/" + key
	}
	return key
}

func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.NewReplacer(" ", "-", "_", "-", "ı", "i", "ğ", "g", "ü", "u", "ş", "s", "ö", "o", "ç", "c").Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	if s == "" {
		return "file"
	}
	return s
}

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

/* =======================================================================
   In-memory store (tests, local runs without OSS credentials)
======================================================================= */

type MemoryBlobStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Types   map[string]string
	FailPut error
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{Objects: map[string][]byte{}, Types: map[string]string{}}
}

func (m *MemoryBlobStore) Put(_ context.Context, key string, r io.Reader, contentType string) error {
	if m.FailPut != nil {
		return m.FailPut
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Objects[key] = data
	m.Types[key] = contentType
	return nil
}

func (m *MemoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Objects, key)
	delete(m.Types, key)
	return nil
}

func (m *MemoryBlobStore) PublicURL(key string) string {
	return "memory://" + key
}

func (m *MemoryBlobStore) Has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.Objects[key]
	return ok
}
