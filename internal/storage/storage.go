package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

var (
	ErrFileTooLarge        = errors.New("file exceeds the maximum allowed size")
	ErrUnsupportedFileType = errors.New("file type not allowed")
	ErrEmptyFile           = errors.New("file is empty")
)

// AllowedImageTypes lists the MIME types accepted for images.
var AllowedImageTypes = []string{
	"image/jpeg",
	"image/jpg",
	"image/png",
	"image/gif",
	"image/webp",
}

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Upload is an incoming file with the metadata declared by the client.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageStore persists validated images and returns their public URL.
type ImageStore interface {
	SaveImage(folder string, upload Upload) (string, error)
	Delete(url string) error
}

// LocalStorage keeps files under a directory served at a URL prefix.
type LocalStorage struct {
	root     string
	baseURL  string
	maxBytes int64
}

// NewLocalStorage creates a LocalStorage rooted at dir.
func NewLocalStorage(dir, baseURL string, maxBytes int64) *LocalStorage {
	return &LocalStorage{
		root:     dir,
		baseURL:  strings.TrimRight(baseURL, "/"),
		maxBytes: maxBytes,
	}
}

// Root returns the directory files are written to.
func (s *LocalStorage) Root() string {
	return s.root
}

// BaseURL returns the URL prefix files are served under.
func (s *LocalStorage) BaseURL() string {
	return s.baseURL
}

// SaveImage validates the declared type and size, sniffs the content and
// writes it under a random name inside folder.
func (s *LocalStorage) SaveImage(folder string, upload Upload) (string, error) {
	declared := normalizeType(upload.ContentType)
	if !isAllowed(declared) {
		return "", ErrUnsupportedFileType
	}
	if upload.Size > s.maxBytes {
		return "", ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(upload.Content, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmptyFile
	}
	if int64(len(data)) > s.maxBytes {
		return "", ErrFileTooLarge
	}

	detected := normalizeType(mimetype.Detect(data).String())
	if !isAllowed(detected) {
		return "", ErrUnsupportedFileType
	}

	dir := filepath.Join(s.root, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	name := uuid.NewString() + extensions[detected]
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return path.Join(s.baseURL, folder, name), nil
}

// Delete removes a file previously returned by SaveImage. Unknown URLs are ignored.
func (s *LocalStorage) Delete(url string) error {
	if url == "" || !strings.HasPrefix(url, s.baseURL+"/") {
		return nil
	}
	rel := strings.TrimPrefix(url, s.baseURL+"/")
	if strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func normalizeType(contentType string) string {
	if i := strings.Index(contentType, ";"); i >= 0 {
		contentType = contentType[:i]
	}
	return strings.ToLower(strings.TrimSpace(contentType))
}

func isAllowed(contentType string) bool {
	for _, t := range AllowedImageTypes {
		if t == contentType {
			return true
		}
	}
	return false
}

// FromBytes builds an Upload from an in-memory payload.
func FromBytes(filename, contentType string, data []byte) Upload {
	return Upload{
		Filename:    filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Content:     bytes.NewReader(data),
	}
}
