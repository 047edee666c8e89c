package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// LocalStorage keeps rendered report artifacts on the local filesystem,
// organized by year/month.
type LocalStorage struct {
	basePath string
}

// NewLocalStorage creates a new local storage instance
func NewLocalStorage(basePath string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalStorage{basePath: basePath}, nil
}

// SaveDocument writes a rendered document and returns its relative path.
// The caller-supplied filename keeps its extension; the stored name gets a
// GUID so repeated exports never collide.
func (s *LocalStorage) SaveDocument(data []byte, filename string) (string, error) {
	dir := filepath.Join(s.basePath, "reports", time.Now().Format("2006/01"))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	stored := fmt.Sprintf("%s-%s%s", base, uuid.NewString(), ext)
	filePath := filepath.Join(dir, stored)

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	relPath, _ := filepath.Rel(s.basePath, filePath)
	return relPath, nil
}

// DataURI encodes a rendered document as an embeddable data URI for in-page
// preview. The bytes are exactly what SaveDocument would write.
func DataURI(data []byte, contentType string) string {
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Open returns a stored document for reading
func (s *LocalStorage) Open(relativePath string) (*os.File, error) {
	return os.Open(filepath.Join(s.basePath, relativePath))
}

// Delete removes a stored document
func (s *LocalStorage) Delete(relativePath string) error {
	return os.Remove(filepath.Join(s.basePath, relativePath))
}

// Exists checks if a stored document exists
func (s *LocalStorage) Exists(relativePath string) bool {
	_, err := os.Stat(filepath.Join(s.basePath, relativePath))
	return err == nil
}

// GetFullPath returns the absolute path for serving files
func (s *LocalStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.basePath, relativePath)
}
