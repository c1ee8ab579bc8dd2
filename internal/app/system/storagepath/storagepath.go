// Package storagepath holds the naming helpers the upload and slider
// features share on top of a waffle storage.Store.
package storagepath

import (
	"path/filepath"
	"strings"

	"github.com/dalemusser/waffle/pantry/storage"
)

// SanitizeFilename reduces a client supplied name to [A-Za-z0-9._-],
// at most 100 bytes, keeping a short extension when truncating.
func SanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	if filename == "." || filename == "/" {
		filename = ""
	}

	result := make([]byte, 0, len(filename))
	for i := 0; i < len(filename); i++ {
		c := filename[i]
		if isAllowedFilenameChar(c) {
			result = append(result, c)
		} else {
			result = append(result, '_')
		}
	}

	if len(result) == 0 {
		return "file"
	}
	if len(result) > 100 {
		ext := filepath.Ext(string(result))
		if len(ext) > 0 && len(ext) < 10 {
			result = append(result[:100-len(ext)], ext...)
		} else {
			result = result[:100]
		}
	}
	return string(result)
}

func isAllowedFilenameChar(c byte) bool {
	return (c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.'
}

// PathFromURL is the inverse of s.URL: it returns the storage path behind a
// URL the store handed out, or false when u points elsewhere or the store
// has no public base URL.
func PathFromURL(s storage.Store, u string) (string, bool) {
	const marker = "x"
	full := s.URL(marker)
	if !strings.HasSuffix(full, marker) {
		return "", false
	}
	base := strings.TrimSuffix(full, marker)
	if base == "" || !strings.HasPrefix(u, base) {
		return "", false
	}
	p := storage.NormalizePath(strings.TrimPrefix(u, base))
	if p == "." || storage.ValidatePath(p) != nil {
		return "", false
	}
	return p, true
}
