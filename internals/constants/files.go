package constants

import (
	"path/filepath"
	"strings"
)

const (
	MaxDocumentBytes = 10 << 20
	MaxPhotoBytes    = 5 << 20
)

// DocumentContentType returns the content type for an allowed document
// extension, or "" when the extension is not accepted.
func DocumentContentType(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case ".pdf":
		return "application/pdf"
	default:
		return ""
	}
}

func IsImageExt(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".jpg", ".jpeg", ".webp":
		return true
	}
	return false
}
