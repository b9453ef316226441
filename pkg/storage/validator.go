package storage

import (
	"bytes"
	"path/filepath"
	"strings"
)

// MaxAttachmentSize caps CV uploads at 5 MiB.
const MaxAttachmentSize = 5 << 20

// ValidationResult contains the outcome of attachment validation.
type ValidationResult struct {
	Valid     bool
	Extension string
	Error     string
}

// Magic byte signatures for allowed attachment types. A DOCX is a ZIP
// container, so it shares the PK header.
var magicBytes = map[string][][]byte{
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},                               // %PDF
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},      // OLE Compound Document
	".docx": {{0x50, 0x4B, 0x03, 0x04}},                               // ZIP (PK..)
}

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
}

// ValidateAttachment checks a CV upload before it is persisted:
// non-empty, within the size cap, whitelisted extension, and content whose
// magic bytes match that extension.
func ValidateAttachment(filename string, data []byte) ValidationResult {
	result := ValidationResult{}

	if len(data) == 0 {
		result.Error = "attachment is empty"
		return result
	}
	if len(data) > MaxAttachmentSize {
		result.Error = "attachment exceeds the 5MB limit"
		return result
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		result.Error = "attachment has no file extension"
		return result
	}
	result.Extension = ext

	if !allowedExtensions[ext] {
		result.Error = "attachment type not allowed: " + ext
		return result
	}

	if !matchesMagicBytes(ext, data) {
		result.Error = "attachment content does not match its extension"
		return result
	}

	result.Valid = true
	return result
}

func matchesMagicBytes(ext string, data []byte) bool {
	if len(data) < 4 {
		return false
	}
	for _, sig := range magicBytes[ext] {
		if bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
