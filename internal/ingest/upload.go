package ingest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

const (
	// PREVIEW_LIMIT is how many characters of an upload the page shows.
	PREVIEW_LIMIT = 1000
	// MAX_UPLOAD_BYTES bounds accepted uploads.
	MAX_UPLOAD_BYTES = 1 << 20
)

var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrInvalidEncoding     = errors.New("file is not valid UTF-8 text")
	ErrFileTooLarge        = errors.New("file is too large")
)

// SupportedExtensions lists the upload types the form accepts.
var SupportedExtensions = []string{".txt", ".csv", ".md"}

// DecodeUpload turns an uploaded file into analysis text. Markdown is
// flattened to plain text; txt and csv are used as-is.
func DecodeUpload(filename string, data []byte) (string, error) {
	if len(data) > MAX_UPLOAD_BYTES {
		return "", fmt.Errorf("%w: %d bytes", ErrFileTooLarge, len(data))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !isSupported(ext) {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	if !utf8.Valid(data) {
		return "", ErrInvalidEncoding
	}
	content := strings.TrimPrefix(string(data), "\ufeff")

	if ext == ".md" {
		return ConvertMarkdownToText(content), nil
	}
	return content, nil
}

// Preview returns the first PREVIEW_LIMIT characters, with "..." appended
// when content was cut.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= PREVIEW_LIMIT {
		return content
	}
	runes := []rune(content)
	return string(runes[:PREVIEW_LIMIT]) + "..."
}

func isSupported(ext string) bool {
	for _, s := range SupportedExtensions {
		if ext == s {
			return true
		}
	}
	return false
}
