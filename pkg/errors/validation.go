package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

// operationNameRegex matches pipeline operation names such as "sort-row".
var operationNameRegex = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

// ValidateOperationName checks that name is a well-formed operation name.
// It does not check that the operation exists; the pipeline does that.
func ValidateOperationName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOperation, "operation name cannot be empty")
	}

	if len(name) > 64 {
		return New(ErrCodeInvalidOperation, "operation name too long (max 64 characters)")
	}

	if !operationNameRegex.MatchString(name) {
		return New(ErrCodeInvalidOperation, "invalid operation name: %q", name)
	}

	return nil
}

// ValidateFormat checks a document format name ("json" or "toml").
func ValidateFormat(format string) error {
	switch strings.ToLower(format) {
	case "json", "toml":
		return nil
	case "":
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	return New(ErrCodeInvalidFormat, "unsupported format %q (want json or toml)", format)
}

// ValidateDocumentPath checks a matrix document path given on the command
// line. Absolute paths are allowed; the extension must name a document
// format.
func ValidateDocumentPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return New(ErrCodeInvalidFormat, "%s has no extension (want .json or .toml)", path)
	}
	return ValidateFormat(ext)
}
