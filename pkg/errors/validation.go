package errors

import (
	"strings"
	"unicode"
)

// ValidateGroupName validates a group name arriving from the outside
// (CLI flag, API request) before it is used as a registry key.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters or null bytes
//   - Maximum length of 256 characters
//
// Host naming rules beyond that are the registry's concern.
func ValidateGroupName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidOption, "group name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidOption, "group name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "group name contains invalid control characters")
		}
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidOption, "output path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidOption, "output path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidOption, "output path contains invalid characters")
		}
	}

	return nil
}

// ValidateMongoURI validates a MongoDB connection string from
// configuration. It ensures the URI has a mongodb scheme; everything
// else is left to the driver.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidOption, "mongo URI cannot be empty")
	}

	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidOption, "mongo URI must use mongodb or mongodb+srv scheme")
	}

	return nil
}

// ValidateListenAddr validates a server listen address of the host:port
// form used in configuration.
func ValidateListenAddr(addr string) error {
	if addr == "" {
		return New(ErrCodeInvalidOption, "listen address cannot be empty")
	}

	if !strings.Contains(addr, ":") {
		return New(ErrCodeInvalidOption, "listen address must be of the form host:port")
	}

	return nil
}
