// Package imagekit decodes base64 image payloads and derives storage keys.
//
// The extension is inferred from the first character of the base64 payload,
// which encodes the leading signature byte of the image. The mapping is a
// fixed contract shared with already-stored objects and must not change:
// "/" -> jpg, "i" -> png, "R" -> gif, "U" -> webp.
package imagekit

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var ErrUnknownFormat = errors.New("unrecognized image format")

var extensions = map[byte]string{
	'/': "jpg",
	'i': "png",
	'R': "gif",
	'U': "webp",
}

// Extension returns the file extension for a base64 image payload.
func Extension(payload string) (string, error) {
	if payload == "" {
		return "", ErrUnknownFormat
	}

	ext, ok := extensions[payload[0]]
	if !ok {
		return "", ErrUnknownFormat
	}

	return ext, nil
}

// NewKey generates a storage key for a base64 image payload.
func NewKey(payload string) (string, error) {
	ext, err := Extension(payload)
	if err != nil {
		return "", err
	}

	name := strings.ReplaceAll(uuid.NewString(), "-", "")

	return fmt.Sprintf("%v.%v", name, ext), nil
}

// Decode returns the raw bytes of a base64 image payload.
func Decode(payload string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("base64.StdEncoding.DecodeString -> %w", err)
	}

	return data, nil
}

// ContentType maps a storage key's extension to its MIME type.
func ContentType(key string) string {
	switch {
	case strings.HasSuffix(key, ".jpg"):
		return "image/jpeg"
	case strings.HasSuffix(key, ".png"):
		return "image/png"
	case strings.HasSuffix(key, ".gif"):
		return "image/gif"
	case strings.HasSuffix(key, ".webp"):
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
