package scans

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// MaxImageBytes is the hard ceiling for a decoded label photo.
const MaxImageBytes = 10 << 20 // 10 MiB

var (
	ErrNoImage          = errors.New("No image data provided")
	ErrImageTooLarge    = fmt.Errorf("image exceeds the %d MB limit", MaxImageBytes>>20)
	ErrUnsupportedImage = errors.New("unsupported image type (use JPEG, PNG, WebP or HEIC)")
)

// allow-list of label photo formats
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

var extToMIME = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
	".heic": "image/heic",
	".heif": "image/heif",
}

// Image is an accepted, decoded intake payload ready for analysis.
type Image struct {
	Bytes    []byte
	Base64   string
	MIMEType string
}

// ResolveMIMEType returns the effective content type for an upload.
// Drag-and-drop sources sometimes omit the declared type, so the
// filename extension is used as a fallback before giving up.
func ResolveMIMEType(declared, filename string) string {
	declared = strings.ToLower(strings.TrimSpace(declared))
	if declared != "" {
		return declared
	}
	if mt, ok := extToMIME[strings.ToLower(filepath.Ext(filename))]; ok {
		return mt
	}
	return ""
}

// AcceptImage validates a base64-encoded upload before any network call:
// type must be on the allow-list, decoded size must stay under MaxImageBytes.
func AcceptImage(encoded, declaredMIME, filename string) (*Image, error) {
	if strings.TrimSpace(encoded) == "" {
		return nil, ErrNoImage
	}

	mimeType := ResolveMIMEType(declaredMIME, filename)
	if mimeType == "" {
		// kalau tidak ada info type sama sekali, anggap JPEG (kamera HP)
		mimeType = "image/jpeg"
	}
	if !allowedImageTypes[mimeType] {
		return nil, ErrUnsupportedImage
	}

	// Base64 grows data by 4/3; reject obviously oversized payloads
	// before paying for the decode.
	if len(encoded) > (MaxImageBytes/3+1)*4 {
		return nil, ErrImageTooLarge
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid base64 image data: %w", err)
	}
	if len(raw) > MaxImageBytes {
		return nil, ErrImageTooLarge
	}

	return &Image{Bytes: raw, Base64: encoded, MIMEType: mimeType}, nil
}

// EncodeImage is the reverse of the intake decode; the round trip is exact.
func EncodeImage(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}
