package storage

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// DecodeDataURL parses a browser-produced data URL ("data:image/jpeg;base64,...")
// and returns the decoded payload plus its MIME type. Punch photos arrive in
// this form from the time-tracking UI.
func DecodeDataURL(raw string) ([]byte, string, error) {
	if !strings.HasPrefix(raw, "data:") {
		return nil, "", fmt.Errorf("not a data URL")
	}
	rest := strings.TrimPrefix(raw, "data:")
	sep := strings.IndexByte(rest, ',')
	if sep < 0 {
		return nil, "", fmt.Errorf("malformed data URL")
	}
	meta, payload := rest[:sep], rest[sep+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, "", fmt.Errorf("unsupported data URL encoding")
	}
	mime := strings.TrimSuffix(meta, ";base64")
	if mime == "" {
		mime = "application/octet-stream"
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("decode data URL payload: %w", err)
	}
	return data, mime, nil
}

// ExtensionForMIME maps the handful of photo MIME types the punch UI sends.
func ExtensionForMIME(mime string) string {
	switch mime {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ".bin"
	}
}
