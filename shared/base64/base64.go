package base64

import (
	stdBase64 "encoding/base64"
	"errors"
	"fmt"
	"strings"
)

const (
	dataPrefix   = "data:"
	base64Marker = ";base64,"
)

var ErrNotDataURL = errors.New("value is not a base64 data url")

func GetContentType(file string) string {
	start := len(dataPrefix)
	end := strings.Index(file, base64Marker)

	if !strings.HasPrefix(file, dataPrefix) || end == -1 || end < start {
		return ""
	}

	return file[start:end]
}

func payload(file string) (string, bool) {
	idx := strings.Index(file, base64Marker)
	if !strings.HasPrefix(file, dataPrefix) || idx == -1 {
		return "", false
	}

	return file[idx+len(base64Marker):], true
}

// DecodedLen estimates the decoded size of a data url, or of the raw string when it is not one.
func DecodedLen(file string) int {
	data, ok := payload(file)
	if !ok {
		return len(file)
	}

	return stdBase64.StdEncoding.DecodedLen(len(data))
}

// Decode returns the content type and bytes carried by a data url.
func Decode(file string) (string, []byte, error) {
	data, ok := payload(file)
	if !ok {
		return "", nil, ErrNotDataURL
	}

	raw, err := stdBase64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", nil, fmt.Errorf("failed to decode data url: %w", err)
	}

	return GetContentType(file), raw, nil
}
