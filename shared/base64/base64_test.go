package base64_test

import (
	"errors"
	"hotelbook/shared/base64"
	"testing"
)

func TestGetContentType(t *testing.T) {
	tests := map[string]string{
		"data:image/png;base64,iVBORw0KGgo=": "image/png",
		"data:image/jpeg;base64,/9j/4AAQ":    "image/jpeg",
		"data:image/webp;base64,UklGRg==":    "image/webp",
		"data:;base64,AAAA":                  "",
		"data:image/png,iVBORw0KGgo=":        "",
		"image/png;base64,iVBORw0KGgo=":      "",
		"https://cdn.example.com/lobby.png":  "",
		"":                                   "",
	}

	for input, expected := range tests {
		if got := base64.GetContentType(input); got != expected {
			t.Errorf("GetContentType(%q) = %q, want %q", input, got, expected)
		}
	}
}

func TestDecode(t *testing.T) {
	contentType, raw, err := base64.Decode("data:text/plain;base64,SGVsbG8gV29ybGQ=")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if contentType != "text/plain" {
		t.Errorf("expected text/plain, got %q", contentType)
	}

	if string(raw) != "Hello World" {
		t.Errorf("expected decoded payload, got %q", string(raw))
	}

	if _, _, err = base64.Decode("SGVsbG8gV29ybGQ="); !errors.Is(err, base64.ErrNotDataURL) {
		t.Errorf("expected ErrNotDataURL, got %v", err)
	}

	if _, _, err = base64.Decode("data:text/plain;base64,%%%"); err == nil {
		t.Error("expected malformed payload to fail")
	}
}

func TestDecodedLen(t *testing.T) {
	if got := base64.DecodedLen("data:text/plain;base64,SGVsbG8gV29ybGQ="); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}

	if got := base64.DecodedLen("plain"); got != 5 {
		t.Errorf("expected raw length 5, got %d", got)
	}
}
