// Package httpx holds the transport seam and request builders shared by the SDK.
package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

// Doer represents the subset of http.Client used across the SDK. It is
// intentionally small so callers can supply custom transports (for example to
// inject tracing or record fixtures in tests).
type Doer interface {
	Do(*http.Request) (*http.Response, error)
}

// NewFormRequest creates a request carrying the supplied values either as the
// query string (GET) or as an x-www-form-urlencoded body (everything else),
// bound to the supplied context.
func NewFormRequest(ctx context.Context, method, rawURL string, values url.Values) (*http.Request, error) {
	if method == http.MethodGet {
		if len(values) > 0 {
			sep := "?"
			if strings.Contains(rawURL, "?") {
				sep = "&"
			}
			rawURL += sep + values.Encode()
		}
		return http.NewRequestWithContext(ctx, method, rawURL, nil)
	}

	var body io.Reader
	if len(values) > 0 {
		body = strings.NewReader(values.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	return req, nil
}

// MultipartFile describes the binary part of an upload request.
type MultipartFile struct {
	FieldName string
	FileName  string
	Content   io.Reader
}

// NewMultipartRequest builds a POST whose body is a multipart/form-data
// document holding the named string fields plus one file part.
func NewMultipartRequest(ctx context.Context, rawURL string, fields map[string]string, file MultipartFile) (*http.Request, error) {
	if file.Content == nil {
		return nil, fmt.Errorf("multipart file content is required")
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := w.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", key, err)
		}
	}

	part, err := w.CreateFormFile(file.FieldName, file.FileName)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("copy file content: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req, nil
}
