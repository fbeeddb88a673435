// Package asset downloads cover art, artist art and previews next to the
// user's files.
package asset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/logger"
	"github.com/Skyluker4/Audfill/internal/naming"
)

// Fetcher downloads assets over HTTP.
type Fetcher struct {
	httpClient *http.Client
	logger     *logger.Logger
}

// NewFetcher creates a Fetcher with the given request timeout.
func NewFetcher(timeout time.Duration, log *logger.Logger) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
	}
}

// Fetch downloads rawURL and returns its body and declared content type.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", "audfill/1.0")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download of %s failed: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download of %s returned status %d", rawURL, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", rawURL, err)
	}
	return data, resp.Header.Get("Content-Type"), nil
}

// Save downloads rawURL to base plus an extension taken from the response's
// content type. An existing file is never overwritten: the name gets a
// " (n)" suffix instead. It returns the path written.
func (f *Fetcher) Save(ctx context.Context, rawURL, base string) (string, error) {
	data, contentType, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	want := base + "." + extension(contentType, rawURL)
	target := naming.UniquePath(want)
	if target != want {
		f.logger.Warn("File %q already exists. Saving to %q", want, target)
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(target, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", target, err)
	}
	return target, nil
}

// extension derives a file extension from a content type: the subtype's
// last dash-separated part, so "audio/x-m4a" gives "m4a". Without a usable
// content type the URL's extension is used, then "bin".
func extension(contentType, rawURL string) string {
	mediaType, _, _ := strings.Cut(contentType, ";")
	if _, sub, ok := strings.Cut(strings.TrimSpace(mediaType), "/"); ok && sub != "" {
		parts := strings.Split(sub, "-")
		if ext := strings.ToLower(parts[len(parts)-1]); ext != "" {
			return ext
		}
	}

	if u, err := url.Parse(rawURL); err == nil {
		if ext := strings.TrimPrefix(path.Ext(u.Path), "."); ext != "" {
			return strings.ToLower(ext)
		}
	}
	return "bin"
}
