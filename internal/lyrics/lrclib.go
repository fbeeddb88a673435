package lyrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// Query identifies a song on LRCLib.
type Query struct {
	Artist   string
	Title    string
	Album    string
	Duration time.Duration
}

// QueryFromRecord builds a query from the highest-precedence values of rec.
func QueryFromRecord(rec *metadata.SongRecord) Query {
	var q Query
	q.Artist, _ = rec.String(metadata.FieldArtist)
	q.Title, _ = rec.String(metadata.FieldTitle)
	q.Album, _ = rec.String(metadata.FieldAlbum)
	q.Duration, _ = rec.Duration()
	return q
}

type Result struct {
	Synced string // LRC format with timestamps, empty if unavailable
	Plain  string // plain text lyrics, empty if unavailable
}

var lrcTimestamp = regexp.MustCompile(`(?m)^\[\d+:\d+(?:\.\d+)?\]\s?`)

// Text returns the plain lyrics, falling back to the synced lyrics with
// their timestamps removed.
func (r Result) Text() string {
	if r.Plain != "" {
		return r.Plain
	}
	return lrcTimestamp.ReplaceAllString(r.Synced, "")
}

type Client struct {
	httpClient *http.Client
	apiURL     string
}

func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		apiURL:     "https://lrclib.net/api/get",
	}
}

// Fetch retrieves lyrics for q from LRCLib.
// Returns empty Result (no error) when lyrics are not found.
// Retries once on transient network errors.
func (c *Client) Fetch(ctx context.Context, q Query) (Result, error) {
	if q.Artist == "" || q.Title == "" {
		return Result{}, nil
	}

	result, err := c.doFetch(ctx, q)
	if err == nil {
		return result, nil
	}

	// API errors (4xx, 5xx) would fail identically on retry.
	if !isTransient(err) {
		return Result{}, err
	}

	select {
	case <-ctx.Done():
		return Result{}, err
	case <-time.After(2 * time.Second):
	}
	return c.doFetch(ctx, q)
}

func isTransient(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr)
}

func (c *Client) doFetch(ctx context.Context, q Query) (Result, error) {
	params := url.Values{}
	params.Set("artist_name", q.Artist)
	params.Set("track_name", q.Title)
	if q.Album != "" {
		params.Set("album_name", q.Album)
	}
	if q.Duration > 0 {
		params.Set("duration", strconv.Itoa(int(q.Duration.Round(time.Second)/time.Second)))
	}

	reqURL := fmt.Sprintf("%s?%s", c.apiURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("failed to create lrclib request: %w", err)
	}
	req.Header.Set("User-Agent", "audfill/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("lrclib request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Result{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("lrclib returned status %d", resp.StatusCode)
	}

	var apiResp apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return Result{}, fmt.Errorf("failed to decode lrclib response: %w", err)
	}

	return Result{
		Synced: strings.TrimSpace(apiResp.SyncedLyrics),
		Plain:  strings.TrimSpace(apiResp.PlainLyrics),
	}, nil
}

type apiResponse struct {
	SyncedLyrics string `json:"syncedLyrics"`
	PlainLyrics  string `json:"plainLyrics"`
}
