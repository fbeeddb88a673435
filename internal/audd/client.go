// Package audd talks to the audd.io recognition service and projects the
// baseline fields of its answer.
package audd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Skyluker4/Audfill/internal/metadata"
)

// DefaultURL is the audd.io recognition endpoint.
const DefaultURL = "https://api.audd.io/"

// DefaultMarket is the market audd.io assumes when none is sent.
const DefaultMarket = "us"

// Request configures one recognition call.
type Request struct {
	// Return lists the auxiliary sub-documents to include in the result.
	Return []metadata.Source
	Market string
	Token  string
}

// fields renders the request as form fields. Market is omitted when it is
// the service default and the token when it is unset.
func (r Request) fields() map[string]string {
	names := make([]string, len(r.Return))
	for i, s := range r.Return {
		names[i] = string(s)
	}
	f := map[string]string{"return": strings.Join(names, ",")}
	if r.Market != "" && r.Market != DefaultMarket {
		f["market"] = r.Market
	}
	if r.Token != "" {
		f["api_token"] = r.Token
	}
	return f
}

// Client is an audd.io API client.
type Client struct {
	httpClient *http.Client
	apiURL     string
}

// New creates a client for apiURL. An empty apiURL selects DefaultURL.
func New(apiURL string, timeout time.Duration) *Client {
	if apiURL == "" {
		apiURL = DefaultURL
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiURL:     apiURL,
	}
}

// RecognizeFile uploads audio as the multipart "file" field. On ErrNotFound
// and *APIError the parsed response is returned alongside the error.
func (c *Client) RecognizeFile(ctx context.Context, req Request, name string, audio io.Reader) (*Response, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for k, v := range req.fields() {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("failed to write form field %s: %w", k, err)
		}
	}
	part, err := mw.CreateFormFile("file", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("failed to write audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finish form: %w", err)
	}

	return c.post(ctx, mw.FormDataContentType(), &buf)
}

// RecognizeURL asks audd.io to fetch and recognize the audio at audioURL.
func (c *Client) RecognizeURL(ctx context.Context, req Request, audioURL string) (*Response, error) {
	form := url.Values{}
	for k, v := range req.fields() {
		form.Set(k, v)
	}
	form.Set("url", audioURL)

	return c.post(ctx, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

func (c *Client) post(ctx context.Context, contentType string, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create audd.io request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("User-Agent", "audfill/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("could not connect to audd.io: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audd.io response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("could not connect to audd.io: status %d", resp.StatusCode)
	}

	return ParseResponse(data)
}
